// README: Zone resolver; containment plus deterministic tie-breaking.
package zone

import (
	"errors"

	"zonefare/internal/types"
)

var ErrNoZoneMatch = errors.New("no active zone contains the pickup point")

// Resolver selects the single governing zone for a coordinate.
type Resolver struct {
	geo *GeometryStore
}

func NewResolver(geo *GeometryStore) *Resolver {
	return &Resolver{geo: geo}
}

// Resolve returns the governing zone of the given type for pt.
// When several zones contain the point, the lowest priority value wins;
// priority ties go to the most recently created zone, then the larger id so
// the result is a total order. Absence of a match is a first-class failure,
// never a default zone.
func (r *Resolver) Resolve(pt types.Point, t Type) (*Zone, error) {
	candidates := r.geo.CandidateZones(pt, t)
	if len(candidates) == 0 {
		return nil, ErrNoZoneMatch
	}
	best := candidates[0]
	for _, z := range candidates[1:] {
		if precedes(z, best) {
			best = z
		}
	}
	return best, nil
}

// precedes reports whether a outranks b. Lower priority number wins.
func precedes(a, b *Zone) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
