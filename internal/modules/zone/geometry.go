// README: In-memory geometry store over validated zone polygons.
package zone

import (
	"fmt"

	"zonefare/internal/types"
)

// GeometryStore holds validated, active zone polygons keyed by zone id.
// It is built once per snapshot and never mutated afterwards, so concurrent
// readers need no locking.
type GeometryStore struct {
	zones  map[types.ID]*Zone
	byType map[Type][]*Zone
}

func NewGeometryStore() *GeometryStore {
	return &GeometryStore{
		zones:  make(map[types.ID]*Zone),
		byType: make(map[Type][]*Zone),
	}
}

// Add validates the zone's polygon and indexes it. Inactive zones and zones
// with invalid rings are rejected; invalid rings never enter the store.
func (g *GeometryStore) Add(z Zone) error {
	if !z.Active() {
		return fmt.Errorf("zone %s: inactive", z.ID)
	}
	if err := z.Polygon.Validate(); err != nil {
		return fmt.Errorf("zone %s: %w", z.ID, err)
	}
	zc := z
	g.zones[z.ID] = &zc
	g.byType[z.Type] = append(g.byType[z.Type], &zc)
	return nil
}

// Contains reports whether the zone exists and its polygon contains pt.
// Boundary points are contained.
func (g *GeometryStore) Contains(id types.ID, pt types.Point) bool {
	z, ok := g.zones[id]
	if !ok {
		return false
	}
	return z.Polygon.Contains(pt)
}

// CandidateZones returns every active zone of the given type whose polygon
// contains pt.
func (g *GeometryStore) CandidateZones(pt types.Point, t Type) []*Zone {
	var out []*Zone
	for _, z := range g.byType[t] {
		if z.Polygon.Contains(pt) {
			out = append(out, z)
		}
	}
	return out
}

func (g *GeometryStore) Get(id types.ID) (*Zone, bool) {
	z, ok := g.zones[id]
	return z, ok
}

func (g *GeometryStore) Len() int {
	return len(g.zones)
}
