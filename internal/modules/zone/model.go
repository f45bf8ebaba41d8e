// README: Zone aggregate and zone-type definitions.
package zone

import (
	"time"

	"zonefare/internal/geo"
	"zonefare/internal/types"
)

type Type string

const (
	TypeNormal  Type = "normal"
	TypePeak    Type = "peak"
	TypeAirport Type = "airport"
)

// ValidType reports whether t is one of the known zone types.
func ValidType(t Type) bool {
	return t == TypeNormal || t == TypePeak || t == TypeAirport
}

type Zone struct {
	ID        types.ID
	Name      string
	Type      Type
	Polygon   geo.Polygon
	Priority  int
	Status    types.Status
	CreatedAt time.Time
}

func (z *Zone) Active() bool {
	return z.Status == types.StatusActive
}
