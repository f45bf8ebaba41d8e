// README: Common value objects shared across modules.
package types

type ID string

// Point is a WGS84 coordinate (decimal degrees).
type Point struct {
	Lat float64
	Lng float64
}

// Status is the soft-delete flag carried by every administrative entity.
// The engine only ever indexes active records.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)
