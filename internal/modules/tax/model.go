// README: Tax entity; a named percentage applied on the pre-tax total.
package tax

import (
	"time"

	"zonefare/internal/types"
)

type Tax struct {
	ID        types.ID
	Name      string
	Percent   float64
	Status    types.Status
	CreatedAt time.Time
}

func (t *Tax) Active() bool {
	return t.Status == types.StatusActive
}
