// README: Surge price rule; a time-windowed percentage markup within a peak zone.
package surge

import (
	"errors"
	"fmt"
	"time"

	"zonefare/internal/types"
)

const minutesPerDay = 24 * 60

var (
	ErrEmptyWindow         = errors.New("surge window start must be before end")
	ErrCrossMidnightWindow = errors.New("surge window must not cross midnight")
)

// Price applies within [StartMinute, EndMinute) on Weekday, minutes counted
// from midnight. Cross-midnight windows are rejected at ingestion; the admin
// layer splits them into two rules.
type Price struct {
	ID             types.ID
	ZoneID         types.ID
	VehicleGroupID types.ID
	FarePlanID     types.ID
	Percent        float64
	Weekday        time.Weekday
	StartMinute    int
	EndMinute      int
	Status         types.Status
	CreatedAt      time.Time
}

func (p *Price) Active() bool {
	return p.Status == types.StatusActive
}

func (p *Price) Validate() error {
	if p.StartMinute < 0 || p.EndMinute > minutesPerDay {
		return fmt.Errorf("surge %s: %w", p.ID, ErrCrossMidnightWindow)
	}
	if p.StartMinute >= p.EndMinute {
		return fmt.Errorf("surge %s: %w", p.ID, ErrEmptyWindow)
	}
	return nil
}

// InWindow reports whether the minute-of-day m falls in the half-open window:
// inclusive of start, exclusive of end.
func (p *Price) InWindow(m int) bool {
	return m >= p.StartMinute && m < p.EndMinute
}
