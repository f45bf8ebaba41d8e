// README: Exact-match fare schedule index; no cross-group or cross-plan fallback.
package fare

import (
	"errors"

	"zonefare/internal/types"
)

var ErrMissingFareSchedule = errors.New("no active fare schedule for zone, vehicle group and fare plan")

// Index maps (zoneID, vehicleGroupID, farePlanID) to its single active
// schedule. Built once per snapshot, read-only afterwards.
type Index struct {
	byKey map[ScheduleKey]*Schedule
}

// NewIndex indexes the active schedules. Should duplicate keys slip past the
// admin layer, the most recently created schedule wins, deterministically.
func NewIndex(schedules []Schedule) *Index {
	idx := &Index{byKey: make(map[ScheduleKey]*Schedule, len(schedules))}
	for i := range schedules {
		s := &schedules[i]
		if !s.Active() {
			continue
		}
		if prev, ok := idx.byKey[s.Key]; ok {
			if prev.CreatedAt.After(s.CreatedAt) {
				continue
			}
		}
		idx.byKey[s.Key] = s
	}
	return idx
}

// Lookup returns the schedule for the exact key tuple.
func (i *Index) Lookup(zoneID, vehicleGroupID, farePlanID types.ID) (*Schedule, error) {
	s, ok := i.byKey[ScheduleKey{ZoneID: zoneID, VehicleGroupID: vehicleGroupID, FarePlanID: farePlanID}]
	if !ok {
		return nil, ErrMissingFareSchedule
	}
	return s, nil
}

func (i *Index) Len() int {
	return len(i.byKey)
}
