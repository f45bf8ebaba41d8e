// README: Surge index; time-window matching with a max-percent overlap policy.
package surge

import (
	"time"

	"zonefare/internal/types"
)

type ruleKey struct {
	zoneID         types.ID
	vehicleGroupID types.ID
	farePlanID     types.ID
	weekday        time.Weekday
}

// Index maps (peak zone, vehicle group, fare plan, weekday) to its surge
// rules. Built once per snapshot, read-only afterwards.
type Index struct {
	rules map[ruleKey][]*Price
	total int
}

// NewIndex indexes active, valid rules and returns the ones it rejected so
// the caller can log them. Invalid windows never enter the index.
func NewIndex(prices []Price) (*Index, []error) {
	idx := &Index{rules: make(map[ruleKey][]*Price)}
	var rejected []error
	for i := range prices {
		p := &prices[i]
		if !p.Active() {
			continue
		}
		if err := p.Validate(); err != nil {
			rejected = append(rejected, err)
			continue
		}
		k := ruleKey{p.ZoneID, p.VehicleGroupID, p.FarePlanID, p.Weekday}
		idx.rules[k] = append(idx.rules[k], p)
		idx.total++
	}
	return idx, rejected
}

// Lookup returns the surge percentage applying at t for the given ids, and
// the id of the rule that supplied it. No matching rule yields zero with an
// empty id; that is not an error. When overlapping windows match (a
// data-entry anomaly), the maximum percentage wins.
func (i *Index) Lookup(zoneID, vehicleGroupID, farePlanID types.ID, t time.Time) (float64, types.ID) {
	k := ruleKey{zoneID, vehicleGroupID, farePlanID, t.Weekday()}
	minute := t.Hour()*60 + t.Minute()

	var (
		percent float64
		applied types.ID
	)
	for _, p := range i.rules[k] {
		if !p.InWindow(minute) {
			continue
		}
		if applied == "" || p.Percent > percent {
			percent = p.Percent
			applied = p.ID
		}
	}
	return percent, applied
}

func (i *Index) Len() int {
	return i.total
}
