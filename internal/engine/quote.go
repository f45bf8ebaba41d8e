// README: Quote orchestration; resolve zone, look up schedule and surge, price.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"zonefare/internal/modules/fare"
	"zonefare/internal/modules/pricing"
	"zonefare/internal/modules/zone"
	"zonefare/internal/types"
)

type QuoteRequest struct {
	Pickup         types.Point
	ZoneType       zone.Type
	VehicleGroupID types.ID
	FarePlanID     types.ID
	RideTime       time.Time
	Metrics        pricing.TripMetrics
}

// Quote is one priced trip, tagged with the snapshot generation it was
// computed against. A quote from a superseded generation is still valid for
// that generation; it is never retried automatically.
type Quote struct {
	QuoteID    string
	Generation uint64
	Breakdown  *pricing.FareBreakdown
}

// MissingScheduleError reports a resolved zone that has no active schedule
// for the requested tuple, so the operator knows exactly which schedule to
// add.
type MissingScheduleError struct {
	ZoneID         types.ID
	VehicleGroupID types.ID
	FarePlanID     types.ID
}

func (e *MissingScheduleError) Error() string {
	return fmt.Sprintf("no active fare schedule for zone %s, vehicle group %s, fare plan %s",
		e.ZoneID, e.VehicleGroupID, e.FarePlanID)
}

func (e *MissingScheduleError) Unwrap() error {
	return fare.ErrMissingFareSchedule
}

// Quote resolves the governing zone and prices the trip against the current
// snapshot. The whole computation runs on one snapshot; no I/O, no locks.
func (e *Engine) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return nil, err
	}

	z, err := snap.Resolver.Resolve(req.Pickup, req.ZoneType)
	if err != nil {
		return nil, err
	}

	sched, err := snap.Schedules.Lookup(z.ID, req.VehicleGroupID, req.FarePlanID)
	if err != nil {
		return nil, &MissingScheduleError{
			ZoneID:         z.ID,
			VehicleGroupID: req.VehicleGroupID,
			FarePlanID:     req.FarePlanID,
		}
	}

	surgePercent, surgeID := snap.Surges.Lookup(z.ID, req.VehicleGroupID, req.FarePlanID, req.RideTime)

	var taxPercent float64
	if sched.AllowTax {
		if t, ok := snap.Taxes[sched.TaxID]; ok {
			taxPercent = t.Percent
		}
	}

	breakdown, err := pricing.Compute(pricing.ComputeInput{
		Zone:         z,
		Schedule:     sched,
		SurgePercent: surgePercent,
		SurgeID:      surgeID,
		TaxPercent:   taxPercent,
		Metrics:      req.Metrics,
		Currency:     e.currency,
	})
	if err != nil {
		return nil, err
	}

	return &Quote{
		QuoteID:    uuid.NewString(),
		Generation: snap.Generation,
		Breakdown:  breakdown,
	}, nil
}

// ResolveZone answers which zone governs a coordinate without pricing.
func (e *Engine) ResolveZone(pt types.Point, t zone.Type) (*zone.Zone, uint64, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return nil, 0, err
	}
	z, err := snap.Resolver.Resolve(pt, t)
	if err != nil {
		return nil, snap.Generation, err
	}
	return z, snap.Generation, nil
}
