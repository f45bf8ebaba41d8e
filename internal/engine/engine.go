// README: Engine; owns the live snapshot and rebuilds it on invalidation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"zonefare/internal/modules/fare"
	"zonefare/internal/modules/surge"
	"zonefare/internal/modules/tax"
	"zonefare/internal/modules/zone"
	"zonefare/internal/types"
)

var ErrNotReady = errors.New("engine has no snapshot yet")

type Engine struct {
	loader   Loader
	currency string
	log      *logrus.Entry

	// rebuildMu serializes Refresh; readers never take it.
	rebuildMu sync.Mutex
	gen       uint64
	snap      atomic.Pointer[Snapshot]
}

func New(loader Loader, currency string, log *logrus.Logger) *Engine {
	return &Engine{
		loader:   loader,
		currency: currency,
		log:      log.WithField("component", "engine"),
	}
}

// Snapshot returns the current snapshot, or ErrNotReady before the first
// successful Refresh. The returned snapshot stays valid even if superseded
// mid-flight; callers read its generation to detect staleness.
func (e *Engine) Snapshot() (*Snapshot, error) {
	s := e.snap.Load()
	if s == nil {
		return nil, ErrNotReady
	}
	return s, nil
}

// Refresh loads the administrative records and swaps in a new snapshot.
// A failed load leaves the previous snapshot serving.
func (e *Engine) Refresh(ctx context.Context) error {
	e.rebuildMu.Lock()
	defer e.rebuildMu.Unlock()

	snap, err := e.build(ctx)
	if err != nil {
		return err
	}
	e.gen++
	snap.Generation = e.gen
	e.snap.Store(snap)

	st := snap.Stats()
	e.log.WithFields(logrus.Fields{
		"generation":     st.Generation,
		"zones":          st.Zones,
		"fare_schedules": st.FareSchedules,
		"surge_rules":    st.SurgeRules,
		"taxes":          st.Taxes,
	}).Info("snapshot rebuilt")
	return nil
}

func (e *Engine) build(ctx context.Context) (*Snapshot, error) {
	zones, err := e.loader.LoadZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("load zones: %w", err)
	}
	schedules, err := e.loader.LoadSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fare schedules: %w", err)
	}
	groups, err := e.loader.LoadVehicleGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vehicle groups: %w", err)
	}
	plans, err := e.loader.LoadFarePlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fare plans: %w", err)
	}
	surges, err := e.loader.LoadSurgePrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load surge prices: %w", err)
	}
	taxes, err := e.loader.LoadTaxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load taxes: %w", err)
	}

	geom := zone.NewGeometryStore()
	for _, z := range zones {
		if err := geom.Add(z); err != nil {
			// the admin layer validates on write; a bad ring here is data
			// corruption, so skip the zone rather than poison the snapshot
			e.log.WithError(err).Warn("rejecting zone")
		}
	}

	surgeIdx, rejected := surge.NewIndex(surges)
	for _, err := range rejected {
		e.log.WithError(err).Warn("rejecting surge rule")
	}

	taxByID := make(map[types.ID]tax.Tax, len(taxes))
	for _, t := range taxes {
		taxByID[t.ID] = t
	}
	groupByID := make(map[types.ID]fare.VehicleGroup, len(groups))
	for _, g := range groups {
		groupByID[g.ID] = g
	}
	planByID := make(map[types.ID]fare.FarePlan, len(plans))
	for _, p := range plans {
		planByID[p.ID] = p
	}

	return &Snapshot{
		BuiltAt:       time.Now().UTC(),
		Geometry:      geom,
		Resolver:      zone.NewResolver(geom),
		Schedules:     fare.NewIndex(schedules),
		Surges:        surgeIdx,
		Taxes:         taxByID,
		VehicleGroups: groupByID,
		FarePlans:     planByID,
	}, nil
}
