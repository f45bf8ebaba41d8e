package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"zonefare/internal/geo"
	"zonefare/internal/modules/fare"
	"zonefare/internal/modules/pricing"
	"zonefare/internal/modules/surge"
	"zonefare/internal/modules/tax"
	"zonefare/internal/modules/zone"
	"zonefare/internal/types"
)

// stubLoader serves fixed slices, standing in for the PostgreSQL stores.
type stubLoader struct {
	mu        sync.Mutex
	zones     []zone.Zone
	schedules []fare.Schedule
	groups    []fare.VehicleGroup
	plans     []fare.FarePlan
	surges    []surge.Price
	taxes     []tax.Tax
	failZones bool
}

func (l *stubLoader) LoadZones(context.Context) ([]zone.Zone, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failZones {
		return nil, errors.New("db down")
	}
	return l.zones, nil
}
func (l *stubLoader) LoadSchedules(context.Context) ([]fare.Schedule, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.schedules, nil
}
func (l *stubLoader) LoadVehicleGroups(context.Context) ([]fare.VehicleGroup, error) {
	return l.groups, nil
}
func (l *stubLoader) LoadFarePlans(context.Context) ([]fare.FarePlan, error) {
	return l.plans, nil
}
func (l *stubLoader) LoadSurgePrices(context.Context) ([]surge.Price, error) {
	return l.surges, nil
}
func (l *stubLoader) LoadTaxes(context.Context) ([]tax.Tax, error) {
	return l.taxes, nil
}

func square(lat0, lng0, lat1, lng1 float64) geo.Polygon {
	return geo.Polygon{
		{Lat: lat0, Lng: lng0}, {Lat: lat0, Lng: lng1},
		{Lat: lat1, Lng: lng1}, {Lat: lat1, Lng: lng0},
	}
}

func fixtureLoader() *stubLoader {
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return &stubLoader{
		zones: []zone.Zone{
			{
				ID: "zone_a", Name: "A", Type: zone.TypeNormal, Priority: 1,
				Polygon: square(0, 0, 1, 1), Status: types.StatusActive, CreatedAt: created,
			},
			{
				ID: "zone_b", Name: "B", Type: zone.TypeNormal, Priority: 2,
				Polygon: square(-1, -1, 2, 2), Status: types.StatusActive, CreatedAt: created.Add(time.Hour),
			},
		},
		schedules: []fare.Schedule{
			{
				ID:  "sched_a",
				Key: fare.ScheduleKey{ZoneID: "zone_a", VehicleGroupID: "vg1", FarePlanID: "fp1"},
				BaseFareCharge: 50, BaseDistanceKm: 2, PerDistanceCharge: 10,
				CommissionType: fare.CommissionPercentage, CommissionRate: 10,
				ChargeGoesTo: fare.TargetAdmin,
				AllowTax:     true, TaxID: "tax_vat",
				Status: types.StatusActive, CreatedAt: created,
			},
		},
		groups: []fare.VehicleGroup{{ID: "vg1", Name: "Sedan", Status: types.StatusActive}},
		plans:  []fare.FarePlan{{ID: "fp1", ServiceCategoryID: "sc1", Name: "Standard", Priority: 1, Status: types.StatusActive}},
		surges: []surge.Price{
			{
				ID: "surge_mon", ZoneID: "zone_a", VehicleGroupID: "vg1", FarePlanID: "fp1",
				Percent: 25, Weekday: time.Monday, StartMinute: 8 * 60, EndMinute: 10 * 60,
				Status: types.StatusActive, CreatedAt: created,
			},
		},
		taxes: []tax.Tax{{ID: "tax_vat", Name: "VAT", Percent: 5, Status: types.StatusActive, CreatedAt: created}},
	}
}

func newTestEngine(t *testing.T, loader Loader) *Engine {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	e := New(loader, "USD", log)
	require.NoError(t, e.Refresh(context.Background()))
	return e
}

func TestQuoteResolvesPriorityZone(t *testing.T) {
	e := newTestEngine(t, fixtureLoader())

	// Tuesday noon: no surge window matches
	rideTime := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:         types.Point{Lat: 0.5, Lng: 0.5},
		ZoneType:       zone.TypeNormal,
		VehicleGroupID: "vg1",
		FarePlanID:     "fp1",
		RideTime:       rideTime,
		Metrics:        pricing.TripMetrics{DistanceKm: 5},
	})
	require.NoError(t, err)

	require.Equal(t, types.ID("zone_a"), q.Breakdown.ZoneID, "priority 1 zone must win over the larger priority 2 zone")
	require.Equal(t, uint64(1), q.Generation)
	require.NotEmpty(t, q.QuoteID)

	// distance (5-2)*10 = 30; subtotal 80; tax 5% = 4.00; total 84.00
	require.Equal(t, 80.0, q.Breakdown.Subtotal)
	require.Equal(t, 4.0, q.Breakdown.TaxAmount)
	require.Equal(t, 84.0, q.Breakdown.TotalPayable)
	require.Equal(t, 8.0, q.Breakdown.CommissionAmount)
	require.Nil(t, q.Breakdown.AppliedSurgeID)
}

func TestQuoteAppliesSurgeWindow(t *testing.T) {
	e := newTestEngine(t, fixtureLoader())

	// Monday 08:00, exactly at window start: surge applies
	q, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:         types.Point{Lat: 0.5, Lng: 0.5},
		ZoneType:       zone.TypeNormal,
		VehicleGroupID: "vg1",
		FarePlanID:     "fp1",
		RideTime:       time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		Metrics:        pricing.TripMetrics{DistanceKm: 5},
	})
	require.NoError(t, err)
	require.NotNil(t, q.Breakdown.AppliedSurgeID)
	require.Equal(t, types.ID("surge_mon"), *q.Breakdown.AppliedSurgeID)
	// subtotal 80 + surge 20 = 100; tax 5.00; total 105.00
	require.Equal(t, 20.0, q.Breakdown.SurgeAmount)
	require.Equal(t, 105.0, q.Breakdown.TotalPayable)

	// Monday 10:00, exactly at window end: no surge
	q, err = e.Quote(context.Background(), QuoteRequest{
		Pickup:         types.Point{Lat: 0.5, Lng: 0.5},
		ZoneType:       zone.TypeNormal,
		VehicleGroupID: "vg1",
		FarePlanID:     "fp1",
		RideTime:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Metrics:        pricing.TripMetrics{DistanceKm: 5},
	})
	require.NoError(t, err)
	require.Zero(t, q.Breakdown.SurgeAmount)
	require.Nil(t, q.Breakdown.AppliedSurgeID)
}

func TestQuoteMissingSchedule(t *testing.T) {
	e := newTestEngine(t, fixtureLoader())

	_, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:         types.Point{Lat: 0.5, Lng: 0.5},
		ZoneType:       zone.TypeNormal,
		VehicleGroupID: "vg_unknown",
		FarePlanID:     "fp1",
		RideTime:       time.Now(),
		Metrics:        pricing.TripMetrics{DistanceKm: 5},
	})
	require.ErrorIs(t, err, fare.ErrMissingFareSchedule)

	var missing *MissingScheduleError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, types.ID("zone_a"), missing.ZoneID, "error must carry the resolved zone")
}

func TestQuoteNoZoneMatch(t *testing.T) {
	e := newTestEngine(t, fixtureLoader())

	_, err := e.Quote(context.Background(), QuoteRequest{
		Pickup:         types.Point{Lat: 50, Lng: 50},
		ZoneType:       zone.TypeNormal,
		VehicleGroupID: "vg1",
		FarePlanID:     "fp1",
		RideTime:       time.Now(),
		Metrics:        pricing.TripMetrics{DistanceKm: 5},
	})
	require.ErrorIs(t, err, zone.ErrNoZoneMatch)
}

func TestRefreshSwapsGenerations(t *testing.T) {
	loader := fixtureLoader()
	e := newTestEngine(t, loader)

	snapBefore, err := e.Snapshot()
	require.NoError(t, err)
	require.Equal(t, uint64(1), snapBefore.Generation)

	// admin deactivates zone_a; next snapshot must not contain it
	loader.mu.Lock()
	loader.zones = loader.zones[1:]
	loader.mu.Unlock()
	require.NoError(t, e.Refresh(context.Background()))

	snapAfter, err := e.Snapshot()
	require.NoError(t, err)
	require.Equal(t, uint64(2), snapAfter.Generation)
	require.Equal(t, 1, snapAfter.Geometry.Len())

	// the superseded snapshot is still a complete, usable projection
	z, err := snapBefore.Resolver.Resolve(types.Point{Lat: 0.5, Lng: 0.5}, zone.TypeNormal)
	require.NoError(t, err)
	require.Equal(t, types.ID("zone_a"), z.ID)
}

func TestRefreshFailureKeepsServing(t *testing.T) {
	loader := fixtureLoader()
	e := newTestEngine(t, loader)

	loader.mu.Lock()
	loader.failZones = true
	loader.mu.Unlock()
	require.Error(t, e.Refresh(context.Background()))

	snap, err := e.Snapshot()
	require.NoError(t, err)
	require.Equal(t, uint64(1), snap.Generation, "failed refresh must not advance the generation")
}

func TestEngineNotReady(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	e := New(fixtureLoader(), "USD", log)

	_, err := e.Quote(context.Background(), QuoteRequest{})
	require.ErrorIs(t, err, ErrNotReady)
}

func TestConcurrentQuotesDuringRefresh(t *testing.T) {
	loader := fixtureLoader()
	e := newTestEngine(t, loader)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q, err := e.Quote(context.Background(), QuoteRequest{
					Pickup:         types.Point{Lat: 0.25, Lng: 0.25},
					ZoneType:       zone.TypeNormal,
					VehicleGroupID: "vg1",
					FarePlanID:     "fp1",
					RideTime:       time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC),
					Metrics:        pricing.TripMetrics{DistanceKm: 5},
				})
				if err != nil {
					t.Errorf("quote: %v", err)
					return
				}
				if q.Breakdown.TotalPayable != 84.0 {
					t.Errorf("TotalPayable = %v, want 84.00", q.Breakdown.TotalPayable)
					return
				}
			}
		}()
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, e.Refresh(context.Background()))
	}
	wg.Wait()
}
