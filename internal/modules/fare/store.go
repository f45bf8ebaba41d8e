// README: Fare schedule store backed by PostgreSQL.
package fare

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListActiveSchedules returns every active schedule. Preferences are a JSONB
// array of {name, rate} objects as written by the administrative console.
func (s *Store) ListActiveSchedules(ctx context.Context) ([]Schedule, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, zone_id, vehicle_group_id, fare_plan_id,
               base_fare_charge, base_distance_km, per_distance_charge, per_minute_charge,
               waiting_charge, free_wait_time_min, free_wait_time_after_start_min,
               rider_cancellation_charge, driver_cancellation_charge,
               commission_type, commission_rate, charge_goes_to,
               allow_tax, COALESCE(tax_id, ''),
               allow_airport_charge, airport_rate,
               allow_preference, COALESCE(preferences, '[]'),
               status, created_at
        FROM fare_schedules
        WHERE status = 'active'
        ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list fare schedules: %w", err)
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		var sc Schedule
		var prefs []byte
		err := rows.Scan(
			&sc.ID, &sc.Key.ZoneID, &sc.Key.VehicleGroupID, &sc.Key.FarePlanID,
			&sc.BaseFareCharge, &sc.BaseDistanceKm, &sc.PerDistanceCharge, &sc.PerMinuteCharge,
			&sc.WaitingCharge, &sc.FreeWaitTimeMin, &sc.FreeWaitTimeAfterStartMin,
			&sc.RiderCancellationCharge, &sc.DriverCancellationCharge,
			&sc.CommissionType, &sc.CommissionRate, &sc.ChargeGoesTo,
			&sc.AllowTax, &sc.TaxID,
			&sc.AllowAirportCharge, &sc.AirportRate,
			&sc.AllowPreference, &prefs,
			&sc.Status, &sc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan fare schedule: %w", err)
		}
		if err := json.Unmarshal(prefs, &sc.Preferences); err != nil {
			return nil, fmt.Errorf("schedule %s: decode preferences: %w", sc.ID, err)
		}
		schedules = append(schedules, sc)
	}
	return schedules, rows.Err()
}

func (s *Store) ListActiveVehicleGroups(ctx context.Context) ([]VehicleGroup, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, down_grade_id, status
        FROM vehicle_groups
        WHERE status = 'active'
        ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vehicle groups: %w", err)
	}
	defer rows.Close()

	var groups []VehicleGroup
	for rows.Next() {
		var g VehicleGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.DownGradeID, &g.Status); err != nil {
			return nil, fmt.Errorf("scan vehicle group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *Store) ListActiveFarePlans(ctx context.Context) ([]FarePlan, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, service_category_id, name, priority, status
        FROM fare_plans
        WHERE status = 'active'
        ORDER BY priority, id`)
	if err != nil {
		return nil, fmt.Errorf("list fare plans: %w", err)
	}
	defer rows.Close()

	var plans []FarePlan
	for rows.Next() {
		var p FarePlan
		if err := rows.Scan(&p.ID, &p.ServiceCategoryID, &p.Name, &p.Priority, &p.Status); err != nil {
			return nil, fmt.Errorf("scan fare plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
