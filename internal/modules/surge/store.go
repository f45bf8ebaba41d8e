// README: Surge price store backed by PostgreSQL.
package surge

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListActive returns every active surge rule. Windows are stored as minutes
// from midnight; weekday follows time.Weekday numbering (Sunday = 0).
func (s *Store) ListActive(ctx context.Context) ([]Price, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, zone_id, vehicle_group_id, fare_plan_id,
               percent, weekday, start_minute, end_minute, status, created_at
        FROM surge_prices
        WHERE status = 'active'
        ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list surge prices: %w", err)
	}
	defer rows.Close()

	var prices []Price
	for rows.Next() {
		var p Price
		var weekday int
		err := rows.Scan(
			&p.ID, &p.ZoneID, &p.VehicleGroupID, &p.FarePlanID,
			&p.Percent, &weekday, &p.StartMinute, &p.EndMinute, &p.Status, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan surge price: %w", err)
		}
		p.Weekday = time.Weekday(weekday)
		prices = append(prices, p)
	}
	return prices, rows.Err()
}
