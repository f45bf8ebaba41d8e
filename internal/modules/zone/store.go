// README: Zone store backed by PostgreSQL; polygons are stored as JSONB rings.
package zone

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"zonefare/internal/geo"
	"zonefare/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListActive returns every active zone, oldest first. The polygon column is a
// JSONB array of [lat, lng] pairs as written by the administrative console.
func (s *Store) ListActive(ctx context.Context) ([]Zone, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, zone_type, polygon, priority, status, created_at
        FROM zones
        WHERE status = 'active'
        ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var zones []Zone
	for rows.Next() {
		var z Zone
		var raw []byte
		if err := rows.Scan(&z.ID, &z.Name, &z.Type, &raw, &z.Priority, &z.Status, &z.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		poly, err := decodePolygon(raw)
		if err != nil {
			return nil, fmt.Errorf("zone %s: %w", z.ID, err)
		}
		z.Polygon = poly
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

func decodePolygon(raw []byte) (geo.Polygon, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("decode polygon: %w", err)
	}
	poly := make(geo.Polygon, len(pairs))
	for i, p := range pairs {
		poly[i] = types.Point{Lat: p[0], Lng: p[1]}
	}
	return poly, nil
}
