// README: Tax store backed by PostgreSQL.
package tax

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ListActive(ctx context.Context) ([]Tax, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, percent, status, created_at
        FROM taxes
        WHERE status = 'active'
        ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	defer rows.Close()

	var taxes []Tax
	for rows.Next() {
		var t Tax
		if err := rows.Scan(&t.ID, &t.Name, &t.Percent, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		taxes = append(taxes, t)
	}
	return taxes, rows.Err()
}
