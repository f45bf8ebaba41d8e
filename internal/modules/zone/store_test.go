package zone

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestStoreListActive(t *testing.T) {
	dsn := os.Getenv("ZONEFARE_DB_DSN")
	if dsn == "" {
		t.Skip("ZONEFARE_DB_DSN not set; skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	store := NewStore(pool)
	zones, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}

	for _, z := range zones {
		if !z.Active() {
			t.Errorf("zone %s: ListActive returned inactive zone", z.ID)
		}
		if err := z.Polygon.Validate(); err != nil {
			t.Errorf("zone %s: stored polygon invalid: %v", z.ID, err)
		}
	}
}

func TestDecodePolygon(t *testing.T) {
	poly, err := decodePolygon([]byte(`[[0,0],[0,1],[1,1],[1,0]]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(poly) != 4 {
		t.Fatalf("len = %d, want 4", len(poly))
	}
	if poly[1].Lat != 0 || poly[1].Lng != 1 {
		t.Errorf("poly[1] = %+v, want lat 0 lng 1", poly[1])
	}

	if _, err := decodePolygon([]byte(`{"not":"a ring"}`)); err == nil {
		t.Error("decode of non-array input succeeded, want error")
	}
}
