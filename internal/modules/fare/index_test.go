package fare

import (
	"errors"
	"testing"
	"time"

	"zonefare/internal/types"
)

func testSchedule(id string, zoneID, vgID, fpID string, createdAt time.Time) Schedule {
	return Schedule{
		ID: types.ID(id),
		Key: ScheduleKey{
			ZoneID:         types.ID(zoneID),
			VehicleGroupID: types.ID(vgID),
			FarePlanID:     types.ID(fpID),
		},
		BaseFareCharge: 50,
		Status:         types.StatusActive,
		CreatedAt:      createdAt,
	}
}

func TestIndexExactMatchOnly(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	idx := NewIndex([]Schedule{
		testSchedule("s1", "zone_a", "vg1", "fp1", base),
		testSchedule("s2", "zone_a", "vg2", "fp1", base),
	})

	got, err := idx.Lookup("zone_a", "vg1", "fp1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != "s1" {
		t.Errorf("Lookup() = %s, want s1", got.ID)
	}

	// no fallback across vehicle groups or fare plans
	for _, tc := range []struct{ zone, vg, fp string }{
		{"zone_a", "vg3", "fp1"},
		{"zone_a", "vg1", "fp2"},
		{"zone_b", "vg1", "fp1"},
	} {
		_, err := idx.Lookup(types.ID(tc.zone), types.ID(tc.vg), types.ID(tc.fp))
		if !errors.Is(err, ErrMissingFareSchedule) {
			t.Errorf("Lookup(%s,%s,%s) err = %v, want ErrMissingFareSchedule", tc.zone, tc.vg, tc.fp, err)
		}
	}
}

func TestIndexSkipsInactive(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	off := testSchedule("s1", "zone_a", "vg1", "fp1", base)
	off.Status = types.StatusInactive

	idx := NewIndex([]Schedule{off})
	if _, err := idx.Lookup("zone_a", "vg1", "fp1"); !errors.Is(err, ErrMissingFareSchedule) {
		t.Fatalf("Lookup() err = %v, want ErrMissingFareSchedule", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestIndexDuplicateKeyKeepsNewest(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	older := testSchedule("s_old", "zone_a", "vg1", "fp1", base)
	newer := testSchedule("s_new", "zone_a", "vg1", "fp1", base.Add(time.Hour))

	for _, schedules := range [][]Schedule{{older, newer}, {newer, older}} {
		idx := NewIndex(schedules)
		got, err := idx.Lookup("zone_a", "vg1", "fp1")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if got.ID != "s_new" {
			t.Errorf("Lookup() = %s, want s_new", got.ID)
		}
	}
}

func TestPreferenceRateFailsClosed(t *testing.T) {
	s := Schedule{
		AllowPreference: true,
		Preferences: []Preference{
			{Name: "pet_friendly", Rate: 3.5},
			{Name: "child_seat", Rate: 2},
		},
	}

	if rate, ok := s.PreferenceRate("pet_friendly"); !ok || rate != 3.5 {
		t.Errorf("PreferenceRate(pet_friendly) = %v, %v", rate, ok)
	}
	if _, ok := s.PreferenceRate("jacuzzi"); ok {
		t.Error("PreferenceRate(jacuzzi) = ok, want fail closed")
	}

	s.AllowPreference = false
	if _, ok := s.PreferenceRate("pet_friendly"); ok {
		t.Error("PreferenceRate with AllowPreference=false = ok, want fail closed")
	}
}
