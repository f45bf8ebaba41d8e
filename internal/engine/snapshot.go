// README: Immutable, generation-counted snapshot of the derived indices.
package engine

import (
	"time"

	"zonefare/internal/modules/fare"
	"zonefare/internal/modules/surge"
	"zonefare/internal/modules/tax"
	"zonefare/internal/modules/zone"
	"zonefare/internal/types"
)

// Snapshot is a complete, read-only projection of the administrative data.
// Readers always see one whole snapshot; the only write path is the atomic
// pointer swap in Engine.Refresh.
type Snapshot struct {
	Generation uint64
	BuiltAt    time.Time

	Geometry  *zone.GeometryStore
	Resolver  *zone.Resolver
	Schedules *fare.Index
	Surges    *surge.Index

	Taxes         map[types.ID]tax.Tax
	VehicleGroups map[types.ID]fare.VehicleGroup
	FarePlans     map[types.ID]fare.FarePlan
}

// Stats summarizes a snapshot for operability endpoints.
type Stats struct {
	Generation    uint64    `json:"generation"`
	BuiltAt       time.Time `json:"built_at"`
	Zones         int       `json:"zones"`
	FareSchedules int       `json:"fare_schedules"`
	SurgeRules    int       `json:"surge_rules"`
	Taxes         int       `json:"taxes"`
	VehicleGroups int       `json:"vehicle_groups"`
	FarePlans     int       `json:"fare_plans"`
}

func (s *Snapshot) Stats() Stats {
	return Stats{
		Generation:    s.Generation,
		BuiltAt:       s.BuiltAt,
		Zones:         s.Geometry.Len(),
		FareSchedules: s.Schedules.Len(),
		SurgeRules:    s.Surges.Len(),
		Taxes:         len(s.Taxes),
		VehicleGroups: len(s.VehicleGroups),
		FarePlans:     len(s.FarePlans),
	}
}
