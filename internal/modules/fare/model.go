// README: Fare schedule aggregate (a.k.a. city fare) and related admin entities.
package fare

import (
	"time"

	"zonefare/internal/types"
)

type CommissionType string

const (
	CommissionFixed      CommissionType = "fixed"
	CommissionPercentage CommissionType = "percentage"
)

type CommissionTarget string

const (
	TargetAdmin   CommissionTarget = "admin"
	TargetDriver  CommissionTarget = "driver"
	TargetCompany CommissionTarget = "company"
)

// Preference is a named ride add-on with a flat surcharge. The set of valid
// names is owned by each schedule; there is no global enum.
type Preference struct {
	Name string
	Rate float64
}

// ScheduleKey uniquely identifies a schedule. At most one active schedule
// exists per key; the admin layer enforces this, the index re-asserts it.
type ScheduleKey struct {
	ZoneID         types.ID
	VehicleGroupID types.ID
	FarePlanID     types.ID
}

type Schedule struct {
	ID  types.ID
	Key ScheduleKey

	BaseFareCharge    float64
	BaseDistanceKm    float64
	PerDistanceCharge float64
	PerMinuteCharge   float64

	WaitingCharge             float64
	FreeWaitTimeMin           float64
	FreeWaitTimeAfterStartMin float64

	RiderCancellationCharge  float64
	DriverCancellationCharge float64

	CommissionType CommissionType
	CommissionRate float64
	ChargeGoesTo   CommissionTarget

	AllowTax bool
	TaxID    types.ID

	AllowAirportCharge bool
	AirportRate        float64

	AllowPreference bool
	Preferences     []Preference

	Status    types.Status
	CreatedAt time.Time
}

func (s *Schedule) Active() bool {
	return s.Status == types.StatusActive
}

// PreferenceRate looks up a preference by name on this schedule.
// Unknown names fail closed: no charge, no error.
func (s *Schedule) PreferenceRate(name string) (float64, bool) {
	if !s.AllowPreference {
		return 0, false
	}
	for _, p := range s.Preferences {
		if p.Name == name {
			return p.Rate, true
		}
	}
	return 0, false
}

// VehicleGroup is part of the admin data contract. DownGradeID points at a
// fallback group for dispatch; fare lookup never falls back across groups.
type VehicleGroup struct {
	ID          types.ID
	Name        string
	DownGradeID *types.ID
	Status      types.Status
}

type FarePlan struct {
	ID                types.ID
	ServiceCategoryID types.ID
	Name              string
	Priority          int
	Status            types.Status
}
