// README: Trip metrics input and the itemized fare breakdown output.
package pricing

import (
	"zonefare/internal/modules/fare"
	"zonefare/internal/types"
)

// TripMetrics is the measured (or estimated) shape of the trip being priced.
type TripMetrics struct {
	DistanceKm  float64
	DurationMin float64
	WaitingMin  float64
	Preferences []string
	AirportTrip bool
}

type PreferenceCharge struct {
	Name string
	Rate float64
}

// FareBreakdown itemizes one priced trip. Line items carry full float64
// precision; only TotalPayable is rounded (half-up, two decimals).
// CommissionAmount is informational for settlement and is not subtracted
// from TotalPayable.
type FareBreakdown struct {
	ZoneID types.ID

	BaseFareCharge float64
	DistanceCharge float64
	TimeCharge     float64
	WaitCharge     float64
	Subtotal       float64

	SurgePercent   float64
	SurgeAmount    float64
	AppliedSurgeID *types.ID

	PreferenceCharges []PreferenceCharge
	AirportCharge     float64

	TaxPercent float64
	TaxAmount  float64

	TotalPayable float64

	CommissionAmount float64
	CommissionTarget fare.CommissionTarget

	Currency string
}
