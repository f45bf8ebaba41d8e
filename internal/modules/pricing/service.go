// README: Pricing pipeline; fixed order of operations, single terminal rounding.
package pricing

import (
	"errors"
	"math"

	"zonefare/internal/modules/fare"
	"zonefare/internal/modules/zone"
	"zonefare/internal/types"
)

var ErrInvalidMetrics = errors.New("trip metrics must not be negative")

// ComputeInput carries everything the pipeline needs. The caller (the engine)
// resolves the zone, schedule, surge and tax before invoking Compute; the
// pipeline itself is a pure single-pass computation.
type ComputeInput struct {
	Zone         *zone.Zone
	Schedule     *fare.Schedule
	SurgePercent float64
	SurgeID      types.ID
	TaxPercent   float64
	Metrics      TripMetrics
	Currency     string
}

// Compute prices one trip. The order of operations is fixed:
// metered subtotal, surge on the subtotal only, preference add-ons, airport
// charge, tax on the pre-tax total, then round-half-up to two decimals.
func Compute(in ComputeInput) (*FareBreakdown, error) {
	m := in.Metrics
	if m.DistanceKm < 0 || m.DurationMin < 0 || m.WaitingMin < 0 {
		return nil, ErrInvalidMetrics
	}
	s := in.Schedule

	distanceCharge := math.Max(0, m.DistanceKm-s.BaseDistanceKm) * s.PerDistanceCharge
	timeCharge := m.DurationMin * s.PerMinuteCharge
	waitCharge := math.Max(0, m.WaitingMin-s.FreeWaitTimeMin) * s.WaitingCharge
	subtotal := s.BaseFareCharge + distanceCharge + timeCharge + waitCharge

	// surge applies to the metered subtotal only, never to add-ons
	surgeAmount := subtotal * in.SurgePercent / 100

	var prefCharges []PreferenceCharge
	var prefTotal float64
	seen := make(map[string]bool)
	for _, name := range m.Preferences {
		if seen[name] {
			continue
		}
		seen[name] = true
		rate, ok := s.PreferenceRate(name)
		if !ok {
			// fail closed: unknown names charge nothing
			continue
		}
		prefCharges = append(prefCharges, PreferenceCharge{Name: name, Rate: rate})
		prefTotal += rate
	}

	var airportCharge float64
	if s.AllowAirportCharge && m.AirportTrip {
		airportCharge = s.AirportRate
	}

	preTax := subtotal + surgeAmount + prefTotal + airportCharge

	var taxAmount float64
	if s.AllowTax {
		taxAmount = preTax * in.TaxPercent / 100
	}

	total := Round2(preTax + taxAmount)

	commission := s.CommissionRate
	if s.CommissionType == fare.CommissionPercentage {
		commission = subtotal * s.CommissionRate / 100
	}

	b := &FareBreakdown{
		ZoneID:            in.Zone.ID,
		BaseFareCharge:    s.BaseFareCharge,
		DistanceCharge:    distanceCharge,
		TimeCharge:        timeCharge,
		WaitCharge:        waitCharge,
		Subtotal:          subtotal,
		SurgePercent:      in.SurgePercent,
		SurgeAmount:       surgeAmount,
		PreferenceCharges: prefCharges,
		AirportCharge:     airportCharge,
		TaxPercent:        taxPercentApplied(s, in.TaxPercent),
		TaxAmount:         taxAmount,
		TotalPayable:      total,
		CommissionAmount:  commission,
		CommissionTarget:  s.ChargeGoesTo,
		Currency:          in.Currency,
	}
	if in.SurgeID != "" {
		id := in.SurgeID
		b.AppliedSurgeID = &id
	}
	return b, nil
}

func taxPercentApplied(s *fare.Schedule, percent float64) float64 {
	if !s.AllowTax {
		return 0
	}
	return percent
}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
