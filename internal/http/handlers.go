// README: Handlers for quotes, zone resolution, and snapshot operations.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zonefare/internal/engine"
	"zonefare/internal/modules/pricing"
	"zonefare/internal/modules/zone"
	"zonefare/internal/types"
)

type quoteRequest struct {
	PickupLat      float64 `json:"pickup_lat"`
	PickupLng      float64 `json:"pickup_lng"`
	DropoffLat     *float64 `json:"dropoff_lat"`
	DropoffLng     *float64 `json:"dropoff_lng"`
	VehicleGroupID string  `json:"vehicle_group_id"`
	FarePlanID     string  `json:"fare_plan_id"`
	ZoneType       string  `json:"zone_type"`
	RideTime       *time.Time `json:"ride_time"`
	DistanceKm     *float64 `json:"distance_km"`
	DurationMin    *float64 `json:"duration_min"`
	WaitingMin     float64  `json:"waiting_min"`
	Preferences    []string `json:"preferences"`
	IsAirportTrip  bool     `json:"is_airport_trip"`
}

type preferenceChargeOut struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

type breakdownResponse struct {
	QuoteID    string `json:"quote_id"`
	Generation uint64 `json:"generation"`

	ZoneID types.ID `json:"zone_id"`

	BaseFareCharge float64 `json:"base_fare_charge"`
	DistanceCharge float64 `json:"distance_charge"`
	TimeCharge     float64 `json:"time_charge"`
	WaitCharge     float64 `json:"wait_charge"`
	Subtotal       float64 `json:"subtotal"`

	SurgePercent   float64   `json:"surge_percent"`
	SurgeAmount    float64   `json:"surge_amount"`
	AppliedSurgeID *types.ID `json:"applied_surge_id"`

	PreferenceCharges []preferenceChargeOut `json:"preference_charges"`
	AirportCharge     float64               `json:"airport_charge"`

	TaxPercent float64 `json:"tax_percent"`
	TaxAmount  float64 `json:"tax_amount"`

	TotalPayable float64 `json:"total_payable"`

	CommissionAmount float64 `json:"commission_amount"`
	CommissionTarget string  `json:"commission_target"`

	Currency string `json:"currency"`
}

func (s *Server) handleQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.VehicleGroupID == "" || req.FarePlanID == "" {
		writeError(c, http.StatusBadRequest, "missing vehicle_group_id or fare_plan_id")
		return
	}
	zt := zone.Type(req.ZoneType)
	if req.ZoneType == "" {
		zt = zone.TypeNormal
	}
	if !zone.ValidType(zt) {
		writeError(c, http.StatusBadRequest, "unknown zone_type")
		return
	}

	rideTime := time.Now()
	if req.RideTime != nil {
		rideTime = *req.RideTime
	}

	metrics, ok := s.tripMetrics(c, &req)
	if !ok {
		return
	}

	q, err := s.engine.Quote(c.Request.Context(), engine.QuoteRequest{
		Pickup:         types.Point{Lat: req.PickupLat, Lng: req.PickupLng},
		ZoneType:       zt,
		VehicleGroupID: types.ID(req.VehicleGroupID),
		FarePlanID:     types.ID(req.FarePlanID),
		RideTime:       rideTime,
		Metrics:        metrics,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBreakdownResponse(q))
}

// tripMetrics assembles TripMetrics from the request, estimating distance and
// duration via Google Directions when both are omitted and a dropoff is
// given. Writes the error response itself on failure.
func (s *Server) tripMetrics(c *gin.Context, req *quoteRequest) (pricing.TripMetrics, bool) {
	m := pricing.TripMetrics{
		WaitingMin:  req.WaitingMin,
		Preferences: req.Preferences,
		AirportTrip: req.IsAirportTrip,
	}
	switch {
	case req.DistanceKm != nil && req.DurationMin != nil:
		m.DistanceKm = *req.DistanceKm
		m.DurationMin = *req.DurationMin
	case s.routes != nil && req.DropoffLat != nil && req.DropoffLng != nil:
		est, err := s.routes.EstimateTrip(c.Request.Context(),
			types.Point{Lat: req.PickupLat, Lng: req.PickupLng},
			types.Point{Lat: *req.DropoffLat, Lng: *req.DropoffLng})
		if err != nil {
			s.log.WithError(err).Warn("travel estimate failed")
			writeError(c, http.StatusBadGateway, "could not estimate trip metrics")
			return m, false
		}
		m.DistanceKm = est.DistanceKm
		m.DurationMin = est.DurationMin
	default:
		writeError(c, http.StatusBadRequest, "distance_km and duration_min are required (or a dropoff for estimation)")
		return m, false
	}
	return m, true
}

func toBreakdownResponse(q *engine.Quote) breakdownResponse {
	b := q.Breakdown
	prefs := make([]preferenceChargeOut, 0, len(b.PreferenceCharges))
	for _, p := range b.PreferenceCharges {
		prefs = append(prefs, preferenceChargeOut{Name: p.Name, Rate: pricing.Round2(p.Rate)})
	}
	return breakdownResponse{
		QuoteID:           q.QuoteID,
		Generation:        q.Generation,
		ZoneID:            b.ZoneID,
		BaseFareCharge:    pricing.Round2(b.BaseFareCharge),
		DistanceCharge:    pricing.Round2(b.DistanceCharge),
		TimeCharge:        pricing.Round2(b.TimeCharge),
		WaitCharge:        pricing.Round2(b.WaitCharge),
		Subtotal:          pricing.Round2(b.Subtotal),
		SurgePercent:      b.SurgePercent,
		SurgeAmount:       pricing.Round2(b.SurgeAmount),
		AppliedSurgeID:    b.AppliedSurgeID,
		PreferenceCharges: prefs,
		AirportCharge:     pricing.Round2(b.AirportCharge),
		TaxPercent:        b.TaxPercent,
		TaxAmount:         pricing.Round2(b.TaxAmount),
		TotalPayable:      b.TotalPayable,
		CommissionAmount:  pricing.Round2(b.CommissionAmount),
		CommissionTarget:  string(b.CommissionTarget),
		Currency:          b.Currency,
	}
}

type resolveRequest struct {
	PickupLat float64 `json:"pickup_lat"`
	PickupLng float64 `json:"pickup_lng"`
	ZoneType  string  `json:"zone_type"`
}

func (s *Server) handleResolveZone(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	zt := zone.Type(req.ZoneType)
	if req.ZoneType == "" {
		zt = zone.TypeNormal
	}
	if !zone.ValidType(zt) {
		writeError(c, http.StatusBadRequest, "unknown zone_type")
		return
	}

	z, gen, err := s.engine.ResolveZone(types.Point{Lat: req.PickupLat, Lng: req.PickupLng}, zt)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"zone_id":    z.ID,
		"name":       z.Name,
		"zone_type":  z.Type,
		"priority":   z.Priority,
		"generation": gen,
	})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	snap, err := s.engine.Snapshot()
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.Stats())
}

func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.engine.Refresh(c.Request.Context()); err != nil {
		s.log.WithError(err).Error("manual refresh failed")
		writeError(c, http.StatusInternalServerError, "refresh failed")
		return
	}
	snap, err := s.engine.Snapshot()
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.Stats())
}
