// README: HTTP helper utilities for JSON and error mapping.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zonefare/internal/engine"
	"zonefare/internal/modules/pricing"
	"zonefare/internal/modules/zone"
)

type errorResponse struct {
	Error  string         `json:"error"`
	Detail map[string]any `json:"detail,omitempty"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writeEngineError maps engine sentinel errors onto HTTP statuses. All of
// them are terminal for the request; no fallback fare is ever synthesized.
func writeEngineError(c *gin.Context, err error) {
	var missing *engine.MissingScheduleError
	switch {
	case errors.Is(err, zone.ErrNoZoneMatch):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &missing):
		c.JSON(http.StatusNotFound, errorResponse{
			Error: err.Error(),
			Detail: map[string]any{
				"zone_id":          missing.ZoneID,
				"vehicle_group_id": missing.VehicleGroupID,
				"fare_plan_id":     missing.FarePlanID,
			},
		})
	case errors.Is(err, pricing.ErrInvalidMetrics):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrNotReady):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
