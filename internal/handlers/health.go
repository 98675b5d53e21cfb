package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

// Health checks each named dependency and reports 503 if any fails.
func Health(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{}
		healthy := true
		for name, ping := range checks {
			if err := ping(c.Request.Context()); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		if !healthy {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Envelope{
				StatusCode: http.StatusServiceUnavailable,
				Status:     response.StatusFail,
				Message:    "unhealthy",
				Data:       status,
				Error:      &response.ErrorBody{Code: "unhealthy", Path: c.Request.URL.Path},
			})
			return
		}
		response.Success(c, http.StatusOK, "ok", status)
	}
}
