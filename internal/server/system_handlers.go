package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gymgate/internal/api"
	"gymgate/internal/occupancy"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Reconcile a gym's occupancy counter
// @Description  Admin-only: recomputes the live counter from open attendance records immediately instead of waiting for the periodic sweep
// @Tags         admin,system
// @Produce      json
// @Security     BearerAuth
// @Param        gymID path int true "Gym ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/gyms/{gymID}/reconcile [post]
func ReconcileGym(reconciler *occupancy.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		gymID, err := strconv.Atoi(c.Param("gymID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
			return
		}

		if err := reconciler.ReconcileGym(c.Request.Context(), gymID); err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Reconciliation failed"})
			return
		}

		c.JSON(http.StatusOK, api.MessageResponse{Message: "Occupancy reconciled"})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
