package handlers

import (
	"net/http"

	"github.com/SscSPs/wallet_ledger/internal/platform/health"
	"github.com/gin-gonic/gin"
)

// registerOpsRoutes registers liveness, readiness and metrics endpoints.
func registerOpsRoutes(r *gin.Engine, healthManager *health.Manager, metricsHandler http.Handler) {
	r.GET("/healthz", health.LivenessHandler)
	if healthManager != nil {
		r.GET("/readyz", health.ReadinessHandler(healthManager))
	}
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}
}
