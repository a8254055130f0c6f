package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/middleware"
	"github.com/SscSPs/wallet_ledger/internal/platform/config"
	"github.com/SscSPs/wallet_ledger/internal/platform/health"
	"github.com/gin-gonic/gin"
)

// RouteDeps carries the optional edge components wired by main.
type RouteDeps struct {
	Health         *health.Manager
	MetricsHandler http.Handler
	AuthLimit      gin.HandlerFunc
	APILimit       gin.HandlerFunc
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	registerOpsRoutes(r, deps.Health, deps.MetricsHandler)

	api := r.Group("/api/v1")

	// Public authentication routes
	registerAuthRoutes(api, services.Auth, cfg.JWTSecret, deps.AuthLimit)

	setupAPIV1Routes(api, cfg, services, deps.APILimit)
}

// setupAPIV1Routes configures the authenticated part of /api/v1
func setupAPIV1Routes(
	api *gin.RouterGroup,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	limit gin.HandlerFunc,
) {
	v1 := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	if limit != nil {
		v1.Use(limit)
	}

	registerAccountRoutes(v1, service.Account)
	registerTransactionRoutes(v1, service.Transaction, service.TransactionQuery)
	registerExchangeRateRoutes(v1, service.ExchangeRate)
}
