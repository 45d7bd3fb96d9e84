package handlers

import (
	"github.com/SscSPs/bank_ledger_app/cmd/docs"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Limiters are the per-IP rate limiters of the API. A nil limiter disables that limit.
type Limiters struct {
	API  *limiter.Limiter
	Auth *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiters Limiters,
	auditWriter *middleware.AuditWriter,
	posthogClient *utils.PosthogClientWrapper,
) {
	registerValidators()

	r.GET("/", getHome(cfg))
	r.GET("/health", getHealth)

	// Register public authentication routes
	registerAuthRoutes(r, services.Account, auditWriter, limiters.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, limiters.API, auditWriter, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiLimiter *limiter.Limiter,
	auditWriter *middleware.AuditWriter,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1")
	if apiLimiter != nil {
		v1.Use(middleware.RateLimit(apiLimiter, "api"))
	}
	// Audit runs outside auth so rejected calls are recorded too.
	v1.Use(middleware.AuditMiddleware(auditWriter), middleware.AuthMiddleware(cfg.JWTSecret))

	registerLogRoutes(v1, services.Audit)
	registerAccountRoutes(v1, services.Account, services.User)
	registerUserRoutes(v1, services.User, services.Account)
	registerLedgerRoutes(v1, services.Ledger, posthogClient)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
