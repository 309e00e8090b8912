package router

import (
	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are everything the API engine is built from
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Tokens    middleware.TokenValidator
	Refunds   handler.RefundService
	Policies  handler.PolicyService
	Batches   handler.BatchService
	DB        handler.Pinger
	Version   string
	Limiter   *middleware.RateLimiter
	Profiling bool
}

// New builds the gin engine with the middleware stack and every refund route.
// The caller owns deps.Limiter and closes it on shutdown.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	}
	engine.Use(
		middleware.Secure(),
		middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	health := handler.NewHealthHandler(deps.DB, deps.Version)
	engine.GET("/health", health.Health)

	auth := middleware.JWTAuth(deps.Tokens, log)
	engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger, auth), ginSwagger.WrapHandler(swaggerFiles.Handler))

	groupMW := []gin.HandlerFunc{auth, middleware.SpanEnricher()}
	if deps.Limiter != nil {
		groupMW = append(groupMW, middleware.RateLimit(deps.Limiter))
	}
	if deps.Profiling {
		groupMW = append(groupMW, middleware.Profiling())
	}

	routes := Mount(engine, "v1", groupMW, refundRoutes(deps, cfg.Refund.MaxBatchSize), policyRoutes(deps))
	log.Debug("API routes mounted", zap.Strings("routes", routes))
	return engine
}

func refundRoutes(deps Dependencies, maxBatch int) *Group {
	refunds := handler.NewRefundHandler(deps.Refunds)
	batches := handler.NewBatchHandler(deps.Batches, maxBatch)
	approve := middleware.RequirePermission(middleware.PermRefundApprove)

	return NewGroup("/refunds").
		POST("", refunds.Create).
		GET("", refunds.List).
		GET("/pending-approval", refunds.PendingApproval).
		GET("/statistics", refunds.Statistics).
		GET("/by-sale/:sale_id", refunds.BySale).
		GET("/by-customer/:customer_id", refunds.ByCustomer).
		POST("/bulk/create-approve", approve, batches.CreateAndApprove).
		POST("/bulk/process", batches.Process).
		POST("/bulk/complete", batches.Complete).
		GET("/:id", refunds.Get).
		GET("/:id/audit-trail", refunds.AuditTrail).
		POST("/:id/approve", approve, refunds.Approve).
		POST("/:id/reject", approve, refunds.Reject).
		POST("/:id/process", refunds.Process).
		POST("/:id/complete", refunds.Complete)
}

func policyRoutes(deps Dependencies) *Group {
	policies := handler.NewPolicyHandler(deps.Policies)
	return NewGroup("/refund-policies").
		GET("/:location_id", policies.Get).
		PUT("/:location_id", middleware.RequirePermission(middleware.PermPolicyWrite), policies.Update)
}
