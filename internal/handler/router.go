package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azniosman/Project-Fortress/internal/config"
	"github.com/azniosman/Project-Fortress/internal/gateway"
	"github.com/azniosman/Project-Fortress/internal/metrics"
	"github.com/azniosman/Project-Fortress/internal/middleware"
	"github.com/azniosman/Project-Fortress/internal/ratelimit"
)

// RouterDeps carries everything the router composes. All of it is constructed
// in main and injected; nothing here is process-global.
type RouterDeps struct {
	Config         *config.Config
	Logger         *zap.Logger
	Gateway        gateway.Gateway
	Metrics        *metrics.Metrics
	GeneralLimiter *ratelimit.Limiter
	FailedLimiter  *ratelimit.Limiter
	MetricsHandler http.Handler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(deps.Metrics.Middleware())
	router.Use(cors.New(corsConfig(deps.Config)))

	health := NewHealthHandler(deps.Config.Env)
	router.GET("/health", health.Check)
	router.GET("/metrics", gin.WrapH(deps.MetricsHandler))

	paymentHandler := NewPaymentHandler(deps.Gateway, deps.Metrics, deps.Logger)

	v1 := router.Group("/api/v1")
	payments := v1.Group("/payments")
	payments.Use(middleware.RateLimit(deps.GeneralLimiter, deps.Metrics, deps.Logger))
	payments.Use(middleware.ErrorHandler(deps.Logger, deps.Config.Env))
	{
		payments.POST("",
			middleware.FailedAttemptGuard(deps.FailedLimiter, deps.Metrics, deps.Logger),
			middleware.ValidatePayment(deps.Logger),
			paymentHandler.CreatePayment,
		)
		payments.GET("/:paymentIntentId", paymentHandler.GetPayment)
	}

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}

	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	return corsCfg
}
