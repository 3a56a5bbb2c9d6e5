package handler

import (
	"address-valuation/internal/adapter/http/middleware"
	"address-valuation/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ValuationSvc   ports.ValuationService
	PriceRefresher ports.PriceRefresher
	TokenSvc       ports.TokenService        // nil = admin routes disabled
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	// ValuationRateLimit overrides the "valuations" rule when Limit > 0.
	ValuationRateLimit middleware.RateLimitRule
	HealthCheckers     []ports.HealthChecker
	TrackedAssets      []string
	MaxBatchSize       int
	// Mode is the gin mode (debug, release, test); empty means release.
	Mode   string
	Logger zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: verifies the Redis mirror)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	if deps.ValuationRateLimit.Limit > 0 {
		rules["valuations"] = deps.ValuationRateLimit
	}

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	valuationHandler := NewValuationHandler(deps.ValuationSvc, deps.MaxBatchSize)
	valuations := v1.Group("/valuations")
	{
		valuations.POST("/batch", rl("batch"), valuationHandler.BatchValuation)
		valuations.GET("/:chain/:address", rl("valuations"), valuationHandler.GetValuation)
	}

	priceHandler := NewPriceHandler(deps.ValuationSvc, deps.PriceRefresher, deps.TrackedAssets, deps.Logger)
	v1.GET("/prices", rl("prices"), priceHandler.GetPrices)

	// --- JWT-authenticated operator routes ---
	if deps.TokenSvc != nil && deps.PriceRefresher != nil {
		jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
		admin := v1.Group("/admin", jwtAuth)
		{
			admin.POST("/prices/refresh", rl("admin"), priceHandler.RefreshPrices)
		}
	}

	return r
}
