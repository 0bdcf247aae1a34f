package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/overcomingroom/bellbell/internal/handler/prometheus"
	"github.com/overcomingroom/bellbell/internal/middleware"
	"github.com/overcomingroom/bellbell/pkg/response"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Handlers groups the route owners mounted by the router.
type Handlers struct {
	Health            Handler
	Metrics           *prometheus.Handler
	Member            Handler
	UserNotification  Handler
	BasicNotification Handler
	Weather           Handler
}

type RouterConfig struct {
	Mode             string
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	Timeout          time.Duration
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
}

func NewRouter(handlers Handlers, config RouterConfig) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		handlers.Metrics.Middleware(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.CORS(config.CORSConfig),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig()),
	)

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.ErrorEnvelope{
			Status:  http.StatusNotFound,
			Message: "resource not found",
		})
	})

	return &Router{
		engine:   engine,
		handlers: handlers,
	}
}

func (r *Router) Setup() {
	r.handlers.Health.RegisterRoutes(&r.engine.RouterGroup)
	r.engine.GET("/metrics", r.handlers.Metrics.Handler())

	v1 := r.engine.Group("/v1")
	v1.Use(middleware.Authenticate())

	r.handlers.Member.RegisterRoutes(v1)
	r.handlers.UserNotification.RegisterRoutes(v1)
	r.handlers.BasicNotification.RegisterRoutes(v1)
	r.handlers.Weather.RegisterRoutes(v1)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
