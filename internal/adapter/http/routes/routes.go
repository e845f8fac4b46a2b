package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/core/port"
	"taskapp/pkg/config"
	"taskapp/pkg/metrics"
)

type HandlersConfig struct {
	SessionHandler *handler.SessionHandler
	UserHandler    *handler.UserHandler
	TaskHandler    *handler.TaskHandler
	HealthHandler  *handler.HealthHandler
}

// GateConfig holds the collaborators the access gate needs. Only the two
// mutating session-bound routes are placed behind it.
type GateConfig struct {
	Users port.UserRepository
	Token port.TokenService
}

func SetupRouter(handlers HandlersConfig, gate GateConfig, appMetrics *metrics.AppMetrics, logger zerolog.Logger, zapLogger *zap.Logger, cache port.CacheRepository, cfg *config.Config) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(corsMiddleware())

	if cfg != nil && cfg.OTLPEndpoint != "" {
		router.Use(otelgin.Middleware("taskapp"))
	}

	if appMetrics != nil {
		router.Use(appMetrics.Middleware())
		router.GET("/metrics", appMetrics.Handler())
	}

	if cfg != nil && cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(zapLogger, appMetrics)
		router.Use(limiter.Middleware())
	}

	if cfg != nil && cfg.CacheEnabled && cache != nil {
		responseCache := middleware.NewResponseCache(cache, appMetrics)
		router.Use(responseCache.Middleware())
	}

	registerRoutes(router, handlers, gate)

	return router
}

// SetupRouterForTests wires the same route table without the operational
// middleware stack.
func SetupRouterForTests(handlers HandlersConfig, gate GateConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())

	registerRoutes(router, handlers, gate)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig, gate GateConfig) {
	accessGate := middleware.AccessGate(gate.Users, gate.Token)

	if handlers.HealthHandler != nil {
		router.GET("/health", handlers.HealthHandler.Check)
	}

	if handlers.SessionHandler != nil {
		router.POST("/users", handlers.SessionHandler.SignUp)
		router.POST("/login", handlers.SessionHandler.Login)
		router.POST("/logout", accessGate, handlers.SessionHandler.Logout)
	}

	if handlers.UserHandler != nil {
		router.GET("/users", handlers.UserHandler.GetAllUsers)
	}

	if handlers.TaskHandler != nil {
		router.POST("/tasks", accessGate, handlers.TaskHandler.CreateTask)
		router.GET("/tasks", handlers.TaskHandler.GetAllTasks)
		router.GET("/tasks/:id", handlers.TaskHandler.GetTask)
		router.PUT("/tasks/:id", handlers.TaskHandler.UpdateTask)
		router.PATCH("/tasks/:id", handlers.TaskHandler.PatchTask)
		router.DELETE("/tasks/:id", handlers.TaskHandler.DeleteTask)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
