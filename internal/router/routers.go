package router

import (
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/config"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/handler"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler   *handler.AuthHandler
	healthHandler *handler.HealthHandler

	validMw *middleware.ValidationMiddleware
	authMw  *middleware.AuthMiddleware
	Config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	health *handler.HealthHandler,

	validMw *middleware.ValidationMiddleware,
	authMw *middleware.AuthMiddleware,
	config *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		healthHandler: health,

		validMw: validMw,
		authMw:  authMw,
		Config:  config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.ContextMiddleware("http"))
	router.Use(middleware.SecurityLoggingMiddleware())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		api.GET("/health/detailed", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			r.authRoutes(v1)
		}
	}

	return router
}

func (r *Router) credentialLimiter() gin.HandlerFunc {
	return middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second)
}
