package router

import (
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes, throttled per client IP
		limiter := r.credentialLimiter()
		auth.POST("/register", limiter, r.authHandler.Register)
		auth.POST("/login", limiter, r.authHandler.Login)

		// Logout resolves the token itself so stale tokens still succeed.
		auth.POST("/logout", r.authHandler.Logout)

		auth.GET("/me", r.authMw.OptionalAuth(), r.authHandler.Me)

		protected := auth.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			updateProfile := r.validMw.ValidateRequestBody(func() interface{} { return &dto.UpdateProfileRequest{} })

			protected.GET("/profile", r.authHandler.GetProfile)
			protected.GET("/user", r.authHandler.GetProfile)
			protected.PUT("/profile", updateProfile, r.authHandler.UpdateProfile)
			protected.PATCH("/profile", updateProfile, r.authHandler.UpdateProfile)
			protected.POST("/complete-onboarding", r.authHandler.CompleteOnboarding)
		}
	}
}
