package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"ecohub.backend/internal/config"
	"ecohub.backend/internal/domain/entities"
	"ecohub.backend/internal/interfaces/http/handlers"
	"ecohub.backend/internal/interfaces/http/middleware"
	"ecohub.backend/internal/usecases"
	"ecohub.backend/pkg/ratelimit"
)

type routeDeps struct {
	authHandler  *handlers.AuthHandler
	adminHandler *handlers.AdminHandler
	authUsecase  *usecases.AuthUsecase
	loginLimiter ratelimit.Limiter
	rateLimitCfg config.RateLimitConfig
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(d.authUsecase)
	retryAfter := int(d.rateLimitCfg.Window.Seconds())

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", middleware.RateLimitByIP(d.loginLimiter, retryAfter), d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/verify", requireAuth, d.authHandler.Verify)
			auth.PUT("/profile", requireAuth, d.authHandler.UpdateProfile)
			auth.PUT("/password", requireAuth, d.authHandler.ChangePassword)
		}

		admin := v1.Group("/admin")
		admin.Use(requireAuth, middleware.RequireAdmin())
		{
			users := admin.Group("/users", middleware.RequirePermission(entities.ActionManageUsers))
			{
				users.GET("", d.adminHandler.ListUsers)
				users.PUT("/:id/suspend", d.adminHandler.SuspendUser)
				users.PUT("/:id/activate", d.adminHandler.ActivateUser)
				users.PUT("/:id/role", d.adminHandler.ChangeRole)
			}

			profiles := admin.Group("/profiles", middleware.RequirePermission(entities.ActionVerifyProfiles))
			{
				profiles.GET("/pending", d.adminHandler.PendingProfiles)
				profiles.PUT("/:id/verify", d.adminHandler.VerifyProfile)
			}

			admin.GET("/audit-log", middleware.RequirePermission(entities.ActionViewAuditLog), d.adminHandler.AuditLog)
			admin.GET("/stats", d.adminHandler.GetStats)
		}
	}
}
