package handler

import (
	"context"
	"net/http"

	"gym_management/internal/middleware"
	"gym_management/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the API handlers mounted under /api/v1
type Handlers struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Classes     *WorkoutClassHandler
	Memberships *MembershipHandler
	Merch       *MerchHandler
}

// HealthCheck reports whether the backing store is reachable
type HealthCheck func(ctx context.Context) error

// NewRouter builds the gin engine with middleware, API routes, /health and /metrics
func NewRouter(log zerolog.Logger, jwtUtil *utils.JWTUtil, h Handlers, health HealthCheck) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), cors())

	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminRoleMW := middleware.AdminMiddleware()
	trainerRoleMW := middleware.TrainerMiddleware()

	apiGroup := router.Group("/api/v1")
	h.Auth.RegisterAuthRoutes(apiGroup)
	h.Users.RegisterUserRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	h.Classes.RegisterWorkoutClassRoutes(apiGroup, jwtAuthMW, trainerRoleMW)
	h.Memberships.RegisterMembershipRoutes(apiGroup, jwtAuthMW, adminRoleMW)
	h.Merch.RegisterMerchRoutes(apiGroup, jwtAuthMW, adminRoleMW)

	router.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				log.Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Simple CORS middleware (allow all)
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
