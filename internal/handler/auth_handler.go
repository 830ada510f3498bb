package handler

import (
	"errors"
	"net/http"

	"gym_management/internal/metrics"
	"gym_management/internal/model"
	"gym_management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TokenIssuer signs session tokens for authenticated users
type TokenIssuer interface {
	GenerateToken(user *model.User) (string, error)
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	service          service.UserService
	tokens           TokenIssuer
	allowAdminSignup bool
	log              zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.UserService, tokens TokenIssuer, allowAdminSignup bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: s, tokens: tokens, allowAdminSignup: allowAdminSignup, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}
	if req.Role == model.RoleAdmin && !h.allowAdminSignup {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin accounts cannot be self-registered"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateUsername):
			metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
			internalError(c, h.log, "Failed to register user", err)
		}
		return
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		internalError(c, h.log, "User created, but failed to generate token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
			return
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		internalError(c, h.log, "Failed to login", err)
		return
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		internalError(c, h.log, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}
