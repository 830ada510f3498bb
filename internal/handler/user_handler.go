package handler

import (
	"errors"
	"net/http"
	"strings"

	"gym_management/internal/model"
	"gym_management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler exposes user administration to admins
type UserHandler struct {
	service service.UserService
	log     zerolog.Logger
}

func NewUserHandler(s service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{service: s, log: log}
}

// ListUsers returns every user, or only those with the ?role= given
func (h *UserHandler) ListUsers(c *gin.Context) {
	var (
		users []model.User
		err   error
	)
	if roleParam := c.Query("role"); roleParam != "" {
		users, err = h.service.ListByRole(c.Request.Context(), model.Role(strings.ToUpper(roleParam)))
	} else {
		users, err = h.service.ListAll(c.Request.Context())
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "Failed to retrieve users", err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.log, "Failed to delete user", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterUserRoutes registers admin-only user routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	users := rg.Group("/users", authMW, adminMW)
	{
		users.GET("", h.ListUsers)
		users.DELETE("/:id", h.DeleteUser)
	}
}
