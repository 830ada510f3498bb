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

// WorkoutClassHandler handles workout class requests. Trainers manage their own
// classes; any signed-in user may browse the schedule.
type WorkoutClassHandler struct {
	service service.WorkoutClassService
	log     zerolog.Logger
}

func NewWorkoutClassHandler(s service.WorkoutClassService, log zerolog.Logger) *WorkoutClassHandler {
	return &WorkoutClassHandler{service: s, log: log}
}

func (h *WorkoutClassHandler) CreateClass(c *gin.Context) {
	trainerID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.WorkoutClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	class, err := h.service.Create(c.Request.Context(), trainerID, req)
	if err != nil {
		if errors.Is(err, service.ErrLabelTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "Failed to create workout class", err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (h *WorkoutClassHandler) UpdateClass(c *gin.Context) {
	trainerID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req model.WorkoutClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	class := &model.WorkoutClass{
		ID:          id,
		Type:        req.Type,
		Description: req.Description,
		TrainerID:   trainerID,
		ScheduledAt: req.ScheduledAt,
		Capacity:    req.Capacity,
	}
	updated, err := h.service.Update(c.Request.Context(), class)
	if err != nil {
		if errors.Is(err, service.ErrLabelTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "Failed to update workout class", err)
		return
	}
	if !updated {
		// Missing and foreign classes look the same to the caller
		metrics.OwnershipRejectionsTotal.WithLabelValues("update").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "workout class not found"})
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *WorkoutClassHandler) DeleteClass(c *gin.Context) {
	trainerID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id, trainerID)
	if err != nil {
		internalError(c, h.log, "Failed to delete workout class", err)
		return
	}
	if !deleted {
		metrics.OwnershipRejectionsTotal.WithLabelValues("delete").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "workout class not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "Failed to retrieve workout classes", err)
		return
	}
	if classes == nil {
		classes = []model.WorkoutClass{}
	}
	c.JSON(http.StatusOK, classes)
}

func (h *WorkoutClassHandler) ListMyClasses(c *gin.Context) {
	trainerID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	classes, err := h.service.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		internalError(c, h.log, "Failed to retrieve workout classes", err)
		return
	}
	if classes == nil {
		classes = []model.WorkoutClass{}
	}
	c.JSON(http.StatusOK, classes)
}

// RegisterWorkoutClassRoutes registers class routes; writes are trainer only
func (h *WorkoutClassHandler) RegisterWorkoutClassRoutes(rg *gin.RouterGroup, authMW, trainerMW gin.HandlerFunc) {
	classes := rg.Group("/classes", authMW)
	{
		classes.GET("", h.ListClasses)
		classes.GET("/mine", trainerMW, h.ListMyClasses)
		classes.POST("", trainerMW, h.CreateClass)
		classes.PUT("/:id", trainerMW, h.UpdateClass)
		classes.DELETE("/:id", trainerMW, h.DeleteClass)
	}
}
