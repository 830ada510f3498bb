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

type MembershipHandler struct {
	service service.MembershipService
	log     zerolog.Logger
}

func NewMembershipHandler(s service.MembershipService, log zerolog.Logger) *MembershipHandler {
	return &MembershipHandler{service: s, log: log}
}

// Purchase buys a membership for the signed-in user
func (h *MembershipHandler) Purchase(c *gin.Context) {
	memberID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.PurchaseMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	membership, err := h.service.Purchase(c.Request.Context(), memberID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) || errors.Is(err, service.ErrInvalidDuration) || errors.Is(err, service.ErrLabelTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "Failed to purchase membership", err)
		return
	}
	metrics.MembershipsPurchasedTotal.WithLabelValues(membership.Type).Inc()
	c.JSON(http.StatusCreated, membership)
}

// ListMine returns the caller's memberships and what they have spent in total
func (h *MembershipHandler) ListMine(c *gin.Context) {
	memberID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	memberships, err := h.service.ListByMember(ctx, memberID)
	if err != nil {
		internalError(c, h.log, "Failed to retrieve memberships", err)
		return
	}
	expenses, err := h.service.TotalExpenses(ctx, memberID)
	if err != nil {
		internalError(c, h.log, "Failed to compute expenses", err)
		return
	}
	if memberships == nil {
		memberships = []model.Membership{}
	}
	c.JSON(http.StatusOK, model.MembershipSummary{Memberships: memberships, Total: expenses})
}

// ListAll returns every membership with the gym's total revenue
func (h *MembershipHandler) ListAll(c *gin.Context) {
	ctx := c.Request.Context()
	memberships, err := h.service.ListAll(ctx)
	if err != nil {
		internalError(c, h.log, "Failed to retrieve memberships", err)
		return
	}
	revenue, err := h.service.TotalRevenue(ctx)
	if err != nil {
		internalError(c, h.log, "Failed to compute revenue", err)
		return
	}
	if memberships == nil {
		memberships = []model.Membership{}
	}
	c.JSON(http.StatusOK, model.MembershipSummary{Memberships: memberships, Total: revenue})
}

func (h *MembershipHandler) RegisterMembershipRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	memberships := rg.Group("/memberships", authMW)
	{
		memberships.POST("", h.Purchase)
		memberships.GET("/mine", h.ListMine)
		memberships.GET("", adminMW, h.ListAll)
	}
}
