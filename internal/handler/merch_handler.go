package handler

import (
	"errors"
	"net/http"

	"gym_management/internal/model"
	"gym_management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type MerchHandler struct {
	service service.MerchService
	log     zerolog.Logger
}

func NewMerchHandler(s service.MerchService, log zerolog.Logger) *MerchHandler {
	return &MerchHandler{service: s, log: log}
}

func (h *MerchHandler) AddItem(c *gin.Context) {
	var req model.CreateMerchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	item, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) || errors.Is(err, service.ErrInvalidQuantity) || errors.Is(err, service.ErrLabelTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.log, "Failed to add merch item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MerchHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "Failed to retrieve merch", err)
		return
	}
	if items == nil {
		items = []model.MerchItem{}
	}
	c.JSON(http.StatusOK, items)
}

// StockValue reports sum(price * quantity) over the whole catalog
func (h *MerchHandler) StockValue(c *gin.Context) {
	total, err := h.service.TotalStockValue(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "Failed to compute stock value", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *MerchHandler) RegisterMerchRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	merch := rg.Group("/merch", authMW)
	{
		merch.GET("", h.ListItems)
		merch.POST("", adminMW, h.AddItem)
		merch.GET("/stock-value", adminMW, h.StockValue)
	}
}
