package model

import "github.com/shopspring/decimal"

// MerchItem is a product sold at the gym front desk
type MerchItem struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantity_in_stock"`
}

type CreateMerchRequest struct {
	Name            string          `json:"name" binding:"required,max=100"`
	Type            string          `json:"type" binding:"max=100"`
	Price           decimal.Decimal `json:"price" binding:"money"`
	QuantityInStock int             `json:"quantity_in_stock" binding:"min=0"`
}
