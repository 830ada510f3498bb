package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Membership is a subscription purchased by a user of any role
type Membership struct {
	ID          int                 `json:"id"`
	Type        string              `json:"type"`
	Description string              `json:"description"`
	Cost        decimal.NullDecimal `json:"cost"` // NULL only for legacy rows
	MemberID    int                 `json:"member_id"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     *time.Time          `json:"end_date,omitempty"`
}

// PurchaseMembershipRequest is the payload for buying a membership.
// A nil DurationMonths leaves the membership without an end date.
type PurchaseMembershipRequest struct {
	Type           string          `json:"type" binding:"required,max=100"`
	Description    string          `json:"description"`
	Cost           decimal.Decimal `json:"cost" binding:"money"`
	DurationMonths *int            `json:"duration_months" binding:"omitempty,min=0,max=1200"`
}

// MembershipSummary pairs a list of memberships with their summed cost
type MembershipSummary struct {
	Memberships []Membership    `json:"memberships"`
	Total       decimal.Decimal `json:"total"`
}
