package model

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Limits of the storage columns: NUMERIC(10, 2) for money, VARCHAR(100) for
// type and name labels.
const (
	MoneyScale        = 2
	MaxLabelLength    = 100
	MaxDurationMonths = 1200
)

// MaxMoney is the smallest amount a NUMERIC(10, 2) column cannot hold
var MaxMoney = decimal.New(1, 8)

// ValidMoney reports whether d is non-negative, has at most two decimal places
// and fits in a NUMERIC(10, 2) column without rounding
func ValidMoney(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(MaxMoney) && d.Equal(d.Round(MoneyScale))
}

// ValidLabel reports whether s fits a VARCHAR(100) column
func ValidLabel(s string) bool {
	return utf8.RuneCountInString(s) <= MaxLabelLength
}
