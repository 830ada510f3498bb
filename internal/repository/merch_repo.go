package repository

import (
	"context"

	"gym_management/internal/model"

	"github.com/shopspring/decimal"
)

// MerchRepository defines operations for merchandise data
type MerchRepository interface {
	Create(ctx context.Context, item *model.MerchItem) error
	FindAll(ctx context.Context) ([]model.MerchItem, error)
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
}

type merchRepository struct {
	db DB
}

// NewMerchRepository creates a new MerchRepository
func NewMerchRepository(db DB) MerchRepository {
	return &merchRepository{db: db}
}

func (r *merchRepository) Create(ctx context.Context, item *model.MerchItem) error {
	sql := `INSERT INTO gym_merch (merch_name, merch_type, merch_price, quantity_in_stock)
            VALUES ($1, $2, $3, $4) RETURNING merch_id`
	err := r.db.QueryRow(ctx, sql, item.Name, item.Type, item.Price.String(), item.QuantityInStock).Scan(&item.ID)
	if err != nil {
		return storageError("failed to create merch item", err)
	}
	return nil
}

func (r *merchRepository) FindAll(ctx context.Context) ([]model.MerchItem, error) {
	sql := `SELECT merch_id, merch_name, merch_type, merch_price::text, quantity_in_stock FROM gym_merch ORDER BY merch_id`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, storageError("failed to query merch items", err)
	}
	defer rows.Close()

	items := []model.MerchItem{}
	for rows.Next() {
		var (
			item  model.MerchItem
			price string
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &price, &item.QuantityInStock); err != nil {
			return nil, storageError("failed to scan merch row", err)
		}
		if item.Price, err = parseDecimal(price); err != nil {
			return nil, storageError("failed to scan merch row", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, storageError("error iterating merch rows", err)
	}
	return items, nil
}

// TotalStockValue is SUM(price * quantity) evaluated with NUMERIC arithmetic
func (r *merchRepository) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	sql := `SELECT COALESCE(SUM(merch_price * quantity_in_stock), 0)::text FROM gym_merch`
	var total string
	if err := r.db.QueryRow(ctx, sql).Scan(&total); err != nil {
		return decimal.Zero, storageError("failed to get total stock value", err)
	}
	d, err := parseDecimal(total)
	if err != nil {
		return decimal.Zero, storageError("failed to get total stock value", err)
	}
	return d, nil
}
