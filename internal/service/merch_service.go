package service

import (
	"context"
	"errors"
	"fmt"

	"gym_management/internal/model"
	"gym_management/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity in stock must not be negative")

// MerchService manages the merchandise catalog
type MerchService interface {
	Add(ctx context.Context, req model.CreateMerchRequest) (*model.MerchItem, error)
	ListAll(ctx context.Context) ([]model.MerchItem, error)
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
}

type merchService struct {
	repo repository.MerchRepository
	log  zerolog.Logger
}

// NewMerchService creates a new MerchService
func NewMerchService(repo repository.MerchRepository, log zerolog.Logger) MerchService {
	return &merchService{repo: repo, log: log.With().Str("service", "merch").Logger()}
}

func (s *merchService) Add(ctx context.Context, req model.CreateMerchRequest) (*model.MerchItem, error) {
	if !model.ValidMoney(req.Price) {
		return nil, ErrInvalidAmount
	}
	if req.QuantityInStock < 0 {
		return nil, ErrInvalidQuantity
	}
	if !model.ValidLabel(req.Name) || !model.ValidLabel(req.Type) {
		return nil, ErrLabelTooLong
	}

	item := &model.MerchItem{
		Name:            req.Name,
		Type:            req.Type,
		Price:           req.Price,
		QuantityInStock: req.QuantityInStock,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create merch item in repo: %w", err)
	}
	s.log.Info().Int("merch_id", item.ID).Str("name", item.Name).Int("quantity", item.QuantityInStock).Msg("merch item added")
	return item, nil
}

func (s *merchService) ListAll(ctx context.Context) ([]model.MerchItem, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list merch items: %w", err)
	}
	return items, nil
}

// TotalStockValue is the sum of price times quantity over the whole catalog
func (s *merchService) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.repo.TotalStockValue(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get total stock value: %w", err)
	}
	return total, nil
}
