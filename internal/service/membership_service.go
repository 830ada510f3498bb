package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym_management/internal/model"
	"gym_management/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("amount must be non-negative, below 100000000, with at most 2 decimal places")
	ErrInvalidDuration = errors.New("duration in months must be between 0 and 1200")
	ErrLabelTooLong    = errors.New("type and name must be at most 100 characters")
)

// Clock returns the current time
type Clock func() time.Time

// MembershipService handles purchases and the revenue/expense totals
type MembershipService interface {
	Purchase(ctx context.Context, memberID int, req model.PurchaseMembershipRequest) (*model.Membership, error)
	ListByMember(ctx context.Context, memberID int) ([]model.Membership, error)
	ListAll(ctx context.Context) ([]model.Membership, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	TotalExpenses(ctx context.Context, memberID int) (decimal.Decimal, error)
}

type membershipService struct {
	repo repository.MembershipRepository
	now  Clock
	log  zerolog.Logger
}

// NewMembershipService creates a new MembershipService. A nil clock means time.Now.
func NewMembershipService(repo repository.MembershipRepository, now Clock, log zerolog.Logger) MembershipService {
	if now == nil {
		now = time.Now
	}
	return &membershipService{repo: repo, now: now, log: log.With().Str("service", "membership").Logger()}
}

// Purchase records a membership starting today. The end date is DurationMonths
// calendar months later, or absent when no duration is given.
func (s *membershipService) Purchase(ctx context.Context, memberID int, req model.PurchaseMembershipRequest) (*model.Membership, error) {
	if !model.ValidMoney(req.Cost) {
		return nil, ErrInvalidAmount
	}
	if d := req.DurationMonths; d != nil && (*d < 0 || *d > model.MaxDurationMonths) {
		return nil, ErrInvalidDuration
	}
	if !model.ValidLabel(req.Type) {
		return nil, ErrLabelTooLong
	}

	y, m, d := s.now().Date()
	startDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	membership := &model.Membership{
		Type:        req.Type,
		Description: req.Description,
		Cost:        decimal.NewNullDecimal(req.Cost),
		MemberID:    memberID,
		StartDate:   startDate,
	}
	if req.DurationMonths != nil {
		endDate := AddMonths(startDate, *req.DurationMonths)
		membership.EndDate = &endDate
	}

	if err := s.repo.Create(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to create membership in repo: %w", err)
	}
	s.log.Info().Int("membership_id", membership.ID).Int("member_id", memberID).Str("type", req.Type).Str("cost", req.Cost.String()).Msg("membership purchased")
	return membership, nil
}

func (s *membershipService) ListByMember(ctx context.Context, memberID int) ([]model.Membership, error) {
	memberships, err := s.repo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships for member: %w", err)
	}
	return memberships, nil
}

func (s *membershipService) ListAll(ctx context.Context) ([]model.Membership, error) {
	memberships, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return memberships, nil
}

func (s *membershipService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get total revenue: %w", err)
	}
	return total, nil
}

// TotalExpenses sums the member's membership costs. Legacy rows without a
// cost count as zero.
func (s *membershipService) TotalExpenses(ctx context.Context, memberID int) (decimal.Decimal, error) {
	memberships, err := s.repo.FindByMember(ctx, memberID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get memberships for expenses: %w", err)
	}
	return SumCosts(memberships), nil
}

// SumCosts adds up the non-null costs of memberships
func SumCosts(memberships []model.Membership) decimal.Decimal {
	total := decimal.Zero
	for _, m := range memberships {
		if m.Cost.Valid {
			total = total.Add(m.Cost.Decimal)
		}
	}
	return total
}

// AddMonths moves t forward by months calendar months, clamping the day to
// the last day of the target month (Jan 31 + 1 month = Feb 28 or 29).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	// Day 1 never overflows, so this only normalizes the month/year.
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
