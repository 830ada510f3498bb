package repository

import (
	"context"
	"time"

	"gym_management/internal/model"

	"github.com/shopspring/decimal"
)

// MembershipRepository defines operations for membership data
type MembershipRepository interface {
	Create(ctx context.Context, m *model.Membership) error
	FindByMember(ctx context.Context, memberID int) ([]model.Membership, error)
	FindAll(ctx context.Context) ([]model.Membership, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

type membershipRepository struct {
	db DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db DB) MembershipRepository {
	return &membershipRepository{db: db}
}

const membershipColumns = `membership_id, membership_type, membership_description, membership_cost::text, member_id, start_date, end_date`

func (r *membershipRepository) Create(ctx context.Context, m *model.Membership) error {
	sql := `INSERT INTO memberships (membership_type, membership_description, membership_cost, member_id, start_date, end_date)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING membership_id`
	var cost any
	if m.Cost.Valid {
		cost = m.Cost.Decimal.String()
	}
	err := r.db.QueryRow(ctx, sql, m.Type, m.Description, cost, m.MemberID, m.StartDate, m.EndDate).Scan(&m.ID)
	if err != nil {
		return storageError("failed to create membership", err)
	}
	return nil
}

// FindByMember lists a member's memberships, most recent start date first
func (r *membershipRepository) FindByMember(ctx context.Context, memberID int) ([]model.Membership, error) {
	sql := `SELECT ` + membershipColumns + ` FROM memberships WHERE member_id = $1 ORDER BY start_date DESC, membership_id DESC`
	return r.queryMemberships(ctx, "failed to query memberships by member", sql, memberID)
}

func (r *membershipRepository) FindAll(ctx context.Context) ([]model.Membership, error) {
	sql := `SELECT ` + membershipColumns + ` FROM memberships ORDER BY membership_id`
	return r.queryMemberships(ctx, "failed to query memberships", sql)
}

// TotalRevenue sums every membership cost. NULL costs are ignored by SUM and
// an empty table yields exactly zero.
func (r *membershipRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	sql := `SELECT COALESCE(SUM(membership_cost), 0)::text FROM memberships`
	var total string
	if err := r.db.QueryRow(ctx, sql).Scan(&total); err != nil {
		return decimal.Zero, storageError("failed to get total revenue", err)
	}
	d, err := parseDecimal(total)
	if err != nil {
		return decimal.Zero, storageError("failed to get total revenue", err)
	}
	return d, nil
}

func (r *membershipRepository) queryMemberships(ctx context.Context, op, sql string, args ...any) ([]model.Membership, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	memberships := []model.Membership{}
	for rows.Next() {
		var (
			m       model.Membership
			cost    *string
			endDate *time.Time
		)
		if err := rows.Scan(&m.ID, &m.Type, &m.Description, &cost, &m.MemberID, &m.StartDate, &endDate); err != nil {
			return nil, storageError("failed to scan membership row", err)
		}
		if m.Cost, err = parseNullDecimal(cost); err != nil {
			return nil, storageError("failed to scan membership row", err)
		}
		m.EndDate = endDate
		memberships = append(memberships, m)
	}
	if err = rows.Err(); err != nil {
		return nil, storageError("error iterating membership rows", err)
	}
	return memberships, nil
}
