package repository

import (
	"context"
	"errors"

	"gym_management/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByRole(ctx context.Context, role model.Role) ([]model.User, error)
	DeleteByID(ctx context.Context, id int) (bool, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `user_id, username, password_hash, email, phone_number, address, role, created_at`

// Create inserts a new user and sets its generated ID.
// A duplicate username yields ErrConflict.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (username, password_hash, email, phone_number, address, role, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING user_id`
	err := r.db.QueryRow(ctx, sql, user.Username, user.PasswordHash, user.Email, user.Phone, user.Address, user.Role, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return storageError("failed to create user", err)
	}
	return nil
}

// FindByUsername retrieves a user by username, returning nil when absent
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("failed to find user by username", err)
	}
	return user, nil
}

// FindAll lists every user ordered by ID
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users ORDER BY user_id`
	return r.queryUsers(ctx, "failed to query users", sql)
}

// FindByRole lists users with the given role ordered by ID
func (r *userRepository) FindByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY user_id`
	return r.queryUsers(ctx, "failed to query users by role", sql, role)
}

// DeleteByID removes a user. Classes and memberships referencing it are left in place.
func (r *userRepository) DeleteByID(ctx context.Context, id int) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return false, storageError("failed to delete user", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *userRepository) queryUsers(ctx context.Context, op, sql string, args ...any) ([]model.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, storageError("failed to scan user row", err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, storageError("error iterating user rows", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.Phone, &user.Address, &role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.Role = model.Role(role)
	return user, nil
}
