package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gym_management/internal/model"
	"gym_management/internal/repository"

	"github.com/rs/zerolog"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials covers both an unknown username and a wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("invalid role")
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// RegisterInput carries the profile of a new user
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Phone    string
	Address  string
	Role     model.Role
}

// UserService provides registration, login and user administration
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	log      zerolog.Logger

	// decoy is compared against when the username is unknown so that both
	// login failures pay for one hash comparison
	decoyOnce sync.Once
	decoy     string
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, log zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		log:      log.With().Str("service", "user").Logger(),
	}
}

// Register creates a new user account with a hashed password
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	existingUser, err := s.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		s.log.Warn().Str("username", in.Username).Msg("registration rejected: username already exists")
		return nil, ErrDuplicateUsername
	}

	hashedPassword, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		PasswordHash: hashedPassword,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         in.Role,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Another registration won the race between the check and the insert.
		if errors.Is(err, repository.ErrConflict) {
			s.log.Warn().Str("username", in.Username).Msg("registration rejected: username taken concurrently")
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	s.log.Info().Int("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// Login authenticates a user by username and password
func (s *userService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		s.hasher.Verify(password, s.decoyHash())
		s.log.Warn().Str("username", username).Msg("login failed: invalid credentials")
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn().Str("username", username).Msg("login failed: invalid credentials")
		return nil, ErrInvalidCredentials
	}

	s.log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return user, nil
}

func (s *userService) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	users, err := s.userRepo.FindByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return users, nil
}

// Delete removes a user by ID. Callers must restrict it to admins.
func (s *userService) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.userRepo.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	if deleted {
		s.log.Info().Int("user_id", id).Msg("user deleted")
	}
	return deleted, nil
}

func (s *userService) decoyHash() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash("decoy-password-for-unknown-users")
		if err != nil {
			s.log.Error().Err(err).Msg("failed to build decoy password hash")
			return
		}
		s.decoy = hash
	})
	return s.decoy
}
