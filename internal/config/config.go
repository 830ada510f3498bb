package config

import (
	"context"
	"fmt"
	"time"

	"gym_management/internal/utils"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the server needs at startup
type Config struct {
	Port             string `env:"SERVER_PORT, default=8080"`
	BcryptCost       int    `env:"BCRYPT_COST, default=12"`
	AllowAdminSignup bool   `env:"ALLOW_ADMIN_SIGNUP, default=true"`

	DB  DBConfig
	JWT JWTConfig
	Log LogConfig
}

// DBConfig holds database connection parameters
type DBConfig struct {
	Host     string `env:"DB_HOST, required"`
	Port     string `env:"DB_PORT, default=5432"`
	User     string `env:"DB_USER, required"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME, required"`
	SSLMode  string `env:"DB_SSLMODE, default=disable"`
}

type JWTConfig struct {
	Secret          string `env:"JWT_SECRET_KEY, required"`
	ExpirationHours int64  `env:"JWT_EXPIRATION_HOURS, default=24"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
}

// DSN builds a libpq connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// TokenTTL is the lifetime of issued session tokens
func (c JWTConfig) TokenTTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// Load reads configuration from the process environment
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.BcryptCost < utils.MinBcryptCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", utils.MinBcryptCost, bcrypt.MaxCost, cfg.BcryptCost)
	}
	if cfg.JWT.ExpirationHours <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be positive, got %d", cfg.JWT.ExpirationHours)
	}
	return &cfg, nil
}
