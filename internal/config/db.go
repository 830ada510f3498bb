package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ConnectDB establishes a connection pool to PostgreSQL, retrying while the
// database comes up
func ConnectDB(ctx context.Context, cfg DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN())
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max_attempts", maxRetries).Dur("retry_in", retryInterval).Msg("failed to connect to database")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// schema has no foreign keys from classes or memberships to users: deleting a
// user leaves their rows in place.
const schema = `
	CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone_number TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL CHECK (role IN ('ADMIN', 'TRAINER', 'MEMBER')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS workout_classes (
		workout_class_id SERIAL PRIMARY KEY,
		workout_class_type VARCHAR(100) NOT NULL,
		workout_class_description TEXT NOT NULL DEFAULT '',
		trainer_id INTEGER NOT NULL,
		schedule_time TIMESTAMP WITH TIME ZONE NOT NULL,
		capacity INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS memberships (
		membership_id SERIAL PRIMARY KEY,
		membership_type VARCHAR(100) NOT NULL,
		membership_description TEXT NOT NULL DEFAULT '',
		membership_cost NUMERIC(10, 2) CHECK (membership_cost >= 0),
		member_id INTEGER NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE,
		CHECK (end_date IS NULL OR end_date >= start_date)
	);

	CREATE TABLE IF NOT EXISTS gym_merch (
		merch_id SERIAL PRIMARY KEY,
		merch_name VARCHAR(100) NOT NULL,
		merch_type VARCHAR(100) NOT NULL DEFAULT '',
		merch_price NUMERIC(10, 2) NOT NULL CHECK (merch_price >= 0),
		quantity_in_stock INTEGER NOT NULL CHECK (quantity_in_stock >= 0)
	);

	CREATE INDEX IF NOT EXISTS idx_workout_classes_trainer_id ON workout_classes(trainer_id);
	CREATE INDEX IF NOT EXISTS idx_workout_classes_schedule_time ON workout_classes(schedule_time);
	CREATE INDEX IF NOT EXISTS idx_memberships_member_id ON memberships(member_id);
`

// AutoMigrate creates tables if they don't exist
func AutoMigrate(ctx context.Context, db *pgxpool.Pool, log zerolog.Logger) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	log.Info().Msg("AutoMigrate applied successfully")
	return nil
}
