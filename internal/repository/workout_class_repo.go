package repository

import (
	"context"

	"gym_management/internal/model"

	"github.com/jackc/pgx/v5"
)

// WorkoutClassRepository defines operations for workout class data.
// Update and Delete match on both class ID and trainer ID in one statement.
type WorkoutClassRepository interface {
	Create(ctx context.Context, class *model.WorkoutClass) error
	Update(ctx context.Context, class *model.WorkoutClass) (bool, error)
	Delete(ctx context.Context, id, trainerID int) (bool, error)
	FindAll(ctx context.Context) ([]model.WorkoutClass, error)
	FindByTrainer(ctx context.Context, trainerID int) ([]model.WorkoutClass, error)
}

type workoutClassRepository struct {
	db DB
}

// NewWorkoutClassRepository creates a new WorkoutClassRepository
func NewWorkoutClassRepository(db DB) WorkoutClassRepository {
	return &workoutClassRepository{db: db}
}

const workoutClassColumns = `workout_class_id, workout_class_type, workout_class_description, trainer_id, schedule_time, capacity`

func (r *workoutClassRepository) Create(ctx context.Context, c *model.WorkoutClass) error {
	sql := `INSERT INTO workout_classes (workout_class_type, workout_class_description, trainer_id, schedule_time, capacity)
            VALUES ($1, $2, $3, $4, $5) RETURNING workout_class_id`
	err := r.db.QueryRow(ctx, sql, c.Type, c.Description, c.TrainerID, c.ScheduledAt, c.Capacity).Scan(&c.ID)
	if err != nil {
		return storageError("failed to create workout class", err)
	}
	return nil
}

// Update replaces type, description, schedule and capacity. It reports false
// when no class with that ID is owned by c.TrainerID.
func (r *workoutClassRepository) Update(ctx context.Context, c *model.WorkoutClass) (bool, error) {
	sql := `UPDATE workout_classes
            SET workout_class_type = $1, workout_class_description = $2, schedule_time = $3, capacity = $4
            WHERE workout_class_id = $5 AND trainer_id = $6`
	cmdTag, err := r.db.Exec(ctx, sql, c.Type, c.Description, c.ScheduledAt, c.Capacity, c.ID, c.TrainerID)
	if err != nil {
		return false, storageError("failed to update workout class", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *workoutClassRepository) Delete(ctx context.Context, id, trainerID int) (bool, error) {
	sql := `DELETE FROM workout_classes WHERE workout_class_id = $1 AND trainer_id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, id, trainerID)
	if err != nil {
		return false, storageError("failed to delete workout class", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *workoutClassRepository) FindAll(ctx context.Context) ([]model.WorkoutClass, error) {
	sql := `SELECT ` + workoutClassColumns + ` FROM workout_classes ORDER BY schedule_time, workout_class_id`
	return r.queryClasses(ctx, "failed to query workout classes", sql)
}

func (r *workoutClassRepository) FindByTrainer(ctx context.Context, trainerID int) ([]model.WorkoutClass, error) {
	sql := `SELECT ` + workoutClassColumns + ` FROM workout_classes WHERE trainer_id = $1 ORDER BY schedule_time, workout_class_id`
	return r.queryClasses(ctx, "failed to query workout classes by trainer", sql, trainerID)
}

func (r *workoutClassRepository) queryClasses(ctx context.Context, op, sql string, args ...any) ([]model.WorkoutClass, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	classes := []model.WorkoutClass{}
	for rows.Next() {
		c, err := scanWorkoutClass(rows)
		if err != nil {
			return nil, storageError("failed to scan workout class row", err)
		}
		classes = append(classes, c)
	}
	if err = rows.Err(); err != nil {
		return nil, storageError("error iterating workout class rows", err)
	}
	return classes, nil
}

func scanWorkoutClass(row pgx.Row) (model.WorkoutClass, error) {
	var c model.WorkoutClass
	err := row.Scan(&c.ID, &c.Type, &c.Description, &c.TrainerID, &c.ScheduledAt, &c.Capacity)
	return c, err
}
