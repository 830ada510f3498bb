package service

import (
	"context"
	"fmt"

	"gym_management/internal/model"
	"gym_management/internal/repository"

	"github.com/rs/zerolog"
)

// WorkoutClassService manages classes. Only the owning trainer may change or
// remove a class; a mismatch is reported as (false, nil).
type WorkoutClassService interface {
	Create(ctx context.Context, trainerID int, req model.WorkoutClassRequest) (*model.WorkoutClass, error)
	Update(ctx context.Context, class *model.WorkoutClass) (bool, error)
	Delete(ctx context.Context, id, trainerID int) (bool, error)
	ListAll(ctx context.Context) ([]model.WorkoutClass, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]model.WorkoutClass, error)
}

type workoutClassService struct {
	repo repository.WorkoutClassRepository
	log  zerolog.Logger
}

// NewWorkoutClassService creates a new WorkoutClassService
func NewWorkoutClassService(repo repository.WorkoutClassRepository, log zerolog.Logger) WorkoutClassService {
	return &workoutClassService{repo: repo, log: log.With().Str("service", "workout_class").Logger()}
}

func (s *workoutClassService) Create(ctx context.Context, trainerID int, req model.WorkoutClassRequest) (*model.WorkoutClass, error) {
	if !model.ValidLabel(req.Type) {
		return nil, ErrLabelTooLong
	}
	class := &model.WorkoutClass{
		Type:        req.Type,
		Description: req.Description,
		TrainerID:   trainerID,
		ScheduledAt: req.ScheduledAt,
		Capacity:    req.Capacity,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to create workout class in repo: %w", err)
	}
	s.log.Info().Int("class_id", class.ID).Int("trainer_id", trainerID).Msg("workout class created")
	return class, nil
}

// Update replaces the class's fields when class.TrainerID owns class.ID
func (s *workoutClassService) Update(ctx context.Context, class *model.WorkoutClass) (bool, error) {
	if !model.ValidLabel(class.Type) {
		return false, ErrLabelTooLong
	}
	updated, err := s.repo.Update(ctx, class)
	if err != nil {
		return false, fmt.Errorf("failed to update workout class in repo: %w", err)
	}
	if !updated {
		s.log.Warn().Int("class_id", class.ID).Int("trainer_id", class.TrainerID).Msg("workout class update matched no owned class")
		return false, nil
	}
	s.log.Info().Int("class_id", class.ID).Int("trainer_id", class.TrainerID).Msg("workout class updated")
	return true, nil
}

func (s *workoutClassService) Delete(ctx context.Context, id, trainerID int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id, trainerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete workout class in repo: %w", err)
	}
	if !deleted {
		s.log.Warn().Int("class_id", id).Int("trainer_id", trainerID).Msg("workout class delete matched no owned class")
		return false, nil
	}
	s.log.Info().Int("class_id", id).Int("trainer_id", trainerID).Msg("workout class deleted")
	return true, nil
}

func (s *workoutClassService) ListAll(ctx context.Context) ([]model.WorkoutClass, error) {
	classes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout classes: %w", err)
	}
	return classes, nil
}

func (s *workoutClassService) ListByTrainer(ctx context.Context, trainerID int) ([]model.WorkoutClass, error) {
	classes, err := s.repo.FindByTrainer(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout classes for trainer: %w", err)
	}
	return classes, nil
}
