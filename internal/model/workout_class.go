package model

import "time"

// WorkoutClass is a scheduled class owned by the trainer who created it
type WorkoutClass struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	TrainerID   int       `json:"trainer_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Capacity    int       `json:"capacity"`
}

// WorkoutClassRequest is used both to create a class and to replace its fields.
// Capacity and schedule are stored as given.
type WorkoutClassRequest struct {
	Type        string    `json:"type" binding:"required,max=100"`
	Description string    `json:"description"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Capacity    int       `json:"capacity"`
}
