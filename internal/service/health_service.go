package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samueldk12/trainer/internal/repository"
)

// DatabaseHealth holds the document counts that prove the store answers.
type DatabaseHealth struct {
	Connected             bool  `json:"connected"`
	UsersCount            int64 `json:"usersCount"`
	WorkoutsCount         int64 `json:"workoutsCount"`
	WorkoutExercisesCount int64 `json:"workoutExercisesCount"`
	ExercisesCount        int64 `json:"exercisesCount"`
}

type HealthReport struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Database  *DatabaseHealth `json:"database,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

const (
	HealthStatusOK    = "ok"
	HealthStatusError = "error"
)

type HealthService interface {
	// Check never returns an error; failures are reported in the status.
	Check(ctx context.Context) HealthReport
}

type healthService struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	workouts  repository.WorkoutRepository
	now       func() time.Time
}

func NewHealthService(
	users repository.UserRepository,
	exercises repository.ExerciseRepository,
	workouts repository.WorkoutRepository,
) HealthService {
	return &healthService{users: users, exercises: exercises, workouts: workouts, now: time.Now}
}

func (s *healthService) Check(ctx context.Context) HealthReport {
	db, err := s.counts(ctx)
	if err != nil {
		return HealthReport{
			Status:    HealthStatusError,
			Message:   "API or database unavailable",
			Error:     err.Error(),
			Timestamp: s.now().UTC(),
		}
	}
	return HealthReport{
		Status:    HealthStatusOK,
		Message:   "API is working",
		Database:  db,
		Timestamp: s.now().UTC(),
	}
}

func (s *healthService) counts(ctx context.Context) (*DatabaseHealth, error) {
	var (
		db  = &DatabaseHealth{Connected: true}
		err error
	)
	if db.UsersCount, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	if db.WorkoutsCount, err = s.workouts.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}
	if db.WorkoutExercisesCount, err = s.workouts.CountExercises(ctx); err != nil {
		return nil, fmt.Errorf("counting workout exercises: %w", err)
	}
	if db.ExercisesCount, err = s.exercises.Count(ctx); err != nil {
		return nil, fmt.Errorf("counting exercises: %w", err)
	}
	return db, nil
}
