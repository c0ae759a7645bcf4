package repository

import (
	"context"

	"github.com/samueldk12/trainer/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
	ErrConflict  = RepositoryError("modified concurrently")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	First(ctx context.Context) (*domain.User, error) // Oldest user, ErrNotFound when there is none
	Count(ctx context.Context) (int64, error)
}

// ExerciseRepository defines the interface for interacting with user-created exercises.
// Built-in catalog entries are never stored here.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Exercise, error) // Sorted by name
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id, ownerID string) error
	Count(ctx context.Context) (int64, error)
}

// WorkoutRepository defines the interface for interacting with workout data.
// Instances are embedded in their workout, so Delete removes them too.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Workout, error) // Newest first
	// UpdateMetadataAndExercises replaces name, description, difficulty and the
	// whole exercise list in a single write.
	UpdateMetadataAndExercises(ctx context.Context, workout *domain.Workout) error
	// AppendExercises adds instances only while the workout still holds
	// expectedCount of them, and returns ErrConflict otherwise.
	AppendExercises(ctx context.Context, workoutID string, expectedCount int, exercises []domain.WorkoutExercise) error
	Delete(ctx context.Context, id, ownerID string) error
	ExistsWithSourceExercise(ctx context.Context, exerciseID string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountExercises(ctx context.Context) (int64, error) // Instances across all workouts
}

// SessionRepository defines the interface for persisted workout sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.SessionRecord) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.SessionRecord, error) // Newest first
	Count(ctx context.Context) (int64, error)
}
