package service

import (
	"errors"
	"fmt"

	"github.com/samueldk12/trainer/internal/storage"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrExerciseNotFound = errors.New("exercise not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrBuiltinImmutable = errors.New("built-in exercises can't be edited or deleted")
	ErrExerciseInUse    = errors.New("exercise is used by at least one workout and can't be deleted")
	ErrWorkoutChanged   = errors.New("workout was modified concurrently, try again")

	ErrStorageDisabled = storage.ErrStorageDisabled
)

// invalid wraps ErrValidationFailed with a message for the client.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}
