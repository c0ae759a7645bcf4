package composer

import (
	"errors"
	"strings"

	"github.com/samueldk12/trainer/internal/domain"
)

// Step is a stage of the new-workout flow.
type Step int

const (
	StepMetadata Step = iota
	StepExercises
)

var (
	ErrNameRequired      = errors.New("workout name is required")
	ErrDifficultyInvalid = errors.New("workout difficulty must be one of Beginner, Intermediate, Advanced")
	ErrWrongStep         = errors.New("operation not allowed in the current step")
)

// Draft is a workout being created: metadata first, then exercises.
type Draft struct {
	Name        string
	Description string
	Difficulty  string

	step       Step
	difficulty domain.Difficulty
	choices    []Choice
}

// Step reports the current stage.
func (d *Draft) Step() Step {
	return d.step
}

// Advance moves from metadata to exercises when the metadata is valid.
func (d *Draft) Advance() error {
	if d.step != StepMetadata {
		return ErrWrongStep
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	diff, ok := domain.ParseDifficulty(d.Difficulty)
	if !ok {
		return ErrDifficultyInvalid
	}
	d.difficulty = diff
	d.step = StepExercises
	return nil
}

// Back returns to the metadata step keeping chosen exercises.
func (d *Draft) Back() {
	d.step = StepMetadata
}

// Add queues exercises; only allowed once metadata was accepted.
func (d *Draft) Add(choices ...Choice) error {
	if d.step != StepExercises {
		return ErrWrongStep
	}
	d.choices = append(d.choices, choices...)
	return nil
}

// Build materializes the workout. Exercises are ordered 0..n-1.
func (d *Draft) Build(c *Composer, ownerID string) (*domain.Workout, error) {
	if d.step != StepExercises {
		return nil, ErrWrongStep
	}
	return &domain.Workout{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		Difficulty:  d.difficulty,
		Exercises:   c.ReplaceAll(d.choices),
	}, nil
}
