package service

import (
	"context"
	"errors"
	"strings"

	"github.com/samueldk12/trainer/internal/composer"
	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/metrics"
	"github.com/samueldk12/trainer/internal/repository"
	"github.com/samueldk12/trainer/internal/search"

	log "github.com/sirupsen/logrus"
)

// ExerciseChoice is one exercise sent by a client to be placed in a workout.
// It starts from a catalog exercise (ExerciseID, which must exist), from an
// instance of another of the owner's workouts (SourceWorkoutID and
// InstanceID), or from nothing. LegacyID is an id that may name a catalog
// exercise; when it does not, the choice is taken as sent. Fields left empty
// are filled in from the source.
type ExerciseChoice struct {
	ExerciseID        string
	LegacyID          string
	SourceWorkoutID   string
	InstanceID        string
	Name              string
	Description       string
	Category          string
	Image             string
	CaloriesPerMinute *float64
	Duration          *int
	Series            *int
	Repetitions       *int
}

// WorkoutInput carries the editable fields of a workout.
type WorkoutInput struct {
	Name        string
	Description string
	Difficulty  string
	Exercises   []ExerciseChoice
}

type WorkoutService interface {
	List(ctx context.Context, owner domain.Identity, query, difficulty string) ([]domain.Workout, error)
	Get(ctx context.Context, owner domain.Identity, workoutID string) (*domain.Workout, error)
	Create(ctx context.Context, owner domain.Identity, in WorkoutInput) (*domain.Workout, error)
	// Update replaces the metadata and the whole exercise list. Previous
	// exercise instance IDs are discarded.
	Update(ctx context.Context, owner domain.Identity, workoutID string, in WorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, owner domain.Identity, workoutID string) error
	AddExercises(ctx context.Context, owner domain.Identity, workoutID string, choices []ExerciseChoice) (*domain.Workout, error)
	// Candidates lists the catalog exercises not yet referenced by the workout.
	Candidates(ctx context.Context, owner domain.Identity, workoutID, query, category string) ([]domain.Exercise, error)
	Stats(ctx context.Context, owner domain.Identity, workoutID string) (composer.Summary, error)
}

// appendAttempts bounds the retries of AddExercises when concurrent
// appends keep changing the workout.
const appendAttempts = 3

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	exercises   ExerciseService
	composer    *composer.Composer
	metrics     *metrics.Manager
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	exercises ExerciseService,
	c *composer.Composer,
	metricsManager *metrics.Manager,
) WorkoutService {
	if c == nil {
		c = composer.New()
	}
	return &workoutService{
		workoutRepo: workoutRepo,
		exercises:   exercises,
		composer:    c,
		metrics:     metricsManager,
	}
}

// sorted returns w with its exercises in execution order.
func sorted(w *domain.Workout) *domain.Workout {
	w.Exercises = w.SortedExercises()
	return w
}

func (s *workoutService) List(ctx context.Context, owner domain.Identity, query, difficulty string) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.ListByOwner(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	if d, ok := domain.DifficultyFromLabel(difficulty); ok {
		difficulty = string(d)
	}
	workouts = search.Filter(workouts, query, difficulty)
	for i := range workouts {
		sorted(&workouts[i])
	}
	return workouts, nil
}

func (s *workoutService) Get(ctx context.Context, owner domain.Identity, workoutID string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.OwnerID != owner.UserID {
		return nil, ErrWorkoutNotFound
	}
	return sorted(workout), nil
}

// draft runs the input through the metadata step and queues its exercises.
func (s *workoutService) draft(ctx context.Context, owner domain.Identity, in WorkoutInput) (*composer.Draft, error) {
	d := &composer.Draft{Name: in.Name, Description: in.Description, Difficulty: in.Difficulty}
	if err := d.Advance(); err != nil {
		return nil, invalid("%s", err.Error())
	}
	choices, err := s.resolveChoices(ctx, owner, in.Exercises)
	if err != nil {
		return nil, err
	}
	if err := d.Add(choices...); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *workoutService) Create(ctx context.Context, owner domain.Identity, in WorkoutInput) (*domain.Workout, error) {
	d, err := s.draft(ctx, owner, in)
	if err != nil {
		return nil, err
	}
	workout, err := d.Build(s.composer, owner.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	s.metrics.CounterWorkoutsCreated.Inc()
	return workout, nil
}

func (s *workoutService) Update(ctx context.Context, owner domain.Identity, workoutID string, in WorkoutInput) (*domain.Workout, error) {
	d, err := s.draft(ctx, owner, in)
	if err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, owner, workoutID)
	if err != nil {
		return nil, err
	}
	replacement, err := d.Build(s.composer, owner.UserID)
	if err != nil {
		return nil, err
	}

	existing.Name = replacement.Name
	existing.Description = replacement.Description
	existing.Difficulty = replacement.Difficulty
	existing.Exercises = replacement.Exercises
	if err := s.workoutRepo.UpdateMetadataAndExercises(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return existing, nil
}

func (s *workoutService) Delete(ctx context.Context, owner domain.Identity, workoutID string) error {
	err := s.workoutRepo.Delete(ctx, workoutID, owner.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

func (s *workoutService) AddExercises(ctx context.Context, owner domain.Identity, workoutID string, choices []ExerciseChoice) (*domain.Workout, error) {
	if len(choices) == 0 {
		return nil, invalid("at least one exercise is required")
	}
	workout, err := s.Get(ctx, owner, workoutID)
	if err != nil {
		return nil, err
	}
	resolved, err := s.resolveChoices(ctx, owner, choices)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < appendAttempts; attempt++ {
		if attempt > 0 {
			if workout, err = s.Get(ctx, owner, workoutID); err != nil {
				return nil, err
			}
		}
		added := s.composer.NewInstances(workout.Exercises, resolved)
		err = s.workoutRepo.AppendExercises(ctx, workoutID, len(workout.Exercises), added)
		switch {
		case err == nil:
			s.metrics.CounterExercisesAdded.Add(float64(len(added)))
			return s.Get(ctx, owner, workoutID)
		case errors.Is(err, repository.ErrConflict):
			log.WithField("workoutId", workoutID).Debug("workout changed while appending, retrying")
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrWorkoutNotFound
		default:
			return nil, err
		}
	}
	return nil, ErrWorkoutChanged
}

func (s *workoutService) Candidates(ctx context.Context, owner domain.Identity, workoutID, query, category string) ([]domain.Exercise, error) {
	workout, err := s.Get(ctx, owner, workoutID)
	if err != nil {
		return nil, err
	}
	catalogExercises, err := s.exercises.Selectable(ctx, owner)
	if err != nil {
		return nil, err
	}
	candidates := composer.Candidates(catalogExercises, workout.Exercises)
	return search.Filter(candidates, query, normalizeCategoryFilter(category)), nil
}

func (s *workoutService) Stats(ctx context.Context, owner domain.Identity, workoutID string) (composer.Summary, error) {
	workout, err := s.Get(ctx, owner, workoutID)
	if err != nil {
		return composer.Summary{}, err
	}
	return composer.Stats(workout.Exercises), nil
}

func (s *workoutService) resolveChoices(ctx context.Context, owner domain.Identity, choices []ExerciseChoice) ([]composer.Choice, error) {
	out := make([]composer.Choice, 0, len(choices))
	for i, ch := range choices {
		c, err := s.resolveChoice(ctx, owner, ch)
		if err != nil {
			if errors.Is(err, ErrValidationFailed) {
				return nil, invalid("exercise %d: %s", i+1, strings.TrimPrefix(err.Error(), ErrValidationFailed.Error()+": "))
			}
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *workoutService) resolveChoice(ctx context.Context, owner domain.Identity, ch ExerciseChoice) (composer.Choice, error) {
	execution, err := domain.NewExecutionSpec(ch.Duration, ch.Series, ch.Repetitions)
	if err != nil {
		return composer.Choice{}, invalid("%s", err.Error())
	}

	var c composer.Choice
	switch {
	case ch.SourceWorkoutID != "" || ch.InstanceID != "":
		if c, err = s.copyInstance(ctx, owner, ch.SourceWorkoutID, ch.InstanceID); err != nil {
			return composer.Choice{}, err
		}
		if ch.Duration != nil || ch.Series != nil || ch.Repetitions != nil {
			c.Execution = execution
		}
	case ch.ExerciseID != "":
		source, err := s.exercises.Get(ctx, owner, ch.ExerciseID)
		if err != nil {
			if errors.Is(err, ErrExerciseNotFound) {
				return composer.Choice{}, invalid("exercise %q not found", ch.ExerciseID)
			}
			return composer.Choice{}, err
		}
		c = composer.ChoiceFromExercise(*source, execution)
	case ch.LegacyID != "":
		source, err := s.exercises.Get(ctx, owner, ch.LegacyID)
		switch {
		case err == nil:
			c = composer.ChoiceFromExercise(*source, execution)
		case errors.Is(err, ErrExerciseNotFound):
			c.Execution = execution
		default:
			return composer.Choice{}, err
		}
	default:
		c.Execution = execution
	}

	if name := strings.TrimSpace(ch.Name); name != "" {
		c.Name = name
	}
	if ch.Description != "" {
		c.Description = ch.Description
	}
	if ch.Image != "" {
		c.Image = ch.Image
	}
	if ch.CaloriesPerMinute != nil {
		if *ch.CaloriesPerMinute < 0 {
			return composer.Choice{}, invalid("caloriesPerMinute must not be negative")
		}
		rate := *ch.CaloriesPerMinute
		c.CaloriesPerMinute = &rate
	}
	if strings.TrimSpace(ch.Category) != "" {
		category, ok := domain.ParseCategory(ch.Category)
		if !ok {
			return composer.Choice{}, invalid("unknown category %q", ch.Category)
		}
		c.Category = category
	}

	if c.Name == "" {
		return composer.Choice{}, invalid("name is required")
	}
	if c.Category == "" {
		c.Category = inferCategory(c.Execution)
	}
	return c, nil
}

// copyInstance builds a choice from an exercise of another of the owner's workouts.
func (s *workoutService) copyInstance(ctx context.Context, owner domain.Identity, workoutID, instanceID string) (composer.Choice, error) {
	if workoutID == "" || instanceID == "" {
		return composer.Choice{}, invalid("sourceWorkoutId and instanceId must be given together")
	}
	source, err := s.Get(ctx, owner, workoutID)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return composer.Choice{}, invalid("source workout %q not found", workoutID)
		}
		return composer.Choice{}, err
	}
	instance, ok := source.ExerciseByID(instanceID)
	if !ok {
		return composer.Choice{}, invalid("exercise %q is not part of workout %s", instanceID, workoutID)
	}
	return composer.ChoiceFromInstance(instance), nil
}

// inferCategory picks a category for ad-hoc exercises sent without one:
// timed-only exercises are cardio, everything else strength.
func inferCategory(execution domain.ExecutionSpec) domain.Category {
	if execution.Timed != nil && execution.Reps == nil {
		return domain.CategoryCardio
	}
	return domain.CategoryStrength
}
