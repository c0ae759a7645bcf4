package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/repository"

	log "github.com/sirupsen/logrus"
)

// SeedResult lists what Seed wrote.
type SeedResult struct {
	UserID     string   `json:"userId"`
	WorkoutIDs []string `json:"workoutIds"`
	Exercises  int      `json:"exercises"`
}

type SeedService interface {
	// Seed writes demo exercises and workouts for owner. IDs are derived from
	// the owner, so running it again overwrites that owner's documents
	// instead of adding new ones, and owners never collide.
	Seed(ctx context.Context, owner domain.Identity) (*SeedResult, error)
}

type seedService struct {
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
}

func NewSeedService(exerciseRepo repository.ExerciseRepository, workoutRepo repository.WorkoutRepository) SeedService {
	return &seedService{exerciseRepo: exerciseRepo, workoutRepo: workoutRepo}
}

func float(v float64) *float64 { return &v }

// SeedID is the ID of a seeded document for one owner.
func SeedID(ownerID, base string) string {
	return base + "-" + ownerID
}

var seedExercises = []domain.Exercise{
	{ID: "seed-running", Name: "Running", Description: "Steady pace run", Category: domain.CategoryCardio, CaloriesPerMinute: float(12.5)},
	{ID: "seed-push-ups", Name: "Push-ups", Description: "Standard push-ups", Category: domain.CategoryStrength, CaloriesPerMinute: float(8)},
	{ID: "seed-crunches", Name: "Crunches", Description: "Classic crunches", Category: domain.CategoryAbdominal, CaloriesPerMinute: float(8)},
	{ID: "seed-squats", Name: "Squats", Description: "Bodyweight squats", Category: domain.CategoryStrength, CaloriesPerMinute: float(7.5)},
}

type seedInstance struct {
	id         string
	exerciseID string
	execution  domain.ExecutionSpec
}

type seedWorkout struct {
	id          string
	name        string
	description string
	difficulty  domain.Difficulty
	exercises   []seedInstance
}

var seedWorkouts = []seedWorkout{
	{
		id:          "seed-workout-cardio",
		name:        "Cardio Workout",
		description: "Focused on cardiovascular exercises",
		difficulty:  domain.DifficultyIntermediate,
		exercises: []seedInstance{
			{id: "seed-workout-exercise-1", exerciseID: "seed-running", execution: domain.ExecutionSpec{Timed: &domain.TimedSpec{DurationSeconds: 600}}},
			{id: "seed-workout-exercise-2", exerciseID: "seed-crunches", execution: domain.ExecutionSpec{Reps: &domain.RepSpec{Series: 3, Repetitions: 15}}},
		},
	},
	{
		id:          "seed-workout-strength",
		name:        "Strength Workout",
		description: "Builds muscular strength",
		difficulty:  domain.DifficultyAdvanced,
		exercises: []seedInstance{
			{id: "seed-workout-exercise-3", exerciseID: "seed-push-ups", execution: domain.ExecutionSpec{Reps: &domain.RepSpec{Series: 4, Repetitions: 12}}},
			{id: "seed-workout-exercise-4", exerciseID: "seed-squats", execution: domain.ExecutionSpec{Reps: &domain.RepSpec{Series: 3, Repetitions: 15}}},
		},
	},
}

func (s *seedService) Seed(ctx context.Context, owner domain.Identity) (*SeedResult, error) {
	byID := make(map[string]domain.Exercise, len(seedExercises))
	for _, ex := range seedExercises {
		base := ex.ID
		ex.ID = SeedID(owner.UserID, base)
		ex.OwnerID = owner.UserID
		if err := s.upsertExercise(ctx, &ex); err != nil {
			return nil, fmt.Errorf("seeding exercise %s: %w", ex.ID, err)
		}
		byID[base] = ex
	}

	result := &SeedResult{UserID: owner.UserID, Exercises: len(seedExercises)}
	for _, sw := range seedWorkouts {
		w := &domain.Workout{
			ID:          SeedID(owner.UserID, sw.id),
			OwnerID:     owner.UserID,
			Name:        sw.name,
			Description: sw.description,
			Difficulty:  sw.difficulty,
		}
		for i, in := range sw.exercises {
			source := byID[in.exerciseID]
			sourceID := source.ID
			w.Exercises = append(w.Exercises, domain.WorkoutExercise{
				ID:                SeedID(owner.UserID, in.id),
				SourceExerciseID:  &sourceID,
				Name:              source.Name,
				Description:       source.Description,
				Category:          source.Category,
				CaloriesPerMinute: source.CaloriesPerMinute,
				Execution:         in.execution,
				Order:             i,
			})
		}
		if err := s.upsertWorkout(ctx, w); err != nil {
			return nil, fmt.Errorf("seeding workout %s: %w", w.ID, err)
		}
		result.WorkoutIDs = append(result.WorkoutIDs, w.ID)
	}

	log.WithFields(log.Fields{"owner": owner.UserID, "workouts": len(result.WorkoutIDs)}).Info("seeded demo data")
	return result, nil
}

func (s *seedService) upsertExercise(ctx context.Context, ex *domain.Exercise) error {
	_, err := s.exerciseRepo.Create(ctx, ex)
	if errors.Is(err, repository.ErrDuplicate) {
		return s.exerciseRepo.Update(ctx, ex)
	}
	return err
}

func (s *seedService) upsertWorkout(ctx context.Context, w *domain.Workout) error {
	_, err := s.workoutRepo.Create(ctx, w)
	if errors.Is(err, repository.ErrDuplicate) {
		return s.workoutRepo.UpdateMetadataAndExercises(ctx, w)
	}
	return err
}
