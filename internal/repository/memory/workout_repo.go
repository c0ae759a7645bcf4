package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/repository"
)

type workoutRecord struct {
	seq     int64
	workout domain.Workout
}

// WorkoutRepository implements repository.WorkoutRepository.
type WorkoutRepository struct {
	clock    *clock
	mu       sync.RWMutex
	workouts map[string]*workoutRecord
}

var _ repository.WorkoutRepository = (*WorkoutRepository)(nil)

func (r *WorkoutRepository) Create(_ context.Context, workout *domain.Workout) (string, error) {
	if workout.OwnerID == "" || workout.Name == "" {
		return "", errors.New("workout requires ownerId and name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workouts[workout.ID]; ok {
		return "", repository.ErrDuplicate
	}

	now, seq := r.clock.next()
	workout.ID = newID(workout.ID)
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}
	workout.CreatedAt = now
	workout.UpdatedAt = now
	r.workouts[workout.ID] = &workoutRecord{seq: seq, workout: cloneWorkout(*workout)}
	return workout.ID, nil
}

func (r *WorkoutRepository) GetByID(_ context.Context, id string) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w := cloneWorkout(rec.workout)
	return &w, nil
}

func (r *WorkoutRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := []*workoutRecord{}
	for _, rec := range r.workouts {
		if rec.workout.OwnerID == ownerID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.workout.CreatedAt.Equal(b.workout.CreatedAt) {
			return a.workout.CreatedAt.After(b.workout.CreatedAt)
		}
		return a.seq > b.seq
	})

	workouts := make([]domain.Workout, len(records))
	for i, rec := range records {
		workouts[i] = cloneWorkout(rec.workout)
	}
	return workouts, nil
}

func (r *WorkoutRepository) UpdateMetadataAndExercises(_ context.Context, workout *domain.Workout) error {
	if workout.ID == "" {
		return errors.New("workout ID is required for update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.workouts[workout.ID]
	if !ok || rec.workout.OwnerID != workout.OwnerID {
		return repository.ErrNotFound
	}

	now, _ := r.clock.next()
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutExercise{}
	}
	workout.UpdatedAt = now
	rec.workout.Name = workout.Name
	rec.workout.Description = workout.Description
	rec.workout.Difficulty = workout.Difficulty
	rec.workout.Exercises = cloneInstances(workout.Exercises)
	rec.workout.UpdatedAt = now
	return nil
}

func (r *WorkoutRepository) AppendExercises(_ context.Context, workoutID string, expectedCount int, exercises []domain.WorkoutExercise) error {
	if len(exercises) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.workouts[workoutID]
	if !ok {
		return repository.ErrNotFound
	}
	if len(rec.workout.Exercises) != expectedCount {
		return repository.ErrConflict
	}
	now, _ := r.clock.next()
	rec.workout.Exercises = append(rec.workout.Exercises, cloneInstances(exercises)...)
	rec.workout.UpdatedAt = now
	return nil
}

func (r *WorkoutRepository) Delete(_ context.Context, id, ownerID string) error {
	if id == "" || ownerID == "" {
		return errors.New("workout ID and owner ID are required for deletion")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.workouts[id]
	if !ok || rec.workout.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func (r *WorkoutRepository) ExistsWithSourceExercise(_ context.Context, exerciseID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.workouts {
		for _, ex := range rec.workout.Exercises {
			if ex.SourceExerciseID != nil && *ex.SourceExerciseID == exerciseID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *WorkoutRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.workouts)), nil
}

func (r *WorkoutRepository) CountExercises(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, rec := range r.workouts {
		n += int64(len(rec.workout.Exercises))
	}
	return n, nil
}
