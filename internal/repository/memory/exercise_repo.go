package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/repository"
)

type exerciseRecord struct {
	seq      int64
	exercise domain.Exercise
}

// ExerciseRepository implements repository.ExerciseRepository.
type ExerciseRepository struct {
	clock     *clock
	mu        sync.RWMutex
	exercises map[string]*exerciseRecord
}

var _ repository.ExerciseRepository = (*ExerciseRepository)(nil)

func (r *ExerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || exercise.OwnerID == "" {
		return "", errors.New("exercise name and owner ID are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[exercise.ID]; ok {
		return "", repository.ErrDuplicate
	}

	now, seq := r.clock.next()
	exercise.ID = newID(exercise.ID)
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.exercises[exercise.ID] = &exerciseRecord{seq: seq, exercise: cloneExercise(*exercise)}
	return exercise.ID, nil
}

func (r *ExerciseRepository) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	ex := cloneExercise(rec.exercise)
	return &ex, nil
}

func (r *ExerciseRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exercises := []domain.Exercise{}
	for _, rec := range r.exercises {
		if rec.exercise.OwnerID == ownerID {
			exercises = append(exercises, cloneExercise(rec.exercise))
		}
	}
	sort.SliceStable(exercises, func(i, j int) bool {
		if exercises[i].Name != exercises[j].Name {
			return exercises[i].Name < exercises[j].Name
		}
		return exercises[i].ID < exercises[j].ID
	})
	return exercises, nil
}

func (r *ExerciseRepository) Update(_ context.Context, exercise *domain.Exercise) error {
	if exercise.ID == "" {
		return errors.New("exercise ID is required for update")
	}
	if exercise.Name == "" {
		return errors.New("exercise name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.exercises[exercise.ID]
	if !ok || rec.exercise.OwnerID != exercise.OwnerID {
		return repository.ErrNotFound
	}

	now, _ := r.clock.next()
	exercise.UpdatedAt = now
	updated := cloneExercise(*exercise)
	updated.CreatedAt = rec.exercise.CreatedAt
	rec.exercise = updated
	return nil
}

func (r *ExerciseRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.exercises[id]
	if !ok || rec.exercise.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r *ExerciseRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.exercises)), nil
}
