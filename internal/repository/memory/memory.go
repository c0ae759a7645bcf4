// Package memory provides map-backed repositories for local development and
// tests. Every value is copied on the way in and out, so callers never share
// state with the store.
package memory

import (
	"sync"
	"time"

	"github.com/samueldk12/trainer/internal/domain"

	"github.com/google/uuid"
)

// clock is shared by the repositories of this package. It is also the
// insertion sequence used to break ties between equal timestamps.
type clock struct {
	mu  sync.Mutex
	seq int64
	now func() time.Time
}

func (c *clock) next() (time.Time, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return now().UTC(), c.seq
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneExercise(e domain.Exercise) domain.Exercise {
	e.CaloriesPerMinute = clonePtr(e.CaloriesPerMinute)
	e.Intensity = clonePtr(e.Intensity)
	return e
}

func cloneInstances(in []domain.WorkoutExercise) []domain.WorkoutExercise {
	out := make([]domain.WorkoutExercise, len(in))
	for i, ex := range in {
		ex.SourceExerciseID = clonePtr(ex.SourceExerciseID)
		ex.CaloriesPerMinute = clonePtr(ex.CaloriesPerMinute)
		ex.Execution.Timed = clonePtr(ex.Execution.Timed)
		ex.Execution.Reps = clonePtr(ex.Execution.Reps)
		out[i] = ex
	}
	return out
}

func cloneWorkout(w domain.Workout) domain.Workout {
	w.Exercises = cloneInstances(w.Exercises)
	return w
}

func cloneSession(s domain.SessionRecord) domain.SessionRecord {
	s.CompletedExerciseIDs = append([]string{}, s.CompletedExerciseIDs...)
	if s.CompletedCategories != nil {
		s.CompletedCategories = append([]domain.Category{}, s.CompletedCategories...)
	}
	return s
}

// Store bundles one repository per collection sharing a clock.
type Store struct {
	Users     *UserRepository
	Exercises *ExerciseRepository
	Workouts  *WorkoutRepository
	Sessions  *SessionRepository
}

// NewStore creates an empty store.
func NewStore() *Store {
	c := &clock{}
	return &Store{
		Users:     &UserRepository{clock: c, users: map[string]*userRecord{}},
		Exercises: &ExerciseRepository{clock: c, exercises: map[string]*exerciseRecord{}},
		Workouts:  &WorkoutRepository{clock: c, workouts: map[string]*workoutRecord{}},
		Sessions:  &SessionRepository{clock: c, sessions: map[string]*sessionRecord{}},
	}
}

// SetNow overrides the time source, for tests.
func (s *Store) SetNow(now func() time.Time) {
	c := s.Users.clock
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}
