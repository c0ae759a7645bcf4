package service_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samueldk12/trainer/internal/composer"
	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/metrics"
	"github.com/samueldk12/trainer/internal/repository"
	"github.com/samueldk12/trainer/internal/repository/memory"
	"github.com/samueldk12/trainer/internal/service"
	"github.com/samueldk12/trainer/internal/storage"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

var (
	alice = domain.Identity{UserID: "user-alice", Name: "Alice", Email: "alice@example.com"}
	bob   = domain.Identity{UserID: "user-bob", Name: "Bob", Email: "bob@example.com"}
)

// fakeStorage records object operations and serves URLs under a fixed base.
type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

const fakeBase = "https://cdn.example.com/"

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://upload.example.com/" + objectKey + "?signature=x", nil
}

func (f *fakeStorage) PublicURL(objectKey string) string { return fakeBase + objectKey }

func (f *fakeStorage) ObjectKey(url string) (string, bool) {
	if !strings.HasPrefix(url, fakeBase) {
		return "", false
	}
	return strings.TrimPrefix(url, fakeBase), true
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, objectKey)
	return nil
}

var _ storage.FileStorage = (*fakeStorage)(nil)

// failingExercises fails every list call.
type failingExercises struct {
	repository.ExerciseRepository
}

func (failingExercises) ListByOwner(context.Context, string) ([]domain.Exercise, error) {
	return nil, errors.New("connection refused")
}

// racingWorkouts lets another writer append one exercise right before each
// of the first races appends, so the caller always holds a stale count.
type racingWorkouts struct {
	repository.WorkoutRepository
	races int
}

func (r *racingWorkouts) AppendExercises(ctx context.Context, workoutID string, expectedCount int, exercises []domain.WorkoutExercise) error {
	if r.races > 0 {
		r.races--
		other := domain.WorkoutExercise{ID: "concurrent-" + strconv.Itoa(r.races), Name: "Other writer", Order: expectedCount}
		if err := r.WorkoutRepository.AppendExercises(ctx, workoutID, expectedCount, []domain.WorkoutExercise{other}); err != nil {
			return err
		}
	}
	return r.WorkoutRepository.AppendExercises(ctx, workoutID, expectedCount, exercises)
}

type fixture struct {
	store     *memory.Store
	metrics   *metrics.Manager
	storage   *fakeStorage
	exercises service.ExerciseService
	workouts  service.WorkoutService
	sessions  service.SessionService
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   memory.NewStore(),
		metrics: metrics.NewTestManager(),
		storage: &fakeStorage{},
		now:     time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC),
	}
	f.exercises = service.NewExerciseService(f.store.Exercises, f.store.Workouts, f.storage, f.metrics, time.Minute)
	f.workouts = service.NewWorkoutService(f.store.Workouts, f.exercises, composer.New(), f.metrics)
	f.sessions = service.NewSessionService(f.store.Sessions, f.workouts, f.metrics, func() time.Time { return f.now })
	return f
}

func (f *fixture) createExercise(t *testing.T, owner domain.Identity, name, category string) *domain.Exercise {
	t.Helper()
	ex, err := f.exercises.Create(context.Background(), owner, service.ExerciseInput{
		Name:              name,
		Category:          category,
		CaloriesPerMinute: ptr(6.0),
	})
	require.NoError(t, err)
	return ex
}
