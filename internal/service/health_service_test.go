package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/repository"
	"github.com/samueldk12/trainer/internal/repository/memory"
	"github.com/samueldk12/trainer/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenUsers struct {
	repository.UserRepository
}

func (brokenUsers) Count(context.Context) (int64, error) {
	return 0, errors.New("server selection timeout")
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.Users.Create(ctx, &domain.User{Name: alice.Name, Email: alice.Email})
	require.NoError(t, err)
	f.createExercise(t, alice, "Burpee", "cardio")
	f.createWorkout(t, alice)

	report := service.NewHealthService(f.store.Users, f.store.Exercises, f.store.Workouts).Check(ctx)
	assert.Equal(t, service.HealthStatusOK, report.Status)
	require.NotNil(t, report.Database)
	assert.True(t, report.Database.Connected)
	assert.EqualValues(t, 1, report.Database.UsersCount)
	assert.EqualValues(t, 1, report.Database.WorkoutsCount)
	assert.EqualValues(t, 2, report.Database.WorkoutExercisesCount)
	assert.EqualValues(t, 1, report.Database.ExercisesCount)
	assert.False(t, report.Timestamp.IsZero())
}

func TestHealthCheck_Failure(t *testing.T) {
	store := memory.NewStore()
	report := service.NewHealthService(brokenUsers{store.Users}, store.Exercises, store.Workouts).Check(context.Background())
	assert.Equal(t, service.HealthStatusError, report.Status)
	assert.Nil(t, report.Database)
	assert.Contains(t, report.Error, "server selection timeout")
}
