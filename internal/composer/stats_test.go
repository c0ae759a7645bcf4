package composer_test

import (
	"testing"

	"github.com/samueldk12/trainer/internal/composer"
	"github.com/samueldk12/trainer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	run, err := domain.NewExecutionSpec(ptr(600), nil, nil)
	require.NoError(t, err)
	jump, err := domain.NewExecutionSpec(ptr(90), nil, nil)
	require.NoError(t, err)
	squat, err := domain.NewExecutionSpec(nil, ptr(3), ptr(12))
	require.NoError(t, err)

	exercises := []domain.WorkoutExercise{
		{Name: "Run", Category: domain.CategoryCardio, CaloriesPerMinute: ptr(12.5), Execution: run},
		{Name: "Jump", Category: domain.CategoryCardio, CaloriesPerMinute: ptr(10.0), Execution: jump},
		{Name: "Squat", Category: domain.CategoryStrength, CaloriesPerMinute: ptr(7.0), Execution: squat},
	}

	s := composer.Stats(exercises)
	assert.Equal(t, 3, s.TotalExercises)
	assert.Equal(t, 690, s.TotalSeconds)
	// 10 min * 12.5 + 1.5 min * 10
	assert.Equal(t, 140, s.EstimatedCalories)
	require.Len(t, s.ByCategory, len(domain.Categories))
	assert.Equal(t, composer.CategoryCount{Category: domain.CategoryCardio, Count: 2}, s.ByCategory[0])
	assert.Equal(t, composer.CategoryCount{Category: domain.CategoryStrength, Count: 1}, s.ByCategory[1])
	assert.Equal(t, 0, s.ByCategory[2].Count)
}

func TestStats_Empty(t *testing.T) {
	s := composer.Stats(nil)
	assert.Equal(t, 0, s.TotalExercises)
	assert.Equal(t, 0, s.EstimatedCalories)
	assert.Len(t, s.ByCategory, len(domain.Categories))
}
