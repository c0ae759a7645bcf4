package search_test

import (
	"strings"
	"testing"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/search"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExercises() []domain.Exercise {
	return []domain.Exercise{
		{ID: "1", Name: "Jumping Jacks", Description: "Full body cardio", Category: domain.CategoryCardio},
		{ID: "2", Name: "Squats", Description: "Legs and glutes", Category: domain.CategoryStrength},
		{ID: "3", Name: "Plank", Description: "Hold the position, core tight", Category: domain.CategoryAbdominal},
		{ID: "4", Name: "Burpees", Category: domain.CategoryCardio},
		{ID: "5", Name: "Cat Stretch", Description: "Mobility for the SQUAT pattern", Category: domain.CategoryFlexibility},
	}
}

func ids(items []domain.Exercise) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilter_EmptyQueryAndCategory(t *testing.T) {
	items := testExercises()
	got := search.Filter(items, "", "")
	assert.Equal(t, items, got)

	got = search.Filter(items, "", search.AllCategories)
	assert.Equal(t, items, got)
}

func TestFilter_TextMatchesNameOrDescription(t *testing.T) {
	items := testExercises()

	got := search.Filter(items, "squat", "")
	assert.Equal(t, []string{"2", "5"}, ids(got))

	got = search.Filter(items, "CARDIO", "")
	assert.Equal(t, []string{"1"}, ids(got))

	got = search.Filter(items, "nothing like this", "")
	assert.Empty(t, got)
}

func TestFilter_CategoryIsExact(t *testing.T) {
	items := testExercises()

	got := search.Filter(items, "", string(domain.CategoryCardio))
	assert.Equal(t, []string{"1", "4"}, ids(got))

	got = search.Filter(items, "", "Cardio")
	assert.Empty(t, got)
}

func TestFilter_TextAndCategory(t *testing.T) {
	items := testExercises()
	got := search.Filter(items, "squat", string(domain.CategoryStrength))
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := testExercises()
	before := testExercises()

	got := search.Filter(items, "p", "")
	require.NotEmpty(t, got)
	got[0].Name = "changed"

	assert.Equal(t, before, items)
}

func TestFilter_Workouts(t *testing.T) {
	workouts := []domain.Workout{
		{ID: "a", Name: "Leg Day", Difficulty: domain.DifficultyIntermediate},
		{ID: "b", Name: "Morning cardio", Description: "easy legs", Difficulty: domain.DifficultyBeginner},
		{ID: "c", Name: "Heavy", Difficulty: domain.DifficultyAdvanced},
	}

	got := search.Filter(workouts, "leg", "")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	got = search.Filter(workouts, "leg", string(domain.DifficultyBeginner))
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestFilter_GeneratedSubset(t *testing.T) {
	gofakeit.Seed(42)
	var items []domain.Exercise
	for i := 0; i < 200; i++ {
		items = append(items, domain.Exercise{
			ID:          gofakeit.UUID(),
			Name:        gofakeit.Word() + " " + gofakeit.Word(),
			Description: gofakeit.Sentence(4),
			Category:    domain.Categories[i%len(domain.Categories)],
		})
	}

	got := search.Filter(items, "ab", "")
	var expected []domain.Exercise
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), "ab") || strings.Contains(strings.ToLower(it.Description), "ab") {
			expected = append(expected, it)
		}
	}
	assert.Equal(t, ids(expected), ids(got))
}
