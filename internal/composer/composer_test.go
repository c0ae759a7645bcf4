package composer_test

import (
	"fmt"
	"testing"

	"github.com/samueldk12/trainer/internal/composer"
	"github.com/samueldk12/trainer/internal/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("inst-%d", n)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func orders(list []domain.WorkoutExercise) []int {
	var out []int
	for _, ex := range list {
		out = append(out, ex.Order)
	}
	return out
}

func TestAppendExercises_EmptyWorkout(t *testing.T) {
	c := &composer.Composer{NewID: sequentialIDs()}
	chosen := []composer.Choice{
		{Name: "A", Category: domain.CategoryCardio},
		{Name: "B", Category: domain.CategoryStrength},
		{Name: "C", Category: domain.CategoryAbdominal},
	}

	got := c.AppendExercises(nil, chosen)
	require.Len(t, got, 3)
	assert.Equal(t, []int{0, 1, 2}, orders(got))
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
	assert.Equal(t, "C", got[2].Name)
	assert.Equal(t, "inst-1", got[0].ID)
	assert.Equal(t, "inst-3", got[2].ID)
}

func TestAppendExercises_ContinuesAfterHighestOrder(t *testing.T) {
	c := &composer.Composer{NewID: sequentialIDs()}
	existing := []domain.WorkoutExercise{
		{ID: "x", Name: "X", Order: 2},
	}

	got := c.AppendExercises(existing, []composer.Choice{{Name: "A"}})
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ID)
	assert.Equal(t, 2, got[0].Order)
	assert.Equal(t, "A", got[1].Name)
	assert.Equal(t, 3, got[1].Order)
}

func TestAppendExercises_UnorderedExisting(t *testing.T) {
	c := &composer.Composer{NewID: sequentialIDs()}
	existing := []domain.WorkoutExercise{
		{ID: "a", Order: 5},
		{ID: "b", Order: 1},
		{ID: "c", Order: 3},
	}
	got := c.AppendExercises(existing, []composer.Choice{{Name: "N1"}, {Name: "N2"}})
	assert.Equal(t, []int{5, 1, 3, 6, 7}, orders(got))
}

func TestAppendExercises_DoesNotMutateInput(t *testing.T) {
	c := &composer.Composer{NewID: sequentialIDs()}
	existing := make([]domain.WorkoutExercise, 1, 10)
	existing[0] = domain.WorkoutExercise{ID: "keep", Order: 0}

	got := c.AppendExercises(existing, []composer.Choice{{Name: "A"}})
	require.Len(t, got, 2)
	got[0].Name = "changed"

	assert.Len(t, existing, 1)
	assert.Equal(t, "", existing[0].Name)
	// the spare capacity of existing must not have been written into
	assert.Equal(t, domain.WorkoutExercise{}, existing[:2][1])
}

func TestAppendExercises_CopiesFieldsAndBackReference(t *testing.T) {
	c := &composer.Composer{NewID: sequentialIDs()}
	exec, err := domain.NewExecutionSpec(nil, ptr(3), ptr(15))
	require.NoError(t, err)

	catalogEntry := domain.Exercise{
		ID:                "default-7",
		Name:              "Squats",
		Description:       "Legs",
		Category:          domain.CategoryStrength,
		Image:             "https://img/squat.png",
		CaloriesPerMinute: ptr(7.5),
	}

	got := c.AppendExercises(nil, []composer.Choice{composer.ChoiceFromExercise(catalogEntry, exec)})
	require.Len(t, got, 1)
	inst := got[0]
	require.NotNil(t, inst.SourceExerciseID)
	assert.Equal(t, "default-7", *inst.SourceExerciseID)
	assert.Equal(t, "Squats", inst.Name)
	assert.Equal(t, "Legs", inst.Description)
	assert.Equal(t, domain.CategoryStrength, inst.Category)
	assert.Equal(t, "https://img/squat.png", inst.Image)
	assert.Equal(t, 7.5, inst.CaloriesRate())
	require.NotNil(t, inst.Execution.Reps)
	assert.Equal(t, 3, inst.Execution.Reps.Series)
	assert.Equal(t, 15, inst.Execution.Reps.Repetitions)
	assert.Nil(t, inst.Execution.Timed)
}

func TestAppendExercises_NoDedupAcrossSources(t *testing.T) {
	c := &composer.Composer{NewID: sequentialIDs()}
	fromWorkoutA := domain.WorkoutExercise{ID: "a1", Name: "Plank", SourceExerciseID: ptr("default-3")}
	fromWorkoutB := domain.WorkoutExercise{ID: "b1", Name: "Plank", SourceExerciseID: ptr("default-3")}

	got := c.AppendExercises(nil, []composer.Choice{
		composer.ChoiceFromInstance(fromWorkoutA),
		composer.ChoiceFromInstance(fromWorkoutB),
	})
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.NotEqual(t, "a1", got[0].ID)
	assert.Equal(t, []int{0, 1}, orders(got))
}

func TestReplaceAll_StartsAtZeroWithFreshIDs(t *testing.T) {
	c := composer.New()
	chosen := []composer.Choice{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}

	got := c.ReplaceAll(chosen)
	assert.Equal(t, []int{0, 1, 2, 3}, orders(got))

	seen := map[string]bool{}
	for _, ex := range got {
		require.NotEmpty(t, ex.ID)
		assert.False(t, seen[ex.ID])
		seen[ex.ID] = true
	}
}

func TestCandidates_ExcludesReferenced(t *testing.T) {
	catalog := []domain.Exercise{
		{ID: "default-1", Name: "Run"},
		{ID: "default-2", Name: "Jump"},
		{ID: "mine-1", Name: "Custom"},
	}
	current := []domain.WorkoutExercise{
		{ID: "i1", SourceExerciseID: ptr("default-2")},
		{ID: "i2"},
	}

	got := composer.Candidates(catalog, current)
	require.Len(t, got, 2)
	assert.Equal(t, "default-1", got[0].ID)
	assert.Equal(t, "mine-1", got[1].ID)
	assert.Len(t, catalog, 3)
}

func TestCandidates_GeneratedNeverOffersReferenced(t *testing.T) {
	gofakeit.Seed(7)
	var catalog []domain.Exercise
	for i := 0; i < 50; i++ {
		catalog = append(catalog, domain.Exercise{ID: gofakeit.UUID(), Name: gofakeit.Word()})
	}
	var current []domain.WorkoutExercise
	for i := 0; i < 50; i += 3 {
		current = append(current, domain.WorkoutExercise{ID: gofakeit.UUID(), SourceExerciseID: ptr(catalog[i].ID)})
	}

	got := composer.Candidates(catalog, current)
	assert.Len(t, got, len(catalog)-len(current))
	for _, cand := range got {
		for _, cur := range current {
			assert.NotEqual(t, *cur.SourceExerciseID, cand.ID)
		}
	}
}

func TestNextOrder(t *testing.T) {
	assert.Equal(t, 0, composer.NextOrder(nil))
	assert.Equal(t, 1, composer.NextOrder([]domain.WorkoutExercise{{Order: 0}}))
	assert.Equal(t, 10, composer.NextOrder([]domain.WorkoutExercise{{Order: 9}, {Order: 2}}))
}
