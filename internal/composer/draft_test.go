package composer_test

import (
	"testing"

	"github.com/samueldk12/trainer/internal/composer"
	"github.com/samueldk12/trainer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_AdvanceRequiresValidMetadata(t *testing.T) {
	d := &composer.Draft{Name: "   ", Difficulty: "Beginner"}
	assert.ErrorIs(t, d.Advance(), composer.ErrNameRequired)
	assert.Equal(t, composer.StepMetadata, d.Step())

	d.Name = "Leg Day"
	d.Difficulty = "Expert"
	assert.ErrorIs(t, d.Advance(), composer.ErrDifficultyInvalid)
	assert.Equal(t, composer.StepMetadata, d.Step())

	d.Difficulty = "Intermediário"
	require.NoError(t, d.Advance())
	assert.Equal(t, composer.StepExercises, d.Step())
	assert.ErrorIs(t, d.Advance(), composer.ErrWrongStep)
}

func TestDraft_AddOnlyAfterAdvance(t *testing.T) {
	d := &composer.Draft{Name: "Leg Day", Difficulty: "Intermediate"}
	assert.ErrorIs(t, d.Add(composer.Choice{Name: "Squats"}), composer.ErrWrongStep)

	_, err := d.Build(composer.New(), "owner")
	assert.ErrorIs(t, err, composer.ErrWrongStep)
}

func TestDraft_Build(t *testing.T) {
	c := &composer.Composer{NewID: sequentialIDs()}
	d := &composer.Draft{Name: " Leg Day ", Description: "legs", Difficulty: "advanced"}
	require.NoError(t, d.Advance())
	require.NoError(t, d.Add(composer.Choice{Name: "Squats"}, composer.Choice{Name: "Lunges"}))

	d.Back()
	assert.Equal(t, composer.StepMetadata, d.Step())
	require.NoError(t, d.Advance())

	w, err := d.Build(c, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", w.Name)
	assert.Equal(t, "legs", w.Description)
	assert.Equal(t, domain.DifficultyAdvanced, w.Difficulty)
	assert.Equal(t, "owner-1", w.OwnerID)
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, 0, w.Exercises[0].Order)
	assert.Equal(t, "Lunges", w.Exercises[1].Name)
	assert.Equal(t, 1, w.Exercises[1].Order)
}
