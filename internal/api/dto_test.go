package api

import (
	"encoding/json"
	"testing"

	"github.com/samueldk12/trainer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseRequest_Aliases(t *testing.T) {
	var req ExerciseRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"nome":"Flexões","descricao":"padrão","tipoExercicio":"força",
		"caloriasPorMinuto":8,"imagem":"http://img","nivelForca":4}`), &req))
	assert.Equal(t, "Flexões", req.Name)
	assert.Equal(t, "padrão", req.Description)
	assert.Equal(t, "força", req.Category)
	assert.Equal(t, "http://img", req.Image)
	require.NotNil(t, req.CaloriesPerMinute)
	assert.Equal(t, 8.0, *req.CaloriesPerMinute)
	require.NotNil(t, req.Intensity)
	assert.Equal(t, 4, *req.Intensity)

	var both ExerciseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Push-up","nome":"Flexões","caloriesPerMinute":7,"caloriasPorMinuto":8}`), &both))
	assert.Equal(t, "Push-up", both.Name)
	assert.Equal(t, 7.0, *both.CaloriesPerMinute)
}

func TestWorkoutRequest_Aliases(t *testing.T) {
	var req WorkoutRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"nome":"Treino","nivelDificuldade":"Avançado",
		"exercicios":[{"exercicioBaseId":"default-3","duracao":300},{"nome":"Agachamento","series":3,"repeticoes":15}]}`), &req))
	assert.Equal(t, "Treino", req.Name)
	assert.Equal(t, "Avançado", req.Difficulty)
	require.Len(t, req.Exercises, 2)
	assert.Equal(t, "default-3", req.Exercises[0].ExerciseID)
	assert.Equal(t, 300, *req.Exercises[0].Duration)
	assert.Equal(t, "Agachamento", req.Exercises[1].Name)
	assert.Equal(t, 15, *req.Exercises[1].Repetitions)

	in := req.toInput()
	assert.Equal(t, "default-3", in.Exercises[0].ExerciseID)
	assert.Equal(t, 3, *in.Exercises[1].Series)

	var add AddExercisesRequest
	require.NoError(t, json.Unmarshal([]byte(`{"exercicios":[{"id":"x"}]}`), &add))
	require.Len(t, add.Exercises, 1)
	assert.Equal(t, "x", add.Exercises[0].ID)
}

func TestExerciseChoiceRequest_Identifiers(t *testing.T) {
	var req AddExercisesRequest
	require.NoError(t, json.Unmarshal([]byte(`{"exercises":[
		{"id":"instance-1","exerciseId":"default-1","exercicioBaseId":"default-9"},
		{"id":"default-2"},
		{"sourceWorkoutId":"w1","instanceId":"instance-7"}]}`), &req))

	choices := toChoices(req.Exercises)
	require.Len(t, choices, 3)
	assert.Equal(t, "default-1", choices[0].ExerciseID, "exerciseId wins over its alias")
	assert.Empty(t, choices[0].LegacyID, "the instance id is ignored when a back-reference is sent")
	assert.Empty(t, choices[1].ExerciseID)
	assert.Equal(t, "default-2", choices[1].LegacyID)
	assert.Equal(t, "w1", choices[2].SourceWorkoutID)
	assert.Equal(t, "instance-7", choices[2].InstanceID)
}

func TestMapWorkoutToResponse(t *testing.T) {
	source := "default-1"
	w := &domain.Workout{
		ID:   "w1",
		Name: "Mixed",
		Exercises: []domain.WorkoutExercise{
			{ID: "b", Name: "Squats", Order: 1, Execution: domain.ExecutionSpec{Reps: &domain.RepSpec{Series: 3, Repetitions: 10}}},
			{ID: "a", Name: "Run", Order: 0, SourceExerciseID: &source, Execution: domain.ExecutionSpec{Timed: &domain.TimedSpec{DurationSeconds: 60}}},
		},
	}

	resp := MapWorkoutToResponse(w)
	require.Len(t, resp.Exercises, 2)
	assert.Equal(t, "a", resp.Exercises[0].ID)
	assert.Equal(t, 60, *resp.Exercises[0].Duration)
	assert.Nil(t, resp.Exercises[0].Series)
	assert.Equal(t, &source, resp.Exercises[0].ExerciseID)
	assert.Equal(t, 3, *resp.Exercises[1].Series)
	assert.Nil(t, resp.Exercises[1].Duration)

	empty := MapWorkoutToResponse(&domain.Workout{ID: "w2"})
	assert.NotNil(t, empty.Exercises)
}
