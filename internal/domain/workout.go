package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Difficulty is the level of a workout.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

var difficultyLabels = map[string]Difficulty{
	"beginner":      DifficultyBeginner,
	"iniciante":     DifficultyBeginner,
	"intermediate":  DifficultyIntermediate,
	"intermediário": DifficultyIntermediate,
	"intermediario": DifficultyIntermediate,
	"advanced":      DifficultyAdvanced,
	"avançado":      DifficultyAdvanced,
	"avancado":      DifficultyAdvanced,
}

// ParseDifficulty resolves a difficulty from its canonical value or a localized label.
func ParseDifficulty(s string) (Difficulty, bool) {
	d, ok := difficultyLabels[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// DifficultyFromLabel resolves an exact label, without case folding.
func DifficultyFromLabel(s string) (Difficulty, bool) {
	d, ok := difficultyLabels[s]
	return d, ok
}

var ErrInvalidExecution = errors.New("series and repetitions must be given together and be positive; duration must be positive")

// TimedSpec is the execution of a timed (usually cardio) exercise.
type TimedSpec struct {
	DurationSeconds int `bson:"durationSeconds" json:"durationSeconds"`
}

// RepSpec is the execution of a strength-style exercise.
type RepSpec struct {
	Series      int `bson:"series" json:"series"`
	Repetitions int `bson:"repetitions" json:"repetitions"`
}

// ExecutionSpec describes how a workout exercise is performed.
// Either part may be absent; both present is allowed but uncommon.
type ExecutionSpec struct {
	Timed *TimedSpec `bson:"timed,omitempty" json:"timed,omitempty"`
	Reps  *RepSpec   `bson:"reps,omitempty" json:"reps,omitempty"`
}

// NewExecutionSpec builds an ExecutionSpec from the optional raw fields sent by clients.
// Nil or zero values mean "not set".
func NewExecutionSpec(duration, series, repetitions *int) (ExecutionSpec, error) {
	var spec ExecutionSpec
	d, s, r := intValue(duration), intValue(series), intValue(repetitions)
	if d < 0 || s < 0 || r < 0 {
		return ExecutionSpec{}, ErrInvalidExecution
	}
	if d > 0 {
		spec.Timed = &TimedSpec{DurationSeconds: d}
	}
	switch {
	case s > 0 && r > 0:
		spec.Reps = &RepSpec{Series: s, Repetitions: r}
	case s > 0 || r > 0:
		return ExecutionSpec{}, ErrInvalidExecution
	}
	return spec, nil
}

// DurationSeconds returns the timed duration, or 0 for rep-based exercises.
func (s ExecutionSpec) DurationSeconds() int {
	if s.Timed == nil {
		return 0
	}
	return s.Timed.DurationSeconds
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// WorkoutExercise is an exercise materialized inside one workout.
// Display fields are copied when the exercise is added, so the instance
// survives later edits or deletion of its catalog source.
type WorkoutExercise struct {
	ID                string        `bson:"id" json:"id"`
	SourceExerciseID  *string       `bson:"sourceExerciseId,omitempty" json:"sourceExerciseId,omitempty"`
	Name              string        `bson:"name" json:"name"`
	Description       string        `bson:"description,omitempty" json:"description,omitempty"`
	Category          Category      `bson:"category" json:"category"`
	Image             string        `bson:"image,omitempty" json:"image,omitempty"`
	CaloriesPerMinute *float64      `bson:"caloriesPerMinute,omitempty" json:"caloriesPerMinute,omitempty"`
	Execution         ExecutionSpec `bson:"execution" json:"execution"`
	Order             int           `bson:"order" json:"order"`
}

// CaloriesRate returns the calories-per-minute rate, 0 when absent.
func (w WorkoutExercise) CaloriesRate() float64 {
	if w.CaloriesPerMinute == nil {
		return 0
	}
	return *w.CaloriesPerMinute
}

// Workout is a named, ordered collection of exercises owned by one user.
// Exercises are embedded, deleting the workout deletes them too.
type Workout struct {
	ID          string            `bson:"_id" json:"id"`
	OwnerID     string            `bson:"ownerId" json:"ownerId"`
	Name        string            `bson:"name" json:"name"`
	Description string            `bson:"description,omitempty" json:"description,omitempty"`
	Difficulty  Difficulty        `bson:"difficulty" json:"difficulty"`
	Exercises   []WorkoutExercise `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// SortedExercises returns a copy of the exercises ordered by Order.
func (w *Workout) SortedExercises() []WorkoutExercise {
	out := make([]WorkoutExercise, len(w.Exercises))
	copy(out, w.Exercises)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// ExerciseByID finds an instance of this workout.
func (w *Workout) ExerciseByID(id string) (WorkoutExercise, bool) {
	for _, ex := range w.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return WorkoutExercise{}, false
}

func (w Workout) SearchName() string        { return w.Name }
func (w Workout) SearchDescription() string { return w.Description }
func (w Workout) SearchCategory() string    { return string(w.Difficulty) }
