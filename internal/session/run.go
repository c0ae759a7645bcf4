package session

import (
	"errors"
	"time"

	"github.com/samueldk12/trainer/internal/domain"
)

var ErrEmptyWorkout = errors.New("workout has no exercises")

// ExerciseProgress is what was done on one exercise of a run.
type ExerciseProgress struct {
	ExerciseID string `json:"exerciseId"`
	Elapsed    int    `json:"elapsed"`
	Calories   int    `json:"calories"`
}

// Run is the transient state of a workout being performed.
type Run struct {
	workoutID string
	exercises []domain.WorkoutExercise
	current   int
	progress  map[string]ExerciseProgress
	completed []string
	seconds   int
	calories  int
	finished  bool
	startedAt time.Time
}

// NewRun starts a run over the workout's exercises in order.
func NewRun(w *domain.Workout, startedAt time.Time) (*Run, error) {
	exercises := w.SortedExercises()
	if len(exercises) == 0 {
		return nil, ErrEmptyWorkout
	}
	return &Run{
		workoutID: w.ID,
		exercises: exercises,
		progress:  make(map[string]ExerciseProgress),
		startedAt: startedAt,
	}, nil
}

// Current returns the exercise being performed.
func (r *Run) Current() domain.WorkoutExercise {
	return r.exercises[r.current]
}

func (r *Run) Index() int { return r.current }

// TimerConfig is the timer setup for the current exercise.
func (r *Run) TimerConfig() (durationSeconds int, caloriesPerMinute float64) {
	ex := r.Current()
	return ex.Execution.DurationSeconds(), ex.CaloriesRate()
}

// Complete records the result of the current exercise and moves on, or
// finishes the run after the last one. Completing an exercise again
// replaces its earlier result in the totals.
func (r *Run) Complete(c Completion) {
	id := r.Current().ID
	if prev, ok := r.progress[id]; ok {
		r.seconds -= prev.Elapsed
		r.calories -= prev.Calories
	} else {
		r.completed = append(r.completed, id)
	}
	r.progress[id] = ExerciseProgress{ExerciseID: id, Elapsed: c.Elapsed, Calories: c.Calories}
	r.seconds += c.Elapsed
	r.calories += c.Calories
	r.Next()
}

// Next skips to the following exercise, finishing after the last one.
func (r *Run) Next() {
	if r.current < len(r.exercises)-1 {
		r.current++
		return
	}
	r.finished = true
}

// Previous goes back one exercise; it is a no-op on the first.
func (r *Run) Previous() {
	if r.current > 0 {
		r.current--
	}
	r.finished = false
}

func (r *Run) Finished() bool { return r.finished }

// Totals returns the seconds and calories accumulated so far.
func (r *Run) Totals() (seconds, calories int) {
	return r.seconds, r.calories
}

// Completed returns the IDs of completed exercises in completion order.
func (r *Run) Completed() []string {
	out := make([]string, len(r.completed))
	copy(out, r.completed)
	return out
}

// Progress returns the recorded result for an exercise.
func (r *Run) Progress(exerciseID string) (ExerciseProgress, bool) {
	p, ok := r.progress[exerciseID]
	return p, ok
}

// Record converts the run into a persistable session.
func (r *Run) Record(ownerID string) domain.SessionRecord {
	rec := domain.SessionRecord{
		OwnerID:              ownerID,
		WorkoutID:            r.workoutID,
		CompletedExerciseIDs: r.Completed(),
		TotalSeconds:         r.seconds,
		TotalCalories:        r.calories,
		Completed:            r.finished && len(r.completed) == len(r.exercises),
		PerformedAt:          r.startedAt,
	}
	for _, ex := range r.exercises {
		if _, ok := r.progress[ex.ID]; ok {
			rec.CompletedCategories = append(rec.CompletedCategories, ex.Category)
		}
	}
	return rec
}
