// Package session runs a workout: a per-exercise timer that derives
// calories from elapsed time, and the run state across exercises.
package session

import (
	"errors"
	"math"
)

// CountUp is what Remaining reports when the timer has no target duration.
const CountUp = -1

var ErrInvalidConfig = errors.New("timer duration and calorie rate must not be negative")

// Completion is emitted when a timer finishes or is stopped.
type Completion struct {
	Elapsed  int `json:"elapsed"`
	Calories int `json:"calories"`
}

// Calories is round(elapsed/60 * caloriesPerMinute).
func Calories(elapsedSeconds int, caloriesPerMinute float64) int {
	return int(math.Round(float64(elapsedSeconds) / 60 * caloriesPerMinute))
}

// Timer tracks the elapsed time of one exercise. It does no scheduling
// itself: Tick must be called once per elapsed second while running.
// A Timer is not safe for concurrent use; Runner serializes access.
type Timer struct {
	duration  int
	rate      float64
	remaining int
	elapsed   int
	calories  int
	running   bool
}

// NewTimer returns a configured, stopped timer.
func NewTimer(durationSeconds int, caloriesPerMinute float64) (*Timer, error) {
	t := &Timer{}
	if err := t.Configure(durationSeconds, caloriesPerMinute); err != nil {
		return nil, err
	}
	return t, nil
}

// Configure sets the target duration (0 counts up with no target) and the
// calorie rate, and resets the timer.
func (t *Timer) Configure(durationSeconds int, caloriesPerMinute float64) error {
	if durationSeconds < 0 || caloriesPerMinute < 0 || math.IsNaN(caloriesPerMinute) {
		return ErrInvalidConfig
	}
	t.duration = durationSeconds
	t.rate = caloriesPerMinute
	t.Reset()
	return nil
}

func (t *Timer) Start() { t.running = true }

func (t *Timer) Pause() { t.running = false }

// Stop halts the timer and reports what was done so far.
func (t *Timer) Stop() Completion {
	t.running = false
	return t.completion()
}

// Reset stops the timer and clears elapsed time and calories.
func (t *Timer) Reset() {
	t.running = false
	t.elapsed = 0
	t.calories = 0
	if t.duration > 0 {
		t.remaining = t.duration
	} else {
		t.remaining = CountUp
	}
}

// Tick advances the timer by one second. It reports a completion when a
// timed exercise reaches its target; count-up timers never complete here.
func (t *Timer) Tick() (Completion, bool) {
	if !t.running {
		return Completion{}, false
	}
	if t.duration == 0 {
		t.advance()
		return Completion{}, false
	}
	if t.remaining > 0 {
		t.remaining--
		t.advance()
	}
	if t.remaining == 0 {
		t.running = false
		return t.completion(), true
	}
	return Completion{}, false
}

// advance recomputes calories from the total elapsed time, not per-tick deltas.
func (t *Timer) advance() {
	t.elapsed++
	t.calories = Calories(t.elapsed, t.rate)
}

func (t *Timer) completion() Completion {
	return Completion{Elapsed: t.elapsed, Calories: t.calories}
}

func (t *Timer) Duration() int       { return t.duration }
func (t *Timer) Remaining() int      { return t.remaining }
func (t *Timer) Elapsed() int        { return t.elapsed }
func (t *Timer) CaloriesBurned() int { return t.calories }
func (t *Timer) Running() bool       { return t.running }

// Snapshot is a point-in-time view of a timer.
type Snapshot struct {
	Duration  int  `json:"duration"`
	Remaining int  `json:"remaining"`
	Elapsed   int  `json:"elapsed"`
	Calories  int  `json:"calories"`
	Running   bool `json:"running"`
}

func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		Duration:  t.duration,
		Remaining: t.remaining,
		Elapsed:   t.elapsed,
		Calories:  t.calories,
		Running:   t.running,
	}
}
