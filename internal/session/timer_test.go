package session_test

import (
	"testing"

	"github.com/samueldk12/trainer/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalories(t *testing.T) {
	assert.Equal(t, 0, session.Calories(0, 10))
	assert.Equal(t, 10, session.Calories(60, 10))
	assert.Equal(t, 5, session.Calories(30, 10))
	assert.Equal(t, 0, session.Calories(600, 0))
	// 45s at 7 kcal/min = 5.25
	assert.Equal(t, 5, session.Calories(45, 7))
	// 90s at 5 kcal/min = 7.5, rounds half away from zero
	assert.Equal(t, 8, session.Calories(90, 5))
}

func TestTimer_ConfigureRejectsNegative(t *testing.T) {
	_, err := session.NewTimer(-1, 5)
	assert.ErrorIs(t, err, session.ErrInvalidConfig)

	_, err = session.NewTimer(10, -0.5)
	assert.ErrorIs(t, err, session.ErrInvalidConfig)
}

func TestTimer_NoTickWhileStopped(t *testing.T) {
	timer, err := session.NewTimer(10, 6)
	require.NoError(t, err)

	_, done := timer.Tick()
	assert.False(t, done)
	assert.Equal(t, 0, timer.Elapsed())
	assert.Equal(t, 10, timer.Remaining())
}

func TestTimer_CountdownExpires(t *testing.T) {
	const duration = 90
	timer, err := session.NewTimer(duration, 10)
	require.NoError(t, err)
	timer.Start()

	var completions []session.Completion
	for i := 0; i < duration; i++ {
		if c, done := timer.Tick(); done {
			completions = append(completions, c)
		}
	}

	require.Len(t, completions, 1)
	assert.Equal(t, duration, completions[0].Elapsed)
	assert.Equal(t, 15, completions[0].Calories)
	assert.Equal(t, 0, timer.Remaining())
	assert.False(t, timer.Running())

	// no more ticks after expiry
	_, done := timer.Tick()
	assert.False(t, done)
	assert.Equal(t, duration, timer.Elapsed())
}

func TestTimer_CountUpNeverCompletes(t *testing.T) {
	timer, err := session.NewTimer(0, 12)
	require.NoError(t, err)
	timer.Start()

	for i := 0; i < 1000; i++ {
		_, done := timer.Tick()
		require.False(t, done)
	}

	assert.Equal(t, 1000, timer.Elapsed())
	assert.Equal(t, session.CountUp, timer.Remaining())
	assert.True(t, timer.Running())
	assert.Equal(t, session.Calories(1000, 12), timer.CaloriesBurned())

	c := timer.Stop()
	assert.Equal(t, 1000, c.Elapsed)
	assert.Equal(t, 200, c.Calories)
	assert.False(t, timer.Running())
}

func TestTimer_NoRoundingDrift(t *testing.T) {
	rates := []float64{0, 0.3, 4.7, 7, 8.25, 12.5}
	for _, rate := range rates {
		timer, err := session.NewTimer(0, rate)
		require.NoError(t, err)
		timer.Start()

		for elapsed := 1; elapsed <= 3600; elapsed++ {
			timer.Tick()
			require.Equal(t, session.Calories(elapsed, rate), timer.CaloriesBurned(), "rate %v elapsed %d", rate, elapsed)
		}
	}
}

func TestTimer_PauseResume(t *testing.T) {
	timer, err := session.NewTimer(5, 60)
	require.NoError(t, err)

	timer.Start()
	timer.Start()
	timer.Tick()
	timer.Tick()
	timer.Pause()
	timer.Pause()
	timer.Tick()
	assert.Equal(t, 2, timer.Elapsed())
	assert.Equal(t, 3, timer.Remaining())

	timer.Start()
	timer.Tick()
	assert.Equal(t, 3, timer.Elapsed())
	assert.Equal(t, 3, timer.CaloriesBurned())
}

func TestTimer_ResetAndStop(t *testing.T) {
	timer, err := session.NewTimer(30, 6)
	require.NoError(t, err)
	timer.Start()
	for i := 0; i < 20; i++ {
		timer.Tick()
	}

	c := timer.Stop()
	assert.Equal(t, session.Completion{Elapsed: 20, Calories: 2}, c)

	timer.Reset()
	snap := timer.Snapshot()
	assert.Equal(t, session.Snapshot{Duration: 30, Remaining: 30}, snap)
}
