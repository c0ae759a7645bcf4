package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/samueldk12/trainer/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (tf *tickerFactory) new(time.Duration) session.Ticker {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	tf.tickers = append(tf.tickers, t)
	return t
}

func (tf *tickerFactory) last() *fakeTicker {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.tickers[len(tf.tickers)-1]
}

func (tf *tickerFactory) count() int {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return len(tf.tickers)
}

func tick(t *testing.T, ft *fakeTicker, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case ft.ch <- time.Now():
		case <-time.After(time.Second):
			t.Fatal("ticker goroutine is not receiving")
		}
	}
}

func waitElapsed(t *testing.T, r *session.Runner, elapsed int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return r.Snapshot().Elapsed == elapsed
	}, time.Second, time.Millisecond)
}

func TestRunner_CountdownCompletes(t *testing.T) {
	tf := &tickerFactory{}
	completions := make(chan session.Completion, 1)
	r := session.NewRunner(tf.new, func(c session.Completion) { completions <- c })
	defer r.Close()

	require.NoError(t, r.Load(3, 20))
	r.Start()
	tick(t, tf.last(), 3)

	select {
	case c := <-completions:
		assert.Equal(t, session.Completion{Elapsed: 3, Calories: 1}, c)
	case <-time.After(time.Second):
		t.Fatal("no completion")
	}

	require.Eventually(t, tf.last().isStopped, time.Second, time.Millisecond)
	snap := r.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 0, snap.Remaining)
}

func TestRunner_StartTwiceUsesOneTicker(t *testing.T) {
	tf := &tickerFactory{}
	r := session.NewRunner(tf.new, nil)
	defer r.Close()

	require.NoError(t, r.Load(0, 10))
	r.Start()
	r.Start()
	assert.Equal(t, 1, tf.count())

	tick(t, tf.last(), 2)
	waitElapsed(t, r, 2)
}

func TestRunner_PauseCancelsTicker(t *testing.T) {
	tf := &tickerFactory{}
	r := session.NewRunner(tf.new, nil)
	defer r.Close()

	require.NoError(t, r.Load(0, 10))
	r.Start()
	first := tf.last()
	tick(t, first, 2)
	waitElapsed(t, r, 2)

	r.Pause()
	assert.True(t, first.isStopped())
	assert.False(t, r.Snapshot().Running)

	r.Start()
	second := tf.last()
	require.NotSame(t, first, second)
	tick(t, second, 1)
	waitElapsed(t, r, 3)
}

func TestRunner_LoadCancelsPreviousExercise(t *testing.T) {
	tf := &tickerFactory{}
	r := session.NewRunner(tf.new, nil)
	defer r.Close()

	require.NoError(t, r.Load(60, 10))
	r.Start()
	first := tf.last()
	tick(t, first, 5)
	waitElapsed(t, r, 5)

	require.NoError(t, r.Load(30, 5))
	assert.True(t, first.isStopped())
	snap := r.Snapshot()
	assert.Equal(t, 0, snap.Elapsed)
	assert.Equal(t, 30, snap.Remaining)
	assert.False(t, snap.Running)

	// the cancelled ticker has no receiver any more
	select {
	case first.ch <- time.Now():
		t.Fatal("old ticker still consumed")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestRunner_StopReportsPartialCompletion(t *testing.T) {
	tf := &tickerFactory{}
	var got []session.Completion
	r := session.NewRunner(tf.new, func(c session.Completion) { got = append(got, c) })
	defer r.Close()

	require.NoError(t, r.Load(120, 6))
	r.Start()
	tick(t, tf.last(), 30)
	waitElapsed(t, r, 30)

	c := r.Stop()
	assert.Equal(t, session.Completion{Elapsed: 30, Calories: 3}, c)
	assert.Equal(t, []session.Completion{c}, got)
	assert.True(t, tf.last().isStopped())
}

func TestRunner_ResetClearsState(t *testing.T) {
	tf := &tickerFactory{}
	r := session.NewRunner(tf.new, nil)
	defer r.Close()

	require.NoError(t, r.Load(10, 6))
	r.Start()
	tick(t, tf.last(), 4)
	waitElapsed(t, r, 4)

	r.Reset()
	assert.Equal(t, session.Snapshot{Duration: 10, Remaining: 10}, r.Snapshot())
}

func TestRunner_RejectsInvalidConfig(t *testing.T) {
	r := session.NewRunner(nil, nil)
	defer r.Close()
	assert.ErrorIs(t, r.Load(-5, 1), session.ErrInvalidConfig)
}

func TestRunner_RealTicker(t *testing.T) {
	r := session.NewRunner(nil, nil)
	require.NoError(t, r.Load(0, 60))
	r.Start()
	r.Close()
	assert.False(t, r.Snapshot().Running)
}
