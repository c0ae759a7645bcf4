package session

import (
	"context"
	"sync"
	"time"
)

// TickInterval is how often a running timer advances.
const TickInterval = time.Second

// Ticker is the periodic source driving a Runner.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

// NewStdTicker wraps time.NewTicker.
func NewStdTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

// Runner drives a Timer with at most one live ticker goroutine. Pausing,
// stopping, resetting, loading another exercise and closing all cancel the
// ticker and wait for its goroutine to exit before returning.
type Runner struct {
	mu         sync.Mutex
	timer      *Timer
	newTicker  TickerFunc
	onComplete func(Completion)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a Runner. onComplete is called, outside the Runner's
// lock, on natural expiry and on Stop. newTicker may be nil.
func NewRunner(newTicker TickerFunc, onComplete func(Completion)) *Runner {
	if newTicker == nil {
		newTicker = NewStdTicker
	}
	if onComplete == nil {
		onComplete = func(Completion) {}
	}
	return &Runner{
		timer:      &Timer{remaining: CountUp},
		newTicker:  newTicker,
		onComplete: onComplete,
	}
}

// Load configures the timer for a new exercise, cancelling any pending ticks.
func (r *Runner) Load(durationSeconds int, caloriesPerMinute float64) error {
	r.halt()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Configure(durationSeconds, caloriesPerMinute)
}

// Start begins ticking. It is a no-op while already running.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	r.timer.Start()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	go r.loop(ctx, cancel, r.newTicker(TickInterval), done)
}

func (r *Runner) Pause() {
	r.halt()
	r.mu.Lock()
	r.timer.Pause()
	r.mu.Unlock()
}

// Stop halts the timer and reports the partial completion.
func (r *Runner) Stop() Completion {
	r.halt()
	r.mu.Lock()
	c := r.timer.Stop()
	r.mu.Unlock()
	r.onComplete(c)
	return c
}

func (r *Runner) Reset() {
	r.halt()
	r.mu.Lock()
	r.timer.Reset()
	r.mu.Unlock()
}

// Close releases the ticker. The Runner may be reused after Close.
func (r *Runner) Close() {
	r.Pause()
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Snapshot()
}

// halt cancels the ticker goroutine, if any, and waits for it to exit.
func (r *Runner) halt() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Runner) loop(ctx context.Context, cancel context.CancelFunc, ticker Ticker, done chan struct{}) {
	defer close(done)
	defer cancel()
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			r.mu.Lock()
			if ctx.Err() != nil {
				r.mu.Unlock()
				return
			}
			c, finished := r.timer.Tick()
			if finished && r.done == done {
				r.cancel, r.done = nil, nil
			}
			r.mu.Unlock()
			if finished {
				r.onComplete(c)
				return
			}
		}
	}
}
