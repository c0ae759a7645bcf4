package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/samueldk12/trainer/internal/composer"
	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/metrics"
	"github.com/samueldk12/trainer/internal/repository"
	"github.com/samueldk12/trainer/internal/session"
)

// ProgressWeeks is the number of weekly buckets reported by Progress.
const ProgressWeeks = 7

const week = 7 * 24 * time.Hour

// ExerciseResult is what the client reports for one exercise of a run.
// A nil ElapsedSeconds means the exercise ran its planned duration.
type ExerciseResult struct {
	ExerciseID     string
	ElapsedSeconds *int
}

// SessionInput is a performed run of a workout. Totals and calories are
// derived from the results and the workout, never taken from the client.
type SessionInput struct {
	Results     []ExerciseResult
	PerformedAt *time.Time
}

// Progress aggregates the sessions of one user. Weekly slices hold
// ProgressWeeks rolling seven-day windows ending now, oldest first.
type Progress struct {
	TotalSessions    int                      `json:"totalSessions"`
	TotalSeconds     int                      `json:"totalSeconds"`
	TotalCalories    int                      `json:"totalCalories"`
	SessionsThisWeek int                      `json:"sessionsThisWeek"`
	SecondsThisWeek  int                      `json:"secondsThisWeek"`
	SessionsPerWeek  []int                    `json:"sessionsPerWeek"`
	CaloriesPerWeek  []int                    `json:"caloriesPerWeek"`
	SecondsPerWeek   []int                    `json:"secondsPerWeek"`
	ByCategory       []composer.CategoryCount `json:"byCategory"`
	CurrentStreak    int                      `json:"currentStreak"`
	BestStreak       int                      `json:"bestStreak"`
}

type SessionService interface {
	// Save stores a run of one of the owner's workouts.
	Save(ctx context.Context, owner domain.Identity, workoutID string, in SessionInput) (*domain.SessionRecord, error)
	// List returns the owner's sessions, newest first. An empty workoutID lists all of them.
	List(ctx context.Context, owner domain.Identity, workoutID string) ([]domain.SessionRecord, error)
	Progress(ctx context.Context, owner domain.Identity) (*Progress, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	workouts    WorkoutService
	metrics     *metrics.Manager
	now         func() time.Time
}

// NewSessionService creates a new instance of sessionService. A nil now uses time.Now.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	workouts WorkoutService,
	metricsManager *metrics.Manager,
	now func() time.Time,
) SessionService {
	if now == nil {
		now = time.Now
	}
	return &sessionService{
		sessionRepo: sessionRepo,
		workouts:    workouts,
		metrics:     metricsManager,
		now:         now,
	}
}

func (s *sessionService) Save(ctx context.Context, owner domain.Identity, workoutID string, in SessionInput) (*domain.SessionRecord, error) {
	workout, err := s.workouts.Get(ctx, owner, workoutID)
	if err != nil {
		return nil, err
	}

	results := make(map[string]ExerciseResult, len(in.Results))
	for _, res := range in.Results {
		if _, ok := results[res.ExerciseID]; ok {
			return nil, invalid("exercise %q completed twice", res.ExerciseID)
		}
		if _, ok := workout.ExerciseByID(res.ExerciseID); !ok {
			return nil, invalid("exercise %q is not part of workout %s", res.ExerciseID, workout.ID)
		}
		if res.ElapsedSeconds != nil && *res.ElapsedSeconds < 0 {
			return nil, invalid("elapsedSeconds must not be negative")
		}
		results[res.ExerciseID] = res
	}

	performedAt := s.now().UTC()
	if in.PerformedAt != nil && !in.PerformedAt.IsZero() {
		performedAt = in.PerformedAt.UTC()
	}
	run, err := session.NewRun(workout, performedAt)
	if err != nil {
		if errors.Is(err, session.ErrEmptyWorkout) {
			return nil, invalid("workout %s has no exercises", workout.ID)
		}
		return nil, err
	}

	// Replay in workout order: reported exercises complete, the rest are skipped.
	for !run.Finished() {
		res, ok := results[run.Current().ID]
		if !ok {
			run.Next()
			continue
		}
		elapsed, rate := run.TimerConfig()
		if res.ElapsedSeconds != nil {
			elapsed = *res.ElapsedSeconds
		}
		run.Complete(session.Completion{Elapsed: elapsed, Calories: session.Calories(elapsed, rate)})
	}

	record := run.Record(owner.UserID)
	if _, err := s.sessionRepo.Create(ctx, &record); err != nil {
		return nil, err
	}
	s.metrics.CounterSessionsSaved.Inc()
	return &record, nil
}

func (s *sessionService) List(ctx context.Context, owner domain.Identity, workoutID string) ([]domain.SessionRecord, error) {
	if workoutID != "" {
		if _, err := s.workouts.Get(ctx, owner, workoutID); err != nil {
			return nil, err
		}
	}
	sessions, err := s.sessionRepo.ListByOwner(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	if workoutID == "" {
		return sessions, nil
	}
	out := make([]domain.SessionRecord, 0, len(sessions))
	for _, rec := range sessions {
		if rec.WorkoutID == workoutID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *sessionService) Progress(ctx context.Context, owner domain.Identity) (*Progress, error) {
	sessions, err := s.sessionRepo.ListByOwner(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	return summarize(sessions, s.now().UTC()), nil
}

func summarize(sessions []domain.SessionRecord, now time.Time) *Progress {
	p := &Progress{
		TotalSessions:   len(sessions),
		SessionsPerWeek: make([]int, ProgressWeeks),
		CaloriesPerWeek: make([]int, ProgressWeeks),
		SecondsPerWeek:  make([]int, ProgressWeeks),
	}
	counts := make(map[domain.Category]int)
	days := make(map[time.Time]bool)

	for _, rec := range sessions {
		p.TotalSeconds += rec.TotalSeconds
		p.TotalCalories += rec.TotalCalories
		for _, c := range rec.CompletedCategories {
			counts[c]++
		}
		days[dayOf(rec.PerformedAt)] = true

		if slot, ok := weekSlot(rec.PerformedAt, now); ok {
			p.SessionsPerWeek[slot]++
			p.CaloriesPerWeek[slot] += rec.TotalCalories
			p.SecondsPerWeek[slot] += rec.TotalSeconds
		}
	}
	p.SessionsThisWeek = p.SessionsPerWeek[ProgressWeeks-1]
	p.SecondsThisWeek = p.SecondsPerWeek[ProgressWeeks-1]

	for _, c := range domain.Categories {
		p.ByCategory = append(p.ByCategory, composer.CategoryCount{Category: c, Count: counts[c]})
	}
	p.CurrentStreak, p.BestStreak = streaks(days, dayOf(now))
	return p
}

// weekSlot places t in one of the rolling weeks ending at now. Times after
// now count in the current week.
func weekSlot(t, now time.Time) (int, bool) {
	if !t.Before(now) {
		return ProgressWeeks - 1, true
	}
	ago := int(now.Sub(t) / week)
	if ago >= ProgressWeeks {
		return 0, false
	}
	return ProgressWeeks - 1 - ago, true
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// streaks returns the run of consecutive training days ending today (or
// yesterday, when today has nothing yet) and the longest run overall.
func streaks(days map[time.Time]bool, today time.Time) (current, best int) {
	start := today
	if !days[start] {
		start = start.AddDate(0, 0, -1)
	}
	for d := start; days[d]; d = d.AddDate(0, 0, -1) {
		current++
	}

	ordered := make([]time.Time, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })
	run := 0
	for i, d := range ordered {
		if i > 0 && ordered[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return current, best
}
