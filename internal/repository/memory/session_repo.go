package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/repository"
)

type sessionRecord struct {
	seq     int64
	session domain.SessionRecord
}

// SessionRepository implements repository.SessionRepository.
type SessionRepository struct {
	clock    *clock
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Create(_ context.Context, session *domain.SessionRecord) (string, error) {
	if session.OwnerID == "" || session.WorkoutID == "" {
		return "", errors.New("session requires ownerId and workoutId")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; ok {
		return "", repository.ErrDuplicate
	}

	now, seq := r.clock.next()
	session.ID = newID(session.ID)
	session.CreatedAt = now
	if session.PerformedAt.IsZero() {
		session.PerformedAt = now
	}
	if session.CompletedExerciseIDs == nil {
		session.CompletedExerciseIDs = []string{}
	}
	r.sessions[session.ID] = &sessionRecord{seq: seq, session: cloneSession(*session)}
	return session.ID, nil
}

func (r *SessionRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.SessionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := []*sessionRecord{}
	for _, rec := range r.sessions {
		if rec.session.OwnerID == ownerID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.session.PerformedAt.Equal(b.session.PerformedAt) {
			return a.session.PerformedAt.After(b.session.PerformedAt)
		}
		return a.seq > b.seq
	})

	sessions := make([]domain.SessionRecord, len(records))
	for i, rec := range records {
		sessions[i] = cloneSession(rec.session)
	}
	return sessions, nil
}

func (r *SessionRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.sessions)), nil
}
