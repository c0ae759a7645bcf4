package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/repository"
)

type userRecord struct {
	seq  int64
	user domain.User
}

// UserRepository implements repository.UserRepository.
type UserRepository struct {
	clock *clock
	mu    sync.RWMutex
	users map[string]*userRecord
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) (string, error) {
	if user.Email == "" {
		return "", errors.New("user email is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.users {
		if rec.user.Email == user.Email || rec.user.ID == user.ID {
			return "", repository.ErrDuplicate
		}
	}

	now, seq := r.clock.next()
	user.ID = newID(user.ID)
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = &userRecord{seq: seq, user: *user}
	return user.ID, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := rec.user
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.users {
		if rec.user.Email == email {
			u := rec.user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) First(_ context.Context) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*userRecord, 0, len(r.users))
	for _, rec := range r.users {
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, repository.ErrNotFound
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })
	u := records[0].user
	return &u, nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
