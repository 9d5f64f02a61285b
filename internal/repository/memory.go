package repository

import (
	"context"
	"sync"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	"gorm.io/datatypes"
)

// MemoryUserRepository keeps users in process memory. Used by
// STORAGE_DRIVER=memory and by tests. Uniqueness checks and inserts happen
// under one lock, so concurrent registrations of one email cannot both win.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return ErrDuplicate
	}
	if _, taken := r.byID[user.ID]; taken {
		return ErrDuplicate
	}

	r.byID[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *MemoryUserRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate, now time.Time) (*model.User, error) {
	return r.mutate(ctx, id, func(u *model.User) {
		update.Apply(u)
		u.UpdatedAt = now
	})
}

func (r *MemoryUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.mutate(ctx, id, func(u *model.User) {
		t := at
		u.LastLoginAt = &t
	})
	return err
}

func (r *MemoryUserRepository) MarkOnboardingCompleted(ctx context.Context, id string, now time.Time) (*model.User, error) {
	return r.mutate(ctx, id, func(u *model.User) {
		u.OnboardingCompleted = true
		u.UpdatedAt = now
	})
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
	return nil
}

// SetActive flips the account flag. There is no API for this; tests and
// operators use it directly.
func (r *MemoryUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.mutate(ctx, id, func(u *model.User) {
		u.IsActive = active
	})
	return err
}

func (r *MemoryUserRepository) mutate(ctx context.Context, id string, fn func(*model.User)) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	fn(u)
	return cloneUser(u), nil
}

func cloneUser(u *model.User) *model.User {
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	if u.Settings != nil {
		c.Settings = make(datatypes.JSONMap, len(u.Settings))
		for k, v := range u.Settings {
			c.Settings[k] = v
		}
	}
	return &c
}

// MemorySessionRepository keeps sessions in process memory.
type MemorySessionRepository struct {
	mu      sync.RWMutex
	byToken map[string]model.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		byToken: make(map[string]model.Session),
	}
}

func (r *MemorySessionRepository) Insert(ctx context.Context, session *model.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byToken[session.SessionToken]; taken {
		return ErrDuplicate
	}
	r.byToken[session.SessionToken] = *session
	return nil
}

func (r *MemorySessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemorySessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.byToken, token)
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for token, s := range r.byToken {
		if s.ExpiredAt(now) {
			delete(r.byToken, token)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored sessions.
func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byToken)
}
