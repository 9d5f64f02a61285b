package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
)

// Sentinel errors shared by every backend. Anything else a repository
// returns is an infrastructure failure.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository persists user accounts. Email uniqueness must be enforced
// atomically by the backend: Create returns ErrDuplicate when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate, now time.Time) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	MarkOnboardingCompleted(ctx context.Context, id string, now time.Time) (*model.User, error)
	// Delete removes a user. Deleting a missing user is not an error.
	Delete(ctx context.Context, id string) error
}

// SessionRepository persists sessions keyed by their token.
type SessionRepository interface {
	Insert(ctx context.Context, session *model.Session) error
	FindByToken(ctx context.Context, token string) (*model.Session, error)
	// DeleteByToken is idempotent: deleting a missing token is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired removes sessions with expires <= now and reports how many went.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
