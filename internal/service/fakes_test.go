package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errStoreDown = errors.New("connection refused")

// brokenSessions fails every call.
type brokenSessions struct{}

func (brokenSessions) Insert(context.Context, *model.Session) error { return errStoreDown }
func (brokenSessions) FindByToken(context.Context, string) (*model.Session, error) {
	return nil, errStoreDown
}
func (brokenSessions) DeleteByToken(context.Context, string) error { return errStoreDown }
func (brokenSessions) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, errStoreDown
}

// countingHasher records how many password checks ran.
type countingHasher struct {
	*PasswordHasher
	verifies atomic.Int32
}

func (h *countingHasher) Verify(password, hash string) bool {
	h.verifies.Add(1)
	return h.PasswordHasher.Verify(password, hash)
}

// testClock is shared by every component of a test harness.
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time         { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	clock    *testClock
	users    *repository.MemoryUserRepository
	sessions *repository.MemorySessionRepository
	store    *SessionStore
	tokens   *TokenService
	auth     *AuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}

	users := repository.NewMemoryUserRepository()
	sessions := repository.NewMemorySessionRepository()

	store := NewSessionStore(sessions)
	store.now = clock.now

	tokens, err := NewTokenService(testSecret, 7*24*time.Hour)
	require.NoError(t, err)
	tokens.now = clock.now

	auth := NewAuthService(users, store, tokens, NewPasswordHasher(bcrypt.MinCost))
	auth.now = clock.now

	return &harness{clock: clock, users: users, sessions: sessions, store: store, tokens: tokens, auth: auth}
}
