package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/errors"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/repository"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/google/uuid"
)

// SessionStore records which issued tokens are still live.
type SessionStore struct {
	repo repository.SessionRepository
	now  func() time.Time
}

func NewSessionStore(repo repository.SessionRepository) *SessionStore {
	return &SessionStore{repo: repo, now: time.Now}
}

// Create stores a session for userID that expires ttl from now.
func (s *SessionStore) Create(ctx context.Context, userID, token string, ttl time.Duration) (*model.Session, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "SessionStore.Create")

	if ttl <= 0 {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput, fmt.Errorf("session ttl must be positive, got %s", ttl))
	}

	now := s.now()
	session := &model.Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		SessionToken: token,
		Expires:      now.Add(ttl),
		CreatedAt:    now,
	}

	if err := s.repo.Insert(ctx, session); err != nil {
		logger.ErrorWithContext(ctx, "Failed to store session").
			String("user_id", userID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrStorageFailure, err)
	}
	return session, nil
}

// Validate succeeds only when token has a session that belongs to userID
// and has not yet expired.
func (s *SessionStore) Validate(ctx context.Context, token, userID string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "SessionStore.Validate")

	session, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrSessionExpiredOrNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to load session").
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrStorageFailure, err)
	}

	if session.UserID != userID {
		logger.WarnWithContext(ctx, "Session bound to a different user").
			String("claimed_user_id", userID).
			Log()
		return apperrors.ErrSessionExpiredOrNotFound
	}

	if session.ExpiredAt(s.now()) {
		if err := s.repo.DeleteByToken(ctx, token); err != nil {
			logger.WarnWithContext(ctx, "Failed to drop expired session").
				String("user_id", userID).
				Err(err).
				Log()
		}
		return apperrors.ErrSessionExpiredOrNotFound
	}
	return nil
}

// Revoke deletes the session for token. Unknown tokens are not an error.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "SessionStore.Revoke")

	if err := s.repo.DeleteByToken(ctx, token); err != nil {
		logger.ErrorWithContext(ctx, "Failed to revoke session").
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrStorageFailure, err)
	}
	return nil
}

// Sweep removes every expired session and reports how many were removed.
func (s *SessionStore) Sweep(ctx context.Context) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "SessionStore.Sweep")

	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to sweep expired sessions").
			Err(err).
			Log()
		return 0, apperrors.WrapError(apperrors.ErrStorageFailure, err)
	}
	return n, nil
}
