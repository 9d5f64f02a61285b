package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"gorm.io/gorm"
)

type PostgresSessionRepository struct {
	db *gorm.DB
}

func NewPostgresSessionRepository(db *gorm.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Insert(ctx context.Context, session *model.Session) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "InsertSession")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(session)
	duration := time.Since(start)

	if err := translateGormError(result.Error); err != nil {
		logger.ErrorWithContext(ctx, "Failed to insert session").
			String("user_id", session.UserID).
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.DebugWithContext(ctx, "Session stored").
		String("user_id", session.UserID).
		Time("expires", session.Expires).
		Duration(duration).
		Log()

	return nil
}

func (r *PostgresSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "FindSessionByToken")

	var session model.Session
	start := time.Now()
	result := r.db.WithContext(ctx).Where("session_token = ?", token).First(&session)
	duration := time.Since(start)

	if err := translateGormError(result.Error); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.ErrorWithContext(ctx, "Failed to look up session").
				Duration(duration).
				Err(err).
				Log()
		}
		return nil, err
	}

	return &session, nil
}

func (r *PostgresSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteSessionByToken")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("session_token = ?", token).Delete(&model.Session{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete session").
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "Session deleted").
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}

func (r *PostgresSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "DeleteExpiredSessions")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("expires <= ?", now).Delete(&model.Session{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete expired sessions").
			Duration(duration).
			Err(result.Error).
			Log()
		return 0, result.Error
	}

	logger.InfoWithContext(ctx, "Expired sessions cleaned up").
		Int64("cleaned_count", result.RowsAffected).
		Duration(duration).
		Log()

	return result.RowsAffected, nil
}
