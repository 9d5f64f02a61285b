package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository keeps one key per session with a TTL matching
// Expires, so Redis itself reaps expired sessions.
type RedisSessionRepository struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewRedisSessionRepository(rdb redis.Cmdable) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, now: time.Now}
}

func sessionKey(token string) string {
	return constants.KeySessionPrefix + token
}

func (r *RedisSessionRepository) Insert(ctx context.Context, session *model.Session) error {
	ttl := session.Expires.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("redis insert session: already expired at %s", session.Expires)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis encode session: %w", err)
	}

	ok, err := r.rdb.SetNX(ctx, sessionKey(session.SessionToken), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis insert session: %w", err)
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

func (r *RedisSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("redis decode session: %w", err)
	}
	return &session, nil
}

func (r *RedisSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := r.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: keys expire on their own.
func (r *RedisSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
