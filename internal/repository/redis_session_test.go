package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T, now time.Time) (*RedisSessionRepository, redismock.ClientMock) {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	t.Cleanup(func() { _ = rdb.Close() })

	repo := NewRedisSessionRepository(rdb)
	repo.now = func() time.Time { return now }
	return repo, mock
}

func TestRedisSessionRepository_Insert(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo, mock := newRedisRepo(t, now)

	session := &model.Session{ID: "s-1", UserID: "u-1", SessionToken: "tok", Expires: now.Add(time.Hour), CreatedAt: now}
	payload, err := json.Marshal(session)
	require.NoError(t, err)

	mock.ExpectSetNX("auth:session:tok", payload, time.Hour).SetVal(true)

	require.NoError(t, repo.Insert(context.Background(), session))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepository_Insert_Duplicate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo, mock := newRedisRepo(t, now)

	session := &model.Session{ID: "s-1", UserID: "u-1", SessionToken: "tok", Expires: now.Add(time.Minute)}
	payload, err := json.Marshal(session)
	require.NoError(t, err)

	mock.ExpectSetNX("auth:session:tok", payload, time.Minute).SetVal(false)

	require.ErrorIs(t, repo.Insert(context.Background(), session), ErrDuplicate)
}

func TestRedisSessionRepository_Insert_AlreadyExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo, _ := newRedisRepo(t, now)

	err := repo.Insert(context.Background(), &model.Session{SessionToken: "tok", Expires: now})
	require.Error(t, err)
}

func TestRedisSessionRepository_FindByToken(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo, mock := newRedisRepo(t, now)

	stored := model.Session{ID: "s-1", UserID: "u-1", SessionToken: "tok", Expires: now.Add(time.Hour)}
	payload, err := json.Marshal(stored)
	require.NoError(t, err)
	mock.ExpectGet("auth:session:tok").SetVal(string(payload))

	s, err := repo.FindByToken(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "u-1", s.UserID)
	require.True(t, s.Expires.Equal(stored.Expires))
}

func TestRedisSessionRepository_FindByToken_Missing(t *testing.T) {
	repo, mock := newRedisRepo(t, time.Now())

	mock.ExpectGet("auth:session:gone").RedisNil()

	_, err := repo.FindByToken(context.Background(), "gone")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisSessionRepository_FindByToken_Unavailable(t *testing.T) {
	repo, mock := newRedisRepo(t, time.Now())

	mock.ExpectGet("auth:session:tok").SetErr(errors.New("connection refused"))

	_, err := repo.FindByToken(context.Background(), "tok")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisSessionRepository_DeleteByToken(t *testing.T) {
	repo, mock := newRedisRepo(t, time.Now())

	mock.ExpectDel("auth:session:tok").SetVal(1)
	mock.ExpectDel("auth:session:tok").SetVal(0)

	require.NoError(t, repo.DeleteByToken(context.Background(), "tok"))
	require.NoError(t, repo.DeleteByToken(context.Background(), "tok"))
	require.NoError(t, mock.ExpectationsWereMet())
}
