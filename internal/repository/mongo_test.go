package repository

import (
	"context"
	"testing"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func userDoc(id, email string, onboarded bool) bson.D {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "email", Value: email},
		{Key: "password", Value: "$2a$12$hash"},
		{Key: "account_type", Value: "beta"},
		{Key: "subscription_status", Value: "trial"},
		{Key: "is_active", Value: true},
		{Key: "onboarding_completed", Value: onboarded},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := &MongoUserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(context.Background(), &model.User{ID: "u-1", Email: "ada@example.com"})
		require.NoError(mt, err)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := &MongoUserRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), &model.User{ID: "u-2", Email: "ada@example.com"})
		require.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := &MongoUserRepository{col: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, userDoc("u-1", "ada@example.com", false)))

		u, err := repo.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(mt, err)
		require.Equal(mt, "u-1", u.ID)
		require.True(mt, u.IsActive)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := &MongoUserRepository{col: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "missing")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("mark onboarding completed", func(mt *mtest.T) {
		repo := &MongoUserRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: userDoc("u-1", "ada@example.com", true)},
		})

		u, err := repo.MarkOnboardingCompleted(context.Background(), "u-1", time.Now())
		require.NoError(mt, err)
		require.True(mt, u.OnboardingCompleted)
	})

	mt.Run("update missing user", func(mt *mtest.T) {
		repo := &MongoUserRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		name := "Grace"
		_, err := repo.UpdateProfile(context.Background(), "missing", model.ProfileUpdate{FirstName: &name}, time.Now())
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := &MongoUserRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})

		require.NoError(mt, repo.Delete(context.Background(), "u-1"))
	})
}

func TestMongoSessionRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert duplicate token", func(mt *mtest.T) {
		repo := &MongoSessionRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Code: 11000, Message: "duplicate key error"}))

		err := repo.Insert(context.Background(), &model.Session{ID: "s-1", SessionToken: "tok"})
		require.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("find by token", func(mt *mtest.T) {
		repo := &MongoSessionRepository{col: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		expires := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "s-1"},
			{Key: "user_id", Value: "u-1"},
			{Key: "session_token", Value: "tok"},
			{Key: "expires", Value: expires},
		}))

		s, err := repo.FindByToken(context.Background(), "tok")
		require.NoError(mt, err)
		require.Equal(mt, "u-1", s.UserID)
		require.True(mt, s.Expires.Equal(expires))
	})

	mt.Run("find missing token", func(mt *mtest.T) {
		repo := &MongoSessionRepository{col: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByToken(context.Background(), "tok")
		require.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete expired", func(mt *mtest.T) {
		repo := &MongoSessionRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 4}})

		n, err := repo.DeleteExpired(context.Background(), time.Now())
		require.NoError(mt, err)
		require.EqualValues(mt, 4, n)
	})

	mt.Run("delete by token", func(mt *mtest.T) {
		repo := &MongoSessionRepository{col: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		require.NoError(mt, repo.DeleteByToken(context.Background(), "tok"))
	})
}
