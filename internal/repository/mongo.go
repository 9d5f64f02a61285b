package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository stores users as documents keyed by their UUID.
type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection(constants.UsersTable)}
}

// EnsureIndexes creates the unique email index that backs ErrDuplicate.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_users_email"),
	})
	if err != nil {
		return fmt.Errorf("mongo users index: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Create")

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		logger.ErrorWithContext(ctx, "Failed to insert user document").
			Err(err).
			Log()
		return fmt.Errorf("mongo insert user: %w", err)
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("user_id", user.ID).
		Log()
	return nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctxutil.WithFunction(ctx, "repository", "GetByID"), bson.M{"_id": id})
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctxutil.WithFunction(ctx, "repository", "GetByEmail"), bson.M{"email": email})
}

func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate, now time.Time) (*model.User, error) {
	set := bson.M{"updated_at": now}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.ProfileImageURL != nil {
		set["profile_image_url"] = *update.ProfileImageURL
	}
	if update.Settings != nil {
		set["settings"] = update.Settings
	}

	return r.findOneAndSet(ctxutil.WithFunction(ctx, "repository", "UpdateProfile"), id, set)
}

func (r *MongoUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.findOneAndSet(ctxutil.WithFunction(ctx, "repository", "UpdateLastLogin"), id, bson.M{"last_login_at": at})
	return err
}

func (r *MongoUserRepository) MarkOnboardingCompleted(ctx context.Context, id string, now time.Time) (*model.User, error) {
	return r.findOneAndSet(ctxutil.WithFunction(ctx, "repository", "MarkOnboardingCompleted"), id, bson.M{
		"onboarding_completed": true,
		"updated_at":           now,
	})
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Delete")

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		logger.ErrorWithContext(ctx, "Failed to delete user document").
			String("user_id", id).
			Err(err).
			Log()
		return fmt.Errorf("mongo delete user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to find user document").
			Err(err).
			Log()
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) findOneAndSet(ctx context.Context, id string, set bson.M) (*model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user model.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		logger.ErrorWithContext(ctx, "Failed to update user document").
			String("user_id", id).
			Err(err).
			Log()
		return nil, fmt.Errorf("mongo update user: %w", err)
	}
	return &user, nil
}

// MongoSessionRepository stores sessions as documents. A TTL index on
// expires lets the server reap rows on its own; DeleteExpired covers the
// gap until the TTL monitor runs.
type MongoSessionRepository struct {
	col *mongo.Collection
}

func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{col: db.Collection(constants.SessionsTable)}
}

func (r *MongoSessionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_auth_sessions_token"),
		},
		{
			Keys:    bson.D{{Key: "expires", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_auth_sessions_expires"),
		},
	})
	if err != nil {
		return fmt.Errorf("mongo sessions index: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) Insert(ctx context.Context, session *model.Session) error {
	if _, err := r.col.InsertOne(ctx, session); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("mongo insert session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	if err := r.col.FindOne(ctx, bson.M{"session_token": token}).Decode(&session); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo find session: %w", err)
	}
	return &session, nil
}

func (r *MongoSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"session_token": token}); err != nil {
		return fmt.Errorf("mongo delete session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"expires": bson.M{"$lte": now}})
	if err != nil {
		return 0, fmt.Errorf("mongo delete expired sessions: %w", err)
	}
	return res.DeletedCount, nil
}
