package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PostgresUserRepository stores users through gorm. The unique index on
// users.email makes concurrent registrations race-free.
type PostgresUserRepository struct {
	db *gorm.DB
}

func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByID")

	logger.DebugWithContext(ctx, "Getting user by ID").
		String("user_id", id).
		Log()

	if err := ctx.Err(); err != nil {
		logger.WarnWithContext(ctx, "Context cancelled before query").
			Err(err).
			Log()
		return nil, err
	}

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	duration := time.Since(start)

	if err := translateGormError(result.Error); err != nil {
		if err == ErrNotFound {
			logger.DebugWithContext(ctx, "User not found").
				String("user_id", id).
				Duration(duration).
				Log()
			return nil, err
		}
		logger.ErrorWithContext(ctx, "Failed to get user by ID").
			String("user_id", id).
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "User retrieved successfully").
		String("user_id", id).
		Duration(duration).
		Log()

	return &user, nil
}

// GetByEmail finds user by its normalised email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetByEmail")

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	duration := time.Since(start)

	if err := translateGormError(result.Error); err != nil {
		if err == ErrNotFound {
			logger.DebugWithContext(ctx, "No user with email").
				Duration(duration).
				Log()
			return nil, err
		}
		logger.ErrorWithContext(ctx, "Failed to get user by email").
			Duration(duration).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "User retrieved successfully by email").
		String("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// Create inserts a new user, returning ErrDuplicate when the email is taken.
func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Create")

	logger.DebugWithContext(ctx, "Creating new user").
		String("user_id", user.ID).
		Log()

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if err := translateGormError(result.Error); err != nil {
		if err == ErrDuplicate {
			logger.InfoWithContext(ctx, "Email already registered").
				Duration(duration).
				Log()
			return err
		}
		logger.ErrorWithContext(ctx, "Failed to create user").
			Duration(duration).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("user_id", user.ID).
		Duration(duration).
		Log()

	return nil
}

// UpdateProfile writes only the fields set in update
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate, now time.Time) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateProfile")

	updates := map[string]interface{}{
		"updated_at": now,
	}
	if update.FirstName != nil {
		updates["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		updates["last_name"] = *update.LastName
	}
	if update.ProfileImageURL != nil {
		updates["profile_image_url"] = *update.ProfileImageURL
	}
	if update.Settings != nil {
		updates["settings"] = datatypes.JSONMap(update.Settings)
	}

	if err := r.updateColumns(ctx, id, updates); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// UpdateLastLogin updates the last login timestamp
func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "UpdateLastLogin")

	return r.updateColumns(ctx, id, map[string]interface{}{
		"last_login_at": at,
	})
}

func (r *PostgresUserRepository) MarkOnboardingCompleted(ctx context.Context, id string, now time.Time) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "MarkOnboardingCompleted")

	err := r.updateColumns(ctx, id, map[string]interface{}{
		"onboarding_completed": true,
		"updated_at":           now,
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes a user row. A missing row is not an error.
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "Delete")

	start := time.Now()
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete user").
			String("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return fmt.Errorf("delete user %s: %w", id, translateGormError(result.Error))
	}

	logger.InfoWithContext(ctx, "User deleted").
		String("user_id", id).
		Int64("rows", result.RowsAffected).
		Duration(duration).
		Log()
	return nil
}

func (r *PostgresUserRepository) updateColumns(ctx context.Context, id string, updates map[string]interface{}) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update user").
			String("user_id", id).
			Duration(duration).
			Err(result.Error).
			Log()
		return fmt.Errorf("update user %s: %w", id, translateGormError(result.Error))
	}

	if result.RowsAffected == 0 {
		logger.WarnWithContext(ctx, "No user found to update").
			String("user_id", id).
			Log()
		return ErrNotFound
	}

	logger.DebugWithContext(ctx, "User updated successfully").
		String("user_id", id).
		Int64("rows_affected", result.RowsAffected).
		Duration(duration).
		Log()

	return nil
}
