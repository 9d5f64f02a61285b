package model

import (
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	"gorm.io/datatypes"
)

type User struct {
	ID                  string            `gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	Email               string            `gorm:"column:email;uniqueIndex:idx_users_email;not null" bson:"email"`
	PasswordHash        string            `gorm:"column:password;not null" bson:"password"`
	FirstName           string            `gorm:"column:first_name" bson:"first_name"`
	LastName            string            `gorm:"column:last_name" bson:"last_name"`
	ProfileImageURL     string            `gorm:"column:profile_image_url" bson:"profile_image_url"`
	EmailVerified       bool              `gorm:"column:email_verified;not null" bson:"email_verified"`
	AccountType         string            `gorm:"column:account_type;not null" bson:"account_type"`
	SubscriptionStatus  string            `gorm:"column:subscription_status;not null" bson:"subscription_status"`
	TrialEndsAt         time.Time         `gorm:"column:trial_ends_at" bson:"trial_ends_at"`
	IsActive            bool              `gorm:"column:is_active;not null" bson:"is_active"`
	OnboardingCompleted bool              `gorm:"column:onboarding_completed;not null" bson:"onboarding_completed"`
	Settings            datatypes.JSONMap `gorm:"column:settings;type:jsonb" bson:"settings,omitempty"`
	LastLoginAt         *time.Time        `gorm:"column:last_login_at" bson:"last_login_at,omitempty"`
	CreatedAt           time.Time         `gorm:"column:created_at" bson:"created_at"`
	UpdatedAt           time.Time         `gorm:"column:updated_at" bson:"updated_at"`
}

func (User) TableName() string {
	return constants.UsersTable
}

// ProfileUpdate lists the only user fields a client may change.
// A nil pointer leaves the stored value untouched.
type ProfileUpdate struct {
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	Settings        map[string]interface{}
}

// IsEmpty reports whether the update would change nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.ProfileImageURL == nil && p.Settings == nil
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.ProfileImageURL != nil {
		u.ProfileImageURL = *p.ProfileImageURL
	}
	if p.Settings != nil {
		u.Settings = datatypes.JSONMap(p.Settings)
	}
}
