package dto

import (
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
)

// UserResponse is the public view of a user. The password hash never leaves the server.
type UserResponse struct {
	ID                  string                 `json:"id"`
	Email               string                 `json:"email"`
	FirstName           string                 `json:"firstName"`
	LastName            string                 `json:"lastName"`
	ProfileImageURL     string                 `json:"profileImageUrl,omitempty"`
	EmailVerified       bool                   `json:"emailVerified"`
	AccountType         string                 `json:"accountType"`
	SubscriptionStatus  string                 `json:"subscriptionStatus"`
	TrialEndsAt         time.Time              `json:"trialEndsAt"`
	IsActive            bool                   `json:"isActive"`
	OnboardingCompleted bool                   `json:"onboardingCompleted"`
	Settings            map[string]interface{} `json:"settings,omitempty"`
	LastLoginAt         *time.Time             `json:"lastLoginAt,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func NewUserResponse(u *model.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		ProfileImageURL:     u.ProfileImageURL,
		EmailVerified:       u.EmailVerified,
		AccountType:         u.AccountType,
		SubscriptionStatus:  u.SubscriptionStatus,
		TrialEndsAt:         u.TrialEndsAt,
		IsActive:            u.IsActive,
		OnboardingCompleted: u.OnboardingCompleted,
		Settings:            u.Settings,
		LastLoginAt:         u.LastLoginAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

type UserEnvelope struct {
	User *UserResponse `json:"user"`
}

type OnboardingResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

// MeResponse answers GET /auth/me for both anonymous and signed-in callers.
type MeResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}
