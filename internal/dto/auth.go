package dto

import "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"firstName" binding:"omitempty,max=100"`
	LastName  string `json:"lastName" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// UpdateProfileRequest lists the only fields a client may send to
// PUT /auth/profile. Handlers decode it with unknown fields rejected.
type UpdateProfileRequest struct {
	FirstName       *string                `json:"firstName" validate:"omitempty,max=100"`
	LastName        *string                `json:"lastName" validate:"omitempty,max=100"`
	ProfileImageURL *string                `json:"profileImageUrl" validate:"omitempty,url,max=2048"`
	Settings        map[string]interface{} `json:"settings"`
}

func (r UpdateProfileRequest) ToModel() model.ProfileUpdate {
	return model.ProfileUpdate{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		ProfileImageURL: r.ProfileImageURL,
		Settings:        r.Settings,
	}
}
