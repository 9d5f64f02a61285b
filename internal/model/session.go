package model

import (
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
)

// Session binds an issued token to a user until Expires.
type Session struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" bson:"_id" json:"id"`
	UserID       string    `gorm:"column:user_id;type:uuid;index:idx_auth_sessions_user_id;not null" bson:"user_id" json:"user_id"`
	SessionToken string    `gorm:"column:session_token;uniqueIndex:idx_auth_sessions_token;not null" bson:"session_token" json:"session_token"`
	Expires      time.Time `gorm:"column:expires;index:idx_auth_sessions_expires;not null" bson:"expires" json:"expires"`
	CreatedAt    time.Time `gorm:"column:created_at" bson:"created_at" json:"created_at"`
}

func (Session) TableName() string {
	return constants.SessionsTable
}

// ExpiredAt reports whether the session is no longer valid at now.
// A session is valid only while now is strictly before Expires.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.Expires)
}
