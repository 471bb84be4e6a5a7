package model

import (
	"encoding/json"
	"time"
)

type User struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Username    string     `json:"username" gorm:"uniqueIndex;not null"`
	Password    string     `json:"-"`
	DisplayName string     `json:"display_name"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	LastLoginIP string     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type UserSession struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	TokenHash string    `json:"-" gorm:"not null"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	IsActive  bool      `json:"is_active"`
	LastUsed  time.Time `json:"last_used"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser is the administrator registry. A user is an administrator exactly
// when a row keyed by their user id exists here; the role is never stored on
// the user itself.
type AdminUser struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"uniqueIndex;not null"`
	AdminLevel  string          `json:"admin_level" gorm:"default:'moderator'"`
	Permissions json.RawMessage `json:"permissions" gorm:"type:text"` // JSON array of permission strings
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
