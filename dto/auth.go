package dto

import "time"

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email" example:"user@example.com"`
	Username    string `json:"username" validate:"required,min=3,max=30,alphanum" example:"johndoe"`
	Password    string `json:"password" validate:"required,strong_password" example:"SecurePass123"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=60" example:"John Doe"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required" example:"user@example.com"`
	Password        string `json:"password" validate:"required" example:"SecurePass123"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type RegisterResponse struct {
	UserID  string `json:"user_id" example:"usr_123456789"`
	Message string `json:"message" example:"Registration successful"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in" example:"86400"`
	SessionID   string   `json:"session_id"`
	User        UserInfo `json:"user"`
	Role        RoleInfo `json:"role"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
}

type UserInfo struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// RoleInfo is the resolved role: IsAdmin is true exactly when an administrator
// registry row exists for the user at resolution time.
type RoleInfo struct {
	IsAdmin     bool     `json:"is_admin"`
	IsStudent   bool     `json:"is_student"`
	AdminLevel  string   `json:"admin_level,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}
