package model

import (
	"encoding/json"
	"time"
)

// UserSettings is one row per user, created lazily with defaults on first read.
type UserSettings struct {
	ID                   string    `json:"id" gorm:"primaryKey"`
	UserID               string    `json:"user_id" gorm:"uniqueIndex;not null"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	EmailAlerts          bool      `json:"email_alerts"`
	Theme                string    `json:"theme" gorm:"default:'system'"` // light, dark, system
	Language             string    `json:"language" gorm:"default:'en'"`
	PrivacyLevel         string    `json:"privacy_level" gorm:"default:'friends'"` // public, friends, private
	AutoSave             bool      `json:"auto_save"`
	SoundEffects         bool      `json:"sound_effects"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// AdminSetting values are opaque JSON documents; the type tag only groups them
// for display. Shapes vary per key by convention, not schema.
type AdminSetting struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Key         string          `json:"key" gorm:"uniqueIndex;not null"`
	Value       json.RawMessage `json:"value" gorm:"type:text"`
	SettingType string          `json:"setting_type" gorm:"default:'general'"`
	Description string          `json:"description"`
	IsPublic    bool            `json:"is_public" gorm:"default:false"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
