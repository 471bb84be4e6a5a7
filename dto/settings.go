package dto

import "time"

// ==================== USER SETTINGS DTOs ====================

// UpdateSettingsRequest carries a partial change set; nil fields are left
// untouched.
type UpdateSettingsRequest struct {
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	EmailAlerts          *bool   `json:"email_alerts,omitempty"`
	Theme                *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark system"`
	Language             *string `json:"language,omitempty" validate:"omitempty,min=2,max=8"`
	PrivacyLevel         *string `json:"privacy_level,omitempty" validate:"omitempty,oneof=public friends private"`
	AutoSave             *bool   `json:"auto_save,omitempty"`
	SoundEffects         *bool   `json:"sound_effects,omitempty"`
}

func (r UpdateSettingsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SettingsResponse struct {
	NotificationsEnabled bool      `json:"notifications_enabled"`
	EmailAlerts          bool      `json:"email_alerts"`
	Theme                string    `json:"theme"`
	Language             string    `json:"language"`
	PrivacyLevel         string    `json:"privacy_level"`
	AutoSave             bool      `json:"auto_save"`
	SoundEffects         bool      `json:"sound_effects"`
	UpdatedAt            time.Time `json:"updated_at"`
}
