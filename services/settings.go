package services

import (
	"encoding/json"
	"errors"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
	"github.com/safe-steps/prepared_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SettingsService owns per-user preferences and the admin key-value settings.
// User settings are created lazily with fixed defaults on first read; there
// is never more than one row per user.
type SettingsService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const SETTINGS_SVC = "settings_svc"

func (svc SettingsService) Id() string {
	return SETTINGS_SVC
}

func (svc *SettingsService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SettingsService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// DefaultUserSettings are the documented first-read defaults.
func DefaultUserSettings(userID string) *model.UserSettings {
	id, _ := uuid.NewV7()
	return &model.UserSettings{
		ID:                   id.String(),
		UserID:               userID,
		NotificationsEnabled: true,
		EmailAlerts:          true,
		Theme:                "system",
		Language:             "en",
		PrivacyLevel:         "friends",
		AutoSave:             true,
		SoundEffects:         true,
	}
}

func (svc *SettingsService) GetUserSettings(userID string) (*dto.SettingsResponse, error) {
	settings, err := svc.sqlSvc.GetUserSettings(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		settings, err = svc.sqlSvc.CreateUserSettings(DefaultUserSettings(userID))
		if err != nil {
			return nil, err
		}
	}

	return mapSettings(settings), nil
}

// UpdateUserSettings applies a partial change set and answers with the row as
// the database now holds it, never a local merge. Updating settings that were
// never loaded is a caller error.
func (svc *SettingsService) UpdateUserSettings(userID string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if _, err := svc.sqlSvc.GetUserSettings(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewBadRequestError(nil, "Settings not loaded for this user")
		}
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.NotificationsEnabled != nil {
		changes["notifications_enabled"] = *req.NotificationsEnabled
	}
	if req.EmailAlerts != nil {
		changes["email_alerts"] = *req.EmailAlerts
	}
	if req.Theme != nil {
		changes["theme"] = *req.Theme
	}
	if req.Language != nil {
		changes["language"] = *req.Language
	}
	if req.PrivacyLevel != nil {
		changes["privacy_level"] = *req.PrivacyLevel
	}
	if req.AutoSave != nil {
		changes["auto_save"] = *req.AutoSave
	}
	if req.SoundEffects != nil {
		changes["sound_effects"] = *req.SoundEffects
	}

	if len(changes) > 0 {
		if err := svc.sqlSvc.UpdateUserSettings(userID, changes); err != nil {
			return nil, err
		}
	}

	settings, err := svc.sqlSvc.GetUserSettings(userID)
	if err != nil {
		return nil, err
	}
	return mapSettings(settings), nil
}

func (svc *SettingsService) ResetUserSettings(userID string) (*dto.SettingsResponse, error) {
	defaults := DefaultUserSettings(userID)
	req := dto.UpdateSettingsRequest{
		NotificationsEnabled: &defaults.NotificationsEnabled,
		EmailAlerts:          &defaults.EmailAlerts,
		Theme:                &defaults.Theme,
		Language:             &defaults.Language,
		PrivacyLevel:         &defaults.PrivacyLevel,
		AutoSave:             &defaults.AutoSave,
		SoundEffects:         &defaults.SoundEffects,
	}
	return svc.UpdateUserSettings(userID, req)
}

func mapSettings(s *model.UserSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		NotificationsEnabled: s.NotificationsEnabled,
		EmailAlerts:          s.EmailAlerts,
		Theme:                s.Theme,
		Language:             s.Language,
		PrivacyLevel:         s.PrivacyLevel,
		AutoSave:             s.AutoSave,
		SoundEffects:         s.SoundEffects,
		UpdatedAt:            s.UpdatedAt,
	}
}

// ==================== ADMIN SETTINGS ====================

func (svc *SettingsService) ListAdminSettings() ([]dto.AdminSettingResponse, error) {
	rows, err := svc.sqlSvc.GetAdminSettings()
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminSettingResponse, len(rows))
	for i, row := range rows {
		out[i] = mapAdminSetting(&row)
	}
	return out, nil
}

// SetAdminSetting persists the value document verbatim. When no explicit type
// is given for a new key, the value shape picks the grouping tag.
func (svc *SettingsService) SetAdminSetting(key string, req dto.SetAdminSettingRequest) (*dto.AdminSettingResponse, error) {
	raw, err := json.Marshal(req.Value)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Setting value is not serializable")
	}

	settingType := req.SettingType
	if settingType == "" {
		settingType = dto.ClassifyAdminSettingValue(raw)
	}

	setting := &model.AdminSetting{
		Key:         key,
		Value:       raw,
		SettingType: settingType,
		Description: req.Description,
	}

	if err := svc.sqlSvc.SaveAdminSetting(setting, req.IsPublic); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"key": key, "type": setting.SettingType}).
		Info("Admin setting saved")

	resp := mapAdminSetting(setting)
	return &resp, nil
}

func mapAdminSetting(row *model.AdminSetting) dto.AdminSettingResponse {
	var value interface{}
	if row.Value != nil {
		if err := json.Unmarshal(row.Value, &value); err != nil {
			log.WithError(err).WithField("key", row.Key).
				Warn("Failed to decode admin setting value")
			value = string(row.Value)
		}
	}

	return dto.AdminSettingResponse{
		Key:         row.Key,
		Value:       value,
		SettingType: row.SettingType,
		Description: row.Description,
		IsPublic:    row.IsPublic,
		UpdatedAt:   row.UpdatedAt,
	}
}
