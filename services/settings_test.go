package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
	"github.com/safe-steps/prepared_api/shared"
)

func newTestSettingsService(sqlSvc *PostgresService) *SettingsService {
	return &SettingsService{sqlSvc: sqlSvc}
}

func TestGetUserSettingsCreatesDefaults(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	resp, err := svc.GetUserSettings("user-1")
	require.NoError(t, err)

	assert.True(t, resp.NotificationsEnabled)
	assert.True(t, resp.EmailAlerts)
	assert.Equal(t, "system", resp.Theme)
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, "friends", resp.PrivacyLevel)
	assert.True(t, resp.AutoSave)
	assert.True(t, resp.SoundEffects)

	// Repeated reads reuse the created row.
	_, err = svc.GetUserSettings("user-1")
	require.NoError(t, err)

	var count int64
	sqlSvc.db.Model(&model.UserSettings{}).Where("user_id = ?", "user-1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateUserSettingsBeforeFirstRead(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	dark := "dark"
	_, err := svc.UpdateUserSettings("user-1", dto.UpdateSettingsRequest{Theme: &dark})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestUpdateUserSettingsPartial(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	_, err := svc.GetUserSettings("user-1")
	require.NoError(t, err)

	dark := "dark"
	off := false
	resp, err := svc.UpdateUserSettings("user-1", dto.UpdateSettingsRequest{
		Theme:       &dark,
		EmailAlerts: &off,
	})
	require.NoError(t, err)

	assert.Equal(t, "dark", resp.Theme)
	assert.False(t, resp.EmailAlerts)

	// Untouched fields keep their values.
	assert.True(t, resp.NotificationsEnabled)
	assert.Equal(t, "en", resp.Language)
}

func TestResetUserSettings(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	_, err := svc.GetUserSettings("user-1")
	require.NoError(t, err)

	dark := "dark"
	private := "private"
	_, err = svc.UpdateUserSettings("user-1", dto.UpdateSettingsRequest{
		Theme:        &dark,
		PrivacyLevel: &private,
	})
	require.NoError(t, err)

	resp, err := svc.ResetUserSettings("user-1")
	require.NoError(t, err)

	assert.Equal(t, "system", resp.Theme)
	assert.Equal(t, "friends", resp.PrivacyLevel)
	assert.True(t, resp.EmailAlerts)
}

func TestSetAdminSettingClassifiesShape(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	cases := []struct {
		key      string
		value    interface{}
		wantType string
	}{
		{"maintenance_mode", map[string]interface{}{"enabled": false}, "flag"},
		{"xp_per_level", map[string]interface{}{"value": 500}, "threshold"},
		{"alert_channels", map[string]interface{}{"dashboard": true, "email": false}, "toggles"},
		{"welcome_banner", "Stay prepared!", "opaque"},
	}

	for _, tc := range cases {
		resp, err := svc.SetAdminSetting(tc.key, dto.SetAdminSettingRequest{Value: tc.value})
		require.NoError(t, err, tc.key)
		assert.Equal(t, tc.wantType, resp.SettingType, tc.key)
	}
}

func TestSetAdminSettingExplicitTypeWins(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	resp, err := svc.SetAdminSetting("maintenance_mode", dto.SetAdminSettingRequest{
		Value:       map[string]interface{}{"enabled": true},
		SettingType: "ops",
	})
	require.NoError(t, err)
	assert.Equal(t, "ops", resp.SettingType)
}

func TestSetAdminSettingRoundTrip(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	value := map[string]interface{}{"dashboard": true, "email": true, "sms": false}
	public := true
	_, err := svc.SetAdminSetting("alert_channels", dto.SetAdminSettingRequest{
		Value:       value,
		Description: "Delivery channels for broadcast alerts",
		IsPublic:    &public,
	})
	require.NoError(t, err)

	rows, err := svc.ListAdminSettings()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "alert_channels", rows[0].Key)
	assert.True(t, rows[0].IsPublic)

	decoded, ok := rows[0].Value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, decoded["dashboard"])
	assert.Equal(t, false, decoded["sms"])
}

func TestSetAdminSettingKeepsVisibilityWhenOmitted(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	public := true
	_, err := svc.SetAdminSetting("banner", dto.SetAdminSettingRequest{
		Value:    map[string]interface{}{"enabled": true},
		IsPublic: &public,
	})
	require.NoError(t, err)

	// A value-only update must not flip a public setting back to private.
	resp, err := svc.SetAdminSetting("banner", dto.SetAdminSettingRequest{
		Value: map[string]interface{}{"enabled": false},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsPublic)

	// An explicit false still takes effect.
	private := false
	resp, err = svc.SetAdminSetting("banner", dto.SetAdminSettingRequest{
		Value:    map[string]interface{}{"enabled": false},
		IsPublic: &private,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsPublic)
}

func TestSetAdminSettingOverwrite(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestSettingsService(sqlSvc)

	_, err := svc.SetAdminSetting("registration_open", dto.SetAdminSettingRequest{
		Value: map[string]interface{}{"enabled": true},
	})
	require.NoError(t, err)

	resp, err := svc.SetAdminSetting("registration_open", dto.SetAdminSettingRequest{
		Value: map[string]interface{}{"enabled": false},
	})
	require.NoError(t, err)

	decoded, ok := resp.Value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, decoded["enabled"])

	var count int64
	sqlSvc.db.Model(&model.AdminSetting{}).Where("key = ?", "registration_open").Count(&count)
	assert.Equal(t, int64(1), count)
}
