package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
	"github.com/safe-steps/prepared_api/shared"
)

func newTestAuthService(sqlSvc *PostgresService) *AuthService {
	return &AuthService{
		sqlSvc: sqlSvc,
		jwtSvc: newTestJWTService("test-secret"),
	}
}

func registerTestUser(t *testing.T, svc *AuthService) string {
	t.Helper()
	resp, err := svc.Register(dto.RegisterRequest{
		Email:    "ana@example.com",
		Username: "ana",
		Password: "SecurePass123",
	})
	require.NoError(t, err)
	return resp.UserID
}

func TestRegisterAndLogin(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAuthService(sqlSvc)

	userID := registerTestUser(t, svc)
	require.NotEmpty(t, userID)

	resp, err := svc.Login(dto.LoginRequest{
		EmailOrUsername: "ana@example.com",
		Password:        "SecurePass123",
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, userID, resp.User.ID)
	assert.False(t, resp.Role.IsAdmin)
	assert.True(t, resp.Role.IsStudent)

	// Username works as the login identifier too.
	_, err = svc.Login(dto.LoginRequest{
		EmailOrUsername: "ana",
		Password:        "SecurePass123",
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)
}

func TestRegisterDuplicateEmailAndUsername(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAuthService(sqlSvc)

	registerTestUser(t, svc)

	_, err := svc.Register(dto.RegisterRequest{
		Email:    "ana@example.com",
		Username: "other",
		Password: "SecurePass123",
	})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)

	_, err = svc.Register(dto.RegisterRequest{
		Email:    "other@example.com",
		Username: "ana",
		Password: "SecurePass123",
	})
	require.Error(t, err)
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAuthService(sqlSvc)

	registerTestUser(t, svc)

	_, err := svc.Login(dto.LoginRequest{
		EmailOrUsername: "ana@example.com",
		Password:        "WrongPass123",
	}, "10.0.0.1", "test-agent")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode)

	_, err = svc.Login(dto.LoginRequest{
		EmailOrUsername: "nobody@example.com",
		Password:        "SecurePass123",
	}, "10.0.0.1", "test-agent")
	require.Error(t, err)
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAuthService(sqlSvc)

	userID := registerTestUser(t, svc)
	require.NoError(t, sqlSvc.db.Model(&model.User{}).
		Where("id = ?", userID).Update("is_active", false).Error)

	_, err := svc.Login(dto.LoginRequest{
		EmailOrUsername: "ana@example.com",
		Password:        "SecurePass123",
	}, "10.0.0.1", "test-agent")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.StatusCode)
}

func TestLoginStoresSessionTokenHash(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAuthService(sqlSvc)

	registerTestUser(t, svc)
	resp, err := svc.Login(dto.LoginRequest{
		EmailOrUsername: "ana@example.com",
		Password:        "SecurePass123",
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	var session model.UserSession
	require.NoError(t, sqlSvc.db.First(&session, "id = ?", resp.SessionID).Error)

	// The row carries a fingerprint of the issued token, not the token.
	assert.Equal(t, hashToken(resp.AccessToken), session.TokenHash)
	assert.NotEqual(t, resp.AccessToken, session.TokenHash)
	assert.NotEmpty(t, session.TokenHash)
}

func TestLogoutDeactivatesSession(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAuthService(sqlSvc)

	userID := registerTestUser(t, svc)
	resp, err := svc.Login(dto.LoginRequest{
		EmailOrUsername: "ana@example.com",
		Password:        "SecurePass123",
	}, "10.0.0.1", "test-agent")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(userID, resp.SessionID))

	var session model.UserSession
	require.NoError(t, sqlSvc.db.First(&session, "id = ?", resp.SessionID).Error)
	assert.False(t, session.IsActive)
}

func TestResolveRoleFromAdminRegistry(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAuthService(sqlSvc)

	userID := registerTestUser(t, svc)

	// No registry row: standard student role.
	role, err := svc.ResolveRole(userID)
	require.NoError(t, err)
	assert.False(t, role.IsAdmin)
	assert.True(t, role.IsStudent)

	perms, err := json.Marshal([]string{"stats", "videos"})
	require.NoError(t, err)
	require.NoError(t, sqlSvc.db.Create(&model.AdminUser{
		ID:          "adm-1",
		UserID:      userID,
		AdminLevel:  "super",
		Permissions: perms,
	}).Error)

	// The registry is re-read, not cached from the earlier call.
	role, err = svc.ResolveRole(userID)
	require.NoError(t, err)
	assert.True(t, role.IsAdmin)
	assert.False(t, role.IsStudent)
	assert.Equal(t, "super", role.AdminLevel)
	assert.Equal(t, []string{"stats", "videos"}, role.Permissions)
}
