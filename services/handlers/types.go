package handlers

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/safe-steps/prepared_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest, clientIP, userAgent string) (*dto.LoginResponse, error)
	Logout(userID, sessionID string) error
	ResolveRole(userID string) (*dto.RoleInfo, error)
	RequiredAuth() fiber.Handler
	RequireAdmin() fiber.Handler
}

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, userID, region string) (*dto.DashboardResponse, error)
	UpdateModuleProgress(ctx context.Context, userID, moduleID string, percent int) (*dto.DashboardResponse, error)
	CompleteGame(ctx context.Context, userID, gameID string, score int) (*dto.DashboardResponse, error)
}

type AdminServiceInterface interface {
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
	BroadcastAlert(req dto.BroadcastAlertRequest) (*dto.AlertResponse, error)
}

type SettingsServiceInterface interface {
	GetUserSettings(userID string) (*dto.SettingsResponse, error)
	UpdateUserSettings(userID string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	ResetUserSettings(userID string) (*dto.SettingsResponse, error)
	ListAdminSettings() ([]dto.AdminSettingResponse, error)
	SetAdminSetting(key string, req dto.SetAdminSettingRequest) (*dto.AdminSettingResponse, error)
}

type VideoServiceInterface interface {
	ListVideos() (*dto.VideoListResponse, error)
	CreateVideo(req dto.CreateVideoRequest) (*dto.VideoResponse, error)
	UpdateVideo(id string, req dto.UpdateVideoRequest) (*dto.VideoResponse, error)
	DeleteVideo(id string) error
	SetVideoActive(id string, active bool) (*dto.VideoResponse, error)
	RecordView(id string) error
	UploadThumbnail(id string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
}
