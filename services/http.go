package services

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/safe-steps/prepared_api/services/handlers"
	"github.com/safe-steps/prepared_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc       *AuthService
	dashboardSvc  *DashboardService
	adminSvc      *AdminService
	settingsSvc   *SettingsService
	videoSvc      *VideoService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.dashboardSvc = svc.Service(DASHBOARD_SVC).(*DashboardService)
	svc.adminSvc = svc.Service(ADMIN_SVC).(*AdminService)
	svc.settingsSvc = svc.Service(SETTINGS_SVC).(*SettingsService)
	svc.videoSvc = svc.Service(VIDEO_SVC).(*VideoService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	if monitoringSvc, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok {
		svc.monitoringSvc = monitoringSvc
	}

	svc.app = fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: svc.handleError,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if svc.monitoringSvc != nil {
		svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))
	}

	svc.app.Use(svc.rateLimitSvc.IPRateLimit())

	svc.registerRoutes()

	svc.app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) registerRoutes() {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	dashboardHandler := handlers.NewDashboardHandler(svc.dashboardSvc, svc.videoSvc)
	settingsHandler := handlers.NewSettingsHandler(svc.settingsSvc)
	adminHandler := handlers.NewAdminHandler(svc.adminSvc, svc.settingsSvc)
	videoHandler := handlers.NewVideoHandler(svc.videoSvc)

	svc.app.Get("/ping", svc.ping)

	v1 := svc.app.Group("/api/v1")

	v1.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)

	authed := v1.Group("", svc.authSvc.RequiredAuth())
	authed.Post("/logout", authHandler.Logout)
	authed.Get("/me/role", authHandler.GetRole)

	authed.Get("/dashboard", dashboardHandler.GetDashboard)
	authed.Put("/modules/:moduleId/progress", svc.rateLimitSvc.RateLimit("progress_update"), dashboardHandler.UpdateModuleProgress)
	authed.Post("/games/:gameId/complete", svc.rateLimitSvc.RateLimit("game_complete"), dashboardHandler.CompleteGame)
	authed.Post("/videos/:videoId/view", dashboardHandler.RecordVideoView)

	authed.Get("/settings", settingsHandler.GetSettings)
	authed.Put("/settings", settingsHandler.UpdateSettings)
	authed.Post("/settings/reset", settingsHandler.ResetSettings)

	admin := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireAdmin())
	admin.Get("/stats", adminHandler.GetStats)
	admin.Get("/settings", adminHandler.ListSettings)
	admin.Put("/settings/:key", adminHandler.SetSetting)
	admin.Post("/alerts", svc.rateLimitSvc.RateLimit("broadcast_alert"), adminHandler.BroadcastAlert)

	admin.Get("/videos", videoHandler.ListVideos)
	admin.Post("/videos", videoHandler.CreateVideo)
	admin.Put("/videos/:videoId", videoHandler.UpdateVideo)
	admin.Delete("/videos/:videoId", videoHandler.DeleteVideo)
	admin.Put("/videos/:videoId/active", videoHandler.SetVideoActive)
	admin.Post("/videos/:videoId/thumbnail", videoHandler.UploadThumbnail)
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
