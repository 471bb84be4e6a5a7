package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/shared"
)

type DashboardHandler struct {
	dashboardSvc DashboardServiceInterface
	videoSvc     VideoServiceInterface
}

func NewDashboardHandler(dashboardSvc DashboardServiceInterface, videoSvc VideoServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		videoSvc:     videoSvc,
	}
}

// @Summary Get dashboard
// @Description Load the merged dashboard view: progress, modules, games, videos, alerts, achievements
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param region query string false "Filter alerts to a region"
// @Success 200 {object} shared.Response{data=dto.DashboardResponse}
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	region := c.Query("region")

	resp, err := h.dashboardSvc.GetDashboard(c.Context(), userID, region)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Dashboard loaded", resp)
}

// @Summary Update module progress
// @Description Set a module's completion percent and return the refreshed dashboard
// @Tags dashboard
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param moduleId path string true "Module ID"
// @Param progressRequest body dto.UpdateModuleProgressRequest true "New progress percent"
// @Success 200 {object} shared.Response{data=dto.DashboardResponse}
// @Router /api/v1/modules/{moduleId}/progress [put]
func (h *DashboardHandler) UpdateModuleProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	moduleID := c.Params("moduleId")

	var req dto.UpdateModuleProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.dashboardSvc.UpdateModuleProgress(c.Context(), userID, moduleID, req.Progress)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Progress updated", resp)
}

// @Summary Complete a game
// @Description Record a game score and return the refreshed dashboard
// @Tags dashboard
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param gameId path string true "Game ID"
// @Param completeRequest body dto.CompleteGameRequest true "Game score"
// @Success 200 {object} shared.Response{data=dto.DashboardResponse}
// @Router /api/v1/games/{gameId}/complete [post]
func (h *DashboardHandler) CompleteGame(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	gameID := c.Params("gameId")

	var req dto.CompleteGameRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.dashboardSvc.CompleteGame(c.Context(), userID, gameID, req.Score)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Game completed", resp)
}

// @Summary Record a video view
// @Description Increment a tutorial video's view counter
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param videoId path string true "Video ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/videos/{videoId}/view [post]
func (h *DashboardHandler) RecordVideoView(c *fiber.Ctx) error {
	videoID := c.Params("videoId")

	if err := h.videoSvc.RecordView(videoID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "View recorded", nil)
}
