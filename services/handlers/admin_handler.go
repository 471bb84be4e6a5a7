package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/shared"
)

type AdminHandler struct {
	adminSvc    AdminServiceInterface
	settingsSvc SettingsServiceInterface
}

func NewAdminHandler(adminSvc AdminServiceInterface, settingsSvc SettingsServiceInterface) *AdminHandler {
	return &AdminHandler{
		adminSvc:    adminSvc,
		settingsSvc: settingsSvc,
	}
}

// @Summary Get admin statistics
// @Description Fleet-wide totals, regional rollups and recent drill activity
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=dto.AdminStatsResponse}
// @Router /api/v1/admin/stats [get]
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	resp, err := h.adminSvc.GetStats(c.Context())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Statistics loaded", resp)
}

// @Summary List admin settings
// @Description Return every platform setting ordered by type then key
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=[]dto.AdminSettingResponse}
// @Router /api/v1/admin/settings [get]
func (h *AdminHandler) ListSettings(c *fiber.Ctx) error {
	resp, err := h.settingsSvc.ListAdminSettings()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Settings loaded", resp)
}

// @Summary Set an admin setting
// @Description Create or replace a platform setting; the value is stored verbatim
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param key path string true "Setting key"
// @Param settingRequest body dto.SetAdminSettingRequest true "Setting value"
// @Success 200 {object} shared.Response{data=dto.AdminSettingResponse}
// @Router /api/v1/admin/settings/{key} [put]
func (h *AdminHandler) SetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return shared.NewBadRequestError(nil, "Setting key is required")
	}

	var req dto.SetAdminSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.settingsSvc.SetAdminSetting(key, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Setting saved", resp)
}

// @Summary Broadcast a safety alert
// @Description Publish an alert to all dashboards and email opted-in users
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param alertRequest body dto.BroadcastAlertRequest true "Alert details"
// @Success 201 {object} shared.Response{data=dto.AlertResponse}
// @Router /api/v1/admin/alerts [post]
func (h *AdminHandler) BroadcastAlert(c *fiber.Ctx) error {
	var req dto.BroadcastAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.adminSvc.BroadcastAlert(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Alert broadcast", resp)
}
