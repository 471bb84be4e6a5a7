package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/shared"
)

type SettingsHandler struct {
	settingsSvc SettingsServiceInterface
}

func NewSettingsHandler(settingsSvc SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		settingsSvc: settingsSvc,
	}
}

// @Summary Get user settings
// @Description Return the caller's settings, creating defaults on first access
// @Tags settings
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.SettingsResponse}
// @Router /api/v1/settings [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.settingsSvc.GetUserSettings(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Settings loaded", resp)
}

// @Summary Update user settings
// @Description Apply a partial settings update and return the persisted state
// @Tags settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param settingsRequest body dto.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.SettingsResponse}
// @Router /api/v1/settings [put]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.settingsSvc.UpdateUserSettings(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Settings updated", resp)
}

// @Summary Reset user settings
// @Description Restore the caller's settings to defaults
// @Tags settings
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.SettingsResponse}
// @Router /api/v1/settings/reset [post]
func (h *SettingsHandler) ResetSettings(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.settingsSvc.ResetUserSettings(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Settings reset", resp)
}
