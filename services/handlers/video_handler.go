package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/shared"
)

type VideoHandler struct {
	videoSvc VideoServiceInterface
}

func NewVideoHandler(videoSvc VideoServiceInterface) *VideoHandler {
	return &VideoHandler{
		videoSvc: videoSvc,
	}
}

// @Summary List tutorial videos
// @Description Return every tutorial video, active or not
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=dto.VideoListResponse}
// @Router /api/v1/admin/videos [get]
func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	resp, err := h.videoSvc.ListVideos()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Videos loaded", resp)
}

// @Summary Create a tutorial video
// @Description Add a new tutorial video to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param videoRequest body dto.CreateVideoRequest true "Video details"
// @Success 201 {object} shared.Response{data=dto.VideoResponse}
// @Router /api/v1/admin/videos [post]
func (h *VideoHandler) CreateVideo(c *fiber.Ctx) error {
	var req dto.CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.videoSvc.CreateVideo(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Video created", resp)
}

// @Summary Update a tutorial video
// @Description Apply a partial update to a video's metadata
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param videoId path string true "Video ID"
// @Param videoRequest body dto.UpdateVideoRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.VideoResponse}
// @Router /api/v1/admin/videos/{videoId} [put]
func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	videoID := c.Params("videoId")

	var req dto.UpdateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.videoSvc.UpdateVideo(videoID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Video updated", resp)
}

// @Summary Delete a tutorial video
// @Description Remove a video from the catalog
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param videoId path string true "Video ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/videos/{videoId} [delete]
func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	videoID := c.Params("videoId")

	if err := h.videoSvc.DeleteVideo(videoID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Video deleted", nil)
}

// @Summary Toggle video visibility
// @Description Activate or deactivate a video on student dashboards
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param videoId path string true "Video ID"
// @Param activeRequest body dto.SetVideoActiveRequest true "Desired visibility"
// @Success 200 {object} shared.Response{data=dto.VideoResponse}
// @Router /api/v1/admin/videos/{videoId}/active [put]
func (h *VideoHandler) SetVideoActive(c *fiber.Ctx) error {
	videoID := c.Params("videoId")

	var req dto.SetVideoActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	resp, err := h.videoSvc.SetVideoActive(videoID, req.IsActive)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Video visibility updated", resp)
}

// @Summary Upload a video thumbnail
// @Description Store a thumbnail image and attach its URL to the video
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param videoId path string true "Video ID"
// @Param file formData file true "Thumbnail image"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/videos/{videoId}/thumbnail [post]
func (h *VideoHandler) UploadThumbnail(c *fiber.Ctx) error {
	videoID := c.Params("videoId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Thumbnail file is required")
	}

	resp, err := h.videoSvc.UploadThumbnail(videoID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Thumbnail uploaded", resp)
}
