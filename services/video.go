package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
	"github.com/safe-steps/prepared_api/shared"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VideoService is the admin-facing tutorial catalog editor. Every mutation
// answers with the row as persisted so callers reconcile against server
// state, not a local guess.
type VideoService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	minioSvc *MinIOService
}

const VIDEO_SVC = "video_svc"

func (svc VideoService) Id() string {
	return VIDEO_SVC
}

func (svc *VideoService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *VideoService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	if minioSvc, ok := svc.Service(MINIO_SVC).(*MinIOService); ok {
		svc.minioSvc = minioSvc
	}
	return nil
}

// ListVideos returns the full catalog, inactive rows included; identity-facing
// views go through the dashboard's active-only query instead.
func (svc *VideoService) ListVideos() (*dto.VideoListResponse, error) {
	videos, err := svc.sqlSvc.GetAllVideos()
	if err != nil {
		return nil, err
	}

	return &dto.VideoListResponse{
		Videos: mapVideos(videos),
		Total:  len(videos),
	}, nil
}

func (svc *VideoService) CreateVideo(req dto.CreateVideoRequest) (*dto.VideoResponse, error) {
	video := &model.VideoTutorial{
		Title:       req.Title,
		Description: req.Description,
		VideoRef:    req.VideoRef,
		Duration:    req.Duration,
		Category:    req.Category,
		HoverText:   req.HoverText,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}

	created, err := svc.sqlSvc.CreateVideo(video)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"video_id": created.ID, "title": created.Title}).
		Info("Video tutorial created")

	resp := mapVideo(created)
	return &resp, nil
}

func (svc *VideoService) UpdateVideo(id string, req dto.UpdateVideoRequest) (*dto.VideoResponse, error) {
	video, err := svc.sqlSvc.GetVideo(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Video not found")
		}
		return nil, err
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.VideoRef != nil {
		video.VideoRef = *req.VideoRef
	}
	if req.Duration != nil {
		video.Duration = *req.Duration
	}
	if req.Category != nil {
		video.Category = *req.Category
	}
	if req.HoverText != nil {
		video.HoverText = *req.HoverText
	}
	if req.SortOrder != nil {
		video.SortOrder = *req.SortOrder
	}

	if err := svc.sqlSvc.UpdateVideo(video); err != nil {
		return nil, err
	}

	resp := mapVideo(video)
	return &resp, nil
}

func (svc *VideoService) DeleteVideo(id string) error {
	if _, err := svc.sqlSvc.GetVideo(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(err, "Video not found")
		}
		return err
	}

	if err := svc.sqlSvc.DeleteVideo(id); err != nil {
		return err
	}

	log.WithField("video_id", id).Info("Video tutorial deleted")
	return nil
}

func (svc *VideoService) SetVideoActive(id string, active bool) (*dto.VideoResponse, error) {
	video, err := svc.sqlSvc.GetVideo(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Video not found")
		}
		return nil, err
	}

	video.IsActive = active
	if err := svc.sqlSvc.UpdateVideo(video); err != nil {
		return nil, err
	}

	resp := mapVideo(video)
	return &resp, nil
}

func (svc *VideoService) RecordView(id string) error {
	if err := svc.sqlSvc.IncrementVideoViews(id); err != nil {
		return err
	}
	return nil
}

// UploadThumbnail stores the image in object storage and points the video row
// at the uploaded object.
func (svc *VideoService) UploadThumbnail(id string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if svc.minioSvc == nil {
		return nil, shared.NewInternalError(nil, "Object storage is not configured")
	}

	video, err := svc.sqlSvc.GetVideo(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Video not found")
		}
		return nil, err
	}

	ext := filepath.Ext(file.Filename)
	objectName := fmt.Sprintf("thumbnails/%s/%s%s", video.ID, uuid.New().String(), ext)

	url, err := svc.minioSvc.UploadFile(objectName, file)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload thumbnail")
	}

	video.ThumbnailURL = url
	if err := svc.sqlSvc.UpdateVideo(video); err != nil {
		return nil, err
	}

	return &dto.MediaUploadResponse{
		URL:      url,
		FileName: file.Filename,
		FileSize: file.Size,
	}, nil
}

func mapVideo(v *model.VideoTutorial) dto.VideoResponse {
	return dto.VideoResponse{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		VideoRef:     v.VideoRef,
		Duration:     v.Duration,
		Category:     v.Category,
		ThumbnailURL: v.ThumbnailURL,
		HoverText:    v.HoverText,
		ViewCount:    v.ViewCount,
		IsActive:     v.IsActive,
		SortOrder:    v.SortOrder,
		CreatedAt:    v.CreatedAt,
	}
}
