package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
	"github.com/safe-steps/prepared_api/shared"
)

func newTestVideoService(sqlSvc *PostgresService) *VideoService {
	return &VideoService{sqlSvc: sqlSvc}
}

func TestCreateAndListVideos(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestVideoService(sqlSvc)

	created, err := svc.CreateVideo(dto.CreateVideoRequest{
		Title:    "Drop, Cover, Hold On",
		VideoRef: "dQw4w9WgXcQ",
		Duration: "4:32",
		Category: "earthquake",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)

	// Admin listing includes deactivated rows.
	_, err = svc.SetVideoActive(created.ID, false)
	require.NoError(t, err)

	list, err := svc.ListVideos()
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Videos, 1)
	assert.False(t, list.Videos[0].IsActive)
}

func TestUpdateVideoPartial(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestVideoService(sqlSvc)

	created, err := svc.CreateVideo(dto.CreateVideoRequest{
		Title:    "Fire Drill Walkthrough",
		VideoRef: "abc123",
		Category: "fire",
	})
	require.NoError(t, err)

	title := "Fire Drill Walkthrough (Updated)"
	order := 7
	updated, err := svc.UpdateVideo(created.ID, dto.UpdateVideoRequest{
		Title:     &title,
		SortOrder: &order,
	})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, 7, updated.SortOrder)

	// Fields without a pointer stay as created.
	assert.Equal(t, "abc123", updated.VideoRef)
	assert.Equal(t, "fire", updated.Category)
}

func TestUpdateVideoNotFound(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestVideoService(sqlSvc)

	title := "anything"
	_, err := svc.UpdateVideo("missing", dto.UpdateVideoRequest{Title: &title})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestDeleteVideo(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestVideoService(sqlSvc)

	created, err := svc.CreateVideo(dto.CreateVideoRequest{
		Title:    "Kit Checklist",
		VideoRef: "kit01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVideo(created.ID))

	err = svc.DeleteVideo(created.ID)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)

	list, err := svc.ListVideos()
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}

func TestCreateVideoAllowsDuplicateTitles(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestVideoService(sqlSvc)

	a, err := svc.CreateVideo(dto.CreateVideoRequest{Title: "Drill Basics", VideoRef: "ref1"})
	require.NoError(t, err)
	b, err := svc.CreateVideo(dto.CreateVideoRequest{Title: "Drill Basics", VideoRef: "ref2"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	list, err := svc.ListVideos()
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestRecordViewIncrements(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestVideoService(sqlSvc)

	created, err := svc.CreateVideo(dto.CreateVideoRequest{
		Title:    "Flood Awareness",
		VideoRef: "flood01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RecordView(created.ID))
	require.NoError(t, svc.RecordView(created.ID))

	var stored model.VideoTutorial
	require.NoError(t, sqlSvc.db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, 2, stored.ViewCount)
}

func TestUploadThumbnailWithoutObjectStorage(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestVideoService(sqlSvc)

	created, err := svc.CreateVideo(dto.CreateVideoRequest{
		Title:    "Hazard Hunt",
		VideoRef: "hazard01",
	})
	require.NoError(t, err)

	_, err = svc.UploadThumbnail(created.ID, nil)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode)
}
