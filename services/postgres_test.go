package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safe-steps/prepared_api/model"
)

// Rows created with IsActive false must actually be stored inactive; the
// catalog queries depend on the flag surviving the insert.
func TestInactiveRowsStoredAndExcluded(t *testing.T) {
	sqlSvc := newTestDB(t)

	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_on", Title: "Live Module", IsActive: true,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_off", Title: "Retired Module", IsActive: false,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyGame{
		ID: "game_off", Title: "Retired Game", IsActive: false,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.VideoTutorial{
		ID: "vid_off", Title: "Retired Video", VideoRef: "x", IsActive: false,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.School{
		ID: "sch_off", Name: "Closed Academy", State: "WA", IsActive: false,
	}).Error)

	var stored model.LearningModule
	require.NoError(t, sqlSvc.db.First(&stored, "id = ?", "mod_off").Error)
	assert.False(t, stored.IsActive)

	modules, err := sqlSvc.GetActiveModules()
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "mod_on", modules[0].ID)

	games, err := sqlSvc.GetActiveGames()
	require.NoError(t, err)
	assert.Empty(t, games)

	videos, err := sqlSvc.GetActiveVideos(10)
	require.NoError(t, err)
	assert.Empty(t, videos)

	schools, err := sqlSvc.GetActiveSchools()
	require.NoError(t, err)
	assert.Empty(t, schools)

	count, err := sqlSvc.CountActiveSchools()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
