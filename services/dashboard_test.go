package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
	"github.com/safe-steps/prepared_api/shared"
)

func TestGetDashboardCreatesDefaultProgress(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_a", Title: "Earthquake Basics", XPReward: 50, IsActive: true,
	}).Error)

	resp, err := svc.GetDashboard(context.Background(), "user-1", "")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Progress.XP)
	assert.Equal(t, 1, resp.Progress.Level)
	assert.Equal(t, 0, resp.Progress.CompletedModules)

	require.Len(t, resp.Modules, 1)
	assert.Equal(t, 0, resp.Modules[0].Progress)
	assert.False(t, resp.Modules[0].IsCompleted)
	assert.Nil(t, resp.Modules[0].CompletedAt)

	// Second load reuses the same progress row.
	_, err = svc.GetDashboard(context.Background(), "user-1", "")
	require.NoError(t, err)

	var count int64
	sqlSvc.db.Model(&model.UserProgress{}).Where("user_id = ?", "user-1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDashboardMergesProgressAndScores(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_started", Title: "Fire Safety", IsActive: true, SortOrder: 1,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_untouched", Title: "Flood Response", IsActive: true, SortOrder: 2,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyGame{
		ID: "game_a", Title: "Pack the Kit", IsActive: true,
	}).Error)

	require.NoError(t, sqlSvc.db.Create(&model.ModuleProgress{
		ID: "mp-1", UserID: "user-1", ModuleID: "mod_started", Progress: 40,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.GameScore{
		ID: "gs-1", UserID: "user-1", GameID: "game_a", Score: 750, IsCompleted: true,
	}).Error)

	resp, err := svc.GetDashboard(context.Background(), "user-1", "")
	require.NoError(t, err)

	require.Len(t, resp.Modules, 2)
	assert.Equal(t, 40, resp.Modules[0].Progress)
	assert.Equal(t, 0, resp.Modules[1].Progress)

	require.Len(t, resp.Games, 1)
	assert.Equal(t, 750, resp.Games[0].Score)
	assert.True(t, resp.Games[0].IsCompleted)
}

func TestDashboardCrossUserIsolation(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_a", Title: "Earthquake Basics", XPReward: 50, IsActive: true,
	}).Error)

	_, err := svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", 100)
	require.NoError(t, err)

	resp, err := svc.GetDashboard(context.Background(), "user-2", "")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Progress.XP)
	require.Len(t, resp.Modules, 1)
	assert.False(t, resp.Modules[0].IsCompleted)
}

func TestUpdateModuleProgressRejectsOutOfRange(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	for _, percent := range []int{-1, 101} {
		_, err := svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", percent)
		require.Error(t, err)

		appErr, ok := shared.GetAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
	}
}

func TestUpdateModuleProgressUnknownAndInactive(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	_, err := svc.UpdateModuleProgress(context.Background(), "user-1", "missing", 10)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)

	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_off", Title: "Retired", IsActive: false,
	}).Error)

	_, err = svc.UpdateModuleProgress(context.Background(), "user-1", "mod_off", 10)
	require.Error(t, err)
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestUpdateModuleProgressCompletionAwardsOnce(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_a", Title: "Earthquake Basics", XPReward: 50, IsActive: true,
	}).Error)

	// Partial progress: no award, no completion.
	resp, err := svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", 50)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Progress.XP)
	assert.False(t, resp.Modules[0].IsCompleted)

	// Hitting 100 flips completion and grants the reward.
	resp, err = svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", 100)
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Progress.XP)
	assert.Equal(t, 1, resp.Progress.CompletedModules)
	assert.True(t, resp.Modules[0].IsCompleted)
	require.NotNil(t, resp.Modules[0].CompletedAt)
	firstCompletedAt := *resp.Modules[0].CompletedAt

	// A later update must not re-award or restamp the timestamp.
	resp, err = svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", 100)
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Progress.XP)
	assert.Equal(t, 1, resp.Progress.CompletedModules)
	require.NotNil(t, resp.Modules[0].CompletedAt)
	assert.True(t, firstCompletedAt.Equal(*resp.Modules[0].CompletedAt))
}

func TestUpdateModuleProgressDowngradeClearsCompletion(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_a", Title: "Earthquake Basics", XPReward: 50, IsActive: true,
	}).Error)

	resp, err := svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", 100)
	require.NoError(t, err)
	assert.True(t, resp.Modules[0].IsCompleted)
	assert.Equal(t, 50, resp.Progress.XP)

	// Dropping below 100 reads not-completed and revokes the award.
	resp, err = svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", 50)
	require.NoError(t, err)
	assert.False(t, resp.Modules[0].IsCompleted)
	assert.Nil(t, resp.Modules[0].CompletedAt)
	assert.Equal(t, 0, resp.Progress.XP)
	assert.Equal(t, 0, resp.Progress.CompletedModules)

	// Re-completing awards exactly once more.
	resp, err = svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", 100)
	require.NoError(t, err)
	assert.True(t, resp.Modules[0].IsCompleted)
	require.NotNil(t, resp.Modules[0].CompletedAt)
	assert.Equal(t, 50, resp.Progress.XP)
	assert.Equal(t, 1, resp.Progress.CompletedModules)
}

func TestCompleteGameAwardsXPOnFirstCompletionOnly(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	require.NoError(t, sqlSvc.db.Create(&model.SafetyGame{
		ID: "game_a", Title: "Pack the Kit", XPReward: 30, IsActive: true,
	}).Error)

	resp, err := svc.CompleteGame(context.Background(), "user-1", "game_a", 400)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Progress.XP)
	assert.Equal(t, 400, resp.Progress.TotalGameScore)

	// Replay improves the score without a second XP grant.
	resp, err = svc.CompleteGame(context.Background(), "user-1", "game_a", 900)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Progress.XP)
	assert.Equal(t, 900, resp.Progress.TotalGameScore)
}

func TestCompleteGameRejectsNegativeScore(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	_, err := svc.CompleteGame(context.Background(), "user-1", "game_a", -5)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestDashboardAlertRegionFilter(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyAlert{
		ID: "alert_nationwide", AlertType: "earthquake", IsActive: true,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyAlert{
		ID: "alert_ca", AlertType: "fire", Region: "CA", IsActive: true,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyAlert{
		ID: "alert_tx", AlertType: "tornado", Region: "TX", IsActive: true,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyAlert{
		ID: "alert_gone", AlertType: "flood", IsActive: true, ExpiresAt: &expired,
	}).Error)

	resp, err := svc.GetDashboard(context.Background(), "user-1", "CA")
	require.NoError(t, err)

	ids := make([]string, len(resp.Alerts))
	for i, a := range resp.Alerts {
		ids[i] = a.ID
	}
	assert.ElementsMatch(t, []string{"alert_nationwide", "alert_ca"}, ids)
}

func TestDashboardRegionViewsStayIndependent(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	require.NoError(t, sqlSvc.db.Create(&model.LearningModule{
		ID: "mod_a", Title: "Earthquake Basics", IsActive: true,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyAlert{
		ID: "alert_nationwide", AlertType: "earthquake", IsActive: true,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyAlert{
		ID: "alert_ca", AlertType: "fire", Region: "CA", IsActive: true,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.SafetyAlert{
		ID: "alert_tx", AlertType: "tornado", Region: "TX", IsActive: true,
	}).Error)

	resp, err := svc.GetDashboard(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Len(t, resp.Alerts, 3)

	// A region-filtered read right after an unfiltered one stays filtered.
	resp, err = svc.GetDashboard(context.Background(), "user-1", "CA")
	require.NoError(t, err)
	alertIDs := func(resp *dto.DashboardResponse) []string {
		ids := make([]string, len(resp.Alerts))
		for i, a := range resp.Alerts {
			ids[i] = a.ID
		}
		return ids
	}
	assert.ElementsMatch(t, []string{"alert_nationwide", "alert_ca"}, alertIDs(resp))

	// Mutation responses carry the fleet-wide view.
	resp, err = svc.UpdateModuleProgress(context.Background(), "user-1", "mod_a", 10)
	require.NoError(t, err)
	assert.Len(t, resp.Alerts, 3)

	resp, err = svc.GetDashboard(context.Background(), "user-1", "TX")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alert_nationwide", "alert_tx"}, alertIDs(resp))
}

func TestPublishDiscardsStaleGenerations(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestDashboardService(sqlSvc)

	first, err := svc.GetDashboard(context.Background(), "user-1", "")
	require.NoError(t, err)

	// Simulate an overlapping pair of loads where the older one finishes last.
	genOld := svc.nextGeneration("user-1")
	genNew := svc.nextGeneration("user-1")

	newResp, err := svc.loadDashboard(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.True(t, svc.publish("user-1", genNew, newResp))

	staleResp, err := svc.loadDashboard(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.False(t, svc.publish("user-1", genOld, staleResp))

	// Publishing the same generation twice is also a no-op.
	assert.False(t, svc.publish("user-1", genNew, first))

	snap, ok := svc.Snapshot("user-1")
	require.True(t, ok)
	assert.Same(t, newResp, snap)
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, levelForXP(0))
	assert.Equal(t, 1, levelForXP(499))
	assert.Equal(t, 2, levelForXP(500))
	assert.Equal(t, 3, levelForXP(1000))
	assert.Equal(t, 5, levelForXP(2350))
}
