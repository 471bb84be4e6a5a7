package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
)

func newTestAdminService(sqlSvc *PostgresService) *AdminService {
	return &AdminService{sqlSvc: sqlSvc}
}

func seedStatsFixture(t *testing.T, sqlSvc *PostgresService) {
	t.Helper()

	users := []model.User{
		{ID: "u1", Username: "ana", Email: "ana@example.com", Password: "x", IsActive: true},
		{ID: "u2", Username: "ben", Email: "ben@example.com", Password: "x", IsActive: true},
		{ID: "u3", Username: "cho", Email: "cho@example.com", Password: "x", IsActive: false},
	}
	for i := range users {
		require.NoError(t, sqlSvc.db.Create(&users[i]).Error)
	}

	require.NoError(t, sqlSvc.db.Create(&model.UserProgress{
		ID: "up1", UserID: "u1", XP: 400, Level: 1,
	}).Error)
	require.NoError(t, sqlSvc.db.Create(&model.UserProgress{
		ID: "up2", UserID: "u2", XP: 600, Level: 2,
	}).Error)

	schools := []model.School{
		{ID: "sch_ca_1", Name: "Bayview Elementary", State: "CA", StudentCount: 300, IsActive: true},
		{ID: "sch_ca_2", Name: "Ridgecrest Middle", State: "CA", StudentCount: 200, IsActive: true},
		{ID: "sch_tx_1", Name: "Lone Star High", State: "TX", StudentCount: 500, IsActive: true},
		{ID: "sch_closed", Name: "Closed Academy", State: "WA", StudentCount: 100, IsActive: false},
	}
	for i := range schools {
		require.NoError(t, sqlSvc.db.Create(&schools[i]).Error)
	}

	drills := []model.DisasterDrill{
		{ID: "dr1", SchoolID: "sch_ca_1", DrillType: "earthquake", Status: "completed", CompletionRate: 80, Participants: 250},
		{ID: "dr2", SchoolID: "sch_ca_2", DrillType: "fire", Status: "completed", CompletionRate: 60},
		{ID: "dr3", SchoolID: "", DrillType: "shakeout", Status: "completed", CompletionRate: 90, Participants: 900},
		{ID: "dr4", SchoolID: "sch_tx_1", DrillType: "tornado", Status: "scheduled"},
	}
	for i := range drills {
		require.NoError(t, sqlSvc.db.Create(&drills[i]).Error)
	}
}

func TestGetStatsTotals(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAdminService(sqlSvc)
	seedStatsFixture(t, sqlSvc)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.ActiveSchools)
	assert.Equal(t, int64(2), stats.ActiveUsers30d)
	assert.Equal(t, int64(3), stats.CompletedDrills)
	assert.InDelta(t, 500.0, stats.AverageXP, 0.001)
}

func TestGetStatsOnEmptyDatabase(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAdminService(sqlSvc)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalUsers)
	assert.Equal(t, 0.0, stats.AverageXP)
	assert.Empty(t, stats.Regions)
	assert.Empty(t, stats.RecentActivity)
}

func TestBuildRegionStats(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAdminService(sqlSvc)
	seedStatsFixture(t, sqlSvc)

	regions, err := svc.buildRegionStats()
	require.NoError(t, err)

	// Sorted by region name; inactive schools excluded.
	require.Len(t, regions, 2)
	assert.Equal(t, "CA", regions[0].Region)
	assert.Equal(t, "TX", regions[1].Region)

	assert.Equal(t, 500, regions[0].Students)
	assert.InDelta(t, 70.0, regions[0].CompletionPercent, 0.001)
	assert.Equal(t, 2, regions[0].CompletedDrills)

	// TX has students but no completed drill samples: exactly zero.
	assert.Equal(t, 500, regions[1].Students)
	assert.Equal(t, 0.0, regions[1].CompletionPercent)
	assert.Equal(t, 0, regions[1].CompletedDrills)
}

func TestBuildRecentActivityFallbacks(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAdminService(sqlSvc)
	seedStatsFixture(t, sqlSvc)

	entries, err := svc.buildRecentActivity()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byDrill := make(map[string]dto.RecentActivityEntry, len(entries))
	for _, e := range entries {
		byDrill[e.DrillID] = e
	}

	// Fleet-wide drill has no school link.
	assert.Equal(t, "All Schools", byDrill["dr3"].SchoolName)
	assert.Equal(t, 900, byDrill["dr3"].Participants)

	// Drill with its own counter keeps it.
	assert.Equal(t, "Bayview Elementary", byDrill["dr1"].SchoolName)
	assert.Equal(t, 250, byDrill["dr1"].Participants)

	// Missing counter falls back to the school's student count.
	assert.Equal(t, "Ridgecrest Middle", byDrill["dr2"].SchoolName)
	assert.Equal(t, 200, byDrill["dr2"].Participants)
}

func TestBroadcastAlertPersistsWithExpiry(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAdminService(sqlSvc)

	resp, err := svc.BroadcastAlert(dto.BroadcastAlertRequest{
		AlertType: "earthquake",
		Severity:  "critical",
		Message:   "Aftershocks expected through the evening.",
		Region:    "CA",
		ExpiresIn: 6,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	assert.Equal(t, "critical", resp.Severity)

	var stored model.SafetyAlert
	require.NoError(t, sqlSvc.db.First(&stored, "id = ?", resp.ID).Error)
	assert.True(t, stored.IsActive)
	require.NotNil(t, stored.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(6*time.Hour), *stored.ExpiresAt, time.Minute)
}

func TestBroadcastAlertWithoutExpiry(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestAdminService(sqlSvc)

	resp, err := svc.BroadcastAlert(dto.BroadcastAlertRequest{
		AlertType: "flood",
		Severity:  "info",
		Message:   "River levels are back to normal.",
	})
	require.NoError(t, err)

	var stored model.SafetyAlert
	require.NoError(t, sqlSvc.db.First(&stored, "id = ?", resp.ID).Error)
	assert.Nil(t, stored.ExpiresAt)
	assert.Empty(t, stored.Region)
}
