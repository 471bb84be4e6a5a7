package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"
	"github.com/safe-steps/prepared_api/shared"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	dashboardAlertLimit = 10
	dashboardVideoLimit = 6

	dashboardCacheTTL = 5 * time.Minute

	// XP needed per level; level 1 starts at 0 XP.
	xpPerLevel = 500
)

// DashboardService merges the content catalogs with the caller's progress
// rows into a single view model. A load is all-or-nothing: any failed read
// aborts the cycle and the previously published snapshot stays in place.
type DashboardService struct {
	appContext.DefaultService

	sqlSvc        *PostgresService
	redisSvc      *RedisService
	monitoringSvc *MonitoringService

	mu        sync.Mutex
	gens      map[string]uint64
	published map[string]uint64
	snapshots map[string]*dto.DashboardResponse
}

const DASHBOARD_SVC = "dashboard_svc"

func (svc DashboardService) Id() string {
	return DASHBOARD_SVC
}

func (svc *DashboardService) Configure(ctx *appContext.Context) error {
	svc.gens = make(map[string]uint64)
	svc.published = make(map[string]uint64)
	svc.snapshots = make(map[string]*dto.DashboardResponse)
	return svc.DefaultService.Configure(ctx)
}

func (svc *DashboardService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	if redisSvc, ok := svc.Service(REDIS_SVC).(*RedisService); ok {
		svc.redisSvc = redisSvc
	}
	if monitoringSvc, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok {
		svc.monitoringSvc = monitoringSvc
	}
	return nil
}

// GetDashboard loads and merges the full dashboard for one user. Overlapping
// loads for the same user are ordered by a generation counter: only the
// newest issued load may publish its result, stale completions are discarded.
func (svc *DashboardService) GetDashboard(ctx context.Context, userID, region string) (*dto.DashboardResponse, error) {
	// Only the unfiltered view is cached; a region-filtered read always loads
	// fresh so it is never served another region's alert list.
	if svc.redisSvc != nil && region == "" {
		var cached dto.DashboardResponse
		hit, _ := svc.redisSvc.GetJSON(ctx, dashboardCacheKey(userID), &cached)
		if svc.monitoringSvc != nil {
			svc.monitoringSvc.RecordCacheLookup(hit)
		}
		if hit {
			return &cached, nil
		}
	}

	gen := svc.nextGeneration(userID)

	start := time.Now()
	resp, err := svc.loadDashboard(ctx, userID, region)
	if err != nil {
		return nil, err
	}
	if svc.monitoringSvc != nil {
		svc.monitoringSvc.RecordAggregation("dashboard", time.Since(start))
	}

	published := svc.publish(userID, gen, resp)
	if !published && svc.monitoringSvc != nil {
		svc.monitoringSvc.RecordStaleDiscard()
	}
	if published && svc.redisSvc != nil && region == "" {
		if err := svc.redisSvc.SetJSON(ctx, dashboardCacheKey(userID), resp, dashboardCacheTTL); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to cache dashboard")
		}
	}

	return resp, nil
}

// Snapshot returns the last published view model for a user, if any.
func (svc *DashboardService) Snapshot(userID string) (*dto.DashboardResponse, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	snap, ok := svc.snapshots[userID]
	return snap, ok
}

func (svc *DashboardService) nextGeneration(userID string) uint64 {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.gens[userID]++
	return svc.gens[userID]
}

// publish stores the snapshot unless a newer load was issued meanwhile.
func (svc *DashboardService) publish(userID string, gen uint64, resp *dto.DashboardResponse) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if gen < svc.gens[userID] || gen <= svc.published[userID] {
		return false
	}

	svc.published[userID] = gen
	svc.snapshots[userID] = resp
	return true
}

func (svc *DashboardService) loadDashboard(ctx context.Context, userID, region string) (*dto.DashboardResponse, error) {
	var (
		progress       *model.UserProgress
		modules        []model.LearningModule
		moduleProgress []model.ModuleProgress
		games          []model.SafetyGame
		gameScores     []model.GameScore
		alerts         []model.SafetyAlert
		videos         []model.VideoTutorial
		achievements   []model.UserAchievement
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		progress, err = svc.getOrCreateProgress(userID)
		return err
	})
	g.Go(func() (err error) {
		modules, err = svc.sqlSvc.GetActiveModules()
		return err
	})
	g.Go(func() (err error) {
		moduleProgress, err = svc.sqlSvc.GetModuleProgressByUser(userID)
		return err
	})
	g.Go(func() (err error) {
		games, err = svc.sqlSvc.GetActiveGames()
		return err
	})
	g.Go(func() (err error) {
		gameScores, err = svc.sqlSvc.GetGameScoresByUser(userID)
		return err
	})
	g.Go(func() (err error) {
		alerts, err = svc.sqlSvc.GetActiveAlerts(region, dashboardAlertLimit)
		return err
	})
	g.Go(func() (err error) {
		videos, err = svc.sqlSvc.GetActiveVideos(dashboardVideoLimit)
		return err
	})
	g.Go(func() (err error) {
		achievements, err = svc.sqlSvc.GetUserAchievements(userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Progress: dto.ProgressSummary{
			XP:               progress.XP,
			Level:            progress.Level,
			CompletedModules: progress.CompletedModules,
			TotalGameScore:   progress.TotalGameScore,
			HomeRegion:       progress.HomeRegion,
		},
		Modules:      mergeModuleProgress(modules, moduleProgress),
		Games:        mergeGameScores(games, gameScores),
		Videos:       mapVideos(videos),
		Alerts:       mapAlerts(alerts),
		Achievements: mapEarnedAchievements(achievements),
		GeneratedAt:  time.Now(),
	}

	return resp, nil
}

// getOrCreateProgress treats a missing row as first contact, not an error.
func (svc *DashboardService) getOrCreateProgress(userID string) (*model.UserProgress, error) {
	progress, err := svc.sqlSvc.GetUserProgress(userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, _ := uuid.NewV7()
	now := time.Now()
	return svc.sqlSvc.CreateUserProgress(&model.UserProgress{
		ID:               id.String(),
		UserID:           userID,
		XP:               0,
		Level:            1,
		LastActivityDate: &now,
	})
}

// mergeModuleProgress attaches each user progress row to its catalog module
// by id; modules without a row render as untouched.
func mergeModuleProgress(modules []model.LearningModule, rows []model.ModuleProgress) []dto.ModuleWithProgress {
	byModule := make(map[string]model.ModuleProgress, len(rows))
	for _, row := range rows {
		byModule[row.ModuleID] = row
	}

	merged := make([]dto.ModuleWithProgress, len(modules))
	for i, m := range modules {
		merged[i] = dto.ModuleWithProgress{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Icon:        m.Icon,
			XPReward:    m.XPReward,
			Difficulty:  m.Difficulty,
			HoverText:   m.HoverText,
			SortOrder:   m.SortOrder,
		}
		if row, ok := byModule[m.ID]; ok {
			merged[i].Progress = row.Progress
			merged[i].IsCompleted = row.IsCompleted
			merged[i].CompletedAt = row.CompletedAt
		}
	}
	return merged
}

func mergeGameScores(games []model.SafetyGame, rows []model.GameScore) []dto.GameWithScore {
	byGame := make(map[string]model.GameScore, len(rows))
	for _, row := range rows {
		byGame[row.GameID] = row
	}

	merged := make([]dto.GameWithScore, len(games))
	for i, g := range games {
		merged[i] = dto.GameWithScore{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Icon:        g.Icon,
			XPReward:    g.XPReward,
			Difficulty:  g.Difficulty,
			HoverText:   g.HoverText,
			SortOrder:   g.SortOrder,
		}
		if row, ok := byGame[g.ID]; ok {
			merged[i].Score = row.Score
			merged[i].IsCompleted = row.IsCompleted
			merged[i].CompletedAt = row.CompletedAt
		}
	}
	return merged
}

func mapVideos(videos []model.VideoTutorial) []dto.VideoResponse {
	out := make([]dto.VideoResponse, len(videos))
	for i, v := range videos {
		out[i] = dto.VideoResponse{
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
	return out
}

func mapAlerts(alerts []model.SafetyAlert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = dto.AlertResponse{
			ID:        a.ID,
			AlertType: a.AlertType,
			Severity:  a.Severity,
			Message:   a.Message,
			Region:    a.Region,
			Icon:      a.Icon,
			ExpiresAt: a.ExpiresAt,
			CreatedAt: a.CreatedAt,
		}
	}
	return out
}

func mapEarnedAchievements(rows []model.UserAchievement) []dto.EarnedAchievementResponse {
	out := make([]dto.EarnedAchievementResponse, len(rows))
	for i, row := range rows {
		out[i] = dto.EarnedAchievementResponse{
			ID:          row.AchievementID,
			Name:        row.Achievement.Name,
			Description: row.Achievement.Description,
			Icon:        row.Achievement.Icon,
			Category:    row.Achievement.Category,
			XPReward:    row.Achievement.XPReward,
			EarnedAt:    row.EarnedAt,
		}
	}
	return out
}

// ==================== MUTATIONS ====================

// UpdateModuleProgress upserts the (user, module) row. The completion flag
// flips at 100 percent and the completion timestamp is stamped exactly once,
// at the transition. Afterwards the whole dashboard is reloaded rather than
// patched in place.
func (svc *DashboardService) UpdateModuleProgress(ctx context.Context, userID, moduleID string, percent int) (*dto.DashboardResponse, error) {
	if percent < 0 || percent > 100 {
		return nil, shared.NewBadRequestError(nil, "Progress must be between 0 and 100")
	}

	module, err := svc.sqlSvc.GetModule(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Module not found")
		}
		return nil, err
	}
	if !module.IsActive {
		return nil, shared.NewBadRequestError(nil, "Module is not active")
	}

	row := &model.ModuleProgress{
		UserID:   userID,
		ModuleID: moduleID,
		Progress: percent,
	}

	wasCompleted := false
	if existing, err := svc.sqlSvc.GetModuleProgress(userID, moduleID); err == nil {
		wasCompleted = existing.IsCompleted
		row.CompletedAt = existing.CompletedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Completion is derived from the stored percent: dropping back below 100
	// reads not-completed again and clears the timestamp.
	row.IsCompleted = percent >= 100
	if row.IsCompleted && row.CompletedAt == nil {
		now := time.Now()
		row.CompletedAt = &now
	} else if !row.IsCompleted {
		row.CompletedAt = nil
	}

	if err := svc.sqlSvc.SaveModuleProgress(row); err != nil {
		return nil, err
	}

	switch {
	case row.IsCompleted && !wasCompleted:
		if err := svc.awardModuleCompletion(userID, module); err != nil {
			return nil, err
		}
	case !row.IsCompleted && wasCompleted:
		if err := svc.revokeModuleCompletion(userID, module); err != nil {
			return nil, err
		}
	default:
		if err := svc.touchActivity(userID); err != nil {
			return nil, err
		}
	}

	return svc.reload(ctx, userID)
}

// CompleteGame upserts the (user, game) score row with completion set and
// refreshes the aggregate game score on the progress record.
func (svc *DashboardService) CompleteGame(ctx context.Context, userID, gameID string, score int) (*dto.DashboardResponse, error) {
	if score < 0 {
		return nil, shared.NewBadRequestError(nil, "Score must not be negative")
	}

	game, err := svc.sqlSvc.GetGame(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Game not found")
		}
		return nil, err
	}
	if !game.IsActive {
		return nil, shared.NewBadRequestError(nil, "Game is not active")
	}

	firstCompletion := true
	row := &model.GameScore{
		UserID:      userID,
		GameID:      gameID,
		Score:       score,
		IsCompleted: true,
	}
	if existing, err := svc.sqlSvc.GetGameScore(userID, gameID); err == nil {
		firstCompletion = !existing.IsCompleted
		row.CompletedAt = existing.CompletedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if row.CompletedAt == nil {
		now := time.Now()
		row.CompletedAt = &now
	}

	if err := svc.sqlSvc.SaveGameScore(row); err != nil {
		return nil, err
	}

	if err := svc.refreshGameStats(userID, game, firstCompletion); err != nil {
		return nil, err
	}

	return svc.reload(ctx, userID)
}

func (svc *DashboardService) awardModuleCompletion(userID string, module *model.LearningModule) error {
	progress, err := svc.getOrCreateProgress(userID)
	if err != nil {
		return err
	}

	progress.XP += module.XPReward
	progress.Level = levelForXP(progress.XP)
	progress.CompletedModules++
	now := time.Now()
	progress.LastActivityDate = &now

	log.WithFields(log.Fields{
		"user_id":   userID,
		"module_id": module.ID,
		"xp":        progress.XP,
	}).Info("Module completed")

	return svc.sqlSvc.UpdateUserProgress(progress)
}

// revokeModuleCompletion undoes the completion award when progress drops back
// below 100, so a later re-completion can award again without double-counting.
func (svc *DashboardService) revokeModuleCompletion(userID string, module *model.LearningModule) error {
	progress, err := svc.getOrCreateProgress(userID)
	if err != nil {
		return err
	}

	progress.XP -= module.XPReward
	if progress.XP < 0 {
		progress.XP = 0
	}
	progress.Level = levelForXP(progress.XP)
	if progress.CompletedModules > 0 {
		progress.CompletedModules--
	}
	now := time.Now()
	progress.LastActivityDate = &now

	log.WithFields(log.Fields{
		"user_id":   userID,
		"module_id": module.ID,
		"xp":        progress.XP,
	}).Info("Module completion revoked")

	return svc.sqlSvc.UpdateUserProgress(progress)
}

func (svc *DashboardService) refreshGameStats(userID string, game *model.SafetyGame, firstCompletion bool) error {
	progress, err := svc.getOrCreateProgress(userID)
	if err != nil {
		return err
	}

	scores, err := svc.sqlSvc.GetGameScoresByUser(userID)
	if err != nil {
		return err
	}

	total := 0
	for _, s := range scores {
		total += s.Score
	}
	progress.TotalGameScore = total

	if firstCompletion {
		progress.XP += game.XPReward
		progress.Level = levelForXP(progress.XP)
	}

	now := time.Now()
	progress.LastActivityDate = &now

	return svc.sqlSvc.UpdateUserProgress(progress)
}

func (svc *DashboardService) touchActivity(userID string) error {
	progress, err := svc.getOrCreateProgress(userID)
	if err != nil {
		return err
	}
	now := time.Now()
	progress.LastActivityDate = &now
	return svc.sqlSvc.UpdateUserProgress(progress)
}

// reload invalidates the cached snapshot and runs a full load cycle. Mutation
// responses carry the fleet-wide alert view; region filters only apply to
// explicit dashboard reads.
func (svc *DashboardService) reload(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	if svc.redisSvc != nil {
		if err := svc.redisSvc.Delete(ctx, dashboardCacheKey(userID)); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate dashboard cache")
		}
	}

	gen := svc.nextGeneration(userID)
	resp, err := svc.loadDashboard(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	svc.publish(userID, gen, resp)
	return resp, nil
}

func levelForXP(xp int) int {
	return xp/xpPerLevel + 1
}

func dashboardCacheKey(userID string) string {
	return "dashboard:" + userID
}
