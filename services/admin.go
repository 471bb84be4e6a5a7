package services

import (
	"context"
	"sort"
	"time"

	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	recentActivityLimit = 5
	activeUserWindow    = 30 * 24 * time.Hour
)

// AdminService computes fleet-wide statistics: totals, regional rollups and
// the recent drill activity feed. A single failed read aborts the whole
// aggregate; nothing partial is returned.
type AdminService struct {
	appContext.DefaultService

	sqlSvc   *PostgresService
	emailSvc *EmailService
}

const ADMIN_SVC = "admin_svc"

func (svc AdminService) Id() string {
	return ADMIN_SVC
}

func (svc *AdminService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AdminService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	if email, ok := svc.Service(EMAIL_SVC).(*EmailService); ok {
		svc.emailSvc = email
	}
	return nil
}

func (svc *AdminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	var (
		totalUsers      int64
		activeSchools   int64
		averageXP       float64
		activeUsers     int64
		completedDrills int64
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		totalUsers, err = svc.sqlSvc.CountUsers()
		return err
	})
	g.Go(func() (err error) {
		activeSchools, err = svc.sqlSvc.CountActiveSchools()
		return err
	})
	g.Go(func() (err error) {
		averageXP, err = svc.sqlSvc.AverageXP()
		return err
	})
	g.Go(func() (err error) {
		activeUsers, err = svc.sqlSvc.CountActiveUsersSince(time.Now().Add(-activeUserWindow))
		return err
	})
	g.Go(func() (err error) {
		completedDrills, err = svc.sqlSvc.CountCompletedDrills()
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	regions, err := svc.buildRegionStats()
	if err != nil {
		return nil, err
	}

	recent, err := svc.buildRecentActivity()
	if err != nil {
		return nil, err
	}

	return &dto.AdminStatsResponse{
		TotalUsers:      totalUsers,
		ActiveSchools:   activeSchools,
		AverageXP:       averageXP,
		ActiveUsers30d:  activeUsers,
		CompletedDrills: completedDrills,
		Regions:         regions,
		RecentActivity:  recent,
		GeneratedAt:     time.Now(),
	}, nil
}

// buildRegionStats rolls schools up by state, then folds each completed
// drill's completion rate into its school's region. A region with no drill
// samples reports exactly 0, never NaN.
func (svc *AdminService) buildRegionStats() ([]dto.RegionStats, error) {
	schools, err := svc.sqlSvc.GetActiveSchools()
	if err != nil {
		return nil, err
	}

	students := make(map[string]int)
	stateBySchool := make(map[string]string, len(schools))
	for _, s := range schools {
		students[s.State] += s.StudentCount
		stateBySchool[s.ID] = s.State
	}

	drills, err := svc.sqlSvc.GetCompletedDrills()
	if err != nil {
		return nil, err
	}

	samples := make(map[string][]float64)
	for _, d := range drills {
		state, ok := stateBySchool[d.SchoolID]
		if !ok {
			continue
		}
		samples[state] = append(samples[state], d.CompletionRate)
	}

	regions := make([]dto.RegionStats, 0, len(students))
	for state, count := range students {
		rates := samples[state]
		percent := 0.0
		if len(rates) > 0 {
			sum := 0.0
			for _, r := range rates {
				sum += r
			}
			percent = sum / float64(len(rates))
		}

		regions = append(regions, dto.RegionStats{
			Region:            state,
			Students:          count,
			CompletionPercent: percent,
			CompletedDrills:   len(rates),
		})
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Region < regions[j].Region
	})

	return regions, nil
}

// buildRecentActivity returns the five most recently updated completed
// drills. Participants fall back to the school's student count when the
// drill carries no counter; a drill with no school link reads "All Schools".
func (svc *AdminService) buildRecentActivity() ([]dto.RecentActivityEntry, error) {
	drills, err := svc.sqlSvc.GetRecentCompletedDrills(recentActivityLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.RecentActivityEntry, len(drills))
	for i, d := range drills {
		schoolName := "All Schools"
		participants := d.Participants
		if d.SchoolID != "" && d.School.ID != "" {
			schoolName = d.School.Name
			if participants == 0 {
				participants = d.School.StudentCount
			}
		}

		entries[i] = dto.RecentActivityEntry{
			DrillID:      d.ID,
			DrillType:    d.DrillType,
			SchoolName:   schoolName,
			Participants: participants,
			UpdatedAt:    d.UpdatedAt,
		}
	}

	return entries, nil
}

// BroadcastAlert publishes a safety alert and mails every active user who
// kept email alerts enabled. Mail delivery happens in the background; a
// failed send never fails the broadcast.
func (svc *AdminService) BroadcastAlert(req dto.BroadcastAlertRequest) (*dto.AlertResponse, error) {
	alert := &model.SafetyAlert{
		AlertType: req.AlertType,
		Severity:  req.Severity,
		Message:   req.Message,
		Region:    req.Region,
		Icon:      req.Icon,
		IsActive:  true,
	}

	id, _ := uuid.NewV7()
	alert.ID = id.String()

	if req.ExpiresIn > 0 {
		expires := time.Now().Add(time.Duration(req.ExpiresIn) * time.Hour)
		alert.ExpiresAt = &expires
	}

	created, err := svc.sqlSvc.CreateSafetyAlert(alert)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"alert_id": created.ID,
		"severity": created.Severity,
		"region":   created.Region,
	}).Info("Safety alert broadcast")

	if svc.emailSvc != nil {
		go svc.notifyAlertRecipients(created)
	}

	return &dto.AlertResponse{
		ID:        created.ID,
		AlertType: created.AlertType,
		Severity:  created.Severity,
		Message:   created.Message,
		Region:    created.Region,
		Icon:      created.Icon,
		ExpiresAt: created.ExpiresAt,
		CreatedAt: created.CreatedAt,
	}, nil
}

func (svc *AdminService) notifyAlertRecipients(alert *model.SafetyAlert) {
	recipients, err := svc.sqlSvc.GetAlertEmailRecipients()
	if err != nil {
		log.WithError(err).Error("Failed to load alert email recipients")
		return
	}

	sent := 0
	for _, user := range recipients {
		name := user.DisplayName
		if name == "" {
			name = user.Username
		}

		if err := svc.emailSvc.SendSafetyAlertEmail(user.Email, name, alert.AlertType, alert.Severity, alert.Message, alert.Region); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Failed to send alert email")
			continue
		}
		sent++
	}

	log.WithFields(log.Fields{
		"alert_id":   alert.ID,
		"recipients": len(recipients),
		"sent":       sent,
	}).Info("Alert emails dispatched")
}
