package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/safe-steps/prepared_api/dto"
	"github.com/safe-steps/prepared_api/model"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "prepared_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	err = ds.db.AutoMigrate(Models()...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

// Models lists every table the API owns; shared with the sqlite service and
// the test harness.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.UserSession{},
		&model.AdminUser{},
		&model.RateLimit{},

		&model.LearningModule{},
		&model.ModuleProgress{},
		&model.SafetyGame{},
		&model.GameScore{},
		&model.VideoTutorial{},
		&model.SafetyAlert{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.UserProgress{},

		&model.UserSettings{},
		&model.AdminSetting{},

		&model.School{},
		&model.DisasterDrill{},
	}
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *PostgresService) HandleError(err error) error {
	return handleDbError(err)
}

func handleDbError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== USER METHODS ====================

func (ds *PostgresService) CreateUser(req dto.RegisterRequest, hashedPassword string) (*model.User, error) {
	user := &model.User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashedPassword,
		DisplayName: req.DisplayName,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *PostgresService) GetUserByID(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByEmailOrUsername(emailOrUsername string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).
		First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) IsEmailAvailable(email string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	if err != nil {
		return false, ds.HandleError(err)
	}
	return count == 0, nil
}

func (ds *PostgresService) IsUsernameAvailable(username string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(username) = LOWER(?)", username).Count(&count).Error
	if err != nil {
		return false, ds.HandleError(err)
	}
	return count == 0, nil
}

func (ds *PostgresService) UpdateLastLogin(userID, ip string) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login_at": &now,
		"last_login_ip": ip,
		"updated_at":    now,
	}).Error
}

// ==================== USER SESSION METHODS ====================

func (ds *PostgresService) CreateUserSession(session *model.UserSession) (string, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if err := ds.db.Create(session).Error; err != nil {
		return "", ds.HandleError(err)
	}
	return session.ID, nil
}

func (ds *PostgresService) GetActiveSession(sessionID string) (*model.UserSession, error) {
	var session model.UserSession
	err := ds.db.Where("id = ? AND is_active = ? AND expires_at > ?",
		sessionID, true, time.Now()).First(&session).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &session, nil
}

func (ds *PostgresService) DeactivateSession(sessionID, userID string) error {
	return ds.db.Model(&model.UserSession{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Updates(map[string]interface{}{
			"is_active": false,
			"last_used": time.Now(),
		}).Error
}

// ==================== ADMIN REGISTRY METHODS ====================

func (ds *PostgresService) GetAdminUser(userID string) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := ds.db.Where("user_id = ?", userID).First(&admin).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &admin, nil
}

// ==================== USER PROGRESS METHODS ====================

func (ds *PostgresService) CreateUserProgress(progress *model.UserProgress) (*model.UserProgress, error) {
	if progress.ID == "" {
		id, _ := uuid.NewV7()
		progress.ID = id.String()
	}
	progress.CreatedAt = time.Now()
	progress.UpdatedAt = time.Now()

	if err := ds.db.Create(progress).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return progress, nil
}

func (ds *PostgresService) GetUserProgress(userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	if err := ds.db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &progress, nil
}

func (ds *PostgresService) UpdateUserProgress(progress *model.UserProgress) error {
	progress.UpdatedAt = time.Now()
	if err := ds.db.Save(progress).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== MODULE CATALOG METHODS ====================

func (ds *PostgresService) GetActiveModules() ([]model.LearningModule, error) {
	var modules []model.LearningModule
	if err := ds.db.Where("is_active = ?", true).
		Order("sort_order ASC").Find(&modules).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return modules, nil
}

func (ds *PostgresService) GetAllModules() ([]model.LearningModule, error) {
	var modules []model.LearningModule
	if err := ds.db.Order("sort_order ASC").Find(&modules).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return modules, nil
}

func (ds *PostgresService) GetModule(id string) (*model.LearningModule, error) {
	var module model.LearningModule
	if err := ds.db.Where("id = ?", id).First(&module).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &module, nil
}

func (ds *PostgresService) GetModuleProgressByUser(userID string) ([]model.ModuleProgress, error) {
	var rows []model.ModuleProgress
	if err := ds.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return rows, nil
}

func (ds *PostgresService) GetModuleProgress(userID, moduleID string) (*model.ModuleProgress, error) {
	var row model.ModuleProgress
	if err := ds.db.Where("user_id = ? AND module_id = ?", userID, moduleID).
		First(&row).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &row, nil
}

// SaveModuleProgress upserts by the (user, module) unique pair.
func (ds *PostgresService) SaveModuleProgress(row *model.ModuleProgress) error {
	var existing model.ModuleProgress
	err := ds.db.Where("user_id = ? AND module_id = ?", row.UserID, row.ModuleID).
		First(&existing).Error

	if err == nil {
		existing.Progress = row.Progress
		existing.IsCompleted = row.IsCompleted
		existing.CompletedAt = row.CompletedAt
		existing.UpdatedAt = time.Now()
		*row = existing
		return ds.db.Save(&existing).Error
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		if row.ID == "" {
			id, _ := uuid.NewV7()
			row.ID = id.String()
		}
		row.CreatedAt = time.Now()
		row.UpdatedAt = time.Now()
		return ds.db.Create(row).Error
	}

	return ds.HandleError(err)
}

// ==================== GAME CATALOG METHODS ====================

func (ds *PostgresService) GetActiveGames() ([]model.SafetyGame, error) {
	var games []model.SafetyGame
	if err := ds.db.Where("is_active = ?", true).
		Order("sort_order ASC").Find(&games).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return games, nil
}

func (ds *PostgresService) GetGame(id string) (*model.SafetyGame, error) {
	var game model.SafetyGame
	if err := ds.db.Where("id = ?", id).First(&game).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &game, nil
}

func (ds *PostgresService) GetGameScoresByUser(userID string) ([]model.GameScore, error) {
	var rows []model.GameScore
	if err := ds.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return rows, nil
}

func (ds *PostgresService) GetGameScore(userID, gameID string) (*model.GameScore, error) {
	var row model.GameScore
	if err := ds.db.Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&row).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &row, nil
}

// SaveGameScore upserts by the (user, game) unique pair.
func (ds *PostgresService) SaveGameScore(row *model.GameScore) error {
	var existing model.GameScore
	err := ds.db.Where("user_id = ? AND game_id = ?", row.UserID, row.GameID).
		First(&existing).Error

	if err == nil {
		existing.Score = row.Score
		existing.IsCompleted = row.IsCompleted
		existing.CompletedAt = row.CompletedAt
		existing.UpdatedAt = time.Now()
		*row = existing
		return ds.db.Save(&existing).Error
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		if row.ID == "" {
			id, _ := uuid.NewV7()
			row.ID = id.String()
		}
		row.CreatedAt = time.Now()
		row.UpdatedAt = time.Now()
		return ds.db.Create(row).Error
	}

	return ds.HandleError(err)
}

// ==================== ALERT METHODS ====================

// GetActiveAlerts returns the most recent active, unexpired alerts. A region
// filter keeps nationwide alerts (empty region) and adds the region's own.
func (ds *PostgresService) GetActiveAlerts(region string, limit int) ([]model.SafetyAlert, error) {
	var alerts []model.SafetyAlert
	query := ds.db.Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())

	if region != "" {
		query = query.Where("region = '' OR region = ?", region)
	}

	if err := query.Order("created_at DESC").Limit(limit).Find(&alerts).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return alerts, nil
}

func (ds *PostgresService) CreateSafetyAlert(alert *model.SafetyAlert) (*model.SafetyAlert, error) {
	if alert.ID == "" {
		id, _ := uuid.NewV7()
		alert.ID = id.String()
	}
	alert.CreatedAt = time.Now()

	if err := ds.db.Create(alert).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return alert, nil
}

// ==================== VIDEO METHODS ====================

func (ds *PostgresService) GetActiveVideos(limit int) ([]model.VideoTutorial, error) {
	var videos []model.VideoTutorial
	query := ds.db.Where("is_active = ?", true).Order("sort_order ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&videos).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return videos, nil
}

func (ds *PostgresService) GetAllVideos() ([]model.VideoTutorial, error) {
	var videos []model.VideoTutorial
	if err := ds.db.Order("sort_order ASC").Find(&videos).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return videos, nil
}

func (ds *PostgresService) GetVideo(id string) (*model.VideoTutorial, error) {
	var video model.VideoTutorial
	if err := ds.db.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &video, nil
}

func (ds *PostgresService) CreateVideo(video *model.VideoTutorial) (*model.VideoTutorial, error) {
	if video.ID == "" {
		id, _ := uuid.NewV7()
		video.ID = id.String()
	}
	video.CreatedAt = time.Now()
	video.UpdatedAt = time.Now()

	if err := ds.db.Create(video).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return video, nil
}

func (ds *PostgresService) UpdateVideo(video *model.VideoTutorial) error {
	video.UpdatedAt = time.Now()
	if err := ds.db.Save(video).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) DeleteVideo(id string) error {
	if err := ds.db.Where("id = ?", id).Delete(&model.VideoTutorial{}).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *PostgresService) IncrementVideoViews(id string) error {
	return ds.db.Model(&model.VideoTutorial{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"view_count": gorm.Expr("view_count + 1"),
			"updated_at": time.Now(),
		}).Error
}

// ==================== ACHIEVEMENT METHODS ====================

func (ds *PostgresService) GetActiveAchievements() ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := ds.db.Where("is_active = ?", true).Find(&achievements).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return achievements, nil
}

func (ds *PostgresService) GetUserAchievements(userID string) ([]model.UserAchievement, error) {
	var rows []model.UserAchievement
	if err := ds.db.Preload("Achievement").Where("user_id = ?", userID).
		Order("earned_at DESC").Find(&rows).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return rows, nil
}

func (ds *PostgresService) CreateUserAchievement(row *model.UserAchievement) error {
	if row.ID == "" {
		id, _ := uuid.NewV7()
		row.ID = id.String()
	}
	row.CreatedAt = time.Now()
	if row.EarnedAt.IsZero() {
		row.EarnedAt = time.Now()
	}

	if err := ds.db.Create(row).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== USER SETTINGS METHODS ====================

func (ds *PostgresService) GetUserSettings(userID string) (*model.UserSettings, error) {
	var settings model.UserSettings
	if err := ds.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &settings, nil
}

func (ds *PostgresService) CreateUserSettings(settings *model.UserSettings) (*model.UserSettings, error) {
	if settings.ID == "" {
		id, _ := uuid.NewV7()
		settings.ID = id.String()
	}
	settings.CreatedAt = time.Now()
	settings.UpdatedAt = time.Now()

	if err := ds.db.Create(settings).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return settings, nil
}

func (ds *PostgresService) UpdateUserSettings(userID string, changes map[string]interface{}) error {
	changes["updated_at"] = time.Now()
	if err := ds.db.Model(&model.UserSettings{}).Where("user_id = ?", userID).
		Updates(changes).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== ADMIN SETTINGS METHODS ====================

func (ds *PostgresService) GetAdminSettings() ([]model.AdminSetting, error) {
	var settings []model.AdminSetting
	if err := ds.db.Order("setting_type ASC, key ASC").Find(&settings).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return settings, nil
}

func (ds *PostgresService) GetAdminSetting(key string) (*model.AdminSetting, error) {
	var setting model.AdminSetting
	if err := ds.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &setting, nil
}

// SaveAdminSetting upserts by key and stores the value document verbatim.
// A nil isPublic leaves the stored visibility untouched, mirroring the
// keep-if-empty handling of SettingType and Description.
func (ds *PostgresService) SaveAdminSetting(setting *model.AdminSetting, isPublic *bool) error {
	var existing model.AdminSetting
	err := ds.db.Where("key = ?", setting.Key).First(&existing).Error

	if err == nil {
		existing.Value = setting.Value
		if setting.SettingType != "" {
			existing.SettingType = setting.SettingType
		}
		if setting.Description != "" {
			existing.Description = setting.Description
		}
		if isPublic != nil {
			existing.IsPublic = *isPublic
		}
		existing.UpdatedAt = time.Now()
		*setting = existing
		return ds.db.Save(&existing).Error
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		if setting.ID == "" {
			id, _ := uuid.NewV7()
			setting.ID = id.String()
		}
		if isPublic != nil {
			setting.IsPublic = *isPublic
		}
		if setting.SettingType == "" {
			setting.SettingType = "general"
		}
		setting.CreatedAt = time.Now()
		setting.UpdatedAt = time.Now()
		return ds.db.Create(setting).Error
	}

	return ds.HandleError(err)
}

// ==================== ADMIN STATS METHODS ====================

func (ds *PostgresService) CountUsers() (int64, error) {
	var count int64
	if err := ds.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) CountActiveSchools() (int64, error) {
	var count int64
	if err := ds.db.Model(&model.School{}).Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) AverageXP() (float64, error) {
	var avg *float64
	if err := ds.db.Model(&model.UserProgress{}).
		Select("AVG(xp)").Scan(&avg).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (ds *PostgresService) CountActiveUsersSince(since time.Time) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.UserProgress{}).
		Where("updated_at >= ?", since).Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) CountCompletedDrills() (int64, error) {
	var count int64
	if err := ds.db.Model(&model.DisasterDrill{}).
		Where("status = ?", "completed").Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *PostgresService) GetActiveSchools() ([]model.School, error) {
	var schools []model.School
	if err := ds.db.Where("is_active = ?", true).Find(&schools).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return schools, nil
}

func (ds *PostgresService) GetCompletedDrills() ([]model.DisasterDrill, error) {
	var drills []model.DisasterDrill
	if err := ds.db.Preload("School").Where("status = ?", "completed").
		Find(&drills).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return drills, nil
}

func (ds *PostgresService) GetRecentCompletedDrills(limit int) ([]model.DisasterDrill, error) {
	var drills []model.DisasterDrill
	if err := ds.db.Preload("School").Where("status = ?", "completed").
		Order("updated_at DESC").Limit(limit).Find(&drills).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return drills, nil
}

// ==================== SETTINGS-AWARE EMAIL RECIPIENTS ====================

// GetAlertEmailRecipients joins users to their settings; only users who left
// email alerts on receive broadcast mail.
func (ds *PostgresService) GetAlertEmailRecipients() ([]model.User, error) {
	var users []model.User
	if err := ds.db.Table("users").
		Joins("JOIN user_settings ON user_settings.user_id = users.id").
		Where("user_settings.email_alerts = ? AND users.is_active = ?", true, true).
		Find(&users).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return users, nil
}

// ==================== RATE LIMIT METHODS ====================

func (ds *PostgresService) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var rateLimit model.RateLimit

	err := ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).
		First(&rateLimit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &rateLimit, nil
}

func (ds *PostgresService) SaveRateLimit(rateLimit *model.RateLimit) error {
	if rateLimit.ID == "" {
		id, _ := uuid.NewV7()
		rateLimit.ID = id.String()
	}

	now := time.Now()
	if rateLimit.CreatedAt.IsZero() {
		rateLimit.CreatedAt = now
	}
	rateLimit.UpdatedAt = now

	if err := ds.db.Save(rateLimit).Error; err != nil {
		return err
	}
	return nil
}

func (ds *PostgresService) CleanupOldRateLimits() error {
	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	now := time.Now()

	return ds.db.Where("created_at < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, now).
		Delete(&model.RateLimit{}).Error
}
