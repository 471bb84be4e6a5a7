package model

import "time"

// LearningModule is a catalog entry for a disaster-preparedness lesson.
type LearningModule struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Icon        string    `json:"icon"`
	XPReward    int       `json:"xp_reward" gorm:"default:50"`
	Difficulty  string    `json:"difficulty" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	HoverText   string    `json:"hover_text"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ModuleProgress is unique per (user, module).
type ModuleProgress struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_module"`
	ModuleID    string     `json:"module_id" gorm:"not null;uniqueIndex:idx_user_module"`
	Progress    int        `json:"progress" gorm:"default:0"` // percent, 0-100
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Module LearningModule `json:"module" gorm:"foreignKey:ModuleID"`
}

type SafetyGame struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Icon        string    `json:"icon"`
	XPReward    int       `json:"xp_reward" gorm:"default:30"`
	Difficulty  string    `json:"difficulty" gorm:"default:'beginner'"`
	HoverText   string    `json:"hover_text"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GameScore is unique per (user, game).
type GameScore struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_game"`
	GameID      string     `json:"game_id" gorm:"not null;uniqueIndex:idx_user_game"`
	Score       int        `json:"score" gorm:"default:0"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Game SafetyGame `json:"game" gorm:"foreignKey:GameID"`
}

// VideoTutorial is globally mutable by administrators, no per-user progress.
type VideoTutorial struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	VideoRef     string    `json:"video_ref" gorm:"not null"` // external player id
	Duration     string    `json:"duration"`
	Category     string    `json:"category"`
	ThumbnailURL string    `json:"thumbnail_url"`
	HoverText    string    `json:"hover_text"`
	ViewCount    int       `json:"view_count" gorm:"default:0"`
	IsActive     bool      `json:"is_active"`
	SortOrder    int       `json:"sort_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SafetyAlert rows are created by admin broadcasts and surfaced on every
// dashboard until they expire.
type SafetyAlert struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	AlertType string     `json:"alert_type" gorm:"not null"`
	Severity  string     `json:"severity" gorm:"default:'info'"` // info, warning, critical
	Message   string     `json:"message" gorm:"type:text"`
	Region    string     `json:"region"` // empty means nationwide
	Icon      string     `json:"icon"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type Achievement struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	XPReward    int       `json:"xp_reward" gorm:"default:0"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserAchievement struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	AchievementID string    `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	EarnedAt      time.Time `json:"earned_at"`
	CreatedAt     time.Time `json:"created_at"`

	Achievement Achievement `json:"achievement" gorm:"foreignKey:AchievementID"`
}

// UserProgress is the per-user XP/level summary, one row per user.
type UserProgress struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"uniqueIndex;not null"`
	XP               int        `json:"xp" gorm:"default:0"`
	Level            int        `json:"level" gorm:"default:1"`
	CompletedModules int        `json:"completed_modules" gorm:"default:0"`
	TotalGameScore   int        `json:"total_game_score" gorm:"default:0"`
	HomeRegion       string     `json:"home_region"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
