package dto

import "time"

// ==================== DASHBOARD REQUEST DTOs ====================

type UpdateModuleProgressRequest struct {
	Progress int `json:"progress" validate:"gte=0,lte=100" example:"75"`
}

func (r UpdateModuleProgressRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CompleteGameRequest struct {
	Score int `json:"score" validate:"gte=0" example:"850"`
}

func (r CompleteGameRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== DASHBOARD RESPONSE DTOs ====================

// ModuleWithProgress is a catalog row with the caller's progress merged on. A
// user with no progress row gets the zero values, never an error.
type ModuleWithProgress struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	XPReward    int        `json:"xp_reward"`
	Difficulty  string     `json:"difficulty"`
	HoverText   string     `json:"hover_text,omitempty"`
	SortOrder   int        `json:"sort_order"`
	Progress    int        `json:"progress"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type GameWithScore struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	XPReward    int        `json:"xp_reward"`
	Difficulty  string     `json:"difficulty"`
	HoverText   string     `json:"hover_text,omitempty"`
	SortOrder   int        `json:"sort_order"`
	Score       int        `json:"score"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type VideoResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoRef     string    `json:"video_ref"`
	Duration     string    `json:"duration"`
	Category     string    `json:"category"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	HoverText    string    `json:"hover_text,omitempty"`
	ViewCount    int       `json:"view_count"`
	IsActive     bool      `json:"is_active"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type AlertResponse struct {
	ID        string     `json:"id"`
	AlertType string     `json:"alert_type"`
	Severity  string     `json:"severity"`
	Message   string     `json:"message"`
	Region    string     `json:"region,omitempty"`
	Icon      string     `json:"icon"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type EarnedAchievementResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	XPReward    int       `json:"xp_reward"`
	EarnedAt    time.Time `json:"earned_at"`
}

type ProgressSummary struct {
	XP               int    `json:"xp"`
	Level            int    `json:"level"`
	CompletedModules int    `json:"completed_modules"`
	TotalGameScore   int    `json:"total_game_score"`
	HomeRegion       string `json:"home_region,omitempty"`
}

// DashboardResponse is the fully merged view model. It is only ever published
// complete: a failed constituent read aborts the whole load.
type DashboardResponse struct {
	Progress     ProgressSummary             `json:"progress"`
	Modules      []ModuleWithProgress        `json:"modules"`
	Games        []GameWithScore             `json:"games"`
	Videos       []VideoResponse             `json:"videos"`
	Alerts       []AlertResponse             `json:"alerts"`
	Achievements []EarnedAchievementResponse `json:"achievements"`
	GeneratedAt  time.Time                   `json:"generated_at"`
}
