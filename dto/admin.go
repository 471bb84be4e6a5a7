package dto

import "time"

// ==================== ADMIN STATS DTOs ====================

type RegionStats struct {
	Region            string  `json:"region"`
	Students          int     `json:"students"`
	CompletionPercent float64 `json:"completion_percent"`
	CompletedDrills   int     `json:"completed_drills"`
}

type RecentActivityEntry struct {
	DrillID      string    `json:"drill_id"`
	DrillType    string    `json:"drill_type"`
	SchoolName   string    `json:"school_name"`
	Participants int       `json:"participants"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AdminStatsResponse struct {
	TotalUsers      int64                 `json:"total_users"`
	ActiveSchools   int64                 `json:"active_schools"`
	AverageXP       float64               `json:"average_xp"`
	ActiveUsers30d  int64                 `json:"active_users_30d"`
	CompletedDrills int64                 `json:"completed_drills"`
	Regions         []RegionStats         `json:"regions"`
	RecentActivity  []RecentActivityEntry `json:"recent_activity"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// ==================== ADMIN SETTINGS DTOs ====================

type SetAdminSettingRequest struct {
	Value       interface{} `json:"value" validate:"required"`
	SettingType string      `json:"setting_type,omitempty" validate:"omitempty,max=50"`
	Description string      `json:"description,omitempty"`
	IsPublic    *bool       `json:"is_public,omitempty"`
}

func (r SetAdminSettingRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AdminSettingResponse struct {
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	SettingType string      `json:"setting_type"`
	Description string      `json:"description,omitempty"`
	IsPublic    bool        `json:"is_public"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type BroadcastAlertRequest struct {
	AlertType string `json:"alert_type" validate:"required,max=50" example:"earthquake"`
	Severity  string `json:"severity" validate:"required,oneof=info warning critical" example:"warning"`
	Message   string `json:"message" validate:"required" example:"Aftershocks expected in the next 24 hours"`
	Region    string `json:"region,omitempty" example:"CA"`
	Icon      string `json:"icon,omitempty" example:"alert-triangle"`
	ExpiresIn int    `json:"expires_in_hours,omitempty" validate:"omitempty,gte=1,lte=168"`
}

func (r BroadcastAlertRequest) Validate() error {
	return GetValidator().Struct(r)
}
