package model

import "time"

// School and DisasterDrill feed the admin rollups only; this API never writes
// them beyond seeding.
type School struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	State        string    `json:"state" gorm:"index"`
	StudentCount int       `json:"student_count" gorm:"default:0"`
	TeacherCount int       `json:"teacher_count" gorm:"default:0"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DisasterDrill struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	SchoolID       string     `json:"school_id" gorm:"index"` // empty means fleet-wide drill
	DrillType      string     `json:"drill_type"`
	Status         string     `json:"status" gorm:"default:'scheduled'"` // scheduled, completed, cancelled
	CompletionRate float64    `json:"completion_rate" gorm:"default:0"`
	Participants   int        `json:"participants" gorm:"default:0"`
	ScheduledDate  *time.Time `json:"scheduled_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	School School `json:"school" gorm:"foreignKey:SchoolID"`
}
