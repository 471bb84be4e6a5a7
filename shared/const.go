package shared

const (
	UserID    = "user_id"
	SessionID = "session_id"

	RoleStandard = "standard"
	RoleAdmin    = "admin"

	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	AlertSeverityInfo     = "info"
	AlertSeverityWarning  = "warning"
	AlertSeverityCritical = "critical"

	DrillStatusScheduled = "scheduled"
	DrillStatusCompleted = "completed"
	DrillStatusCancelled = "cancelled"
)
