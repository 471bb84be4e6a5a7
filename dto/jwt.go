package dto

type JWTPayload struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}
