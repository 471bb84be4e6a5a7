package dto

import "time"

// RateLimitInfo reports the caller's standing within the current window.
// Remaining is -1 when the endpoint carries no limit.
type RateLimitInfo struct {
	Allowed      bool       `json:"allowed"`
	Remaining    int        `json:"remaining"`
	ResetTime    *time.Time `json:"reset_time,omitempty"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}
