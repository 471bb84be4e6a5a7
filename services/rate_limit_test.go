package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safe-steps/prepared_api/model"
)

func newTestRateLimitService(sqlSvc *PostgresService) *RateLimitService {
	svc := &RateLimitService{sqlSvc: sqlSvc}
	svc.initDefaultConfigs()
	return svc
}

func TestIsAllowedUnknownEndpointType(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestRateLimitService(sqlSvc)

	allowed, info, err := svc.IsAllowed("10.0.0.1", "unconfigured")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, -1, info.Remaining)
}

func TestIsAllowedExhaustsThenBlocks(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestRateLimitService(sqlSvc)

	svc.configs["tight"] = &RateLimitConfig{
		EndpointType: "tight",
		MaxRequests:  3,
		WindowSize:   time.Hour,
		BlockTime:    time.Hour,
		IsActive:     true,
	}

	for i := 0; i < 3; i++ {
		allowed, info, err := svc.IsAllowed("10.0.0.1", "tight")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info, err := svc.IsAllowed("10.0.0.1", "tight")
	require.NoError(t, err)
	assert.False(t, allowed)
	require.NotNil(t, info.BlockedUntil)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *info.BlockedUntil, time.Minute)

	// Still blocked on the next attempt.
	allowed, _, err = svc.IsAllowed("10.0.0.1", "tight")
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different identifier is unaffected.
	allowed, _, err = svc.IsAllowed("10.0.0.2", "tight")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestIsAllowedWindowRollover(t *testing.T) {
	sqlSvc := newTestDB(t)
	svc := newTestRateLimitService(sqlSvc)

	stale := &model.RateLimit{
		Identifier:   "10.0.0.1",
		EndpointType: "login",
		RequestCount: 10,
		WindowStart:  time.Now().Add(-16 * time.Minute),
	}
	require.NoError(t, sqlSvc.SaveRateLimit(stale))

	allowed, info, err := svc.IsAllowed("10.0.0.1", "login")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 9, info.Remaining)

	// The rollover reuses the existing row instead of inserting a second one.
	var count int64
	sqlSvc.db.Model(&model.RateLimit{}).
		Where("identifier = ? AND endpoint_type = ?", "10.0.0.1", "login").Count(&count)
	assert.Equal(t, int64(1), count)
}
