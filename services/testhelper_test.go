package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/safe-steps/prepared_api/dto"
)

// newTestDB opens an isolated in-memory database migrated with the full
// schema. One connection is enough; the shared cache keeps concurrent reads
// in the same database.
func newTestDB(t *testing.T) *PostgresService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(Models()...))

	return &PostgresService{db: db}
}

func newTestDashboardService(sqlSvc *PostgresService) *DashboardService {
	return &DashboardService{
		sqlSvc:    sqlSvc,
		gens:      make(map[string]uint64),
		published: make(map[string]uint64),
		snapshots: make(map[string]*dto.DashboardResponse),
	}
}
