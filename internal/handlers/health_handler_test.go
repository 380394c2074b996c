package handlers

import (
	"net/http"
	"testing"

	"expense-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openHealthDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestHealthCheck_Healthy(t *testing.T) {
	db := openHealthDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	c, rec := authedContext(newTestEcho(), models.Identity{}, http.MethodGet, "/health", "")
	require.NoError(t, NewHealthCheckHandler(db).HealthCheck(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	db := openHealthDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	c, rec := authedContext(newTestEcho(), models.Identity{}, http.MethodGet, "/health", "")
	c.Set(TraceIDContextKey, "trace-health")
	require.NoError(t, NewHealthCheckHandler(db).HealthCheck(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "SYSTEM_003", decodeErrorCode(t, rec))
	assert.Contains(t, rec.Body.String(), "trace-health")
}
