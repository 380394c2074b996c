package database

import (
	"context"
	"testing"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_MigratesTables(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	assert.True(t, db.Migrator().HasTable(&models.Expense{}))
	assert.True(t, db.Migrator().HasTable(&models.BudgetSettings{}))
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestCleanupTestDB(t *testing.T) {
	db := SetupTestDB(t)
	defer db.Close()

	food, _ := models.DefaultCategoryByID("food")
	expense := &models.Expense{
		UserID:        uuid.New(),
		Amount:        decimal.NewFromInt(120),
		Category:      food,
		PaymentMethod: models.PaymentMethodCash,
		Date:          time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(expense).Error)

	CleanupTestDB(t, db)

	var count int64
	require.NoError(t, db.Model(&models.Expense{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHealthCheck_ClosedDatabase(t *testing.T) {
	db := SetupTestDB(t)
	require.NoError(t, db.Close())

	assert.Error(t, db.HealthCheck(context.Background()))
}
