package aggregation

import (
	"testing"
	"time"

	"expense-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenseAt(amount int64, category, date string) models.Expense {
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		panic(err)
	}
	return models.Expense{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Amount:        decimal.NewFromInt(amount),
		Category:      models.ExpenseCategory{Name: category, Icon: string(models.IconMoreHorizontal)},
		PaymentMethod: models.PaymentMethodUPI,
		Date:          parsed,
	}
}

func scenario() []models.Expense {
	return []models.Expense{
		expenseAt(1200, "Groceries", "2024-02-01T10:00:00Z"),
		expenseAt(350, "Food", "2024-02-01T13:00:00Z"),
		expenseAt(4500, "Transport", "2024-02-02T09:00:00Z"),
	}
}

func randomExpenses(n int) []models.Expense {
	names := []string{"Food", "Bills", "Travel", "", "Dining"}
	start := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)

	expenses := make([]models.Expense, n)
	for i := range expenses {
		expenses[i] = models.Expense{
			ID:     uuid.New(),
			Amount: decimal.NewFromFloat(gofakeit.Price(1, 5000)).Round(2),
			Category: models.ExpenseCategory{
				Name: names[gofakeit.IntRange(0, len(names)-1)],
				Icon: string(models.IconCoffee),
			},
			Date: start.Add(time.Duration(gofakeit.IntRange(0, 120*24)) * time.Hour),
		}
	}
	return expenses
}

func TestScenario(t *testing.T) {
	records := scenario()

	t.Run("grand total", func(t *testing.T) {
		assert.True(t, Total(records).Equal(decimal.NewFromInt(6050)))
	})

	t.Run("category totals", func(t *testing.T) {
		totals := CategoryTotals(records)
		require.Len(t, totals, 3)
		expected := []struct {
			name  string
			total int64
		}{{"Transport", 4500}, {"Groceries", 1200}, {"Food", 350}}
		for i, want := range expected {
			assert.Equal(t, want.name, totals[i].Name)
			assert.True(t, totals[i].Total.Equal(decimal.NewFromInt(want.total)), totals[i].Total.String())
			assert.Equal(t, 1, totals[i].Count)
		}
	})

	t.Run("date buckets", func(t *testing.T) {
		buckets := GroupByDate(records)
		require.Len(t, buckets, 2)
		assert.Equal(t, []models.Expense{records[0], records[1]}, buckets["2024-02-01"])
		assert.Equal(t, []models.Expense{records[2]}, buckets["2024-02-02"])
	})

	t.Run("daily trend", func(t *testing.T) {
		trend := DailyTrend(records)
		require.Len(t, trend, 2)
		assert.Equal(t, "1 Feb", trend[0].Label)
		assert.Equal(t, "2024-02-01", trend[0].Date)
		assert.True(t, trend[0].Total.Equal(decimal.NewFromInt(1550)))
		assert.Equal(t, "2 Feb", trend[1].Label)
		assert.True(t, trend[1].Total.Equal(decimal.NewFromInt(4500)))
	})

	t.Run("year month", func(t *testing.T) {
		years := GroupByYearMonth(records)
		require.Len(t, years, 1)
		assert.Len(t, years[2024]["February"], 3)
	})
}

func TestEmptyInput(t *testing.T) {
	for _, input := range [][]models.Expense{nil, {}} {
		assert.NotNil(t, GroupByDate(input))
		assert.Empty(t, GroupByDate(input))
		assert.NotNil(t, GroupByYearMonth(input))
		assert.Empty(t, GroupByYearMonth(input))
		assert.NotNil(t, CategoryTotals(input))
		assert.Empty(t, CategoryTotals(input))
		assert.NotNil(t, DailyTrend(input))
		assert.Empty(t, DailyTrend(input))
		assert.True(t, Total(input).IsZero())
		assert.Empty(t, SortedDayKeys(GroupByDate(input), true))
	}
}

func TestPartitionAndSums(t *testing.T) {
	gofakeit.Seed(42)
	records := randomExpenses(200)
	grand := Total(records)

	buckets := GroupByDate(records)
	seen := make(map[uuid.UUID]int)
	dayTotal := decimal.Zero
	for key, bucket := range buckets {
		require.NotEmpty(t, bucket)
		for _, expense := range bucket {
			assert.Equal(t, key, expense.DayKey())
			seen[expense.ID]++
		}
		dayTotal = dayTotal.Add(Total(bucket))
	}
	assert.Len(t, seen, len(records))
	for id, count := range seen {
		assert.Equal(t, 1, count, id.String())
	}
	assert.True(t, dayTotal.Equal(grand))

	trendTotal := decimal.Zero
	for _, point := range DailyTrend(records) {
		trendTotal = trendTotal.Add(point.Total)
	}
	assert.True(t, trendTotal.Equal(grand))

	categoryTotal := decimal.Zero
	for _, total := range CategoryTotals(records) {
		categoryTotal = categoryTotal.Add(total.Total)
	}
	assert.True(t, categoryTotal.Equal(grand))

	leaves := 0
	for year, months := range GroupByYearMonth(records) {
		for month, bucket := range months {
			for _, expense := range bucket {
				assert.Equal(t, year, expense.Date.Year())
				assert.Equal(t, month, expense.Date.Month().String())
				leaves++
			}
		}
	}
	assert.Equal(t, len(records), leaves)
}

func TestOrderingProperties(t *testing.T) {
	gofakeit.Seed(7)
	records := randomExpenses(150)

	totals := CategoryTotals(records)
	for i := 1; i < len(totals); i++ {
		assert.True(t, totals[i-1].Total.GreaterThanOrEqual(totals[i].Total))
	}

	trend := DailyTrend(records)
	for i := 1; i < len(trend); i++ {
		assert.Less(t, trend[i-1].Date, trend[i].Date)
	}

	keys := SortedDayKeys(GroupByDate(records), true)
	for i := 1; i < len(keys); i++ {
		assert.Greater(t, keys[i-1], keys[i])
	}
}

func TestIdempotentAndNonMutating(t *testing.T) {
	gofakeit.Seed(99)
	records := randomExpenses(50)
	snapshot := make([]models.Expense, len(records))
	copy(snapshot, records)

	assert.Equal(t, CategoryTotals(records), CategoryTotals(records))
	assert.Equal(t, DailyTrend(records), DailyTrend(records))
	assert.Equal(t, GroupByDate(records), GroupByDate(records))
	assert.Equal(t, GroupByYearMonth(records), GroupByYearMonth(records))
	assert.Equal(t, snapshot, records)
}

func TestCategoryTotals_MissingNameAndTies(t *testing.T) {
	records := []models.Expense{
		expenseAt(100, "Bills", "2024-03-01T10:00:00Z"),
		expenseAt(100, "", "2024-03-01T11:00:00Z"),
		expenseAt(100, "Dining", "2024-03-02T10:00:00Z"),
	}

	totals := CategoryTotals(records)
	require.Len(t, totals, 3)
	assert.Equal(t, "Bills", totals[0].Name)
	assert.Equal(t, models.OtherCategoryName, totals[1].Name)
	assert.Equal(t, "Dining", totals[2].Name)
}

func TestCategoryTotals_DecimalPrecision(t *testing.T) {
	records := make([]models.Expense, 0, 10)
	for i := 0; i < 10; i++ {
		expense := expenseAt(0, "Food", "2024-03-01T10:00:00Z")
		expense.Amount = decimal.RequireFromString("0.10")
		records = append(records, expense)
	}

	totals := CategoryTotals(records)
	require.Len(t, totals, 1)
	assert.Equal(t, "1", totals[0].Total.String())
}

func TestDailyTrend_SameLabelAcrossYears(t *testing.T) {
	records := []models.Expense{
		expenseAt(10, "Food", "2025-02-03T10:00:00Z"),
		expenseAt(20, "Food", "2024-02-03T10:00:00Z"),
	}

	trend := DailyTrend(records)
	require.Len(t, trend, 2)
	assert.Equal(t, "2024-02-03", trend[0].Date)
	assert.Equal(t, "3 Feb", trend[0].Label)
	assert.Equal(t, "2025-02-03", trend[1].Date)
	assert.Equal(t, "3 Feb", trend[1].Label)
}

func TestGroupByDate_UsesRecordLocation(t *testing.T) {
	utc := expenseAt(10, "Food", "2024-02-01T20:00:00Z")
	ist := utc.In(time.FixedZone("IST", 5*3600+1800))

	assert.Contains(t, GroupByDate([]models.Expense{utc}), "2024-02-01")
	assert.Contains(t, GroupByDate([]models.Expense{ist}), "2024-02-02")
}

func TestRemaining(t *testing.T) {
	assert.True(t, Remaining(decimal.NewFromInt(25000), decimal.NewFromInt(6050)).Equal(decimal.NewFromInt(18950)))
	assert.True(t, Remaining(decimal.NewFromInt(1000), decimal.NewFromInt(1500)).Equal(decimal.NewFromInt(-500)))
}
