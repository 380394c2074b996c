package services

import (
	"sort"
	"sync"
	"time"

	"expense-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	activeHoursStart = 7
	activeHoursEnd   = 23
	// share of generated expenses that carry a note
	noteProbability = 60
)

type expenseGenerator struct {
	mu         sync.Mutex
	faker      *gofakeit.Faker
	categories []models.ExpenseCategory
	methods    []string
}

// NewExpenseGenerator creates a generator. A zero seed is random.
func NewExpenseGenerator(seed uint64) ExpenseGeneratorInterface {
	methods := make([]string, 0)
	for _, method := range models.AllPaymentMethods() {
		if method != models.PaymentMethodOther {
			methods = append(methods, method)
		}
	}

	return &expenseGenerator{
		faker:      gofakeit.New(seed),
		categories: models.DefaultCategories(),
		methods:    methods,
	}
}

// amount ranges per default category id, in whole currency units
var amountRanges = map[string][2]float64{
	"food":       {40, 450},
	"groceries":  {150, 3500},
	"shopping":   {300, 6000},
	"medical":    {100, 2500},
	"dining":     {250, 3000},
	"transport":  {30, 900},
	"loans-emi":  {2000, 25000},
	"withdrawal": {500, 10000},
	"bills":      {200, 4000},
	"travel":     {1500, 20000},
	"insurance":  {800, 12000},
	"other":      {50, 1500},
}

// GenerateExpenses returns count expenses for userID spread over [startDate, endDate), oldest first
func (g *expenseGenerator) GenerateExpenses(userID uuid.UUID, count int, startDate, endDate time.Time) []models.Expense {
	g.mu.Lock()
	defer g.mu.Unlock()

	expenses := make([]models.Expense, 0, count)
	for i := 0; i < count; i++ {
		category := g.categories[g.faker.IntRange(0, len(g.categories)-1)]

		expense := models.Expense{
			UserID:        userID,
			Amount:        g.amount(category.ID),
			Category:      category,
			PaymentMethod: g.methods[g.faker.IntRange(0, len(g.methods)-1)],
			Date:          g.timestamp(startDate, endDate),
		}
		if g.faker.IntRange(1, 100) <= noteProbability {
			expense.Note = g.faker.Company()
		}
		expenses = append(expenses, expense)
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.Before(expenses[j].Date)
	})
	return expenses
}

// GenerateAmount generates a realistic amount for a default category id
func (g *expenseGenerator) GenerateAmount(category string) decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.amount(category)
}

func (g *expenseGenerator) amount(category string) decimal.Decimal {
	r, ok := amountRanges[category]
	if !ok {
		r = [2]float64{10, 100}
	}
	return decimal.NewFromFloat(g.faker.Price(r[0], r[1])).Round(2)
}

// GenerateTimestamp picks a day in [startDate, endDate) and a time within waking hours
func (g *expenseGenerator) GenerateTimestamp(startDate, endDate time.Time) time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timestamp(startDate, endDate)
}

func (g *expenseGenerator) timestamp(startDate, endDate time.Time) time.Time {
	if !endDate.After(startDate) {
		return startDate
	}

	day := startDate.Add(time.Duration(g.faker.Float64Range(0, float64(endDate.Sub(startDate)))))
	timestamp := time.Date(
		day.Year(),
		day.Month(),
		day.Day(),
		g.faker.IntRange(activeHoursStart, activeHoursEnd-1),
		g.faker.IntRange(0, 59),
		g.faker.IntRange(0, 59),
		0,
		startDate.Location(),
	)

	if timestamp.Before(startDate) {
		return startDate
	}
	if !timestamp.Before(endDate) {
		return endDate.Add(-time.Second)
	}
	return timestamp
}
