// Package aggregation derives history and analytics structures from a snapshot of
// expenses. Every function is pure: inputs are never modified and empty input
// yields empty, non-nil output.
package aggregation

import (
	"sort"

	"expense-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// GroupByDate buckets expenses by calendar day in the location each Date carries.
// Records keep their input order inside a bucket.
func GroupByDate(expenses []models.Expense) map[string][]models.Expense {
	buckets := make(map[string][]models.Expense)
	for _, expense := range expenses {
		key := expense.DayKey()
		buckets[key] = append(buckets[key], expense)
	}
	return buckets
}

// SortedDayKeys returns the keys of buckets in chronological order, or newest first
// when descending is set. Keys use DayKeyLayout so lexical order is date order.
func SortedDayKeys(buckets map[string][]models.Expense, descending bool) []string {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}

	if descending {
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	} else {
		sort.Strings(keys)
	}

	return keys
}

// GroupByYearMonth buckets expenses by calendar year and then by long month name.
func GroupByYearMonth(expenses []models.Expense) map[int]map[string][]models.Expense {
	years := make(map[int]map[string][]models.Expense)
	for _, expense := range expenses {
		year := expense.Date.Year()
		month := expense.Date.Month().String()

		months, ok := years[year]
		if !ok {
			months = make(map[string][]models.Expense)
			years[year] = months
		}
		months[month] = append(months[month], expense)
	}
	return years
}

// CategoryTotals sums amounts per category name, largest first. Ties keep the
// order in which the category was first seen. Records without a name count as Other.
func CategoryTotals(expenses []models.Expense) []models.CategoryTotal {
	totals := make([]models.CategoryTotal, 0)
	index := make(map[string]int)

	for _, expense := range expenses {
		name := expense.Category.Name
		if name == "" {
			name = models.OtherCategoryName
		}

		i, ok := index[name]
		if !ok {
			i = len(totals)
			index[name] = i
			totals = append(totals, models.CategoryTotal{
				Name:  name,
				Icon:  expense.Category.DisplayIcon(),
				Color: expense.Category.Color,
				Total: decimal.Zero,
			})
		}

		totals[i].Total = totals[i].Total.Add(expense.Amount)
		totals[i].Count++
	}

	sort.SliceStable(totals, func(a, b int) bool {
		return totals[a].Total.GreaterThan(totals[b].Total)
	})

	return totals
}

// DailyTrend sums amounts per calendar day, oldest day first. Days are keyed by the
// full date so the same day label in different years never merges.
func DailyTrend(expenses []models.Expense) []models.TrendPoint {
	buckets := GroupByDate(expenses)
	keys := SortedDayKeys(buckets, false)

	trend := make([]models.TrendPoint, 0, len(keys))
	for _, key := range keys {
		day := buckets[key]
		trend = append(trend, models.TrendPoint{
			Date:  key,
			Label: day[0].Date.Format(models.DayLabelLayout),
			Total: Total(day),
		})
	}

	return trend
}

// Total is the sum of every amount.
func Total(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total
}

// Remaining is budget minus spent. A negative result means the budget is exceeded.
func Remaining(budget, spent decimal.Decimal) decimal.Decimal {
	return budget.Sub(spent)
}
