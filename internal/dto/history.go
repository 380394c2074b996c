package dto

import "expense-tracker/internal/models"

// LocationParams carries the caller's IANA time zone
type LocationParams struct {
	TZ string `query:"tz" validate:"omitempty,timezone"`
}

// AnalyticsParams are the query parameters of the analytics endpoint
type AnalyticsParams struct {
	Period string `query:"period" validate:"omitempty,oneof=week month year all"`
	TZ     string `query:"tz" validate:"omitempty,timezone"`
}

// DailyHistoryResponse is the history grouped by day, newest first
type DailyHistoryResponse struct {
	Days     []models.DayGroup `json:"days"`
	Timezone string            `json:"timezone"`
}

// MonthlyHistoryResponse is the history grouped by year then month, newest first
type MonthlyHistoryResponse struct {
	Years    []models.YearGroup `json:"years"`
	Timezone string             `json:"timezone"`
}
