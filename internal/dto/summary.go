package dto

import (
	"expensetracker/internal/models"
)

// TotalResponse represents an aggregated spending total. Category is set
// only when the total was scoped to one category.
type TotalResponse struct {
	Total    string `json:"total"`
	Category string `json:"category,omitempty"`
}

// CategorySummaryResponse represents one category's slice of the total
type CategorySummaryResponse struct {
	Category     string `json:"category"`
	ExpenseCount int64  `json:"expenseCount"`
	TotalAmount  string `json:"totalAmount"`
}

// BreakdownResponse represents per-category totals, sorted by category,
// ready for pie or bar chart rendering
type BreakdownResponse struct {
	Categories []CategorySummaryResponse `json:"categories"`
}

// SeriesPointResponse represents one expense on a spending-over-time
// chart with the running total up to that point
type SeriesPointResponse struct {
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	Cumulative string `json:"cumulative"`
}

// SeriesResponse represents a date-ordered spending series. Category is
// set only when the series was scoped to one category.
type SeriesResponse struct {
	Category string                `json:"category,omitempty"`
	Points   []SeriesPointResponse `json:"points"`
}

// NewBreakdownResponse converts category summaries to their wire form
func NewBreakdownResponse(summaries []models.CategorySummary) BreakdownResponse {
	categories := make([]CategorySummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		categories = append(categories, CategorySummaryResponse{
			Category:     summary.Category,
			ExpenseCount: summary.ExpenseCount,
			TotalAmount:  summary.TotalAmount.String(),
		})
	}
	return BreakdownResponse{Categories: categories}
}

// NewSeriesResponse converts series points to their wire form
func NewSeriesResponse(category string, points []models.SeriesPoint) SeriesResponse {
	responses := make([]SeriesPointResponse, 0, len(points))
	for _, point := range points {
		responses = append(responses, SeriesPointResponse{
			Date:       point.Date.Format(models.DateLayout),
			Amount:     point.Amount.String(),
			Cumulative: point.Cumulative.String(),
		})
	}
	return SeriesResponse{Category: category, Points: responses}
}
