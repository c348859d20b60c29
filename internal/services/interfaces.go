package services

import (
	"time"

	"expensetracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseServiceInterface defines the expense/category domain operations.
// Every entry point requires a resolved user; uuid.Nil fails fast with
// ErrUserRequired before any repository access.
type ExpenseServiceInterface interface {
	// CheckAmount validates raw amount text and returns the parsed value.
	// Fails with ErrInvalidAmount unless text parses to a decimal >= 0.
	CheckAmount(text string) (decimal.Decimal, error)

	// CheckDate validates raw date text. Empty text is valid and means
	// today; anything else must parse as YYYY-MM-DD.
	CheckDate(text string) (time.Time, error)

	// CreateExpense validates the raw inputs and persists a new expense.
	// An empty category falls back to models.CategoryUndefined.
	CreateExpense(userID uuid.UUID, name, amountText, dateText, category string) (*models.Expense, error)

	// Single-field edits. Each takes the prior expense exactly as read,
	// validates the replacement value where applicable, and stores a copy
	// with only that field changed.
	EditName(userID uuid.UUID, newName string, old models.Expense) (*models.Expense, error)
	EditAmount(userID uuid.UUID, amountText string, old models.Expense) (*models.Expense, error)
	EditDate(userID uuid.UUID, dateText string, old models.Expense) (*models.Expense, error)
	EditCategory(userID uuid.UUID, category string, old models.Expense) (*models.Expense, error)
	DeleteExpense(userID uuid.UUID, old models.Expense) error

	// RenameCategory moves every expense carrying oldName to newName and
	// reports how many records changed. Renaming into an existing
	// category merges the two groups.
	RenameCategory(userID uuid.UUID, newName, oldName string) (int, error)

	// DeleteCategory reassigns every member of the category to
	// models.CategoryUndefined and reports how many records changed.
	// The undefined category itself is a guarded no-op.
	DeleteCategory(userID uuid.UUID, name string) (int, error)

	ListExpenses(userID uuid.UUID) ([]models.Expense, error)
	ListByCategory(userID uuid.UUID, category string) ([]models.Expense, error)
	ListCategories(userID uuid.UUID) ([]string, error)

	TotalForUser(userID uuid.UUID) (decimal.Decimal, error)
	TotalForCategory(userID uuid.UUID, category string) (decimal.Decimal, error)
	CategoryBreakdown(userID uuid.UUID) ([]models.CategorySummary, error)

	// Graph-ready datasets: date-ordered points with running totals.
	SeriesForAll(userID uuid.UUID) ([]models.SeriesPoint, error)
	SeriesForCategory(userID uuid.UUID, category string) ([]models.SeriesPoint, error)
}

// SessionServiceInterface resolves the currently authenticated user from a
// bearer token. Login, logout and account creation flows live outside this
// system.
type SessionServiceInterface interface {
	CurrentUser(token string) (*models.User, error)
	IssueToken(user *models.User) (string, time.Time, error)
}

// ExpenseGeneratorInterface produces realistic expense data for
// development seeding and tests.
type ExpenseGeneratorInterface interface {
	GenerateExpenses(userID uuid.UUID, startDate, endDate time.Time, count int) []*models.Expense
	GenerateExpense(userID uuid.UUID, date time.Time) *models.Expense
}

// MetricsRecorderInterface records operational metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}
