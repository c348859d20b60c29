package dto

import (
	"time"

	"expensetracker/internal/models"

	"github.com/google/uuid"
)

// CreateExpenseRequest represents the request to record a new expense.
// Amount and date arrive as raw text and are validated by the service;
// empty date means today and empty category means uncategorized.
type CreateExpenseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Amount   string `json:"amount" validate:"required"`
	Date     string `json:"date" validate:"omitempty"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// ExpenseState identifies an expense by the full set of field values the
// client last read. Edits and deletes target the first stored expense
// matching every field.
type ExpenseState struct {
	Name     string `json:"name" validate:"required,min=1"`
	Amount   string `json:"amount" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Category string `json:"category" validate:"required,min=1"`
}

// EditExpenseRequest represents a single-field edit. Field selects which
// attribute changes; Value carries the raw replacement text.
type EditExpenseRequest struct {
	Field string       `json:"field" validate:"required,oneof=name amount date category"`
	Value string       `json:"value"`
	Old   ExpenseState `json:"old" validate:"required"`
}

// DeleteExpenseRequest represents the request to delete the expense
// matching the given prior state.
type DeleteExpenseRequest struct {
	Old ExpenseState `json:"old" validate:"required"`
}

// ListExpensesFilters contains filtering options for expense queries
type ListExpensesFilters struct {
	Category string `query:"category"`
}

// ExpenseResponse represents a single expense on the wire. Amount is a
// decimal string so no precision is lost in transit.
type ExpenseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Amount    string    `json:"amount"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListExpensesResponse represents the response for listing expenses
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int               `json:"total"`
}

// NewExpenseResponse converts a stored expense to its wire form
func NewExpenseResponse(expense *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        expense.ID,
		Name:      expense.Name,
		Amount:    expense.Amount.String(),
		Date:      expense.Date.Format(models.DateLayout),
		Category:  expense.Category,
		CreatedAt: expense.CreatedAt,
	}
}

// NewListExpensesResponse converts a slice of stored expenses
func NewListExpensesResponse(expenses []models.Expense) ListExpensesResponse {
	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, NewExpenseResponse(&expenses[i]))
	}
	return ListExpensesResponse{Expenses: responses, Total: len(responses)}
}
