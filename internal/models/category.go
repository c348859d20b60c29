package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CategoryUndefined is the reserved fallback category. Expenses created
// without a category land here, and deleting a category reassigns its
// members here. It always appears in category listings.
const CategoryUndefined = "undefined"

var ErrEmptyCategory = errors.New("category name must not be empty")

// IsUndefinedCategory reports whether name is the reserved fallback category.
func IsUndefinedCategory(name string) bool {
	return name == CategoryUndefined
}

// CategorySummary contains aggregated expense data for one category.
type CategorySummary struct {
	Category     string          `json:"category"`
	ExpenseCount int64           `json:"expense_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}
