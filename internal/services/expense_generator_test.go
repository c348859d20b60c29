package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateExpenseProducesValidExpense(t *testing.T) {
	generator := NewExpenseGenerator()
	userID := uuid.New()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	expense := generator.GenerateExpense(userID, date)
	require.NotNil(t, expense)

	assert.Equal(t, userID, expense.UserID)
	assert.True(t, expense.Date.Equal(date))
	assert.NotEmpty(t, expense.Name)
	assert.NotEmpty(t, expense.Category)
	assert.False(t, expense.Amount.IsNegative())
	assert.NoError(t, expense.Validate())
}

func TestGenerateExpensesSpreadsOverRange(t *testing.T) {
	generator := NewExpenseGenerator()
	userID := uuid.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	expenses := generator.GenerateExpenses(userID, start, end, 50)
	require.Len(t, expenses, 50)

	for i, expense := range expenses {
		assert.False(t, expense.Date.Before(start))
		assert.False(t, expense.Date.After(end))
		if i > 0 {
			assert.False(t, expense.Date.Before(expenses[i-1].Date), "expenses must be date ordered")
		}
	}
}

func TestGenerateExpensesEmptyForInvalidInput(t *testing.T) {
	generator := NewExpenseGenerator()
	userID := uuid.New()
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, generator.GenerateExpenses(userID, start, end, 10))
	assert.Nil(t, generator.GenerateExpenses(userID, end, start, 0))
}
