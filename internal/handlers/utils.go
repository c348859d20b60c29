package handlers

import (
	"errors"
	"fmt"
	"time"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/repositories"
	"expensetracker/internal/services"

	"expensetracker/internal/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// expenseFromState rebuilds the expense a client last read from its wire
// form. The full field set is required so mutations can match the exact
// stored record.
func expenseFromState(userID uuid.UUID, state dto.ExpenseState) (models.Expense, error) {
	amount, err := decimal.NewFromString(state.Amount)
	if err != nil {
		return models.Expense{}, fmt.Errorf("invalid amount in prior state: %w", err)
	}

	date, err := time.ParseInLocation(models.DateLayout, state.Date, time.UTC)
	if err != nil {
		return models.Expense{}, fmt.Errorf("invalid date in prior state: %w", err)
	}

	return models.Expense{
		UserID:   userID,
		Name:     state.Name,
		Amount:   amount,
		Date:     date,
		Category: state.Category,
	}, nil
}

// sendServiceError maps domain errors to their standardized wire codes
func sendServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		return SendError(c, apperrors.ValidationInvalidAmount)
	case errors.Is(err, services.ErrInvalidDate):
		return SendError(c, apperrors.ValidationInvalidDate)
	case errors.Is(err, services.ErrEmptyName):
		return SendError(c, apperrors.ValidationRequiredField, apperrors.WithDetails("name is required"))
	case errors.Is(err, services.ErrEmptyCategory):
		return SendError(c, apperrors.CategoryNameRequired)
	case errors.Is(err, services.ErrUserRequired):
		return SendError(c, apperrors.AuthUnknownUser)
	case errors.Is(err, repositories.ErrExpenseNotFound):
		return SendError(c, apperrors.ExpenseNotFound)
	default:
		return SendSystemError(c, err)
	}
}
