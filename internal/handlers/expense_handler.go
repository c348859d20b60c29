package handlers

import (
	"fmt"
	"net/http"

	"expensetracker/internal/dto"
	"expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense CRUD endpoints
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpense records a new expense for the authenticated user. Amount
// and date arrive as raw text; the service validates them before anything
// is stored.
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	expense, err := h.expenseService.CreateExpense(userID, req.Name, req.Amount, req.Date, req.Category)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewExpenseResponse(expense),
		Message: "Expense created successfully",
	})
}

// ListExpenses returns the user's expenses in creation order, optionally
// filtered to one category via ?category=
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var filters dto.ListExpensesFilters
	if err := c.Bind(&filters); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid query parameters"))
	}

	expenses, err := h.expenseService.ListExpenses(userID)
	if filters.Category != "" {
		expenses, err = h.expenseService.ListByCategory(userID, filters.Category)
	}
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewListExpensesResponse(expenses))
}

// EditExpense changes exactly one field of the expense matching the prior
// state the client last read. Other fields are untouched.
func (h *ExpenseHandler) EditExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.EditExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	old, err := expenseFromState(userID, req.Old)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	expense, err := h.applyEdit(userID, req, old)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    dto.NewExpenseResponse(expense),
		Message: "Expense updated successfully",
	})
}

func (h *ExpenseHandler) applyEdit(userID uuid.UUID, req dto.EditExpenseRequest, old models.Expense) (*models.Expense, error) {
	switch req.Field {
	case "name":
		return h.expenseService.EditName(userID, req.Value, old)
	case "amount":
		return h.expenseService.EditAmount(userID, req.Value, old)
	case "date":
		return h.expenseService.EditDate(userID, req.Value, old)
	case "category":
		return h.expenseService.EditCategory(userID, req.Value, old)
	default:
		return nil, fmt.Errorf("unknown edit field %q", req.Field)
	}
}

// DeleteExpense removes the expense matching the prior state exactly
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.DeleteExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	old, err := expenseFromState(userID, req.Old)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.expenseService.DeleteExpense(userID, old); err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Expense deleted successfully",
	})
}
