package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/repositories"
	"expensetracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	generator   services.ExpenseGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(expenseRepo repositories.ExpenseRepositoryInterface) *DevHandler {
	return &DevHandler{
		expenseRepo: expenseRepo,
		generator:   services.NewExpenseGenerator(),
	}
}

// GenerateTestData seeds the authenticated user's account with realistic
// sample expenses spread over the requested number of past days.
//
// Method: POST /api/v1/dev/generate-test-data
// Query parameters:
//   - count: number of expenses to generate (default: 100, max: 1000)
//   - days: days of history to cover (default: 30, max: 365)
func (h *DevHandler) GenerateTestData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	count := getIntQueryParam(c, "count", 100)
	if count < 1 {
		count = 1
	}
	if count > 1000 {
		count = 1000
	}

	days := getIntQueryParam(c, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}

	endDate := models.Today()
	startDate := endDate.AddDate(0, 0, -days)

	expenses := h.generator.GenerateExpenses(userID, startDate, endDate, count)

	created := 0
	for _, expense := range expenses {
		if err := h.expenseRepo.Create(expense); err != nil {
			return SendSystemError(c, err)
		}
		created++
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: fmt.Sprintf("Generated %d sample expenses", created),
		Meta: map[string]interface{}{
			"expenses_created": created,
			"start_date":       startDate.Format(models.DateLayout),
			"end_date":         endDate.Format(models.DateLayout),
			"generated_at":     time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func getIntQueryParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}

	return value
}
