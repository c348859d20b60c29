package handlers

import (
	"net/http"

	"expensetracker/internal/dto"
	"expensetracker/internal/errors"
	"expensetracker/internal/services"

	"github.com/labstack/echo/v4"
)

// SummaryHandler handles aggregation and graph-data endpoints
type SummaryHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(expenseService services.ExpenseServiceInterface) *SummaryHandler {
	return &SummaryHandler{expenseService: expenseService}
}

// GetTotal returns the exact decimal total of the user's expenses,
// optionally scoped to one category via ?category=
func (h *SummaryHandler) GetTotal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	category := c.QueryParam("category")
	if category != "" {
		total, err := h.expenseService.TotalForCategory(userID, category)
		if err != nil {
			return sendServiceError(c, err)
		}
		return c.JSON(http.StatusOK, dto.TotalResponse{Total: total.String(), Category: category})
	}

	total, err := h.expenseService.TotalForUser(userID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TotalResponse{Total: total.String()})
}

// GetBreakdown returns per-category totals sorted by category name
func (h *SummaryHandler) GetBreakdown(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	breakdown, err := h.expenseService.CategoryBreakdown(userID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewBreakdownResponse(breakdown))
}

// GetSeries returns a date-ordered spending series with running totals,
// optionally scoped to one category via ?category=
func (h *SummaryHandler) GetSeries(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	category := c.QueryParam("category")
	if category != "" {
		points, err := h.expenseService.SeriesForCategory(userID, category)
		if err != nil {
			return sendServiceError(c, err)
		}
		return c.JSON(http.StatusOK, dto.NewSeriesResponse(category, points))
	}

	points, err := h.expenseService.SeriesForAll(userID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSeriesResponse("", points))
}
