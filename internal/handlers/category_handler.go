package handlers

import (
	"fmt"
	"net/http"

	"expensetracker/internal/dto"
	"expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category listing and cascade endpoints
type CategoryHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(expenseService services.ExpenseServiceInterface) *CategoryHandler {
	return &CategoryHandler{expenseService: expenseService}
}

// ListCategories returns the user's categories in use, always including
// the uncategorized pool
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.expenseService.ListCategories(userID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListCategoriesResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// RenameCategory moves every expense in oldName to newName. Renaming into
// an existing category merges the two.
func (h *CategoryHandler) RenameCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.RenameCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	changed, err := h.expenseService.RenameCategory(userID, req.NewName, req.OldName)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryCascadeResponse{
		Category:        req.NewName,
		ExpensesChanged: changed,
		Message:         fmt.Sprintf("Category %q renamed to %q", req.OldName, req.NewName),
	})
}

// DeleteCategory reassigns the category's expenses to the uncategorized
// pool. The pool itself cannot be deleted.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.DeleteCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	if models.IsUndefinedCategory(req.Name) {
		return SendError(c, errors.CategoryReservedName)
	}

	changed, err := h.expenseService.DeleteCategory(userID, req.Name)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CategoryCascadeResponse{
		Category:        models.CategoryUndefined,
		ExpensesChanged: changed,
		Message:         fmt.Sprintf("Category %q deleted", req.Name),
	})
}
