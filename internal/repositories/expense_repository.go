package repositories

import (
	"errors"
	"fmt"
	"time"

	"expensetracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// expenseRepository implements ExpenseRepositoryInterface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{
		db: db,
	}
}

// ListByUser retrieves all expenses owned by a user in creation order
func (r *expenseRepository) ListByUser(userID uuid.UUID) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// ListByUserAndCategory retrieves a user's expenses carrying the given category
func (r *expenseRepository) ListByUserAndCategory(userID uuid.UUID, category string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Where("user_id = ? AND category = ?", userID, category).
		Order("created_at ASC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses by category: %w", err)
	}
	return expenses, nil
}

// Create persists a new expense
func (r *expenseRepository) Create(expense *models.Expense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// Update replaces the record matching old's full field values with the
// updated values. The record identity (id, created_at) is preserved.
func (r *expenseRepository) Update(old, updated *models.Expense) error {
	target, err := r.findByValues(old)
	if err != nil {
		return err
	}

	record := *updated
	record.ID = target.ID
	record.UserID = target.UserID
	record.CreatedAt = target.CreatedAt

	if err := r.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	*updated = record
	return nil
}

// Delete removes the record matching old's full field values
func (r *expenseRepository) Delete(old *models.Expense) error {
	target, err := r.findByValues(old)
	if err != nil {
		return err
	}

	if err := r.db.Delete(&models.Expense{}, "id = ?", target.ID).Error; err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// ListCategories retrieves the distinct categories currently in use by a user
func (r *expenseRepository) ListCategories(userID uuid.UUID) ([]string, error) {
	var categories []string
	if err := r.db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// findByValues resolves the stored record carrying exactly the given field
// values, scanning candidates in creation order. Amount and date are
// compared in Go so the match does not depend on how the driver serializes
// decimals and dates.
func (r *expenseRepository) findByValues(old *models.Expense) (*models.Expense, error) {
	var candidates []models.Expense
	if err := r.db.Where("user_id = ? AND name = ? AND category = ?",
		old.UserID, old.Name, old.Category).
		Order("created_at ASC, id ASC").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	for i := range candidates {
		if !candidates[i].Amount.Equal(old.Amount) {
			continue
		}
		if !sameDate(candidates[i].Date, old.Date) {
			continue
		}
		return &candidates[i], nil
	}

	return nil, ErrExpenseNotFound
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
