package repositories

import (
	"expensetracker/internal/models"

	"github.com/google/uuid"
)

// ExpenseRepositoryInterface defines the storage contract the expense
// service consumes. Update and Delete identify the target record by the
// full prior field values the caller read, not by a surrogate handle;
// when several records carry identical values the first in creation
// order is affected.
type ExpenseRepositoryInterface interface {
	ListByUser(userID uuid.UUID) ([]models.Expense, error)
	ListByUserAndCategory(userID uuid.UUID, category string) ([]models.Expense, error)
	Create(expense *models.Expense) error
	Update(old, updated *models.Expense) error
	Delete(old *models.Expense) error
	ListCategories(userID uuid.UUID) ([]string, error)
}

// UserRepositoryInterface defines the contract for user identity lookups
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}
