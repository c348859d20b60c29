package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the wire format for expense dates.
const DateLayout = "2006-01-02"

var (
	ErrEmptyName      = errors.New("expense name is required")
	ErrNegativeAmount = errors.New("expense amount must not be negative")
	ErrMissingOwner   = errors.New("expense owner is required")
)

// Expense represents a single recorded spending event owned by one user.
type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date      time.Time       `gorm:"type:date;not null;index" json:"date"`
	Category  string          `gorm:"type:varchar(100);not null;default:'undefined';index" json:"category"`
	CreatedAt time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()

	if e.Date.IsZero() {
		e.Date = Today()
	}
	if e.Category == "" {
		e.Category = CategoryUndefined
	}

	// Set timestamps if not already set (for tests)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

// BeforeUpdate hook for Expense
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return e.Validate()
}

// Validate validates the expense fields
func (e *Expense) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrMissingOwner
	}

	if e.Name == "" {
		return ErrEmptyName
	}

	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if e.Category == "" {
		return ErrEmptyCategory
	}

	return nil
}

// WithName returns a copy of the expense carrying a replacement name.
func (e Expense) WithName(name string) Expense {
	e.Name = name
	return e
}

// WithAmount returns a copy of the expense carrying a replacement amount.
func (e Expense) WithAmount(amount decimal.Decimal) Expense {
	e.Amount = amount
	return e
}

// WithDate returns a copy of the expense carrying a replacement date.
func (e Expense) WithDate(date time.Time) Expense {
	e.Date = date
	return e
}

// WithCategory returns a copy of the expense carrying a replacement category.
func (e Expense) WithCategory(category string) Expense {
	e.Category = category
	return e
}

// Today returns the current calendar date truncated to UTC midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
