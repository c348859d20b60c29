package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"expensetracker/internal/models"
	"expensetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput is the base error for rejected amount/date/name
	// input. Specific validation errors wrap it so callers can match
	// the whole family with errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidAmount = fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidInput)
	ErrInvalidDate   = fmt.Errorf("%w: date must be empty or formatted as YYYY-MM-DD", ErrInvalidInput)
	ErrEmptyName     = fmt.Errorf("%w: expense name must not be empty", ErrInvalidInput)
	ErrEmptyCategory = fmt.Errorf("%w: category name must not be empty", ErrInvalidInput)

	// ErrUserRequired is returned when an entry point is invoked without
	// a resolved user.
	ErrUserRequired = errors.New("a resolved user is required")
)

// expenseService implements ExpenseServiceInterface
type expenseService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	logger      *slog.Logger
	metrics     MetricsRecorderInterface

	// userLocks serializes mutations per user so a category cascade is
	// never interleaved with another mutation against the same expense
	// set.
	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

// NewExpenseService creates the expense domain service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	logger *slog.Logger,
	metrics MetricsRecorderInterface,
) ExpenseServiceInterface {
	return &expenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
		metrics:     metrics,
		userLocks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *expenseService) lockUser(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock
}

// CheckAmount validates raw amount text. It is pure: no repository access,
// no state. Every mutating operation goes through it before persisting.
func (s *expenseService) CheckAmount(text string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return amount, nil
}

// CheckDate validates raw date text. Empty text means today.
func (s *expenseService) CheckDate(text string) (time.Time, error) {
	if text == "" {
		return models.Today(), nil
	}

	date, err := time.ParseInLocation(models.DateLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// CreateExpense validates the raw inputs, resolves defaults and persists a
// new expense. Validation failures leave no partial record behind.
func (s *expenseService) CreateExpense(userID uuid.UUID, name, amountText, dateText, category string) (*models.Expense, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	amount, err := s.CheckAmount(amountText)
	if err != nil {
		return nil, err
	}

	date, err := s.CheckDate(dateText)
	if err != nil {
		return nil, err
	}

	if category == "" {
		category = models.CategoryUndefined
	}

	expense := &models.Expense{
		UserID:   userID,
		Name:     name,
		Amount:   amount,
		Date:     date,
		Category: category,
	}

	lock := s.lockUser(userID)
	defer lock.Unlock()

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	s.metrics.IncrementCounter("expense.created", map[string]string{"category": expense.Category})
	s.logger.Info("expense created", "user_id", userID, "name", expense.Name, "category", expense.Category)

	return expense, nil
}

// EditName replaces the name of the given expense. The replacement must be
// non-empty; no other validation applies.
func (s *expenseService) EditName(userID uuid.UUID, newName string, old models.Expense) (*models.Expense, error) {
	if newName == "" {
		return nil, ErrEmptyName
	}
	return s.applyEdit(userID, old, old.WithName(newName), "name")
}

// EditAmount replaces the amount of the given expense after validating the
// raw text. Invalid input leaves the stored record unchanged.
func (s *expenseService) EditAmount(userID uuid.UUID, amountText string, old models.Expense) (*models.Expense, error) {
	amount, err := s.CheckAmount(amountText)
	if err != nil {
		return nil, err
	}
	return s.applyEdit(userID, old, old.WithAmount(amount), "amount")
}

// EditDate replaces the date of the given expense after validating the raw
// text. Empty text moves the expense to today.
func (s *expenseService) EditDate(userID uuid.UUID, dateText string, old models.Expense) (*models.Expense, error) {
	date, err := s.CheckDate(dateText)
	if err != nil {
		return nil, err
	}
	return s.applyEdit(userID, old, old.WithDate(date), "date")
}

// EditCategory moves the given expense to another category. An expense can
// never be edited into an empty category.
func (s *expenseService) EditCategory(userID uuid.UUID, category string, old models.Expense) (*models.Expense, error) {
	if category == "" {
		return nil, ErrEmptyCategory
	}
	return s.applyEdit(userID, old, old.WithCategory(category), "category")
}

func (s *expenseService) applyEdit(userID uuid.UUID, old, updated models.Expense, field string) (*models.Expense, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}
	old.UserID = userID
	updated.UserID = userID

	lock := s.lockUser(userID)
	defer lock.Unlock()

	if err := s.expenseRepo.Update(&old, &updated); err != nil {
		return nil, err
	}

	s.metrics.IncrementCounter("expense.edited", map[string]string{"field": field})
	return &updated, nil
}

// DeleteExpense removes the record matching the prior state exactly as the
// caller read it. Deletion is immediate and irreversible.
func (s *expenseService) DeleteExpense(userID uuid.UUID, old models.Expense) error {
	if userID == uuid.Nil {
		return ErrUserRequired
	}
	old.UserID = userID

	lock := s.lockUser(userID)
	defer lock.Unlock()

	if err := s.expenseRepo.Delete(&old); err != nil {
		return err
	}

	s.metrics.IncrementCounter("expense.deleted", nil)
	s.logger.Info("expense deleted", "user_id", userID, "name", old.Name)
	return nil
}

// RenameCategory moves every expense carrying oldName to newName. The new
// name is validated before any record is touched, and the batch runs under
// the per-user exclusive section so no concurrent create can resurrect the
// old name mid-cascade. Records are processed in creation order.
func (s *expenseService) RenameCategory(userID uuid.UUID, newName, oldName string) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrUserRequired
	}
	if newName == "" {
		return 0, ErrEmptyCategory
	}
	if newName == oldName {
		return 0, nil
	}

	lock := s.lockUser(userID)
	defer lock.Unlock()

	start := time.Now()
	changed, err := s.reassignCategory(userID, oldName, newName)
	if err != nil {
		return changed, fmt.Errorf("rename category %q: %w", oldName, err)
	}

	s.metrics.IncrementCounter("category.renamed", nil)
	s.metrics.RecordProcessingTime("category.cascade", time.Since(start))
	s.logger.Info("category renamed",
		"user_id", userID, "old", oldName, "new", newName, "expenses", changed)

	return changed, nil
}

// DeleteCategory reassigns every member of the category to the reserved
// undefined category. Expenses are never deleted by this operation.
// Deleting the undefined category is a no-op: its members would only be
// reassigned to itself.
func (s *expenseService) DeleteCategory(userID uuid.UUID, name string) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrUserRequired
	}
	if models.IsUndefinedCategory(name) {
		return 0, nil
	}

	lock := s.lockUser(userID)
	defer lock.Unlock()

	start := time.Now()
	changed, err := s.reassignCategory(userID, name, models.CategoryUndefined)
	if err != nil {
		return changed, fmt.Errorf("delete category %q: %w", name, err)
	}

	s.metrics.IncrementCounter("category.deleted", nil)
	s.metrics.RecordProcessingTime("category.cascade", time.Since(start))
	s.logger.Info("category deleted", "user_id", userID, "category", name, "expenses", changed)

	return changed, nil
}

// reassignCategory is the shared cascade: every expense in from moves to
// to, one record at a time in creation order. Each step replaces a full
// prior state with a state whose category is never empty, so a partial
// failure cannot leave an expense without a category.
func (s *expenseService) reassignCategory(userID uuid.UUID, from, to string) (int, error) {
	members, err := s.expenseRepo.ListByUserAndCategory(userID, from)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range members {
		old := members[i]
		updated := old.WithCategory(to)
		if err := s.expenseRepo.Update(&old, &updated); err != nil {
			return changed, err
		}
		changed++
	}

	return changed, nil
}

// ListExpenses returns all expenses owned by the user in creation order.
func (s *expenseService) ListExpenses(userID uuid.UUID) ([]models.Expense, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}
	return s.expenseRepo.ListByUser(userID)
}

// ListByCategory returns the user's expenses carrying the given category.
func (s *expenseService) ListByCategory(userID uuid.UUID, category string) ([]models.Expense, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}
	return s.expenseRepo.ListByUserAndCategory(userID, category)
}

// ListCategories returns the distinct categories in use by the user plus
// the always-available undefined category, sorted.
func (s *expenseService) ListCategories(userID uuid.UUID) ([]string, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}

	categories, err := s.expenseRepo.ListCategories(userID)
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		if models.IsUndefinedCategory(c) {
			return categories, nil
		}
	}

	categories = append(categories, models.CategoryUndefined)
	sort.Strings(categories)
	return categories, nil
}

// TotalForUser sums the amount of every expense owned by the user using
// exact decimal arithmetic. Zero when the user has none.
func (s *expenseService) TotalForUser(userID uuid.UUID) (decimal.Decimal, error) {
	if userID == uuid.Nil {
		return decimal.Decimal{}, ErrUserRequired
	}

	expenses, err := s.expenseRepo.ListByUser(userID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sumAmounts(expenses), nil
}

// TotalForCategory sums the amounts of the user's expenses in one category.
func (s *expenseService) TotalForCategory(userID uuid.UUID, category string) (decimal.Decimal, error) {
	if userID == uuid.Nil {
		return decimal.Decimal{}, ErrUserRequired
	}

	expenses, err := s.expenseRepo.ListByUserAndCategory(userID, category)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sumAmounts(expenses), nil
}

// CategoryBreakdown aggregates the user's expenses per category, sorted by
// category name. Suitable for pie/bar chart rendering by a collaborator.
func (s *expenseService) CategoryBreakdown(userID uuid.UUID) ([]models.CategorySummary, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}

	expenses, err := s.expenseRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*models.CategorySummary)
	for i := range expenses {
		summary, ok := totals[expenses[i].Category]
		if !ok {
			summary = &models.CategorySummary{
				Category:    expenses[i].Category,
				TotalAmount: decimal.Zero,
			}
			totals[expenses[i].Category] = summary
		}
		summary.ExpenseCount++
		summary.TotalAmount = summary.TotalAmount.Add(expenses[i].Amount)
	}

	breakdown := make([]models.CategorySummary, 0, len(totals))
	for _, summary := range totals {
		breakdown = append(breakdown, *summary)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown, nil
}

// SeriesForAll produces a date-ordered series over all of the user's
// expenses with a running cumulative total.
func (s *expenseService) SeriesForAll(userID uuid.UUID) ([]models.SeriesPoint, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}

	expenses, err := s.expenseRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return buildSeries(expenses), nil
}

// SeriesForCategory produces the same series restricted to one category.
func (s *expenseService) SeriesForCategory(userID uuid.UUID, category string) ([]models.SeriesPoint, error) {
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}

	expenses, err := s.expenseRepo.ListByUserAndCategory(userID, category)
	if err != nil {
		return nil, err
	}
	return buildSeries(expenses), nil
}

func sumAmounts(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}
	return total
}

// buildSeries sorts expenses by date (creation order breaks ties) and
// accumulates a running total.
func buildSeries(expenses []models.Expense) []models.SeriesPoint {
	ordered := make([]models.Expense, len(expenses))
	copy(ordered, expenses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	series := make([]models.SeriesPoint, 0, len(ordered))
	cumulative := decimal.Zero
	for i := range ordered {
		cumulative = cumulative.Add(ordered[i].Amount)
		series = append(series, models.SeriesPoint{
			Date:       ordered[i].Date,
			Amount:     ordered[i].Amount,
			Cumulative: cumulative,
		})
	}

	return series
}
