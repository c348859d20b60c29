package services

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"expensetracker/internal/models"
	"expensetracker/internal/repositories/repository_mocks"
	"expensetracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	expenseRepo *repository_mocks.MockExpenseRepositoryInterface
	metrics     *service_mocks.MockMetricsRecorderInterface
	service     ExpenseServiceInterface
	userID      uuid.UUID
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewExpenseService(s.expenseRepo, logger, s.metrics)
	s.userID = uuid.New()
}

func (s *ExpenseServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ExpenseServiceTestSuite) expense(name, amount, category string, date time.Time) models.Expense {
	return models.Expense{
		ID:       uuid.New(),
		UserID:   s.userID,
		Name:     name,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
		Category: category,
	}
}

func (s *ExpenseServiceTestSuite) TestCheckAmountAcceptsDecimalText() {
	amount, err := s.service.CheckAmount("12.50")
	s.NoError(err)
	s.True(amount.Equal(decimal.RequireFromString("12.50")))
}

func (s *ExpenseServiceTestSuite) TestCheckAmountAcceptsZero() {
	amount, err := s.service.CheckAmount("0")
	s.NoError(err)
	s.True(amount.IsZero())
}

func (s *ExpenseServiceTestSuite) TestCheckAmountRejectsNonNumericText() {
	_, err := s.service.CheckAmount("lunch money")
	s.ErrorIs(err, ErrInvalidAmount)
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *ExpenseServiceTestSuite) TestCheckAmountRejectsNegative() {
	_, err := s.service.CheckAmount("-3.50")
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *ExpenseServiceTestSuite) TestCheckDateAcceptsISODate() {
	date, err := s.service.CheckDate("2026-02-14")
	s.NoError(err)
	s.Equal(2026, date.Year())
	s.Equal(time.February, date.Month())
	s.Equal(14, date.Day())
}

func (s *ExpenseServiceTestSuite) TestCheckDateEmptyMeansToday() {
	date, err := s.service.CheckDate("")
	s.NoError(err)
	s.Equal(models.Today(), date)
}

func (s *ExpenseServiceTestSuite) TestCheckDateRejectsBadFormat() {
	_, err := s.service.CheckDate("14/02/2026")
	s.ErrorIs(err, ErrInvalidDate)
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *ExpenseServiceTestSuite) TestCheckDateRejectsImpossibleDate() {
	_, err := s.service.CheckDate("2026-13-40")
	s.ErrorIs(err, ErrInvalidDate)
}

func (s *ExpenseServiceTestSuite) TestCreateExpenseAppliesDefaults() {
	s.expenseRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(e *models.Expense) error {
		s.Equal(s.userID, e.UserID)
		s.Equal("coffee", e.Name)
		s.True(e.Amount.Equal(decimal.RequireFromString("4.20")))
		s.Equal(models.Today(), e.Date)
		s.Equal(models.CategoryUndefined, e.Category)
		return nil
	})

	expense, err := s.service.CreateExpense(s.userID, "coffee", "4.20", "", "")
	s.NoError(err)
	s.Equal(models.CategoryUndefined, expense.Category)
}

func (s *ExpenseServiceTestSuite) TestCreateExpenseRejectsEmptyName() {
	_, err := s.service.CreateExpense(s.userID, "", "4.20", "", "dining")
	s.ErrorIs(err, ErrEmptyName)
}

func (s *ExpenseServiceTestSuite) TestCreateExpenseRejectsInvalidAmountBeforePersisting() {
	_, err := s.service.CreateExpense(s.userID, "coffee", "not-a-number", "", "dining")
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *ExpenseServiceTestSuite) TestCreateExpenseRejectsInvalidDateBeforePersisting() {
	_, err := s.service.CreateExpense(s.userID, "coffee", "4.20", "yesterday", "dining")
	s.ErrorIs(err, ErrInvalidDate)
}

func (s *ExpenseServiceTestSuite) TestCreateExpenseRequiresUser() {
	_, err := s.service.CreateExpense(uuid.Nil, "coffee", "4.20", "", "")
	s.ErrorIs(err, ErrUserRequired)
}

func (s *ExpenseServiceTestSuite) TestCreateExpensePropagatesRepositoryError() {
	repoErr := errors.New("connection reset")
	s.expenseRepo.EXPECT().Create(gomock.Any()).Return(repoErr)

	_, err := s.service.CreateExpense(s.userID, "coffee", "4.20", "", "dining")
	s.ErrorIs(err, repoErr)
}

func (s *ExpenseServiceTestSuite) TestEditNameChangesOnlyName() {
	old := s.expense("cofee", "4.20", "dining", models.Today())

	s.expenseRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(prior, updated *models.Expense) error {
		s.Equal(old.Name, prior.Name)
		s.Equal("coffee", updated.Name)
		s.True(updated.Amount.Equal(old.Amount))
		s.Equal(old.Category, updated.Category)
		s.True(updated.Date.Equal(old.Date))
		return nil
	})

	updated, err := s.service.EditName(s.userID, "coffee", old)
	s.NoError(err)
	s.Equal("coffee", updated.Name)
}

func (s *ExpenseServiceTestSuite) TestEditNameRejectsEmptyName() {
	old := s.expense("coffee", "4.20", "dining", models.Today())
	_, err := s.service.EditName(s.userID, "", old)
	s.ErrorIs(err, ErrEmptyName)
}

func (s *ExpenseServiceTestSuite) TestEditAmountValidatesBeforeUpdating() {
	old := s.expense("coffee", "4.20", "dining", models.Today())
	_, err := s.service.EditAmount(s.userID, "-1", old)
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *ExpenseServiceTestSuite) TestEditAmountChangesOnlyAmount() {
	old := s.expense("coffee", "4.20", "dining", models.Today())

	s.expenseRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(prior, updated *models.Expense) error {
		s.True(updated.Amount.Equal(decimal.RequireFromString("5.00")))
		s.Equal(old.Name, updated.Name)
		s.Equal(old.Category, updated.Category)
		return nil
	})

	updated, err := s.service.EditAmount(s.userID, "5.00", old)
	s.NoError(err)
	s.True(updated.Amount.Equal(decimal.RequireFromString("5.00")))
}

func (s *ExpenseServiceTestSuite) TestEditDateEmptyMovesExpenseToToday() {
	old := s.expense("coffee", "4.20", "dining", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	s.expenseRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(prior, updated *models.Expense) error {
		s.True(updated.Date.Equal(models.Today()))
		return nil
	})

	updated, err := s.service.EditDate(s.userID, "", old)
	s.NoError(err)
	s.True(updated.Date.Equal(models.Today()))
}

func (s *ExpenseServiceTestSuite) TestEditCategoryRejectsEmptyCategory() {
	old := s.expense("coffee", "4.20", "dining", models.Today())
	_, err := s.service.EditCategory(s.userID, "", old)
	s.ErrorIs(err, ErrEmptyCategory)
}

func (s *ExpenseServiceTestSuite) TestEditCategoryMovesExpense() {
	old := s.expense("coffee", "4.20", "dining", models.Today())

	s.expenseRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(prior, updated *models.Expense) error {
		s.Equal("treats", updated.Category)
		return nil
	})

	updated, err := s.service.EditCategory(s.userID, "treats", old)
	s.NoError(err)
	s.Equal("treats", updated.Category)
}

func (s *ExpenseServiceTestSuite) TestDeleteExpenseStampsOwner() {
	old := s.expense("coffee", "4.20", "dining", models.Today())
	old.UserID = uuid.Nil

	s.expenseRepo.EXPECT().Delete(gomock.Any()).DoAndReturn(func(e *models.Expense) error {
		s.Equal(s.userID, e.UserID)
		return nil
	})

	s.NoError(s.service.DeleteExpense(s.userID, old))
}

func (s *ExpenseServiceTestSuite) TestRenameCategoryMovesEveryMember() {
	members := []models.Expense{
		s.expense("bus", "2.50", "transport", models.Today()),
		s.expense("train", "8.00", "transport", models.Today()),
		s.expense("fuel", "40.00", "transport", models.Today()),
	}

	s.expenseRepo.EXPECT().ListByUserAndCategory(s.userID, "transport").Return(members, nil)
	s.expenseRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(prior, updated *models.Expense) error {
		s.Equal("transport", prior.Category)
		s.Equal("travel", updated.Category)
		s.Equal(prior.Name, updated.Name)
		return nil
	}).Times(3)

	changed, err := s.service.RenameCategory(s.userID, "travel", "transport")
	s.NoError(err)
	s.Equal(3, changed)
}

func (s *ExpenseServiceTestSuite) TestRenameCategoryRejectsEmptyNewName() {
	_, err := s.service.RenameCategory(s.userID, "", "transport")
	s.ErrorIs(err, ErrEmptyCategory)
}

func (s *ExpenseServiceTestSuite) TestRenameCategorySameNameIsNoOp() {
	changed, err := s.service.RenameCategory(s.userID, "transport", "transport")
	s.NoError(err)
	s.Zero(changed)
}

func (s *ExpenseServiceTestSuite) TestRenameCategoryEmptySourceMovesNothing() {
	s.expenseRepo.EXPECT().ListByUserAndCategory(s.userID, "ghosts").Return([]models.Expense{}, nil)

	changed, err := s.service.RenameCategory(s.userID, "spirits", "ghosts")
	s.NoError(err)
	s.Zero(changed)
}

func (s *ExpenseServiceTestSuite) TestRenameCategoryReportsPartialProgressOnFailure() {
	members := []models.Expense{
		s.expense("bus", "2.50", "transport", models.Today()),
		s.expense("train", "8.00", "transport", models.Today()),
	}
	repoErr := errors.New("connection reset")

	s.expenseRepo.EXPECT().ListByUserAndCategory(s.userID, "transport").Return(members, nil)
	gomock.InOrder(
		s.expenseRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
		s.expenseRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(repoErr),
	)

	changed, err := s.service.RenameCategory(s.userID, "travel", "transport")
	s.ErrorIs(err, repoErr)
	s.Equal(1, changed)
}

func (s *ExpenseServiceTestSuite) TestDeleteCategoryReassignsToUndefined() {
	members := []models.Expense{
		s.expense("cinema", "12.00", "fun", models.Today()),
		s.expense("arcade", "6.00", "fun", models.Today()),
	}

	s.expenseRepo.EXPECT().ListByUserAndCategory(s.userID, "fun").Return(members, nil)
	s.expenseRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(prior, updated *models.Expense) error {
		s.Equal(models.CategoryUndefined, updated.Category)
		s.True(updated.Amount.Equal(prior.Amount))
		return nil
	}).Times(2)

	changed, err := s.service.DeleteCategory(s.userID, "fun")
	s.NoError(err)
	s.Equal(2, changed)
}

func (s *ExpenseServiceTestSuite) TestDeleteUndefinedCategoryIsNoOp() {
	changed, err := s.service.DeleteCategory(s.userID, models.CategoryUndefined)
	s.NoError(err)
	s.Zero(changed)
}

func (s *ExpenseServiceTestSuite) TestListCategoriesAlwaysIncludesUndefined() {
	s.expenseRepo.EXPECT().ListCategories(s.userID).Return([]string{"dining", "transport"}, nil)

	categories, err := s.service.ListCategories(s.userID)
	s.NoError(err)
	s.Equal([]string{"dining", "transport", models.CategoryUndefined}, categories)
}

func (s *ExpenseServiceTestSuite) TestListCategoriesDoesNotDuplicateUndefined() {
	s.expenseRepo.EXPECT().ListCategories(s.userID).Return([]string{"dining", models.CategoryUndefined}, nil)

	categories, err := s.service.ListCategories(s.userID)
	s.NoError(err)
	s.Equal([]string{"dining", models.CategoryUndefined}, categories)
}

func (s *ExpenseServiceTestSuite) TestTotalForUserSumsExactly() {
	expenses := []models.Expense{
		s.expense("a", "0.10", "misc", models.Today()),
		s.expense("b", "0.20", "misc", models.Today()),
	}
	s.expenseRepo.EXPECT().ListByUser(s.userID).Return(expenses, nil)

	total, err := s.service.TotalForUser(s.userID)
	s.NoError(err)
	s.True(total.Equal(decimal.RequireFromString("0.30")), "expected exact 0.30, got %s", total)
}

func (s *ExpenseServiceTestSuite) TestTotalForUserEmptyIsZero() {
	s.expenseRepo.EXPECT().ListByUser(s.userID).Return([]models.Expense{}, nil)

	total, err := s.service.TotalForUser(s.userID)
	s.NoError(err)
	s.True(total.IsZero())
}

func (s *ExpenseServiceTestSuite) TestTotalForCategorySumsOnlyThatCategory() {
	expenses := []models.Expense{
		s.expense("bus", "2.50", "transport", models.Today()),
		s.expense("train", "8.00", "transport", models.Today()),
	}
	s.expenseRepo.EXPECT().ListByUserAndCategory(s.userID, "transport").Return(expenses, nil)

	total, err := s.service.TotalForCategory(s.userID, "transport")
	s.NoError(err)
	s.True(total.Equal(decimal.RequireFromString("10.50")))
}

func (s *ExpenseServiceTestSuite) TestCategoryBreakdownSortsByCategory() {
	expenses := []models.Expense{
		s.expense("train", "8.00", "transport", models.Today()),
		s.expense("coffee", "4.20", "dining", models.Today()),
		s.expense("bus", "2.50", "transport", models.Today()),
	}
	s.expenseRepo.EXPECT().ListByUser(s.userID).Return(expenses, nil)

	breakdown, err := s.service.CategoryBreakdown(s.userID)
	s.NoError(err)
	s.Len(breakdown, 2)
	s.Equal("dining", breakdown[0].Category)
	s.Equal(int64(1), breakdown[0].ExpenseCount)
	s.Equal("transport", breakdown[1].Category)
	s.Equal(int64(2), breakdown[1].ExpenseCount)
	s.True(breakdown[1].TotalAmount.Equal(decimal.RequireFromString("10.50")))
}

func (s *ExpenseServiceTestSuite) TestSeriesForAllOrdersByDateAndAccumulates() {
	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		s.expense("later", "5.00", "misc", jan2),
		s.expense("earlier", "3.00", "misc", jan1),
	}
	s.expenseRepo.EXPECT().ListByUser(s.userID).Return(expenses, nil)

	series, err := s.service.SeriesForAll(s.userID)
	s.NoError(err)
	s.Len(series, 2)
	s.True(series[0].Date.Equal(jan1))
	s.True(series[0].Cumulative.Equal(decimal.RequireFromString("3.00")))
	s.True(series[1].Date.Equal(jan2))
	s.True(series[1].Cumulative.Equal(decimal.RequireFromString("8.00")))
}

func (s *ExpenseServiceTestSuite) TestSeriesForCategoryFiltersByCategory() {
	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		s.expense("bus", "2.50", "transport", jan1),
	}
	s.expenseRepo.EXPECT().ListByUserAndCategory(s.userID, "transport").Return(expenses, nil)

	series, err := s.service.SeriesForCategory(s.userID, "transport")
	s.NoError(err)
	s.Len(series, 1)
	s.True(series[0].Amount.Equal(decimal.RequireFromString("2.50")))
}

func (s *ExpenseServiceTestSuite) TestReadOperationsRequireUser() {
	_, err := s.service.ListExpenses(uuid.Nil)
	s.ErrorIs(err, ErrUserRequired)

	_, err = s.service.TotalForUser(uuid.Nil)
	s.ErrorIs(err, ErrUserRequired)

	_, err = s.service.SeriesForAll(uuid.Nil)
	s.ErrorIs(err, ErrUserRequired)

	_, err = s.service.RenameCategory(uuid.Nil, "a", "b")
	s.ErrorIs(err, ErrUserRequired)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
