package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expensetracker/internal/dto"
	"expensetracker/internal/models"
	"expensetracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// SummaryHandlerTestSuite is the test suite for SummaryHandler
type SummaryHandlerTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockExpenseService *service_mocks.MockExpenseServiceInterface
	handler            *SummaryHandler
	echo               *echo.Echo
	userID             uuid.UUID
}

func (s *SummaryHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockExpenseService = service_mocks.NewMockExpenseServiceInterface(s.ctrl)
	s.handler = NewSummaryHandler(s.mockExpenseService)
	s.echo = echo.New()
	s.userID = uuid.New()
}

func (s *SummaryHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSummaryHandlerSuite(t *testing.T) {
	suite.Run(t, new(SummaryHandlerTestSuite))
}

func (s *SummaryHandlerTestSuite) newContext(path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.userID)
	return c, rec
}

func (s *SummaryHandlerTestSuite) TestGetTotal_AllExpenses() {
	c, rec := s.newContext("/api/v1/summary/total")

	s.mockExpenseService.EXPECT().
		TotalForUser(s.userID).
		Return(decimal.RequireFromString("123.45"), nil)

	s.NoError(s.handler.GetTotal(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TotalResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("123.45", response.Total)
	s.Empty(response.Category)
}

func (s *SummaryHandlerTestSuite) TestGetTotal_ScopedToCategory() {
	c, rec := s.newContext("/api/v1/summary/total?category=dining")

	s.mockExpenseService.EXPECT().
		TotalForCategory(s.userID, "dining").
		Return(decimal.RequireFromString("10.50"), nil)

	s.NoError(s.handler.GetTotal(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.TotalResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("10.5", response.Total)
	s.Equal("dining", response.Category)
}

func (s *SummaryHandlerTestSuite) TestGetBreakdown_Success() {
	c, rec := s.newContext("/api/v1/summary/breakdown")

	breakdown := []models.CategorySummary{
		{Category: "dining", ExpenseCount: 1, TotalAmount: decimal.RequireFromString("4.20")},
		{Category: "transport", ExpenseCount: 2, TotalAmount: decimal.RequireFromString("10.50")},
	}
	s.mockExpenseService.EXPECT().CategoryBreakdown(s.userID).Return(breakdown, nil)

	s.NoError(s.handler.GetBreakdown(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.BreakdownResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Categories, 2)
	s.Equal("dining", response.Categories[0].Category)
	s.Equal(int64(2), response.Categories[1].ExpenseCount)
	s.Equal("10.5", response.Categories[1].TotalAmount)
}

func (s *SummaryHandlerTestSuite) TestGetSeries_AllExpenses() {
	c, rec := s.newContext("/api/v1/summary/series")

	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []models.SeriesPoint{
		{Date: jan1, Amount: decimal.RequireFromString("3.00"), Cumulative: decimal.RequireFromString("3.00")},
	}
	s.mockExpenseService.EXPECT().SeriesForAll(s.userID).Return(points, nil)

	s.NoError(s.handler.GetSeries(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.SeriesResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Points, 1)
	s.Equal("2026-01-01", response.Points[0].Date)
	s.Equal("3", response.Points[0].Cumulative)
}

func (s *SummaryHandlerTestSuite) TestGetSeries_ScopedToCategory() {
	c, rec := s.newContext("/api/v1/summary/series?category=transport")

	s.mockExpenseService.EXPECT().
		SeriesForCategory(s.userID, "transport").
		Return([]models.SeriesPoint{}, nil)

	s.NoError(s.handler.GetSeries(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.SeriesResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("transport", response.Category)
	s.Empty(response.Points)
}

func (s *SummaryHandlerTestSuite) TestGetTotal_MissingUserReturns401() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary/total", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.GetTotal(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}
