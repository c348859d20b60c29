package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"expensetracker/internal/models"
	"expensetracker/internal/services"
	"expensetracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockSessionService *service_mocks.MockSessionServiceInterface
	echo               *echo.Echo
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSessionService = service_mocks.NewMockSessionServiceInterface(s.ctrl)
	s.echo = echo.New()
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) request(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *AuthMiddlewareTestSuite) TestValidTokenSetsUserContext() {
	user := &models.User{ID: uuid.New(), Username: "casey"}
	s.mockSessionService.EXPECT().CurrentUser("good-token").Return(user, nil)

	c, rec := s.request("Bearer good-token")

	called := false
	handler := RequireAuth(s.mockSessionService)(func(c echo.Context) error {
		called = true
		s.Equal(user.ID, c.Get("user_id"))
		s.Equal("casey", c.Get("username"))
		return c.NoContent(http.StatusOK)
	})

	s.NoError(handler(c))
	s.True(called)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareTestSuite) TestMissingHeaderReturns401() {
	c, rec := s.request("")

	handler := RequireAuth(s.mockSessionService)(func(c echo.Context) error {
		s.Fail("handler should not be called")
		return nil
	})

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareTestSuite) TestMalformedHeaderReturns401() {
	c, rec := s.request("Token abc")

	handler := RequireAuth(s.mockSessionService)(func(c echo.Context) error {
		s.Fail("handler should not be called")
		return nil
	})

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareTestSuite) TestExpiredTokenReturns401() {
	s.mockSessionService.EXPECT().CurrentUser("stale").Return(nil, services.ErrExpiredToken)

	c, rec := s.request("Bearer stale")

	handler := RequireAuth(s.mockSessionService)(func(c echo.Context) error {
		s.Fail("handler should not be called")
		return nil
	})

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareTestSuite) TestUnknownUserReturns401() {
	s.mockSessionService.EXPECT().CurrentUser("orphan").Return(nil, services.ErrNoCurrentUser)

	c, rec := s.request("Bearer orphan")

	handler := RequireAuth(s.mockSessionService)(func(c echo.Context) error {
		s.Fail("handler should not be called")
		return nil
	})

	s.NoError(handler(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}
