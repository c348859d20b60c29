package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedContext(e *echo.Echo, ip string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	e := echo.New()
	limiter := RateLimiterWithConfig(100, 5)
	handler := limiter(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		c, rec := newRateLimitedContext(e, "10.0.0.1")
		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterBlocksBeyondBurst(t *testing.T) {
	e := echo.New()
	limiter := RateLimiterWithConfig(1, 2)
	handler := limiter(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var lastCode int
	for i := 0; i < 10; i++ {
		c, rec := newRateLimitedContext(e, "10.0.0.2")
		assert.NoError(t, handler(c))
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	e := echo.New()
	limiter := RateLimiterWithConfig(1, 2)
	handler := limiter(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		c, _ := newRateLimitedContext(e, "10.0.0.3")
		assert.NoError(t, handler(c))
	}

	c, rec := newRateLimitedContext(e, "10.0.0.4")
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
