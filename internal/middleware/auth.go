package middleware

import (
	"errors"
	"strings"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/handlers"
	"expensetracker/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that resolves the session token to its
// user and scopes the request to that user. Handlers read the resolved id
// from the "user_id" context key.
func RequireAuth(sessionService services.SessionServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, apperrors.AuthMissingToken)
			}

			token, err := extractBearerToken(authHeader)
			if err != nil {
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat)
			}

			user, err := sessionService.CurrentUser(token)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrExpiredToken):
					return handlers.SendError(c, apperrors.AuthExpiredToken)
				case errors.Is(err, services.ErrNoCurrentUser):
					return handlers.SendError(c, apperrors.AuthUnknownUser)
				default:
					return handlers.SendError(c, apperrors.AuthInvalidTokenFormat)
				}
			}

			c.Set("user_id", user.ID)
			c.Set("username", user.Username)
			c.Set("user", user)

			return next(c)
		}
	}
}

var errMalformedAuthHeader = errors.New("malformed authorization header")

func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errMalformedAuthHeader
	}
	return parts[1], nil
}
