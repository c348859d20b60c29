package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expensetracker/internal/config"
	"expensetracker/internal/models"
	"expensetracker/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrNoCurrentUser is returned when a token does not resolve to a
	// known user.
	ErrNoCurrentUser = errors.New("no current user")
	ErrInvalidToken  = errors.New("invalid session token")
	ErrExpiredToken  = errors.New("session token has expired")
)

// sessionService implements SessionServiceInterface
type sessionService struct {
	userRepo      repositories.UserRepositoryInterface
	secret        []byte
	tokenDuration time.Duration
	issuer        string
	logger        *slog.Logger
}

// NewSessionService creates the session provider backed by signed tokens
func NewSessionService(
	userRepo repositories.UserRepositoryInterface,
	cfg config.SessionConfig,
	logger *slog.Logger,
) SessionServiceInterface {
	return &sessionService{
		userRepo:      userRepo,
		secret:        []byte(cfg.Secret),
		tokenDuration: cfg.TokenDuration,
		issuer:        cfg.Issuer,
		logger:        logger,
	}
}

// IssueToken signs a session token carrying the user's id as subject.
func (s *sessionService) IssueToken(user *models.User) (string, time.Time, error) {
	if user == nil || user.ID == uuid.Nil {
		return "", time.Time{}, ErrNoCurrentUser
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenDuration)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// CurrentUser resolves a session token to its user. Every expense
// operation is scoped to the user returned here.
func (s *sessionService) CurrentUser(tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, ErrNoCurrentUser
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.logger.Warn("session token for unknown user", "user_id", userID)
			return nil, ErrNoCurrentUser
		}
		return nil, fmt.Errorf("failed to resolve session user: %w", err)
	}

	return user, nil
}
