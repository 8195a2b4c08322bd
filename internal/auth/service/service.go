// Package service authenticates employees and issues access tokens.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fieldtrack/internal/auth/models"
	attendance "fieldtrack/internal/attendance/models"
	"fieldtrack/internal/platform/logger"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/platform/sentinel"
	"fieldtrack/pkg/requestcontext"
)

// DefaultTokenTTL is the access token lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// AccountStore looks up employees with their password hashes.
type AccountStore interface {
	// FindByEmail matches case-insensitively and returns sentinel.ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
}

type TokenIssuer interface {
	GenerateAccessToken(employee attendance.Employee, now time.Time, expiresIn time.Duration) (string, error)
}

type Service struct {
	accounts AccountStore
	tokens   TokenIssuer
	logger   *slog.Logger
	tokenTTL time.Duration
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

func New(accounts AccountStore, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger.Discard(),
		tokenTTL: DefaultTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// dummyHash keeps the unknown-email path as slow as a wrong password.
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z2Mv0m7k1b0yq3a3h1X6t1eC")

// Login verifies the credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email and password are required")
	}
	requestID := requestcontext.RequestID(ctx)

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.logger.InfoContext(ctx, "login rejected",
				"event", "auth.login_rejected",
				"reason", "unknown_email",
				"request_id", requestID,
			)
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.InfoContext(ctx, "login rejected",
			"event", "auth.login_rejected",
			"reason", "wrong_password",
			"employee_id", account.ID,
			"request_id", requestID,
		)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(account.Employee, requestcontext.Now(ctx), s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.logger.InfoContext(ctx, "login succeeded",
		"event", "auth.logged_in",
		"employee_id", account.ID,
		"request_id", requestID,
	)
	return &models.LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      account.Employee,
	}, nil
}

// Me returns the caller's profile.
func (s *Service) Me(ctx context.Context, employeeID int64) (*attendance.Employee, error) {
	account, err := s.accounts.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	return &account.Employee, nil
}
