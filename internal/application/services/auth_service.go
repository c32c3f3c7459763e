package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"blueskyvhs/internal/domain/entities"
	"blueskyvhs/internal/domain/repositories"
)

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrEmptyPassword    = errors.New("password must not be empty")
	ErrUserExists       = errors.New("user already exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidSession   = errors.New("invalid session")
)

// TokenService mints and verifies opaque session tokens bound to a
// user id.
type TokenService interface {
	Issue(userID int64) (string, error)
	Parse(token string) (int64, error)
}

type AuthService struct {
	users  repositories.UserRepository
	tokens TokenService
}

func NewAuthService(users repositories.UserRepository, tokens TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register validates the input, creates the user and returns a freshly
// bound session token. Validation runs before any store access.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}
	email = entities.NormalizeEmail(email)

	_, taken, err := s.users.FindIDByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return "", ErrUserExists
	}

	user := &entities.User{Email: email, Password: password}
	if err := user.HashPassword(); err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	id, err := s.users.Create(ctx, email, user.Password)
	if err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}

	return s.issueAndBind(ctx, id)
}

// Login verifies the credentials and returns the user's currently bound
// token. A missing account and a bad password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}
	email = entities.NormalizeEmail(email)

	id, found, err := s.users.FindIDByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("checking email: %w", err)
	}
	if !found {
		return "", ErrWrongCredentials
	}

	user, found, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("loading user %d: %w", id, err)
	}
	if !found {
		return "", ErrWrongCredentials
	}

	if err := user.CheckPassword(password); err != nil {
		return "", ErrWrongCredentials
	}

	// A record can exist without a bound token if an earlier token bind
	// failed mid-registration; heal it here.
	if user.Token == "" {
		return s.issueAndBind(ctx, id)
	}
	return user.Token, nil
}

// Resolve maps a session token back to its user. The signature is
// verified locally, then the token index is consulted; the id embedded
// in the token must match the record the index points at.
func (s *AuthService) Resolve(ctx context.Context, token string) (*entities.User, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	user, found, err := s.users.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolving session: %w", err)
	}
	if !found || user.ID != id {
		return nil, ErrInvalidSession
	}
	return user, nil
}

func (s *AuthService) issueAndBind(ctx context.Context, id int64) (string, error) {
	token, err := s.tokens.Issue(id)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}
	if err := s.users.BindToken(ctx, id, token); err != nil {
		return "", fmt.Errorf("binding token: %w", err)
	}
	return token, nil
}

// validateCredentials rejects on the first violated rule.
func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return ErrInvalidEmail
	}
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}
