package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"book_tracker/internal/auth"
	"book_tracker/internal/models"
	"book_tracker/internal/repository"
)

// AccountService handles registration, login and user lookups.
type AccountService struct {
	users  repository.UserStore
	tokens TokenIssuer
	hasher PasswordHasher
}

func NewAccountService(users repository.UserStore, tokens TokenIssuer, hasher PasswordHasher) *AccountService {
	return &AccountService{users: users, tokens: tokens, hasher: hasher}
}

// Register hashes the password, creates the user and issues a token.
func (s *AccountService) Register(ctx context.Context, p RegisterParams) (*AuthResult, error) {
	username := strings.TrimSpace(p.Username)
	email := strings.TrimSpace(p.Email)
	if username == "" || email == "" {
		return nil, invalidInput("username and email are required")
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmptyPassword):
			return nil, invalidInput("password is required")
		case errors.Is(err, auth.ErrPasswordTooLong):
			return nil, invalidInput("password must be at most %d bytes", auth.MaxPasswordBytes)
		}
		return nil, err
	}

	u := &models.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(u)
}

// Login checks credentials and issues a token. A wrong password never
// yields a token.
func (s *AccountService) Login(ctx context.Context, p LoginParams) (*AuthResult, error) {
	if p.Username == "" && p.Email == "" {
		return nil, invalidInput("username or email is required")
	}
	if p.Password == "" {
		return nil, invalidInput("password is required")
	}

	u, err := s.users.FindByLogin(ctx, p.Username, p.Email)
	if err != nil {
		return nil, fmt.Errorf("find user for login: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if !s.hasher.Verify(p.Password, u.PasswordHash) {
		return nil, ErrWrongPassword
	}

	return s.issue(u)
}

// GetUser finds a user by the caller's identity or ID, falling back to Username.
func (s *AccountService) GetUser(ctx context.Context, l UserLookup) (*models.User, error) {
	id := l.ID
	if claim, ok := auth.IdentityFromContext(ctx); ok {
		id = claim.UserID
	}

	if id != "" {
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find user by id: %w", err)
		}
		if u != nil {
			return u, nil
		}
	}

	if l.Username != "" {
		u, err := s.users.FindByUsername(ctx, l.Username)
		if err != nil {
			return nil, fmt.Errorf("find user by username: %w", err)
		}
		if u != nil {
			return u, nil
		}
	}

	return nil, ErrUserNotFound
}

// Me returns the user identified by ctx.
func (s *AccountService) Me(ctx context.Context) (*models.User, error) {
	claim, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}

	u, err := s.users.FindByID(ctx, claim.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ParseToken verifies a bearer token and returns its claim.
func (s *AccountService) ParseToken(accessToken string) (*models.IdentityClaim, error) {
	return s.tokens.Verify(accessToken)
}

func (s *AccountService) issue(u *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(models.ClaimFor(u))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}
