package service

import (
	"context"
	"fmt"
	"strings"

	"book_tracker/internal/auth"
	"book_tracker/internal/models"
	"book_tracker/internal/repository"
)

// LibraryService saves and removes books for the identified user. It never
// touches the store without an identity.
type LibraryService struct {
	users repository.UserStore
	pub   Publisher
}

func NewLibraryService(users repository.UserStore, pub Publisher) *LibraryService {
	return &LibraryService{users: users, pub: pub}
}

// SaveBook adds book to the caller's list; an already saved id is a no-op.
func (s *LibraryService) SaveBook(ctx context.Context, book models.SavedBook) (*models.User, error) {
	claim, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	if strings.TrimSpace(book.BookID) == "" {
		return nil, invalidInput("bookId is required")
	}

	u, err := s.users.AddBook(ctx, claim.UserID, book)
	if err != nil {
		return nil, fmt.Errorf("save book %q: %w", book.BookID, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	s.publish(u)
	return u, nil
}

// RemoveBook drops bookID from the caller's list; a missing book is a no-op.
func (s *LibraryService) RemoveBook(ctx context.Context, bookID string) (*models.User, error) {
	claim, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	if strings.TrimSpace(bookID) == "" {
		return nil, invalidInput("bookId is required")
	}

	u, err := s.users.RemoveBook(ctx, claim.UserID, bookID)
	if err != nil {
		return nil, fmt.Errorf("remove book %q: %w", bookID, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	s.publish(u)
	return u, nil
}

func (s *LibraryService) publish(u *models.User) {
	if s.pub != nil {
		s.pub.Publish(u)
	}
}
