package service

import (
	"context"

	"book_tracker/internal/models"
	"book_tracker/internal/repository"
)

// Accounts covers registration, login and user lookups.
type Accounts interface {
	Register(ctx context.Context, p RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, p LoginParams) (*AuthResult, error)
	GetUser(ctx context.Context, l UserLookup) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	ParseToken(accessToken string) (*models.IdentityClaim, error)
}

// Library mutates the saved-book list of the identity carried by ctx.
type Library interface {
	SaveBook(ctx context.Context, book models.SavedBook) (*models.User, error)
	RemoveBook(ctx context.Context, bookID string) (*models.User, error)
}

// Updates streams saved-list snapshots for one user.
type Updates interface {
	Subscribe(userID string) (<-chan *models.User, func())
}

// TokenIssuer is satisfied by *auth.TokenService.
type TokenIssuer interface {
	Issue(claim models.IdentityClaim) (string, error)
	Verify(raw string) (*models.IdentityClaim, error)
}

// PasswordHasher is satisfied by *auth.Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Publisher receives every user snapshot produced by a library mutation.
type Publisher interface {
	Publish(u *models.User)
}

// UpdateHub is a Publisher that also hands out subscriptions.
type UpdateHub interface {
	Publisher
	Updates
}

// Service aggregates the transport-independent business operations
// shared by the REST and GraphQL layers.
type Service struct {
	Accounts
	Library
	Updates
}

func NewService(repos *repository.Repository, tokens TokenIssuer, hasher PasswordHasher, hub UpdateHub) *Service {
	return &Service{
		Accounts: NewAccountService(repos.Users, tokens, hasher),
		Library:  NewLibraryService(repos.Users, hub),
		Updates:  hub,
	}
}
