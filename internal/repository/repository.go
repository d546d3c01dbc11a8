package repository

import (
	"context"
	"database/sql"
	"errors"

	"book_tracker/internal/models"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ErrDuplicateUser is returned when the username or email is already taken.
var ErrDuplicateUser = errors.New("username or email already in use")

// UserStore persists users and their saved books. Lookups return (nil, nil)
// when nothing matches. Book mutations are single atomic updates and return
// the user as it is after the change, or (nil, nil) if the user is gone.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByLogin(ctx context.Context, username, email string) (*models.User, error)
	AddBook(ctx context.Context, userID string, book models.SavedBook) (*models.User, error)
	RemoveBook(ctx context.Context, userID, bookID string) (*models.User, error)
}

type Repository struct {
	Users UserStore
}

// NewSQLiteRepository wires the SQL-backed stores.
func NewSQLiteRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserSQLite(db),
	}
}

// NewMongoRepository wires the MongoDB-backed stores.
func NewMongoRepository(db *mongo.Database) *Repository {
	return &Repository{
		Users: NewUserMongo(db.Collection(UsersCollection)),
	}
}
