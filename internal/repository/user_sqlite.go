package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"book_tracker/internal/models"

	"github.com/google/uuid"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of UserStore interface at compile time.
var _ UserStore = (*UserSQLite)(nil)

const (
	userColumns = `SELECT id, username, email, password_hash FROM users`

	insertUserSQL           = `INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)`
	selectUserByIDSQL       = userColumns + ` WHERE id = ?`
	selectUserByUsernameSQL = userColumns + ` WHERE username = ?`
	selectUserByEmailSQL    = userColumns + ` WHERE email = ?`
	selectUserByLoginSQL    = userColumns + ` WHERE username = ? OR email = ? LIMIT 1`

	selectBooksSQL = `SELECT book_id, authors, description, title, image, link
		FROM saved_books WHERE user_id = ? ORDER BY seq`

	// The EXISTS guard keeps a vanished user from growing orphan rows; the
	// unique (user_id, book_id) pair makes a repeated save a no-op.
	insertBookSQL = `INSERT INTO saved_books (user_id, book_id, authors, description, title, image, link)
		SELECT ?, ?, ?, ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM users WHERE id = ?)
		ON CONFLICT(user_id, book_id) DO NOTHING`

	deleteBookSQL = `DELETE FROM saved_books WHERE user_id = ? AND book_id = ?`
)

// marshalAuthors converts the slice to a JSON string.
func marshalAuthors(authors []string) (string, error) {
	if authors == nil {
		authors = []string{}
	}
	b, err := json.Marshal(authors)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalAuthors parses a JSON string into a slice.
func unmarshalAuthors(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var authors []string
	if err := json.Unmarshal([]byte(s), &authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user and assigns its ID.
func (r *UserSQLite) Create(ctx context.Context, u *models.User) error {
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, insertUserSQL, id, u.Username, u.Email, u.PasswordHash); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	u.ID = id
	if u.SavedBooks == nil {
		u.SavedBooks = []models.SavedBook{}
	}
	return nil
}

func (r *UserSQLite) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, selectUserByIDSQL, id)
}

func (r *UserSQLite) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, selectUserByUsernameSQL, username)
}

func (r *UserSQLite) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, selectUserByEmailSQL, email)
}

// FindByLogin matches a user by username or by email.
func (r *UserSQLite) FindByLogin(ctx context.Context, username, email string) (*models.User, error) {
	return r.findOne(ctx, selectUserByLoginSQL, username, email)
}

// AddBook appends book unless the user already saved that book id.
func (r *UserSQLite) AddBook(ctx context.Context, userID string, book models.SavedBook) (*models.User, error) {
	authors, err := marshalAuthors(book.Authors)
	if err != nil {
		return nil, fmt.Errorf("encode authors for book %q: %w", book.BookID, err)
	}
	_, err = r.db.ExecContext(ctx, insertBookSQL,
		userID, book.BookID, authors, book.Description, book.Title, book.Image, book.Link,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert book %q for user %q: %w", book.BookID, userID, err)
	}
	return r.FindByID(ctx, userID)
}

// RemoveBook deletes bookID from the user's list; a missing book is not an error.
func (r *UserSQLite) RemoveBook(ctx context.Context, userID, bookID string) (*models.User, error) {
	if _, err := r.db.ExecContext(ctx, deleteBookSQL, userID, bookID); err != nil {
		return nil, fmt.Errorf("delete book %q for user %q: %w", bookID, userID, err)
	}
	return r.FindByID(ctx, userID)
}

func (r *UserSQLite) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	books, err := r.loadBooks(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.SavedBooks = books
	return &u, nil
}

func (r *UserSQLite) loadBooks(ctx context.Context, userID string) ([]models.SavedBook, error) {
	rows, err := r.db.QueryContext(ctx, selectBooksSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select books for user %q: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	books := []models.SavedBook{}
	for rows.Next() {
		var (
			b       models.SavedBook
			authors string
		)
		if err := rows.Scan(&b.BookID, &authors, &b.Description, &b.Title, &b.Image, &b.Link); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		if b.Authors, err = unmarshalAuthors(authors); err != nil {
			return nil, fmt.Errorf("decode authors for book %q: %w", b.BookID, err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book rows: %w", err)
	}
	return books, nil
}
