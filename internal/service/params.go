package service

import "book_tracker/internal/models"

// RegisterParams are the fields of a new account; Password is plaintext.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// LoginParams identify an account by Username or Email. Either may be empty.
type LoginParams struct {
	Username string
	Email    string
	Password string
}

// UserLookup selects a user by ID or Username. An identity on the context
// takes precedence over ID.
type UserLookup struct {
	ID       string
	Username string
}

// AuthResult is a freshly issued token and the user it identifies.
type AuthResult struct {
	Token string
	User  *models.User
}
