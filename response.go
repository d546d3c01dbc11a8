package book_tracker

import "book_tracker/internal/models"

// UserResponse is the public shape of a user on the REST API.
type UserResponse struct {
	ID         string             `json:"_id"`
	Username   string             `json:"username"`
	Email      string             `json:"email"`
	BookCount  int                `json:"bookCount"`
	SavedBooks []models.SavedBook `json:"savedBooks"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MessageResponse carries a client-facing error or status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse converts a user for output; the password hash never leaves.
func NewUserResponse(u *models.User) UserResponse {
	books := u.SavedBooks
	if books == nil {
		books = []models.SavedBook{}
	}
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		BookCount:  len(books),
		SavedBooks: books,
	}
}
