package models

// User is an account with its saved book list.
type User struct {
	ID           string      `json:"_id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // don’t expose hash
	SavedBooks   []SavedBook `json:"savedBooks"`
}

// BookCount is the number of saved books.
func (u *User) BookCount() int {
	if u == nil {
		return 0
	}
	return len(u.SavedBooks)
}

// HasBook reports whether bookID is already in the saved list.
func (u *User) HasBook(bookID string) bool {
	for _, b := range u.SavedBooks {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}
