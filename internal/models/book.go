package models

// SavedBook is a book entry in a user's list, keyed by its catalog id.
type SavedBook struct {
	BookID      string   `json:"bookId"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Title       string   `json:"title"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link,omitempty"`
}
