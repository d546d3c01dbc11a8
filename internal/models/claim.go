package models

// IdentityClaim is the identity embedded in an auth token.
type IdentityClaim struct {
	UserID   string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ClaimFor builds the claim identifying u.
func ClaimFor(u *User) IdentityClaim {
	return IdentityClaim{UserID: u.ID, Username: u.Username, Email: u.Email}
}
