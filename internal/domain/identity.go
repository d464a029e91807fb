package domain

// Identity is the authenticated user's minimal client-side record.
// It is the only piece of user state the client persists.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
