package dto

// LoginRequest represents the login call payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents the account creation payload
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
}

// RefreshRequest exchanges a refresh token for a new access token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse is returned by POST /auth/refresh
type RefreshResponse struct {
	Token string `json:"token"`
}

// ErrorResponse carries the server-provided failure message, when the
// server sends one
type ErrorResponse struct {
	Message string `json:"message"`
}
