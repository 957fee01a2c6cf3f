package dto

import "time"

// AdminLoginRequest carries the shared admin password.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse returns the issued admin token.
type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
}

// PostPromptRequest publishes a new weekly prompt.
type PostPromptRequest struct {
	Week        int    `json:"week" validate:"required,min=1"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}
