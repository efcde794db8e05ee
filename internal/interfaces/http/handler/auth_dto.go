package handler

import (
	"time"

	identityapp "github.com/dormsync/backend/internal/application/identity"
)

// =====================
// Auth Request DTOs
// =====================

// LoginRequest represents the request body for user login.
// Identifier accepts a student identifier or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required,min=3,max=100"`
	Password   string `json:"password" binding:"required,min=8,max=128"`
}

// =====================
// Auth Response DTOs
// =====================

// TokenResponse represents the token data in auth responses
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}

// AuthUserResponse represents user data in auth responses
type AuthUserResponse struct {
	ID        string  `json:"id"`
	Role      string  `json:"role"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	StudentID *string `json:"student_id"`
}

// LoginResponse represents the response body for successful login
type LoginResponse struct {
	Token TokenResponse    `json:"token"`
	User  AuthUserResponse `json:"user"`
}

// CurrentUserResponse represents the response body for current user info
type CurrentUserResponse struct {
	User    AuthUserResponse `json:"user"`
	Profile *ProfileResponse `json:"profile"`
}

// LogoutResponse represents the response body for logout
type LogoutResponse struct {
	Message string `json:"message"`
}

func toAuthUserResponse(user identityapp.UserInfo) AuthUserResponse {
	return AuthUserResponse{
		ID:        user.ID.String(),
		Role:      string(user.Role),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName,
		Email:     user.Email,
		StudentID: user.StudentID,
	}
}
