package domain

import (
	"strings"
	"time"
)

// User is an authentication identity.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// AdminProfile grants dashboard access to a user. Only users with a profile are administrators.
type AdminProfile struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is an issued, not yet revoked, sign-in.
type Session struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authorization is the result of the admin guard: a live session that belongs to an administrator.
type Authorization struct {
	Session Session      `json:"session"`
	Profile AdminProfile `json:"profile"`
}

// NormalizeEmail lowercases and trims an e-mail address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
