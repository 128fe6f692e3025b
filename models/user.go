package models

import "time"

// User represents an account entity used for authentication and authorization.
// PasswordHash is never serialized; the API exposes users only through
// [UserResponse].
type User struct {
	// UserID is the unique, database-generated identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login name. It is also the identity claim
	// carried by issued tokens.
	Username string `json:"username"`

	// Email is the unique e-mail address of the user.
	Email string `json:"email"`

	// PasswordHash is the salted one-way digest of the user's password.
	PasswordHash string `json:"-"`

	// IsActive reports whether the account may authenticate. New accounts
	// are active.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts the user to its public representation.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
