// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, hashing, HTTP response writing,
// HTTP client initialization, JWT token generation and validation, and
// trace id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-task-manager/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key under which the authenticated caller is stored in
// the request context.
var UserCtxKey = contextKey("user")

// WithUser returns a copy of ctx carrying user as the authenticated caller.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the authenticated caller from the context.
//
// Returns the user and an ok flag:
//   - ok == true: value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}
