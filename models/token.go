package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeBearer is the token_type reported by the login endpoint.
const TokenTypeBearer = "bearer"

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.RegisteredClaims] so it can be passed directly to
// [jwt.ParseWithClaims]. The "sub" claim carries the username.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, iss) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Username is the identity claim extracted from "sub".
	Username string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
