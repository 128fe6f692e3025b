package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNotLoggedIn is returned by authenticated calls made before a token
	// was set.
	ErrNotLoggedIn = errors.New("not logged in")

	errEmptyAddress = errors.New("empty address")
)
