package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request fails validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single outcome of a failed login, whether
	// the username is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUnauthorized is the single outcome of a failed identity resolution:
	// missing, malformed, forged or expired token, unknown or inactive user.
	ErrUnauthorized = errors.New("could not validate credentials")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrHashingPassword     = errors.New("error hashing password")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
