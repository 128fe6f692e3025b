// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the HTTP layer. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidForm is returned when a form-encoded login body cannot be
	// parsed.
	ErrInvalidForm = errors.New("invalid form was passed")

	// ErrInvalidTaskID is returned when the {id} path parameter is not a
	// positive integer.
	ErrInvalidTaskID = errors.New("invalid task id")

	// ErrRouteNotFound answers unknown paths and unsupported methods.
	ErrRouteNotFound = errors.New("not found")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrRequestTooLarge is returned when a signed body exceeds the size the
	// integrity check is willing to buffer.
	ErrRequestTooLarge = errors.New("request body too large")
)
