// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher produces and checks one-way salted password digests.
//
// Hash never returns the same digest twice for the same input because every
// call draws a fresh salt. Verify compares in constant time and treats a
// malformed digest as a mismatch rather than an error.
type PasswordHasher interface {
	// Hash returns the encoded digest of plain.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches digest.
	Verify(plain, digest string) bool
}
