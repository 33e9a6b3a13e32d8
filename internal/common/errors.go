// Package common defines shared constants and sentinel errors used across
// client and server layers of life-logger. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Remote store errors.
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrVersionConflict   = errors.New("version conflict")
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// Crypto errors. ErrAuthFailure covers both a wrong key and a
	// tampered ciphertext; the two are indistinguishable under AEAD.
	ErrAuthFailure = errors.New("decryption failed: wrong key or corrupt data")

	// Registration / login validation errors.
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrBadCredentials   = errors.New("invalid username or password")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrInvalidInvite    = errors.New("invalid invite code")

	// Generic flow control.
	ErrInternal = errors.New("internal error")
)
