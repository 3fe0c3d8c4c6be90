package service

import "errors"

// Sentinel errors returned by the services. The HTTP layer maps each to a
// status code and user-facing message.
var (
	// ErrEmailAlreadyRegistered is returned on registration when the e-mail
	// already has an account.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login when the e-mail is unknown
	// or the password does not match. The two cases are intentionally
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch is returned on reset when the confirmation does
	// not match the new password.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrWeakPassword is returned when a password is shorter than the
	// configured minimum.
	ErrWeakPassword = errors.New("password too short")

	// ErrInvalidOrExpiredToken is returned when a reset token is unknown,
	// already used, expired, or lost a redemption race.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)
