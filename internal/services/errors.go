package services

import "errors"

// Client-facing sentinels. Handlers map these to HTTP statuses; anything else
// is treated as a store failure (500).
var (
	// ErrMissingFields covers registration/login bodies with absent required
	// fields.
	ErrMissingFields = errors.New("missing required fields")

	// ErrUserAlreadyExists is returned when username or email is taken.
	ErrUserAlreadyExists = errors.New("username or email already in use")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so the response never reveals which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers bad signature, expiry, wrong kind, and replayed
	// or revoked refresh tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrNotFound          = errors.New("not found")
	ErrLikeAlreadyExists = errors.New("like already exists")
	ErrInvalidObjectType = errors.New("invalid object type, must be one of: post, comment")
)
