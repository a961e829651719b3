package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrSignInRequired is returned by operations that need an
	// authenticated session, such as wishlist mutations.
	ErrSignInRequired = errors.New("sign in required")
)
