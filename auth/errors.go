package auth

import "fmt"

// MissingTokenError reports that the configured token source yielded no
// value for the requested token.
type MissingTokenError struct {
	Which string // "access" or "refresh"
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("no %s token available; please login first", e.Which)
}

// TokenDecodeError reports that the default expiry predicate could not
// parse a token.
type TokenDecodeError struct {
	Err error
}

func (e *TokenDecodeError) Error() string {
	return fmt.Sprintf("failed to decode token: %v", e.Err)
}

func (e *TokenDecodeError) Unwrap() error { return e.Err }

// RefreshTokenExpiredError reports that the refresh token itself was judged
// expired before a refresh was attempted, so no refresh call was made.
type RefreshTokenExpiredError struct {
	Err error
}

func (e *RefreshTokenExpiredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("refresh token expired: %v", e.Err)
	}
	return "refresh token expired; cannot obtain a new access token"
}

func (e *RefreshTokenExpiredError) Unwrap() error { return e.Err }

// RefreshExecutionError reports that the refresh operation failed or
// resolved with an incomplete token pair.
type RefreshExecutionError struct {
	Err error
}

func (e *RefreshExecutionError) Error() string {
	return fmt.Sprintf("token refresh failed: %v", e.Err)
}

func (e *RefreshExecutionError) Unwrap() error { return e.Err }
