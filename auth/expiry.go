package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expiry extracts the expiry claim from a signed token without verifying
// its signature. It returns nil when the token carries no expiry claim,
// which the default predicate treats as a token that never expires.
func Expiry(token string) (*time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, nil
	}
	t := exp.Time
	return &t, nil
}

// isExpired is the default expiry predicate: decode the token's expiry
// claim and compare it against now plus the configured threshold. Decode
// failures publish token:invalid and surface as TokenDecodeError.
func (m *Manager) isExpired(token string) (bool, error) {
	exp, err := Expiry(token)
	if err != nil {
		decodeErr := &TokenDecodeError{Err: err}
		m.publishInvalid(decodeErr)
		return false, decodeErr
	}
	if exp == nil {
		return false, nil
	}
	return !time.Now().Add(m.cfg.ExpiryThreshold).Before(*exp), nil
}
