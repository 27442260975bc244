package auth

import "time"

// TokenPair holds an access/refresh token pair. It is an immutable value:
// a successful refresh replaces the whole pair, never one half of it.
type TokenPair struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// complete reports whether both halves of the pair are present. A refresh
// result missing either half is treated as invalid.
func (p TokenPair) complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// TokenKey names the storage slots used by the default persistence strategy.
// It is fixed at construction time.
type TokenKey struct {
	AccessToken  string
	RefreshToken string
}

// DefaultTokenKey is the storage slot mapping used when none is configured.
var DefaultTokenKey = TokenKey{
	AccessToken:  "access_token",
	RefreshToken: "refresh_token",
}

// DefaultExpiryThreshold is the safety margin applied by the default expiry
// predicate: a token is treated as expired if its expiry falls before now
// plus this threshold, so it does not expire mid-flight between validation
// and use.
const DefaultExpiryThreshold = 60 * time.Second
