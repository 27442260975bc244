package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// RefreshFunc obtains a new token pair from the authentication backend,
// given the current pair. It must use a transport path that bypasses the
// manager's own token injection, otherwise an expired access token would
// trigger a recursive refresh.
type RefreshFunc func(ctx context.Context, current TokenPair) (TokenPair, error)

// Config wires a Manager. ExecuteRefresh is required; every other field has
// a default.
type Config struct {
	// ExecuteRefresh is the only way the manager obtains a new token pair.
	ExecuteRefresh RefreshFunc

	// Store backs the default token getters and the default lifecycle
	// reactions. Defaults to an in-memory store.
	Store Store

	// GetAccessToken and GetRefreshToken override the default store lookup
	// by TokenKey.
	GetAccessToken  func() (string, error)
	GetRefreshToken func() (string, error)

	// IsAccessTokenExpired and IsRefreshTokenExpired override the default
	// expiry predicate (decode the token's expiry claim and compare it
	// against now plus ExpiryThreshold).
	IsAccessTokenExpired  func(token string) (bool, error)
	IsRefreshTokenExpired func(token string) (bool, error)

	// Per-event overrides for the default lifecycle reactions. A supplied
	// handler fully replaces the default for that event, it is not
	// additive: the default persistence or clearing side effect does not
	// run when an override is present.
	OnTokenInvalid   Handler
	OnRefreshStart   Handler
	OnRefreshSuccess Handler
	OnRefreshError   Handler
	OnRefreshExpired Handler

	// TokenKey names the storage slots used by the default persistence
	// strategy. Defaults to DefaultTokenKey.
	TokenKey TokenKey

	// ExpiryThreshold is the safety margin for the default expiry
	// predicate. Zero means DefaultExpiryThreshold.
	ExpiryThreshold time.Duration
}

// Manager coordinates access to a bearer token pair: it resolves the
// current tokens from the configured source, classifies them as expired,
// and serializes refresh attempts so that at most one refresh is in flight
// at a time. Callers that arrive while a refresh is running join it and
// observe the same outcome.
type Manager struct {
	cfg   Config
	bus   *Bus
	store Store
	group singleflight.Group
}

// NewManager validates cfg, applies defaults, and binds the lifecycle
// reactions to the notification bus.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.ExecuteRefresh == nil {
		return nil, fmt.Errorf("auth: Config.ExecuteRefresh is required")
	}
	if cfg.ExpiryThreshold < 0 {
		return nil, fmt.Errorf("auth: Config.ExpiryThreshold must not be negative")
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.TokenKey == (TokenKey{}) {
		cfg.TokenKey = DefaultTokenKey
	}
	if cfg.ExpiryThreshold == 0 {
		cfg.ExpiryThreshold = DefaultExpiryThreshold
	}

	m := &Manager{cfg: cfg, bus: NewBus(), store: cfg.Store}
	m.bindLifecycle()
	return m, nil
}

// Bus exposes the manager's notification bus so external code can observe
// lifecycle events alongside the bound reactions.
func (m *Manager) Bus() *Bus { return m.bus }

// Teardown releases all notification bus subscriptions. The manager must
// not be used afterwards.
func (m *Manager) Teardown() { m.bus.Teardown() }
