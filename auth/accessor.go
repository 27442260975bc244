package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

// Token returns a usable access token, refreshing the pair first when the
// access token is expired. This is the entry point the request wrapper
// calls before attaching an Authorization header; it blocks only while a
// refresh is pending.
func (m *Manager) Token(ctx context.Context) (string, error) {
	expired, err := m.IsAccessTokenExpired(ctx)
	if err != nil {
		return "", err
	}
	if expired {
		log.Debug().Msg("Access token expired, refreshing")
		if err := m.RefreshIfNeeded(ctx); err != nil {
			return "", err
		}
	}
	return m.AccessToken(ctx)
}

// AccessToken returns the current access token from the configured source.
// An absent or empty value publishes token:invalid and fails with
// MissingTokenError.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	return m.readToken(ctx, tokenAccess)
}

// RefreshToken returns the current refresh token from the configured
// source. An absent or empty value publishes token:invalid and fails with
// MissingTokenError.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	return m.readToken(ctx, tokenRefresh)
}

// IsAccessTokenExpired reports whether the current access token is expired
// or will expire within the configured threshold.
func (m *Manager) IsAccessTokenExpired(ctx context.Context) (bool, error) {
	token, err := m.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	if m.cfg.IsAccessTokenExpired != nil {
		return m.cfg.IsAccessTokenExpired(token)
	}
	return m.isExpired(token)
}

// IsRefreshTokenExpired reports whether the current refresh token is
// expired or will expire within the configured threshold.
func (m *Manager) IsRefreshTokenExpired(ctx context.Context) (bool, error) {
	token, err := m.RefreshToken(ctx)
	if err != nil {
		return false, err
	}
	return m.isRefreshExpired(token)
}

func (m *Manager) isRefreshExpired(token string) (bool, error) {
	if m.cfg.IsRefreshTokenExpired != nil {
		return m.cfg.IsRefreshTokenExpired(token)
	}
	return m.isExpired(token)
}

// lookupAccess resolves the access token from the override getter or the
// store, without classifying an empty value as an error.
func (m *Manager) lookupAccess(ctx context.Context) (string, error) {
	if m.cfg.GetAccessToken != nil {
		return m.cfg.GetAccessToken()
	}
	return m.store.Get(ctx, m.cfg.TokenKey.AccessToken)
}

func (m *Manager) lookupRefresh(ctx context.Context) (string, error) {
	if m.cfg.GetRefreshToken != nil {
		return m.cfg.GetRefreshToken()
	}
	return m.store.Get(ctx, m.cfg.TokenKey.RefreshToken)
}

func (m *Manager) readToken(ctx context.Context, which string) (string, error) {
	var (
		token string
		err   error
	)
	if which == tokenAccess {
		token, err = m.lookupAccess(ctx)
	} else {
		token, err = m.lookupRefresh(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s token: %w", which, err)
	}
	if token == "" {
		missing := &MissingTokenError{Which: which}
		m.publishInvalid(missing)
		return "", missing
	}
	return token, nil
}

// publishInvalid fires token:invalid. A failing handler cannot mask the
// causal error, so it is only logged.
func (m *Manager) publishInvalid(cause error) {
	if err := m.bus.Publish(EventTokenInvalid, Payload{Err: cause}); err != nil {
		log.Warn().Err(err).Msg("token:invalid handler failed")
	}
}
