package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// bindLifecycle subscribes one handler per lifecycle event: the override
// from Config when supplied, the default reaction otherwise.
func (m *Manager) bindLifecycle() {
	m.bus.Subscribe(EventTokenInvalid, pick(m.cfg.OnTokenInvalid, m.clearTokens))
	m.bus.Subscribe(EventRefreshStart, pick(m.cfg.OnRefreshStart, noopHandler))
	m.bus.Subscribe(EventRefreshSuccess, pick(m.cfg.OnRefreshSuccess, m.persistPair))
	m.bus.Subscribe(EventRefreshError, pick(m.cfg.OnRefreshError, m.clearTokens))
	m.bus.Subscribe(EventRefreshExpired, pick(m.cfg.OnRefreshExpired, m.clearTokens))
}

func pick(override, fallback Handler) Handler {
	if override != nil {
		return override
	}
	return fallback
}

func noopHandler(Payload) error { return nil }

// clearTokens is the default reaction to token:invalid, refreshToken:error
// and refreshToken:expired: drop both stored tokens.
func (m *Manager) clearTokens(Payload) error {
	err := m.store.Delete(context.Background(), m.cfg.TokenKey.AccessToken, m.cfg.TokenKey.RefreshToken)
	if err != nil {
		log.Error().Err(err).Msg("Failed to clear stored tokens")
		return fmt.Errorf("failed to clear stored tokens: %w", err)
	}
	return nil
}

// persistPair is the default reaction to refreshToken:success: save the new
// pair under the configured storage slots.
func (m *Manager) persistPair(p Payload) error {
	if p.Pair == nil {
		return nil
	}
	ctx := context.Background()
	if err := m.store.Set(ctx, m.cfg.TokenKey.AccessToken, p.Pair.AccessToken); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	if err := m.store.Set(ctx, m.cfg.TokenKey.RefreshToken, p.Pair.RefreshToken); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	log.Debug().Msg("New token pair saved")
	return nil
}
