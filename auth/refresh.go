package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// refreshKey is the singleflight key; a manager runs at most one refresh
// session at a time.
const refreshKey = "refresh"

// RefreshIfNeeded refreshes the token pair, joining the in-flight refresh
// if one is already running. Every caller that joins a session observes the
// exact same outcome as the caller that started it; the refresh operation
// itself is invoked exactly once per session. After a session settles,
// success or failure, a later call starts a brand-new session.
func (m *Manager) RefreshIfNeeded(ctx context.Context) error {
	_, err, _ := m.group.Do(refreshKey, func() (interface{}, error) {
		return nil, m.refresh(ctx)
	})
	return err
}

func (m *Manager) refresh(ctx context.Context) error {
	refreshToken, err := m.RefreshToken(ctx)
	if err != nil {
		return err
	}

	expired, err := m.isRefreshExpired(refreshToken)
	if err != nil {
		return err
	}
	if expired {
		expiredErr := &RefreshTokenExpiredError{}
		if pubErr := m.bus.Publish(EventRefreshExpired, Payload{Err: expiredErr}); pubErr != nil {
			log.Warn().Err(pubErr).Msg("refreshToken:expired handler failed")
		}
		return expiredErr
	}

	// The current access token rides along for the refresh call, but its
	// absence must not abort the refresh or clear the stored refresh token.
	current := TokenPair{RefreshToken: refreshToken}
	if access, lookupErr := m.lookupAccess(ctx); lookupErr == nil {
		current.AccessToken = access
	}

	if pubErr := m.bus.Publish(EventRefreshStart, Payload{}); pubErr != nil {
		return m.failRefresh(pubErr)
	}

	pair, err := m.cfg.ExecuteRefresh(ctx, current)
	if err != nil {
		return m.failRefresh(err)
	}
	if !pair.complete() {
		return m.failRefresh(errors.New("refresh result is missing a token half"))
	}

	if pubErr := m.bus.Publish(EventRefreshSuccess, Payload{Pair: &pair}); pubErr != nil {
		return fmt.Errorf("failed to react to refreshed token pair: %w", pubErr)
	}
	log.Info().Msg("Token pair refreshed successfully")
	return nil
}

// failRefresh wraps cause as a RefreshExecutionError, publishes
// refreshToken:error, and returns the error for every joined waiter. A
// failing handler cannot mask the causal error, so it is only logged.
func (m *Manager) failRefresh(cause error) error {
	execErr := &RefreshExecutionError{Err: cause}
	if pubErr := m.bus.Publish(EventRefreshError, Payload{Err: execErr}); pubErr != nil {
		log.Warn().Err(pubErr).Msg("refreshToken:error handler failed")
	}
	return execErr
}
