package client

import (
	"context"
	"fmt"
	"time"

	"github.com/imroc/req/v3"
	"github.com/rs/zerolog/log"

	"github.com/habedi/tokenkeeper/auth"
)

// Refresher exchanges a refresh token for a new token pair against an
// OAuth-style token endpoint. It runs on its own bare HTTP client so the
// refresh call bypasses the authenticated client's token injection; routing
// it through the wrapper would trigger a recursive refresh.
type Refresher struct {
	tokenURL     string
	clientID     string
	clientSecret string
	http         *req.Client
}

// NewRefresher creates a Refresher for the given token endpoint. clientID
// and clientSecret may be empty when the endpoint does not require them.
func NewRefresher(tokenURL, clientID, clientSecret string) *Refresher {
	return &Refresher{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         req.C().SetTimeout(30 * time.Second),
	}
}

// ExecuteRefresh implements auth.RefreshFunc.
func (r *Refresher) ExecuteRefresh(ctx context.Context, current auth.TokenPair) (auth.TokenPair, error) {
	form := map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": current.RefreshToken,
	}
	if r.clientID != "" {
		form["client_id"] = r.clientID
	}
	if r.clientSecret != "" {
		form["client_secret"] = r.clientSecret
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}

	log.Debug().Str("url", r.tokenURL).Msg("Requesting a new token pair")
	resp, err := r.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetSuccessResult(&result).
		Post(r.tokenURL)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to call token endpoint: %w", err)
	}
	if !resp.IsSuccessState() {
		return auth.TokenPair{}, fmt.Errorf("unexpected HTTP status %d from token endpoint: %s", resp.StatusCode, resp.String())
	}

	return auth.TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, nil
}
