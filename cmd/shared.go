package cmd

import (
	"context"

	"github.com/habedi/tokenkeeper/auth"
	"github.com/habedi/tokenkeeper/client"
	"github.com/habedi/tokenkeeper/db"
	"github.com/habedi/tokenkeeper/pkg/clierr"
	"github.com/habedi/tokenkeeper/pkg/validation"
)

// maskToken shortens a token for terminal display so secrets never land in
// full on the screen or in scrollback.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// newManager builds a token manager backed by the credential database. The
// refresh path goes through an OAuth-style refresher when a token endpoint
// is configured; otherwise any refresh attempt fails with a hint to pass
// --token-url.
func newManager(tokenURL, clientID, clientSecret string) (*auth.Manager, error) {
	var refresh auth.RefreshFunc
	if tokenURL == "" {
		refresh = func(context.Context, auth.TokenPair) (auth.TokenPair, error) {
			return auth.TokenPair{}, clierr.New(clierr.Validation,
				"no token endpoint configured; pass --token-url", nil)
		}
	} else {
		if err := validation.ValidateURL("token endpoint", tokenURL); err != nil {
			return nil, clierr.New(clierr.Validation, err.Error(), err)
		}
		refresh = client.NewRefresher(tokenURL, clientID, clientSecret).ExecuteRefresh
	}

	return auth.NewManager(auth.Config{
		ExecuteRefresh: refresh,
		Store:          db.NewCredentialRepository(db.Db),
	})
}
