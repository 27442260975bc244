package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// refreshCmd forces one refresh of the stored token pair against the
// configured token endpoint.
func refreshCmd() *cobra.Command {
	var tokenURL, clientID, clientSecret string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the stored token pair",
		Long:  "Exchange the stored refresh token for a new token pair at the token endpoint",
		Run: func(cmd *cobra.Command, args []string) {
			manager, err := newManager(tokenURL, clientID, clientSecret)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			defer manager.Teardown()

			if err := manager.RefreshIfNeeded(cmd.Context()); err != nil {
				cmd.PrintErrln("Error: Failed to refresh the token pair. Please check the logs for details.")
				log.Error().Err(err).Msg("Token refresh failed")
				return
			}
			cmd.Println("Token pair refreshed successfully.")
		},
	}

	cmd.Flags().StringVar(&tokenURL, "token-url", "", "OAuth-style token endpoint used to refresh the pair")
	cmd.Flags().StringVar(&clientID, "client-id", "", "Client ID sent to the token endpoint")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Client secret sent to the token endpoint")

	return cmd
}
