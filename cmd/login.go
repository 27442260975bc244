package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/habedi/tokenkeeper/auth"
	"github.com/habedi/tokenkeeper/db"
	"github.com/habedi/tokenkeeper/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd stores an access/refresh token pair in the credential database.
// Tokens can be passed as flags or entered interactively; the interactive
// prompt does not echo.
func loginCmd() *cobra.Command {
	var accessToken, refreshToken string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access and refresh token pair",
		Long:  "Store the access and refresh tokens used to authenticate outgoing requests",
		Run: func(cmd *cobra.Command, args []string) {
			if accessToken == "" {
				accessToken = promptForSecret("Access token: ")
			}
			if refreshToken == "" {
				refreshToken = promptForSecret("Refresh token: ")
			}

			if err := validation.ValidateTokenPair(accessToken, refreshToken); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			repo := db.NewCredentialRepository(db.Db)
			ctx := cmd.Context()
			if err := repo.Set(ctx, auth.DefaultTokenKey.AccessToken, accessToken); err != nil {
				cmd.PrintErrln("Error: Failed to save the access token.")
				log.Error().Err(err).Msg("Failed to save access token")
				return
			}
			if err := repo.Set(ctx, auth.DefaultTokenKey.RefreshToken, refreshToken); err != nil {
				cmd.PrintErrln("Error: Failed to save the refresh token.")
				log.Error().Err(err).Msg("Failed to save refresh token")
				return
			}
			cmd.Println("Token pair saved successfully.")
		},
	}

	cmd.Flags().StringVar(&accessToken, "access", "", "Access token to store (prompted when omitted)")
	cmd.Flags().StringVar(&refreshToken, "refresh", "", "Refresh token to store (prompted when omitted)")

	return cmd
}

// promptForSecret prompts the user for a secret without echoing it and
// returns the trimmed string.
func promptForSecret(prompt string) string {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(secret))
}
