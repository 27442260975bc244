package cmd

import (
	"github.com/habedi/tokenkeeper/auth"
	"github.com/habedi/tokenkeeper/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// logoutCmd removes the stored token pair from the credential database.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token pair",
		Run: func(cmd *cobra.Command, args []string) {
			repo := db.NewCredentialRepository(db.Db)
			err := repo.Delete(cmd.Context(), auth.DefaultTokenKey.AccessToken, auth.DefaultTokenKey.RefreshToken)
			if err != nil {
				cmd.PrintErrln("Error: Failed to remove the stored tokens.")
				log.Error().Err(err).Msg("Failed to delete stored tokens")
				return
			}
			cmd.Println("Stored tokens removed.")
		},
	}
}
