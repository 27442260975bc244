package cmd

import (
	"time"

	"github.com/habedi/tokenkeeper/auth"
	"github.com/habedi/tokenkeeper/db"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// statusCmd shows the stored token pair, its decoded expiry, and whether it
// is still usable under the default safety margin.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored token pair and its expiry",
		Run:   showStatus,
	}
}

func showStatus(cmd *cobra.Command, args []string) {
	repo := db.NewCredentialRepository(db.Db)
	ctx := cmd.Context()

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Token", "Value", "Expires At", "Status"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range []struct{ name, key string }{
		{"access", auth.DefaultTokenKey.AccessToken},
		{"refresh", auth.DefaultTokenKey.RefreshToken},
	} {
		value, err := repo.Get(ctx, row.key)
		if err != nil {
			cmd.PrintErrln("Error: Unable to read the stored tokens. Please check the logs for details.")
			log.Error().Err(err).Msg("Failed to read stored tokens")
			return
		}
		table.Append([]string{row.name, maskToken(value), expiryLabel(value), statusLabel(value)})
	}

	table.Render()
}

func expiryLabel(token string) string {
	if token == "" {
		return "-"
	}
	exp, err := auth.Expiry(token)
	if err != nil {
		return "undecodable"
	}
	if exp == nil {
		return "never"
	}
	return exp.Local().Format(time.RFC3339)
}

func statusLabel(token string) string {
	if token == "" {
		return "missing"
	}
	exp, err := auth.Expiry(token)
	if err != nil {
		return "invalid"
	}
	if exp == nil {
		return "valid"
	}
	if !time.Now().Add(auth.DefaultExpiryThreshold).Before(*exp) {
		return "expired"
	}
	return "valid"
}
