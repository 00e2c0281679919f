package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wim-web/bookin/internal/logger"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint and print a Google Drive access token",
	Long: `Signs a JWT assertion with the service-account key, exchanges it at the
token endpoint and prints the access token to stdout.

A new token is minted on every call.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	svc, err := getTokenService()
	if err != nil {
		return err
	}

	logger.Debug("minting token for %s", svc.Identity())

	token, err := svc.AccessToken(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	// Stdout, so the token can be piped.
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
