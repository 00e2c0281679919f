package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage job configuration",
	Long: `View and change the job configuration stored in config.toml.

Keys:
  google.credentials_file  path of the service-account key JSON (required)
  google.scope             OAuth scope for the Drive token
  google.folder_ids        comma-separated parent folder IDs
  google.page_size         files per listing page (1-1000)
  google.token_timeout     token exchange timeout, e.g. 30s
  notion.database_id       target database ID (required)
  notion.secret            integration secret (required, use set-secret)
  notion.version           Notion-Version header override
  notion.write_interval    delay between page writes, e.g. 400ms
  notion.default_cover     cover image for files without a thumbnail
  log.timestamps           prefix log lines with the time (true/false)`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configSetSecretCmd = &cobra.Command{
	Use:   "set-secret",
	Short: "Set the Notion integration secret",
	Long: `Reads the Notion integration secret without echo and stores it in
config.toml. The NOTION_SECRET environment variable takes precedence over the
stored value.`,
	Args: cobra.NoArgs,
	RunE: runConfigSetSecret,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that required settings are present",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetSecretCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := getSettingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(styles.Title.Render("Current Configuration"))
	cmd.Printf("  %s\n", styles.Muted.Render(svc.Path()))
	cmd.Println()

	cmd.Println("[Google]")
	cmd.Printf("  Credentials file: %s\n", orNotSet(settings.Google.CredentialsFile))
	cmd.Printf("  Scope: %s\n", settings.Google.Scope)
	if len(settings.Google.FolderIDs) > 0 {
		cmd.Printf("  Folders: %s\n", strings.Join(settings.Google.FolderIDs, ", "))
	} else {
		cmd.Printf("  Folders: (all)\n")
	}
	cmd.Printf("  Page size: %d\n", settings.Google.PageSize)
	cmd.Printf("  Token timeout: %s\n", settings.Google.TokenTimeout)
	cmd.Println()

	cmd.Println("[Notion]")
	cmd.Printf("  Database ID: %s\n", orNotSet(settings.Notion.DatabaseID))
	if settings.Notion.Secret != "" {
		cmd.Printf("  Secret: %s\n", maskSecret(settings.Notion.Secret))
	} else {
		cmd.Printf("  Secret: (not set)\n")
	}
	if settings.Notion.Version != "" {
		cmd.Printf("  Version: %s\n", settings.Notion.Version)
	}
	cmd.Printf("  Write interval: %s\n", settings.Notion.WriteInterval)
	cmd.Printf("  Default cover: %s\n", settings.Notion.DefaultCover)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Timestamps: %t\n", settings.Log.Timestamps)
	cmd.Println()

	status := styles.Success.Render("valid")
	if err := settings.Validate(); err != nil {
		status = styles.Warning.Render(err.Error())
	}
	cmd.Printf("Status: %s\n", status)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := getSettingsService()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := svc.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigSetSecret(cmd *cobra.Command, _ []string) error {
	svc, err := getSettingsService()
	if err != nil {
		return err
	}

	cmd.Print("Notion secret: ")
	secret := readPassword(cmd.InOrStdin())
	cmd.Println()
	if secret == "" {
		return errors.New("secret is required")
	}

	if err := svc.SetSecret(secret); err != nil {
		return fmt.Errorf("failed to save secret: %w", err)
	}

	cmd.Printf("Secret saved: %s\n", maskSecret(secret))
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	svc, err := getSettingsService()
	if err != nil {
		return err
	}

	if err := svc.Validate(); err != nil {
		return err
	}

	cmd.Println(styles.Success.Render("Configuration is valid."))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	svc, err := getSettingsService()
	if err != nil {
		return err
	}

	cmd.Println(svc.Path())
	return nil
}

// readPassword reads a line without echo when in is a terminal.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
