package domain

import (
	"fmt"
	"strings"
	"time"
)

// Setting defaults.
const (
	// DefaultDriveScope grants full Drive access, which files.list needs for
	// shared folders.
	DefaultDriveScope = "https://www.googleapis.com/auth/drive"

	// DefaultPageSize is the files.list page size.
	DefaultPageSize int64 = 100

	// DefaultTokenTimeout bounds the token exchange.
	DefaultTokenTimeout = 30 * time.Second

	// DefaultWriteInterval spaces database writes to stay under Notion's
	// average of three requests per second.
	DefaultWriteInterval = 400 * time.Millisecond

	// DefaultCoverURL is used as the page cover for files without a thumbnail.
	DefaultCoverURL = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcR62Ye2YTQqGErSkeAcj-0ZceMxg_10AltAkQ&usqp=CAU"
)

// GoogleSettings configures the storage side.
type GoogleSettings struct {
	// CredentialsFile is the path of the service-account key JSON.
	CredentialsFile string
	// Scope is the OAuth scope requested for the access token.
	Scope string
	// FolderIDs limits the listing to these parent folders (optional).
	FolderIDs []string
	// PageSize is the number of files per listing page.
	PageSize int64
	// TokenTimeout bounds the token exchange request.
	TokenTimeout time.Duration
}

// NotionSettings configures the database side.
type NotionSettings struct {
	// DatabaseID is the target database.
	DatabaseID string
	// Secret is the integration token.
	Secret string
	// Version overrides the Notion-Version header (optional).
	Version string
	// WriteInterval is the fixed delay between page writes.
	WriteInterval time.Duration
	// DefaultCover is the cover image for files without a thumbnail.
	DefaultCover string
}

// LogSettings configures log output.
type LogSettings struct {
	// Timestamps prefixes log lines with the time, for cron or container logs.
	Timestamps bool
}

// Settings is the complete job configuration.
type Settings struct {
	Google GoogleSettings
	Notion NotionSettings
	Log    LogSettings
}

// DefaultSettings returns settings with every optional value filled in.
func DefaultSettings() Settings {
	return Settings{
		Google: GoogleSettings{
			Scope:        DefaultDriveScope,
			PageSize:     DefaultPageSize,
			TokenTimeout: DefaultTokenTimeout,
		},
		Notion: NotionSettings{
			WriteInterval: DefaultWriteInterval,
			DefaultCover:  DefaultCoverURL,
		},
	}
}

// Validate checks that the required settings are present and sane.
func (s Settings) Validate() error {
	var problems []string

	if strings.TrimSpace(s.Google.CredentialsFile) == "" {
		problems = append(problems, "google.credentials_file is required")
	}
	if strings.TrimSpace(s.Google.Scope) == "" {
		problems = append(problems, "google.scope is required")
	}
	if s.Google.PageSize <= 0 || s.Google.PageSize > 1000 {
		problems = append(problems, "google.page_size must be between 1 and 1000")
	}
	if s.Google.TokenTimeout < 0 {
		problems = append(problems, "google.token_timeout must not be negative")
	}
	if strings.TrimSpace(s.Notion.DatabaseID) == "" {
		problems = append(problems, "notion.database_id is required")
	}
	if strings.TrimSpace(s.Notion.Secret) == "" {
		problems = append(problems, "notion.secret is required")
	}
	if s.Notion.WriteInterval < 0 {
		problems = append(problems, "notion.write_interval must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(problems, "; "))
	}
	return nil
}
