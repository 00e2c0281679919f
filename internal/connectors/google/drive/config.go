package drive

import (
	"github.com/wim-web/bookin/internal/core/domain"
)

// MaxPageSize is the largest page size files.list accepts.
const MaxPageSize int64 = 1000

// Config holds Google Drive lister configuration.
type Config struct {
	// FolderIDs limits the listing to files in these folders (optional).
	FolderIDs []string
	// PageSize is the page size for files.list requests.
	PageSize int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PageSize: domain.DefaultPageSize,
	}
}

// ConfigFromSettings extracts lister configuration from the Google settings.
// Out-of-range page sizes fall back to the default.
func ConfigFromSettings(settings domain.GoogleSettings) *Config {
	cfg := DefaultConfig()

	for _, id := range settings.FolderIDs {
		if id != "" {
			cfg.FolderIDs = append(cfg.FolderIDs, id)
		}
	}

	if settings.PageSize > 0 && settings.PageSize <= MaxPageSize {
		cfg.PageSize = settings.PageSize
	}

	return cfg
}
