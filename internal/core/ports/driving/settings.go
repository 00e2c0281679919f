package driving

import "github.com/wim-web/bookin/internal/core/domain"

// SettingsService manages job settings.
type SettingsService interface {
	// Get returns current settings with defaults applied. It does not validate.
	Get() (domain.Settings, error)

	// Validate returns domain.ErrConfigInvalid when required settings are missing.
	Validate() error

	// Set stores a single setting by its dotted key.
	Set(key string, value string) error

	// SetSecret stores the database integration secret.
	SetSecret(secret string) error

	// Path returns the configuration file path.
	Path() string
}
