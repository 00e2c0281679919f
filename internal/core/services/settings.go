package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
	"github.com/wim-web/bookin/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyCredentialsFile = "google.credentials_file"
	KeyScope           = "google.scope"
	KeyFolderIDs       = "google.folder_ids"
	KeyPageSize        = "google.page_size"
	KeyTokenTimeout    = "google.token_timeout"
	KeyDatabaseID      = "notion.database_id"
	KeySecret          = "notion.secret"
	KeyNotionVersion   = "notion.version"
	KeyWriteInterval   = "notion.write_interval"
	KeyDefaultCover    = "notion.default_cover"
	KeyLogTimestamps   = "log.timestamps"
)

// EnvNotionSecret overrides the stored secret when set.
//
//nolint:gosec // G101: environment variable name.
const EnvNotionSecret = "NOTION_SECRET"

// SettingsService reads and writes job settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get returns the stored settings with defaults applied.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	settings.Google.CredentialsFile = s.configStore.GetString(KeyCredentialsFile)
	settings.Google.Scope = s.getString(KeyScope, settings.Google.Scope)
	settings.Google.FolderIDs = s.configStore.GetStringSlice(KeyFolderIDs)
	if n := s.configStore.GetInt(KeyPageSize); n != 0 {
		settings.Google.PageSize = int64(n)
	}

	timeout, err := s.getDuration(KeyTokenTimeout, settings.Google.TokenTimeout)
	if err != nil {
		return settings, err
	}
	settings.Google.TokenTimeout = timeout

	settings.Notion.DatabaseID = s.configStore.GetString(KeyDatabaseID)
	settings.Notion.Secret = s.configStore.GetString(KeySecret)
	if env := s.getenv(EnvNotionSecret); env != "" {
		settings.Notion.Secret = env
	}
	settings.Notion.Version = s.configStore.GetString(KeyNotionVersion)
	settings.Notion.DefaultCover = s.getString(KeyDefaultCover, settings.Notion.DefaultCover)

	interval, err := s.getDuration(KeyWriteInterval, settings.Notion.WriteInterval)
	if err != nil {
		return settings, err
	}
	settings.Notion.WriteInterval = interval

	settings.Log.Timestamps = s.configStore.GetBool(KeyLogTimestamps)

	return settings, nil
}

// Validate checks the stored settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Set stores one setting, converting the string value to the key's type.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case KeyCredentialsFile, KeyScope, KeyDatabaseID, KeySecret, KeyNotionVersion, KeyDefaultCover:
		stored = value
	case KeyFolderIDs:
		stored = splitList(value)
	case KeyPageSize:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case KeyTokenTimeout, KeyWriteInterval:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s must be a duration such as 500ms or 30s", domain.ErrInvalidInput, key)
		}
		stored = d.String()
	case KeyLogTimestamps:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetSecret stores the integration secret.
func (s *SettingsService) SetSecret(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return fmt.Errorf("%w: secret is empty", domain.ErrInvalidInput)
	}
	return s.Set(KeySecret, secret)
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// SettingKeys lists every key accepted by Set.
func SettingKeys() []string {
	return []string{
		KeyCredentialsFile, KeyScope, KeyFolderIDs, KeyPageSize, KeyTokenTimeout,
		KeyDatabaseID, KeySecret, KeyNotionVersion, KeyWriteInterval, KeyDefaultCover,
		KeyLogTimestamps,
	}
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := s.configStore.GetString(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("%w: %s: %w", domain.ErrConfigInvalid, key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
