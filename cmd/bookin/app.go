package main

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"

	"github.com/wim-web/bookin/internal/adapters/driven/auth"
	"github.com/wim-web/bookin/internal/adapters/driven/config/file"
	"github.com/wim-web/bookin/internal/adapters/driven/oauth"
	"github.com/wim-web/bookin/internal/adapters/driven/storage/memory"
	"github.com/wim-web/bookin/internal/adapters/driven/storage/sqlite"
	"github.com/wim-web/bookin/internal/adapters/driving/cli"
	"github.com/wim-web/bookin/internal/connectors/google/drive"
	"github.com/wim-web/bookin/internal/connectors/notion"
	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
	"github.com/wim-web/bookin/internal/core/ports/driving"
	"github.com/wim-web/bookin/internal/core/services"
	"github.com/wim-web/bookin/internal/logger"
)

// Ensure app implements cli.Factory.
var _ cli.Factory = (*app)(nil)

// app wires adapters to core services.
type app struct {
	settings *services.SettingsService
	store    *sqlite.Store

	// Overridable endpoints.
	exchanger    *oauth.Exchanger
	driveOptions []option.ClientOption
	notionClient *http.Client
}

func newApp() *app {
	return &app{}
}

// Settings opens the TOML config store and applies log settings.
func (a *app) Settings(opts cli.Options) (driving.SettingsService, error) {
	return a.settingsService(opts)
}

func (a *app) settingsService(opts cli.Options) (*services.SettingsService, error) {
	if a.settings != nil {
		return a.settings, nil
	}

	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	a.settings = services.NewSettingsService(store)

	if s, err := a.settings.Get(); err == nil {
		logger.SetTimestamps(s.Log.Timestamps)
	}
	logger.Debug("config: %s", a.settings.Path())

	return a.settings, nil
}

// loadSettings returns validated settings.
func (a *app) loadSettings(opts cli.Options) (domain.Settings, error) {
	svc, err := a.settingsService(opts)
	if err != nil {
		return domain.Settings{}, err
	}
	settings, err := svc.Get()
	if err != nil {
		return domain.Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (a *app) authFactory() *auth.Factory {
	if a.exchanger != nil {
		return auth.NewFactoryWithExchanger(a.exchanger)
	}
	return auth.NewFactory()
}

// Sync builds the sync service from validated settings.
func (a *app) Sync(ctx context.Context, opts cli.Options) (driving.SyncService, error) {
	settings, err := a.loadSettings(opts)
	if err != nil {
		return nil, err
	}

	factory := a.authFactory()
	driveTokens, err := factory.ServiceAccount(settings.Google)
	if err != nil {
		return nil, err
	}
	notionAuth, err := factory.Notion(settings.Notion)
	if err != nil {
		return nil, err
	}
	secret, err := notionAuth.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	var notionOpts []notion.ClientOption
	if a.notionClient != nil {
		notionOpts = append(notionOpts, notion.WithHTTPClient(a.notionClient))
	}
	entries := notion.NewClient(secret, settings.Notion, notionOpts...)

	listers := drive.NewListerFactory(drive.ConfigFromSettings(settings.Google), a.driveOptions...)
	throttle := notion.NewThrottle(settings.Notion.WriteInterval)

	runs, err := a.runStore(opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("sync: %s -> database %s", driveTokens.Identity(), settings.Notion.DatabaseID)
	return services.NewSyncService(driveTokens, listers, entries, throttle, runs), nil
}

// History builds the history service over the sqlite ledger.
func (a *app) History(opts cli.Options) (driving.HistoryService, error) {
	opts.NoHistory = false
	runs, err := a.runStore(opts)
	if err != nil {
		return nil, err
	}
	return services.NewHistoryService(runs), nil
}

// Token builds the token service. Only the Google settings are required.
func (a *app) Token(opts cli.Options) (driving.TokenService, error) {
	svc, err := a.settingsService(opts)
	if err != nil {
		return nil, err
	}
	settings, err := svc.Get()
	if err != nil {
		return nil, err
	}

	provider, err := a.authFactory().ServiceAccount(settings.Google)
	if err != nil {
		return nil, err
	}
	return services.NewTokenService(provider), nil
}

func (a *app) runStore(opts cli.Options) (driven.RunStore, error) {
	if opts.NoHistory {
		return memory.NewRunStore(), nil
	}
	if a.store == nil {
		store, err := sqlite.NewStore(opts.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		logger.Debug("history: %s", store.Path())
		a.store = store
	}
	return a.store.RunStore(), nil
}

// Close releases the sqlite store.
func (a *app) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
