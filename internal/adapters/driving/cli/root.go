package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/wim-web/bookin/internal/core/ports/driving"
	"github.com/wim-web/bookin/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services used by the commands. They are built on demand by the factory,
// or injected directly in tests.
var (
	settingsService driving.SettingsService
	syncService     driving.SyncService
	historyService  driving.HistoryService
	tokenService    driving.TokenService

	factory Factory
)

// Options carries the global flags to the Factory.
type Options struct {
	ConfigDir string
	DataDir   string
	// NoHistory keeps run records in memory only.
	NoHistory bool
}

// Factory builds the services behind the commands. Each method is called
// at most once per invocation; failures are reported by the calling command.
type Factory interface {
	Settings(opts Options) (driving.SettingsService, error)
	Sync(ctx context.Context, opts Options) (driving.SyncService, error)
	History(opts Options) (driving.HistoryService, error)
	Token(opts Options) (driving.TokenService, error)
	Close() error
}

var rootCmd = &cobra.Command{
	Use:   "bookin",
	Short: "Sync Google Drive files into a Notion database",
	Long: `bookin lists Google Drive files modified since the newest entry of a
Notion database and creates one database page per file.

It authenticates to Drive with a service-account key (two-legged OAuth) and
to Notion with an integration secret. Run it from cron or a scheduler.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default ~/.bookin)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for run history (default ~/.bookin/data)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetFactory sets the factory used to build services.
func SetFactory(f Factory) {
	factory = f
}

// Execute runs the root command. The factory is closed afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if factory != nil {
			if err := factory.Close(); err != nil {
				logger.Warn("closing resources: %v", err)
			}
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func options() Options {
	return Options{
		ConfigDir: configDir,
		DataDir:   dataDir,
		NoHistory: syncNoHistory,
	}
}

var errNoFactory = errors.New("no service factory configured")

func getSettingsService() (driving.SettingsService, error) {
	if settingsService != nil {
		return settingsService, nil
	}
	if factory == nil {
		return nil, errNoFactory
	}
	svc, err := factory.Settings(options())
	if err != nil {
		return nil, err
	}
	settingsService = svc
	return svc, nil
}

func getSyncService(ctx context.Context) (driving.SyncService, error) {
	if syncService != nil {
		return syncService, nil
	}
	if factory == nil {
		return nil, errNoFactory
	}
	svc, err := factory.Sync(ctx, options())
	if err != nil {
		return nil, err
	}
	syncService = svc
	return svc, nil
}

func getHistoryService() (driving.HistoryService, error) {
	if historyService != nil {
		return historyService, nil
	}
	if factory == nil {
		return nil, errNoFactory
	}
	svc, err := factory.History(options())
	if err != nil {
		return nil, err
	}
	historyService = svc
	return svc, nil
}

func getTokenService() (driving.TokenService, error) {
	if tokenService != nil {
		return tokenService, nil
	}
	if factory == nil {
		return nil, errNoFactory
	}
	svc, err := factory.Token(options())
	if err != nil {
		return nil, err
	}
	tokenService = svc
	return svc, nil
}
