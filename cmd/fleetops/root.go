// Root command and shared state for the fleetops CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/fleetops/internal/config"
	"github.com/mesh-intelligence/fleetops/internal/fleet"
	"github.com/mesh-intelligence/fleetops/internal/logging"
	"github.com/mesh-intelligence/fleetops/internal/metrics"
	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/internal/paths"
	"github.com/mesh-intelligence/fleetops/pkg/backend"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// app carries global flag values and the components PersistentPreRunE
// builds for subcommands.
type app struct {
	flagConfigDir string
	flagBackend   string
	flagVerbose   bool
	flagJSON      bool

	configDir string
	settings  config.Settings
	logger    *zap.Logger
	level     zap.AtomicLevel
	fleet     types.Fleet
	feed      *notify.Feed
	metrics   *metrics.Recorder
	svc       *fleet.Service
}

// skipSetup lists commands that run without a backend.
var skipSetup = map[string]bool{"version": true, "init": true, "help": true, "completion": true}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:     "fleetops",
		Short:   "Drone fleet operations dashboard",
		Long:    "fleetops serves the drone fleet dashboard and lists, exports and\nsummarizes fleet data from the command line.",
		Version: version,
		// Errors are printed once by run.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipSetup[cmd.Name()] {
				return nil
			}
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flagBackend, "backend", "", "storage backend: "+types.BackendList()+" (overrides config)")
	root.PersistentFlags().BoolVarP(&a.flagVerbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&a.flagJSON, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newTrendCmd(a))
	root.AddCommand(newStatsCmd(a))
	return root
}

// resolveConfigDir follows --config-dir > FLEETOPS_CONFIG_DIR > platform default.
func (a *app) resolveConfigDir() (string, error) {
	dir, err := paths.ResolveConfigDir(a.flagConfigDir)
	if err != nil {
		return "", sysErr("resolve config dir: %w", err)
	}
	return dir, nil
}

// setup loads configuration, builds the logger and attaches the backend.
func (a *app) setup() error {
	dir, err := a.resolveConfigDir()
	if err != nil {
		return err
	}
	a.configDir = dir

	settings, err := config.Load(dir)
	if err != nil {
		return sysErr("load config: %w", err)
	}
	if a.flagBackend != "" {
		settings.Backend = a.flagBackend
	}
	a.settings = settings

	logger, level, err := logging.NewLeveled(logging.Verbose(settings.LogLevel, a.flagVerbose))
	if err != nil {
		return fmt.Errorf("config %s: %w", config.KeyLogLevel, err)
	}
	a.logger, a.level = logger, level

	f, err := backend.Open(settings.Fleet())
	if err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
			return fmt.Errorf("open backend: %w", err)
		}
		return sysErr("open backend: %w", err)
	}
	a.fleet = f

	a.feed = notify.NewFeed(settings.NoticesHistory, logger)
	a.metrics = metrics.New()
	a.svc = fleet.New(f,
		fleet.WithNotifier(a.feed),
		fleet.WithObserver(a.metrics),
		fleet.WithLogger(logger))

	logger.Debug("fleetops: ready",
		zap.String("config_dir", dir),
		zap.String("backend", settings.Backend),
		zap.Bool("seed", settings.Seed))
	return nil
}

// close detaches the backend and flushes the logger. Safe to call twice.
func (a *app) close() error {
	var err error
	if a.fleet != nil {
		err = a.fleet.Detach()
		a.fleet = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
		a.logger = nil
	}
	if err != nil {
		return sysErr("detach backend: %w", err)
	}
	return nil
}
