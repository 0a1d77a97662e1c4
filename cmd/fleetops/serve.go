package main

import (
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/fleetops/internal/charts"
	"github.com/mesh-intelligence/fleetops/internal/config"
	"github.com/mesh-intelligence/fleetops/internal/fleetmap"
	"github.com/mesh-intelligence/fleetops/internal/logging"
	"github.com/mesh-intelligence/fleetops/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := listen
			if addr == "" {
				addr = a.settings.Listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// One probe covers both map widgets; they share the tile source.
			loader := fleetmap.NewLoader(a.settings.Tiles.URL(fleetmap.StyleStreet), a.settings.ProbeTimeout, nil, a.logger)
			loader.Start(ctx)

			seed := uint64(time.Now().UnixNano())
			srv, err := server.New(server.Options{
				Service: a.svc,
				Notices: a.feed,
				Maps: []*fleetmap.View{
					fleetmap.NewView(fleetmap.ModeDrones, a.settings.Tiles, loader),
					fleetmap.NewView(fleetmap.ModeHeatmap, a.settings.Tiles, loader),
				},
				Monitor: charts.NewMonitor(rand.New(rand.NewPCG(seed, seed>>1))),
				Metrics: a.metrics,
				Logger:  a.logger,
			})
			if err != nil {
				return sysErr("build server: %w", err)
			}

			a.logger.Info("fleetops: serving", zap.String("addr", addr), zap.String("backend", a.settings.Backend))
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(gctx, addr)
			})
			if !a.flagVerbose {
				g.Go(func() error {
					return config.Watch(gctx, a.configDir, a.reloadLevel, func(err error) {
						a.logger.Warn("fleetops: config reload", zap.Error(err))
					})
				})
			}
			if err := g.Wait(); err != nil {
				return sysErr("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: config listen)")
	return cmd
}

// reloadLevel applies a changed log_level while serving. Other settings
// take effect on restart.
func (a *app) reloadLevel(s config.Settings) {
	if err := logging.SetLevel(a.level, s.LogLevel); err != nil {
		a.logger.Warn("fleetops: config reload", zap.Error(err))
		return
	}
	a.logger.Info("fleetops: log level", zap.String("level", s.LogLevel))
}
