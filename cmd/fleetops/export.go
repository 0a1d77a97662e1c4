package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/fleetops/internal/charts"
	"github.com/mesh-intelligence/fleetops/internal/export"
	"github.com/mesh-intelligence/fleetops/internal/paths"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		search string
		rng    string
		output string
		dir    string
	)
	cmd := &cobra.Command{
		Use:   "export <view> [filter...]",
		Short: "Export a view as CSV",
		Long: `Export writes the filtered collection of a view as CSV using the view's
fixed filename, or to --output ("-" for stdout).

Views: ` + strings.Join(export.Views, ", ") + `

Example:
  fleetops export drones status=Active
  fleetops export voc --range weekly -o -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilterArgs(args[1:])
			if err != nil {
				return err
			}
			view := args[0]
			sheet, err := export.Build(a.svc, view, withSearch(f, search), charts.ParseRange(rng))
			if err != nil {
				return fmt.Errorf("export %s: %w", view, err)
			}

			if output == "-" {
				if err := sheet.Write(cmd.OutOrStdout()); err != nil {
					return sysErr("write csv: %w", err)
				}
				return nil
			}

			path := output
			if path == "" {
				base, err := paths.ResolveExportDir(dir, a.settings.ExportDir)
				if err != nil {
					return sysErr("resolve export dir: %w", err)
				}
				path = filepath.Join(base, sheet.Filename)
			}
			data, err := sheet.Bytes()
			if err != nil {
				return sysErr("encode csv: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return sysErr("write %s: %w", path, err)
			}

			a.metrics.Export(view)
			n := a.svc.Notify(export.Notice(view))
			a.logger.Debug("fleetops: export", zap.String("view", view), zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d lines)\n", n.Description, path, sheet.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "free-text search")
	cmd.Flags().StringVar(&rng, "range", string(charts.RangeHourly), "VOC range: hourly, daily or weekly")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout)`)
	cmd.Flags().StringVar(&dir, "dir", "", "export directory (default: config export_dir, FLEETOPS_EXPORT_DIR, or cwd)")
	return cmd
}
