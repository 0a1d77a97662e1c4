package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fleetops/internal/charts"
)

func newTrendCmd(a *app) *cobra.Command {
	var rng string
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the VOC trend for a range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := charts.ParseRange(rng)
			t := charts.VOCTrend(r)
			if a.flagJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"range": r, "trend": t})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "VOC %s: %.1f ppm, %s %s%% from %.1f ppm\n",
				r, t.Current, t.Direction, t.Percent, t.Previous)
			return nil
		},
	}
	cmd.Flags().StringVar(&rng, "range", string(charts.RangeHourly), "hourly, daily or weekly")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard summary counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.svc.DashboardStats()
			if err != nil {
				return sysErr("stats: %w", err)
			}
			if a.flagJSON {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			return writeTable(cmd.OutOrStdout(), []string{"METRIC", "VALUE"}, [][]string{
				{"drones", fmt.Sprint(st.TotalDrones)},
				{"active drones", fmt.Sprint(st.ActiveDrones)},
				{"average battery", fmt.Sprintf("%d%%", st.AverageBattery)},
				{"flight hours", fmt.Sprintf("%.1f", st.FlightHours)},
				{"active alerts", fmt.Sprint(st.ActiveAlerts)},
				{"critical alerts", fmt.Sprint(st.CriticalAlerts)},
				{"pending reports", fmt.Sprint(st.PendingReports)},
				{"open maintenance", fmt.Sprint(st.OpenMaintenance)},
				{"unread notifications", fmt.Sprint(st.UnreadNotices)},
			})
		},
	}
}
