package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func newListCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list <table> [filter...]",
		Short: "List records with optional filters",
		Long: `List queries records from a table with optional filters.

Filters are key=value pairs on the table's dropdown fields; "all" matches
everything. Multiple filters are ANDed. --search matches the table's text
fields case-insensitively.

Valid table names: ` + validTableNamesStr + `

Example:
  fleetops list drones
  fleetops list drones status=Active
  fleetops list reports severity=High --search pipeline`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, args[0], args[1:], search)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "free-text search")
	return cmd
}

func (a *app) table(name string) (types.Table, error) {
	t, err := a.fleet.GetTable(name)
	if err != nil {
		if errors.Is(err, types.ErrTableNotFound) {
			return nil, fmt.Errorf("unknown table %q (valid: %s)", name, validTableNamesStr)
		}
		return nil, sysErr("get table: %w", err)
	}
	return t, nil
}

func (a *app) runList(cmd *cobra.Command, tableName string, filterArgs []string, search string) error {
	t, err := a.table(tableName)
	if err != nil {
		return err
	}
	f, err := parseFilterArgs(filterArgs)
	if err != nil {
		return err
	}

	items, err := t.Fetch(withSearch(f, search))
	if err != nil {
		return fmt.Errorf("fetch %s: %w", tableName, err)
	}

	out := cmd.OutOrStdout()
	if a.flagJSON {
		return writeJSON(out, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "no results")
		return nil
	}
	header, row := columns(tableName)
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		e, ok := it.(types.Entity)
		if !ok {
			return sysErr("%s holds %T", tableName, it)
		}
		rows = append(rows, row(e))
	}
	return writeTable(out, header, rows)
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <table> <id>",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table(args[0])
			if err != nil {
				return err
			}
			e, err := t.Get(args[1])
			if err != nil {
				if errors.Is(err, types.ErrNotFound) {
					return fmt.Errorf("%q not found in table %q", args[1], args[0])
				}
				return fmt.Errorf("get %s: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), e)
		},
	}
}
