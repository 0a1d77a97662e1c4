package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/fleetops/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Long:  "Create the configuration directory and a default config.yaml.\nAn existing file is kept unless --force is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveConfigDir()
			if err != nil {
				return err
			}
			wrote, err := config.WriteDefault(dir, force)
			if err != nil {
				return sysErr("write config: %w", err)
			}
			out := cmd.OutOrStdout()
			if wrote {
				fmt.Fprintln(out, "fleetops initialized")
			} else {
				fmt.Fprintln(out, "fleetops already initialized")
			}
			fmt.Fprintln(out, "  config:", config.Path(dir))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.yaml")
	return cmd
}
