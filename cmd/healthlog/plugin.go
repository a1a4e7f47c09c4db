package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"healthlog/internal/bootstrap"
)

func newPluginCmd(opts *globalOptions) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Exporter plugin operations"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				plugins, err := app.PluginCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t capabilities=%s binary=%s\n", p.Name, p.Version, p.Enabled, strings.Join(p.Capabilities, ","), p.Binary)
				}
				return nil
			})
		},
	})
	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				results, err := app.PluginCLI.Doctor(ctx)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})
	return plugin
}
