package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"healthlog/internal/bootstrap"
	analysisinadapter "healthlog/internal/modules/analysis/adapter/in"
	exportdto "healthlog/internal/modules/export/dto"
)

func newAnalyzeCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank factor/symptom correlations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (text|json)", format)
			}
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AnalysisCLI.Analyze(ctx)
				if err != nil {
					return err
				}
				if format == "json" {
					return analysisinadapter.RenderJSON(cmd.OutOrStdout(), out)
				}
				return analysisinadapter.RenderText(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "text|json")
	return cmd
}

func newFactorsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "factors <date>",
		Short: "List the active factors of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AnalysisCLI.ActiveFactors(ctx, args[0])
				if err != nil {
					return err
				}
				if len(out.Factors) == 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: no active factors\n", out.Date)
					return nil
				}
				for _, f := range out.Factors {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", f.Key, f.Label)
				}
				return nil
			})
		},
	}
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		format  string
		plugin  string
		outDir  string
		options map[string]string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all records to health-records-<date>.<ext>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, app *bootstrap.App) error {
				dir := outDir
				if dir == "" {
					dir = app.DataDir
				}
				path, out, err := app.ExportCLI.ExportToDir(ctx, exportdto.ExportInput{Format: format, PluginName: plugin, Options: options}, dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", out.Records, filepath.Clean(path))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json|markdown|plugin")
	cmd.Flags().StringVar(&plugin, "plugin", "", "exporter plugin name (implies --format plugin)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: data dir)")
	cmd.Flags().StringToStringVar(&options, "option", nil, "plugin option key=value")
	return cmd
}
