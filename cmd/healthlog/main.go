package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"healthlog/internal/bootstrap"
	"healthlog/internal/platform/config"
	"healthlog/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOptions struct {
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "healthlog",
		Short:         "Daily health log with factor/symptom correlation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultDir := os.Getenv("HEALTHLOG_DATA_DIR")
	if defaultDir == "" {
		defaultDir = "."
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDir, "directory holding healthlog.yaml and the record store")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	root.AddCommand(newRecordCmd(opts))
	root.AddCommand(newAnalyzeCmd(opts))
	root.AddCommand(newFactorsCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newPluginCmd(opts))
	return root
}

// loadApp reads config, installs the default logger and wires the app.
// Callers must Close the returned app.
func loadApp(ctx context.Context, opts *globalOptions, stderr io.Writer) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.dataDir)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(stderr, level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return bootstrap.New(ctx, cfg, logger)
}

// withApp runs fn against a freshly wired app and closes it afterwards.
func withApp(cmd *cobra.Command, opts *globalOptions, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := loadApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	runErr := fn(ctx, app)
	if closeErr := app.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	return runErr
}

func newTUICmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}
