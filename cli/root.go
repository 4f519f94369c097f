// Package cli implements the solscope command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/status-im/solscope/config"
	"github.com/status-im/solscope/core"
	"github.com/status-im/solscope/logging"
	"github.com/status-im/solscope/render"
)

// Version is set at build time with -ldflags "-X github.com/status-im/solscope/cli.Version=...".
var Version = "dev"

type rootOptions struct {
	configPath     string
	category       string
	exportCSV      bool
	csvDir         string
	noSentiment    bool
	noWeb          bool
	scoreThreshold float64
	port           int
	verbose        bool
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the solscope command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "solscope",
		Short: "Rank CoinGecko category coins and serve a gems dashboard",
		Long: `solscope fetches the top coins of a CoinGecko category, scores them by
volume, 24h change, supply ratio and sentiment, and shows the ranking in the
terminal and on a live web dashboard.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath, "path to the YAML config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	local := cmd.Flags()
	local.StringVar(&opts.category, "category", "", "CoinGecko category to rank (default from config)")
	local.BoolVar(&opts.exportCSV, "export-csv", false, "export the ranking to a CSV file")
	local.StringVar(&opts.csvDir, "csv-dir", ".", "directory for exported CSV files")
	local.BoolVar(&opts.noSentiment, "no-sentiment", false, "disable sentiment analysis")
	local.BoolVar(&opts.noWeb, "no-web", false, "print the ranking and exit without starting the web dashboard")
	local.Float64Var(&opts.scoreThreshold, "score-threshold", 0, "score above which coins are hot picks (default from config)")
	local.IntVar(&opts.port, "port", 0, "web dashboard port (default from config)")

	cmd.AddCommand(newHistoryCommand(opts), newWalletCommand(opts), newVersionCommand())
	return cmd
}

// applyFlags overrides config values with the flags the user set explicitly.
func applyFlags(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("category") {
		cfg.Markets.Category = opts.category
	}
	if opts.noSentiment {
		cfg.Sentiment.Enabled = false
	}
	if flags.Changed("score-threshold") {
		cfg.Scoring.ScoreThreshold = opts.scoreThreshold
	}
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
}

// bootstrapLogger logs while the config is read, before its log section is known.
var bootstrapLogger = func(verbose bool) (*zap.Logger, error) {
	return logging.New(config.DefaultLogConfig(), verbose)
}

// loadConfig reads, overrides and validates the config and installs the logger.
// The returned func flushes the logger.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, func(), error) {
	boot, err := bootstrapLogger(opts.verbose)
	if err != nil {
		return nil, nil, err
	}
	restore := zap.ReplaceGlobals(boot)
	cfg, err := config.LoadConfig(opts.configPath)
	_ = boot.Sync()
	restore()
	if err != nil {
		return nil, nil, err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	flush, err := logging.Setup(cfg.Log, opts.verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, flush, nil
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	cfg, flush, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	defer flush()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := core.Setup(ctx, cfg, core.Options{WithServer: !opts.noWeb, WatchTokens: !opts.noWeb})
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			zap.L().Warn("error closing resources", zap.Error(err))
		}
	}()

	out := cmd.OutOrStdout()

	snap, err := app.Dashboard.Refresh(ctx)
	if err != nil {
		if opts.noWeb {
			return err
		}
		zap.L().Warn("initial refresh failed, serving an empty dashboard", zap.Error(err))
	} else {
		if err := render.Terminal(out, snap); err != nil {
			return err
		}
		if opts.exportCSV {
			path, err := render.ExportCSVFile(opts.csvDir, snap, time.Now())
			switch {
			case errors.Is(err, render.ErrNoResults):
				fmt.Fprintln(out, "No results to export.")
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "Exported results to %s\n", path)
			}
		}
	}

	if opts.noWeb {
		return nil
	}

	if err := app.Registry.StartAll(ctx); err != nil {
		return err
	}
	defer app.Registry.StopAll()

	fmt.Fprintf(out, "Dashboard running at http://localhost:%d (Ctrl+C to stop)\n", cfg.Server.Port)
	<-ctx.Done()
	zap.L().Info("received shutdown signal, stopping services")
	return nil
}

// withTimeout bounds one-shot subcommands.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
