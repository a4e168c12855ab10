package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/playerstats/internal/app"
	"github.com/riskibarqy/playerstats/internal/config"
	"github.com/riskibarqy/playerstats/internal/observability"
	"github.com/riskibarqy/playerstats/internal/platform/logging"
	"github.com/riskibarqy/playerstats/internal/usecase"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const cliTracerName = "playerstats/internal/cli"

var (
	opts     *Options
	manager  *usecase.StorageManager
	logger   *logging.Logger
	shutdown func(context.Context) error
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts = DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "playerstats",
		Short: "Manage player stats records stored in Supabase",
		Long: `playerstats reads and writes player stats records in a Supabase table
through its REST API.

Credentials come from flags, the environment or a .env file
(SUPABASE_URL, SUPABASE_ANON_KEY, SUPABASE_TABLE).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(opts.EnvFile); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyOverrides(&cfg, opts)

			logger = logging.New(logging.Options{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Writer: cmd.ErrOrStderr(),
			})
			logging.SetDefault(logger)

			shutdown, err = observability.InitUptrace(cfg, logger)
			if err != nil {
				return err
			}

			manager = app.NewStorageManager(cfg, logger)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", opts.EnvFile, "Env file loaded before reading configuration (env: PLAYERSTATS_ENV_FILE)")
	rootCmd.PersistentFlags().StringVar(&opts.URL, "url", "", "Supabase project URL (env: SUPABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.APIKey, "key", "", "Supabase anon key (env: SUPABASE_ANON_KEY)")
	rootCmd.PersistentFlags().StringVar(&opts.Table, "table", "", "Table name (env: SUPABASE_TABLE)")
	rootCmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", opts.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Log requests and payloads")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newPingCmd())
	rootCmd.AddCommand(newInfoCmd())

	for _, sub := range rootCmd.Commands() {
		traceCommand(sub)
	}

	return rootCmd
}

// traceCommand runs cmd under a root span so usecase spans and log trace ids attach to it, then
// flushes telemetry whether or not the command failed.
func traceCommand(cmd *cobra.Command) {
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, span := otel.Tracer(cliTracerName).Start(cmd.Context(), cmd.CommandPath())
		cmd.SetContext(ctx)

		err := run(cmd, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		finish(context.WithoutCancel(ctx))
		return err
	}
}

func finish(ctx context.Context) {
	if shutdown != nil {
		if err := shutdown(ctx); err != nil && logger != nil {
			logger.WarnContext(ctx, "telemetry shutdown failed", "error", err)
		}
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// Execute runs the root command
func Execute() {
	if err := Run(context.Background(), NewRootCmd()); err != nil {
		os.Exit(1)
	}
}

// Run executes root and reports a failure in the selected output format.
func Run(ctx context.Context, root *cobra.Command) error {
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return nil
	}
	if cmd == nil {
		cmd = root
	}
	format := "text"
	if opts != nil {
		format = opts.Output
	}
	NewOutput(format, cmd.OutOrStdout(), cmd.ErrOrStderr()).PrintError(err)
	return err
}

// loadEnvFile reads path into the environment without overriding variables already set.
// A missing file is fine.
func loadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func applyOverrides(cfg *config.Config, o *Options) {
	if v := strings.TrimSpace(o.URL); v != "" {
		cfg.SupabaseURL = v
	}
	if v := strings.TrimSpace(o.APIKey); v != "" {
		cfg.SupabaseAnonKey = v
	}
	if v := strings.TrimSpace(o.Table); v != "" {
		cfg.SupabaseTable = v
	}
	if o.Verbose {
		cfg.LogLevel = logging.LevelDebug
	}
}

// initStore initializes the manager for commands that read or write records.
func initStore(cmd *cobra.Command) error {
	return manager.Init(cmd.Context(), nil)
}
