package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dcragent/internal/config"
	"dcragent/internal/constants"
	"dcragent/internal/logger"
	"dcragent/internal/supervisor"
	"dcragent/pkg/logging"
)

type options struct {
	configFile    string
	reportFile    string
	logLevel      string
	cacheFile     string
	noReport      bool
	skipCacheLoad bool
	skipCacheDump bool
}

// exitError carries the process exit status through cobra so main can
// apply it once the command unwinds.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return "shutdown requested"
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(constants.ExitConfigError)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "dcragent",
		Short:         "Disaster report notification agent",
		Long:          "dcragent watches a satellite disaster report feed and relays each new message to the configured notification channels",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", constants.DefaultConfigPath, "path to config file")
	flags.StringVarP(&opts.reportFile, "report-file", "r", "", "report log destination, overrides the config file")
	flags.StringVarP(&opts.logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	flags.BoolVarP(&opts.noReport, "no-report", "n", false, "disable the report log channel")
	flags.StringVar(&opts.cacheFile, "cache-file", "", "dedup cache snapshot path, overrides the config file")
	flags.BoolVar(&opts.skipCacheLoad, "skip-cache-load", false, "start with an empty dedup cache")
	flags.BoolVar(&opts.skipCacheDump, "skip-cache-dump", false, "do not save the dedup cache on shutdown")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	})

	return rootCmd
}

func serve(opts *options) error {
	earlyLog := logging.NewEarlyLog()

	cfg, err := config.Load(opts.configFile, config.Overrides{
		ReportPath: opts.reportFile,
		CachePath:  opts.cacheFile,
		LogLevel:   opts.logLevel,
		NoReport:   opts.noReport,
	})
	if err != nil {
		earlyLog.Error("Invalid configuration: %v", err)
		logKeywordErrors(earlyLog, err)
		return &exitError{code: constants.ExitConfigError, err: err}
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		earlyLog.Error("Failed to init logger: %v", err)
		return &exitError{code: constants.ExitConfigError, err: err}
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.LoadedFrom != "" {
		log.Infow("starting dcragent", "config", cfg.LoadedFrom)
	} else {
		log.Warnw("config file not found, starting on defaults", "path", opts.configFile)
	}

	app := NewApp(cfg, log, opts.skipCacheLoad, opts.skipCacheDump)
	if err := app.Initialize(ctx); err != nil {
		log.Errorw("failed to initialize agent", "error", err)
		return &exitError{code: constants.ExitConfigError, err: err}
	}
	defer app.Shutdown(context.Background())

	err = app.Run(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		log.Infow("shutdown complete")
		return &exitError{code: constants.ExitSignal}
	}

	var spawnErr *supervisor.SpawnError
	if errors.As(err, &spawnErr) {
		log.Errorw("source never started", "error", err)
		return &exitError{code: constants.ExitSpawnError, err: err}
	}

	log.Errorw("agent stopped on fatal error", "error", err)
	return &exitError{code: constants.ExitPipelineError, err: err}
}

// logKeywordErrors expands a keyword validation failure so the operator
// sees every offending entry, not just the summary line.
func logKeywordErrors(earlyLog *logging.EarlyLog, err error) {
	var kwErr *config.KeywordValidationError
	if !errors.As(err, &kwErr) {
		return
	}
	for _, ke := range kwErr.Errors {
		earlyLog.Error("Unknown keyword %q for %s.%s", ke.Keyword, ke.Category, ke.Option)
	}
}
