package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"line-translator/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "line-translator",
		Short: "Review and replace quoted strings in translation files, one line at a time",
		Long: `Walks an input file of add(<id>, "<text>") lines and prompts for a replacement
of each quoted string. Decisions are appended to a result log as they are made,
so an interrupted run picks up where it stopped. Running without a subcommand
is the same as "edit".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cfg.LogLevel, cfg.LogFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this rotating file instead of stderr")
	addEditFlags(rootCmd, cfg)

	rootCmd.AddCommand(editCmd(cfg))
	rootCmd.AddCommand(compareCmd(cfg))
	rootCmd.AddCommand(checkCmd(cfg))
	rootCmd.AddCommand(syncCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging sends logs to a rotating file when one is configured and to
// stderr otherwise.
func setupLogging(level, file string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if file == "" {
		return
	}
	log.Logger = zerolog.New(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    16, // MB
		MaxBackups: 3,
	}).With().Timestamp().Logger()
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, stopping after the current line...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
