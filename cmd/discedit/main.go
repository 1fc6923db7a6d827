package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/jchantrell/discedit/internal/config"
)

var (
	cfg     *config.Config
	cfgFile string

	dbPath     string
	language   string
	logLevel   string
	logFormat  string
	offset     int64
	length     int64
	noProgress bool
	noVerify   bool
)

var rootCmd = &cobra.Command{
	Use:   "discedit",
	Short: "Edit binary resources inside console disc images",
	Long: `discedit reads and edits string tables stored in disc images.

Resources are parsed in place from a memory mapped image. Only the strings
that are edited are re-encoded; everything else is written back exactly as it
was read. Use --offset and --length to select a resource inside a larger
image.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if cmd.Flags().Changed("database") {
			cfg.Database = dbPath
		}
		if cmd.Flags().Changed("lang") {
			cfg.Language = language
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}
		if noProgress {
			cfg.Progress = false
		}
		if noVerify {
			cfg.VerifyWrites = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var level slog.Level
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		var handler slog.Handler
		if cfg.LogFormat == "json" {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})
		} else {
			handler = tint.NewHandler(os.Stderr, &tint.Options{
				Level: level,
			})
		}
		slog.SetDefault(slog.New(handler))

		slog.Debug("Configuration",
			"database", cfg.Database,
			"language", cfg.Language,
			"verify_writes", cfg.VerifyWrites,
			"progress", cfg.Progress,
			"log_level", cfg.LogLevel,
			"log_format", cfg.LogFormat)

		return nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is discedit.yaml in home or pwd)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "database", "d", "", "export database file path")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", "", "language tag, such as ENGL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().Int64Var(&offset, "offset", 0, "byte offset of the resource inside the image")
	rootCmd.PersistentFlags().Int64Var(&length, "length", -1, "byte length of the resource (default: parse until the resource ends)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bar")
	rootCmd.PersistentFlags().BoolVar(&noVerify, "no-verify", false, "skip re-reading written output")
}
