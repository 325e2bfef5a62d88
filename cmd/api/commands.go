package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mdobak/go-xerrors"
	"github.com/spf13/cobra"

	"github.com/siahsang/news/internal/config"
	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/database"
	"github.com/siahsang/news/internal/metrics"
	"github.com/siahsang/news/internal/utils/databaseutils"
)

// newRootCmd builds the CLI. Flags default to the values loaded from the
// NEWS_* environment, so a flag always wins over the environment.
func newRootCmd() *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Default()
	}

	rootCmd := &cobra.Command{
		Use:          serviceName,
		Short:        "News API - topics, articles, comments and users over HTTP",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			return cfg.Validate()
		},
	}
	rootCmd.SetErrPrefix("newsapi:")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DatabaseURL, "db", cfg.DatabaseURL, "PostgreSQL connection URL")
	flags.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database/sql driver: postgres or pgx")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: dev or json")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the diagnostics server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "API listen address")
	serveCmd.Flags().StringVar(&cfg.DiagAddr, "diag-addr", cfg.DiagAddr, "diagnostics listen address serving /metrics")
	serveCmd.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), cfg, func(db *sql.DB, logger *slog.Logger) error {
				return database.Migrate(cmd.Context(), db, logger)
			})
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the embedded development dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), cfg, func(db *sql.DB, logger *slog.Logger) error {
				if err := database.Migrate(cmd.Context(), db, logger); err != nil {
					return err
				}
				dataset, err := database.LoadDataset()
				if err != nil {
					return err
				}
				return database.Seed(cmd.Context(), db, dataset, logger)
			})
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	return rootCmd
}

func withDatabase(ctx context.Context, cfg config.Config, fn func(db *sql.DB, logger *slog.Logger) error) error {
	logger := configLogger(cfg, os.Stdout)

	db, err := database.Open(ctx, cfg)
	if err != nil {
		logger.Error("Error opening database connection", slog.String("stack", xerrors.Sprint(err)))
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Database connection established successfully", slog.String("driver", cfg.DBDriver))

	if err := fn(db, logger); err != nil {
		logger.Error("Command failed", slog.String("stack", xerrors.Sprint(err)))
		return err
	}
	return nil
}

func runServe(ctx context.Context, cfg config.Config) error {
	return withDatabase(ctx, cfg, func(db *sql.DB, logger *slog.Logger) error {
		m, err := metrics.New(serviceName)
		if err != nil {
			return err
		}

		app := &application{
			config:  cfg,
			core:    core.NewCore(db, logger, databaseutils.NewSQLTemplate(db, cfg.DBQueryTimeout)),
			logger:  logger,
			metrics: m,
		}

		logger.Info(fmt.Sprintf("Starting %s", serviceName), slog.String("addr", cfg.Addr), slog.String("diag_addr", cfg.DiagAddr))
		return app.serve(ctx)
	})
}
