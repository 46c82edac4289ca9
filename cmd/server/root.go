package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/authors-api/internal/router"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appVersion = "0.1.0"

const shutdownTimeout = 15 * time.Second

var rootCmd = &cobra.Command{
	Use:          "authors-api",
	Short:        "Shelfshare authors and books service",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the relational schema and exit",
	RunE:  runMigrate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), appVersion)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("port", "8080", "port to listen on")
	flags.String("store", config.DriverPostgres, "store driver: postgres, sqlite or badger")
	flags.String("log-level", "info", "log level")
	flags.String("sqlite-path", "authors.db", "sqlite database file")
	flags.String("badger-path", "data/badger", "badger data directory")

	_ = viper.BindPFlag("PORT", flags.Lookup("port"))
	_ = viper.BindPFlag("STORE_DRIVER", flags.Lookup("store"))
	_ = viper.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))
	_ = viper.BindPFlag("SQLITE_PATH", flags.Lookup("sqlite-path"))
	_ = viper.BindPFlag("BADGER_PATH", flags.Lookup("badger-path"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	gin.SetMode(cfg.GinMode)

	return cfg, logger.Init(cfg.AppEnv, cfg.LogLevel), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg, log, true)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.New(router.Options{
			Store:     store,
			Log:       log,
			Version:   appVersion,
			StartTime: startTime,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.StoreDriver).
			Str("version", appVersion).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if cfg.StoreDriver == config.DriverBadger {
		log.Info().Msg("badger store has no schema, nothing to migrate")
		return nil
	}

	store, err := db.Open(cmd.Context(), cfg, log, true)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	log.Info().Str("store", cfg.StoreDriver).Msg("migrations applied")
	return store.Close()
}
