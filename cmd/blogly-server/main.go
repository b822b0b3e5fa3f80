package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/blogly/pkg/blogly/config"
	"github.com/mikepea/blogly/pkg/blogly/database"
	"github.com/mikepea/blogly/pkg/blogly/logging"
	"github.com/mikepea/blogly/pkg/blogly/models"
	"github.com/mikepea/blogly/pkg/blogly/server"
	"github.com/mikepea/blogly/pkg/blogly/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}
	gin.SetMode(cfg.GinMode)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := run(cfg, logger, quit); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

// run serves until the server fails or a signal arrives on quit. Deferred
// cleanup completes before it returns, so main can pick the exit status.
func run(cfg config.Config, logger zerolog.Logger, quit <-chan os.Signal) error {
	// Connect to database
	db, err := database.Open(database.Options{
		Driver: cfg.DBDriver,
		DSN:    cfg.DBDSN,
		Echo:   cfg.SQLEcho,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	// Run auto-migrations
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info().Str("driver", cfg.DBDriver).Msg("database migrations completed")

	srv, err := server.New(cfg, store.New(db), logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	errChannel := make(chan error, 1)
	go srv.Start(errChannel)

	select {
	case err := <-errChannel:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutdown requested")
		if err := srv.ShutdownGracefully(cfg.ShutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
