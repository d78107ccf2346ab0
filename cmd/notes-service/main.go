package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/notewell/notewell/internal/api/http"
	"github.com/notewell/notewell/internal/config"
	"github.com/notewell/notewell/internal/platform/factory"
	"github.com/notewell/notewell/internal/platform/logger"
	"github.com/notewell/notewell/internal/store"
)

func main() {
	var dbDriver string
	var port int

	rootCmd := &cobra.Command{
		Use:   "notes-service",
		Short: "HTTP service for keeping notes in a semi-structured way",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dbDriver, port)
		},
	}
	rootCmd.Flags().StringVar(&dbDriver, "db-driver", "", "Override NOTES_DB_DRIVER (memory, sqlite, postgres)")
	rootCmd.Flags().IntVar(&port, "port", 0, "Override NOTES_HTTP_PORT")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dbDriver string, port int) error {
	log := logger.New("notes-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid db-driver override")
		}
	}
	if port != 0 {
		cfg.HTTPPort = port
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Notes service starting")

	// -------- Storage layer -----------------
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st, err := factory.NewStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Storage backend unavailable")
	}

	// -------- Health monitor ---------------
	checker := store.NewHealthChecker(st, log, 2*time.Second)
	go checker.Start(ctx, 30*time.Second)

	// -------- Router & Server --------------
	router := httpapi.NewRouter(st, checker)
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("Server exited")
	return nil
}
