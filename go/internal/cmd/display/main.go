package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Shabbypenguin/smart-catan/go/internal/app"
	"github.com/Shabbypenguin/smart-catan/go/internal/config"
	"github.com/Shabbypenguin/smart-catan/go/internal/display"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	printConfig := flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		config.Usage(flag.CommandLine.Output())
	}
	flag.Parse()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *printConfig {
		if err := cfg.Dump(os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("failed to print config")
		}
		return
	}

	level, _ := cfg.Level()
	app.ConfigureLogging(os.Stderr, level, true)

	log.Info().
		Str("game_server", cfg.GameServerURL).
		Dur("poll_interval", cfg.PollInterval).
		Int("port", cfg.HTTPPort).
		Msg("starting board display")

	hub := display.NewViewerHub(display.DefaultViewerConfig())

	application, err := app.New(cfg, hub)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up display")
	}

	server := display.NewHTTPServer(cfg.HTTPPort,
		display.NewServer(application.Session, hub, application.Stats).Routes())

	// signal‐aware context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go hub.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run(ctx)
	}()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	if err := <-errCh; err != nil {
		log.Error().Err(err).Msg("board sync exited with error")
	}
	log.Info().Msg("graceful shutdown complete")
}
