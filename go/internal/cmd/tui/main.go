package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Shabbypenguin/smart-catan/go/internal/app"
	"github.com/Shabbypenguin/smart-catan/go/internal/config"
	"github.com/Shabbypenguin/smart-catan/go/internal/terminal"
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

	// The terminal belongs to termbox from here on
	logFile, err := os.OpenFile(cfg.TUI.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TUI.LogFile).Msg("failed to open log file")
	}
	defer logFile.Close()

	level, _ := cfg.Level()
	app.ConfigureLogging(logFile, level, false)

	screen := terminal.NewScreen()

	application, err := app.New(cfg, screen)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up terminal display")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run(ctx)
	}()

	log.Info().Str("game_server", cfg.GameServerURL).Msg("terminal display started")

	if err := screen.Run(ctx, application.Session); err != nil {
		log.Error().Err(err).Msg("terminal display failed")
	}
	cancel()

	if err := <-errCh; err != nil {
		log.Error().Err(err).Msg("board sync exited with error")
	}
	log.Info().Msg("terminal display stopped")
}
