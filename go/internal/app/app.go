// Package app wires the game server client, the session, the poller and the
// event publisher together for both binaries.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Shabbypenguin/smart-catan/go/clients/catan_client"
	"github.com/Shabbypenguin/smart-catan/go/internal/config"
	"github.com/Shabbypenguin/smart-catan/go/internal/events"
	"github.com/Shabbypenguin/smart-catan/go/internal/poller"
	"github.com/Shabbypenguin/smart-catan/go/internal/session"
)

type App struct {
	Client    *catan_client.CatanClient
	Session   *session.Session
	Poller    *poller.Poller
	Stats     *poller.Counters
	Publisher events.Publisher
}

// New wires the dependency chain:
// game server client → session (+ renderers, publisher) → poller.
func New(cfg *config.Config, renderers ...session.Renderer) (*App, error) {
	client := catan_client.NewCatanClient(cfg.GameServerURL, cfg.RequestTimeout)

	publisher, err := newPublisher(cfg.NATS)
	if err != nil {
		return nil, err
	}

	opts := []session.Option{session.WithPublisher(publisher)}
	for _, r := range renderers {
		opts = append(opts, session.WithRenderer(r))
	}
	sess := session.NewSession(client, session.Config{RequestTimeout: cfg.RequestTimeout}, opts...)

	stats := poller.NewCounters()
	p := poller.NewPoller(client, sess.OnBoard, poller.Config{
		Interval:       cfg.PollInterval,
		RequestTimeout: cfg.RequestTimeout,
	}, poller.WithMetrics(stats))

	return &App{
		Client:    client,
		Session:   sess,
		Poller:    p,
		Stats:     stats,
		Publisher: publisher,
	}, nil
}

func newPublisher(cfg config.NATS) (events.Publisher, error) {
	if cfg.URL == "" {
		log.Info().Msg("no NATS url configured, board events are only logged")
		return events.NewLogPublisher(), nil
	}

	natsCfg := events.DefaultNATSConfig()
	natsCfg.URL = cfg.URL
	if cfg.SubjectPrefix != "" {
		natsCfg.SubjectPrefix = cfg.SubjectPrefix
	}

	publisher, err := events.NewNATSPublisher(natsCfg)
	if err != nil {
		return nil, fmt.Errorf("create NATS publisher: %w", err)
	}

	log.Info().
		Str("url", natsCfg.URL).
		Str("subject_prefix", natsCfg.SubjectPrefix).
		Msg("publishing board events to NATS")

	return publisher, nil
}

// Run starts the session and the poller and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	sessionDone := make(chan error, 1)
	go func() {
		sessionDone <- a.Session.Run(ctx)
	}()

	if err := a.Poller.Start(ctx); err != nil {
		return fmt.Errorf("start poller: %w", err)
	}

	<-ctx.Done()

	if err := a.Poller.Stop(); err != nil {
		log.Error().Err(err).Msg("stop poller")
	}
	err := <-sessionDone

	if cerr := a.Publisher.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("close publisher")
	}

	return err
}

// ConfigureLogging points the global logger at out with the given level.
func ConfigureLogging(out io.Writer, level zerolog.Level, color bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: !color})
	zerolog.SetGlobalLevel(level)
}
