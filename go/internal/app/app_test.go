package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shabbypenguin/smart-catan/go/internal/config"
	"github.com/Shabbypenguin/smart-catan/go/internal/events"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

type pageSink struct {
	pages chan viewmodel.Page
}

func (s *pageSink) Render(page viewmodel.Page) {
	select {
	case s.pages <- page:
	default:
	}
}

func testConfig(url string) *config.Config {
	return &config.Config{
		LogLevel:       "info",
		GameServerURL:  url,
		PollInterval:   20 * time.Millisecond,
		RequestTimeout: time.Second,
		HTTPPort:       8080,
	}
}

func TestRunPollsGameServerIntoSession(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/getboard", r.URL.Path)
		polls.Add(1)
		_, _ = w.Write([]byte(`{"resources":[2,4],"numbers":[9,9],"extension":false,"gameStarted":true,"selectedNumber":9}`))
	}))
	defer server.Close()

	sink := &pageSink{pages: make(chan viewmodel.Page, 128)}
	application, err := New(testConfig(server.URL), sink)
	require.NoError(t, err)
	assert.IsType(t, &events.LogPublisher{}, application.Publisher)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool {
		page, err := application.Session.Page(ctx)
		return err == nil && page.GameStarted && page.SelectedNumber == 9
	}, 2*time.Second, 10*time.Millisecond)

	page, err := application.Session.Page(ctx)
	require.NoError(t, err)
	cells := page.Board.Rows[0].Cells
	require.Len(t, cells, 2)
	assert.True(t, cells[0].Active)
	assert.True(t, cells[1].Active)
	assert.Equal(t, "wheat", cells[0].Class)

	require.Eventually(t, func() bool { return application.Stats.Snapshot().Succeeded >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.NotEmpty(t, sink.pages)
}

func TestNewFailsWhenNATSUnreachable(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.NATS.URL = "nats://127.0.0.1:1"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestConfigureLogging(t *testing.T) {
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	ConfigureLogging(&buf, zerolog.WarnLevel, false)

	log.Info().Msg("hidden")
	log.Warn().Str("board", "classic").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "board=classic")
}
