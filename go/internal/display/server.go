// Package display serves the board to browsers: a live page, a JSON snapshot,
// a WebSocket feed of frames, and the action endpoints behind the controls.
package display

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/poller"
	"github.com/Shabbypenguin/smart-catan/go/internal/session"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

//go:embed static/index.html
var indexHTML []byte

// Actions is the player facing side of the session.
type Actions interface {
	SetMode(mode models.Mode) error
	ToggleGame() error
	SelectNumber(n int) error
	RollDice() error
	SetSetting(setting models.Setting, on bool) error
	Page(ctx context.Context) (viewmodel.Page, error)
}

// PollStats exposes the poll counters.
type PollStats interface {
	Snapshot() poller.Stats
}

type Server struct {
	actions Actions
	hub     *ViewerHub
	stats   PollStats
}

func NewServer(actions Actions, hub *ViewerHub, stats PollStats) *Server {
	return &Server{actions: actions, hub: hub, stats: stats}
}

// Routes returns the router wrapped with CORS.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Get("/state", s.state)
	r.Get("/ws", s.hub.ServeWS)
	r.Get("/health", healthz)
	r.Get("/stats", s.statsHandler)

	r.Route("/actions", func(r chi.Router) {
		r.Post("/mode/{mode}", s.setMode)
		r.Post("/game", s.toggleGame)
		r.Post("/number", s.selectNumber)
		r.Post("/roll", s.rollDice)
		r.Post("/settings/{setting}", s.setSetting)
	})

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(r)
}

// NewHTTPServer builds the listening server, HTTP/2 over cleartext included.
func NewHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	page, err := s.actions.Page(ctx)
	if err != nil {
		http.Error(w, "board unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Error().Err(err).Msg("failed to write health check response")
	}
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	var polls poller.Stats
	if s.stats != nil {
		polls = s.stats.Snapshot()
	}
	writeJSON(w, http.StatusOK, struct {
		Polls   poller.Stats `json:"polls"`
		Viewers int          `json:"viewers"`
	}{Polls: polls, Viewers: s.hub.Count()})
}

func (s *Server) setMode(w http.ResponseWriter, r *http.Request) {
	mode, err := models.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.accept(w, s.actions.SetMode(mode))
}

func (s *Server) toggleGame(w http.ResponseWriter, r *http.Request) {
	s.accept(w, s.actions.ToggleGame())
}

func (s *Server) selectNumber(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("value"))
	if err != nil || n < 2 || n > 12 {
		http.Error(w, "value must be a dice total between 2 and 12", http.StatusBadRequest)
		return
	}
	s.accept(w, s.actions.SelectNumber(n))
}

func (s *Server) rollDice(w http.ResponseWriter, r *http.Request) {
	s.accept(w, s.actions.RollDice())
}

func (s *Server) setSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := models.ParseSetting(chi.URLParam(r, "setting"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var on bool
	switch r.URL.Query().Get("value") {
	case "1":
		on = true
	case "0":
		on = false
	default:
		http.Error(w, "value must be 0 or 1", http.StatusBadRequest)
		return
	}
	s.accept(w, s.actions.SetSetting(setting, on))
}

// accept answers 202: the action runs asynchronously and its outcome shows up
// in the next frame.
func (s *Server) accept(w http.ResponseWriter, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
