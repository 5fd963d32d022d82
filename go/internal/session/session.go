// Package session owns the mirrored game state. Poll results, player actions
// and game server replies all arrive on one inbox and are applied serially.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Shabbypenguin/smart-catan/go/internal/board"
	"github.com/Shabbypenguin/smart-catan/go/internal/events"
	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/reconcile"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

var ErrClosed = errors.New("session closed")

// GameClient is what the session needs from the game server.
type GameClient interface {
	SetMode(ctx context.Context, mode models.Mode) (models.BoardState, error)
	StartGame(ctx context.Context) (models.BoardState, error)
	EndGame(ctx context.Context) (models.BoardState, error)
	SelectNumber(ctx context.Context, n int) (int, error)
	RollDice(ctx context.Context) (int, error)
	SetSetting(ctx context.Context, setting models.Setting, on bool) error
}

// Renderer draws a frame. Render is called from the session loop and must
// not block.
type Renderer interface {
	Render(page viewmodel.Page)
}

type Config struct {
	RequestTimeout time.Duration
	InboxSize      int
}

func DefaultConfig() Config {
	return Config{
		RequestTimeout: 5 * time.Second,
		InboxSize:      64,
	}
}

type Option func(*Session)

func WithRenderer(r Renderer) Option {
	return func(s *Session) {
		s.renderers = append(s.renderers, r)
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Session) {
		s.publisher = p
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

type Session struct {
	client    GameClient
	renderers []Renderer
	publisher events.Publisher
	clock     clockwork.Clock
	config    Config

	inbox chan Msg
	done  chan struct{}
	calls sync.WaitGroup

	// owned by the loop
	state  models.ClientState
	page   viewmodel.Page
	synced bool

	// onHandled observes every processed message, nil outside tests
	onHandled func(Msg)
}

func NewSession(client GameClient, cfg Config, opts ...Option) *Session {
	defaults := DefaultConfig()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = defaults.InboxSize
	}

	s := &Session{
		client:    client,
		publisher: events.NewLogPublisher(),
		clock:     clockwork.NewRealClock(),
		config:    cfg,
		inbox:     make(chan Msg, cfg.InboxSize),
		done:      make(chan struct{}),
		state:     models.NewClientState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.page = buildPage(s.state)

	return s
}

// Run processes the inbox until ctx is cancelled, then waits for
// outstanding game server calls to return.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		close(s.done)
		s.calls.Wait()
	}()

	s.render()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session stopped")
			return nil
		case msg := <-s.inbox:
			s.handle(ctx, msg)
			if s.onHandled != nil {
				s.onHandled(msg)
			}
		}
	}
}

// Submit hands a message to the loop. It blocks while the inbox is full and
// gives up once the session has stopped.
func (s *Session) Submit(msg Msg) error {
	if s.closed() {
		return ErrClosed
	}

	select {
	case s.inbox <- msg:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// OnBoard is the poller sink.
func (s *Session) OnBoard(b models.BoardState) {
	if err := s.Submit(BoardPolled{Board: b}); err != nil {
		log.Debug().Err(err).Msg("dropping polled board")
	}
}

func (s *Session) SetMode(mode models.Mode) error {
	return s.Submit(SetModeRequested{Mode: mode})
}

func (s *Session) ToggleGame() error {
	return s.Submit(ToggleGameRequested{})
}

func (s *Session) SelectNumber(n int) error {
	return s.Submit(SelectNumberRequested{Number: n})
}

func (s *Session) RollDice() error {
	return s.Submit(RollDiceRequested{})
}

func (s *Session) SetSetting(setting models.Setting, on bool) error {
	return s.Submit(SetSettingRequested{Setting: setting, On: on})
}

// View returns the current mirror and page.
func (s *Session) View(ctx context.Context) (View, error) {
	if s.closed() {
		return View{}, ErrClosed
	}
	reply := make(chan View, 1)

	select {
	case s.inbox <- GetView{Reply: reply}:
	case <-s.done:
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}

	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Page returns the current frame.
func (s *Session) Page(ctx context.Context) (viewmodel.Page, error) {
	v, err := s.View(ctx)
	if err != nil {
		return viewmodel.Page{}, err
	}
	return v.Page, nil
}

func (s *Session) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func buildPage(state models.ClientState) viewmodel.Page {
	return viewmodel.Page{
		Board:          board.Build(state.Board, state.SelectedNumber),
		Controls:       reconcile.Controls(state),
		GameStarted:    state.GameStarted,
		SelectedNumber: state.SelectedNumber,
	}
}

func (s *Session) render() {
	for _, r := range s.renderers {
		r.Render(s.page.Clone())
	}
}
