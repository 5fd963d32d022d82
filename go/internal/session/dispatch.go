package session

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Shabbypenguin/smart-catan/go/internal/board"
	"github.com/Shabbypenguin/smart-catan/go/internal/events"
	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/reconcile"
)

func (s *Session) handle(ctx context.Context, m Msg) {
	switch msg := m.(type) {
	case BoardPolled:
		s.applyBoard(ctx, msg.Board)

	case SetModeRequested:
		if !s.allowed(reconcile.ActionSetMode) {
			return
		}
		s.call(ctx, "set_mode", func(ctx context.Context) (Msg, error) {
			b, err := s.client.SetMode(ctx, msg.Mode)
			return ModeReplied{Mode: msg.Mode, Board: b}, err
		})

	case ModeReplied:
		if msg.Board.Extension != msg.Mode.IsExtension() {
			log.Info().
				Str("requested", string(msg.Mode)).
				Str("reply", string(msg.Board.Mode())).
				Msg("game server kept the previous mode")
			return
		}
		s.applyBoard(ctx, msg.Board)

	case ToggleGameRequested:
		if s.state.GameStarted {
			s.call(ctx, "end_game", func(ctx context.Context) (Msg, error) {
				b, err := s.client.EndGame(ctx)
				return GameReplied{Board: b}, err
			})
			return
		}
		s.call(ctx, "start_game", func(ctx context.Context) (Msg, error) {
			b, err := s.client.StartGame(ctx)
			return GameReplied{Board: b}, err
		})

	case GameReplied:
		s.applyBoard(ctx, msg.Board)

	case SelectNumberRequested:
		if !s.allowed(reconcile.ActionSelectNumber) {
			return
		}
		s.call(ctx, "select_number", func(ctx context.Context) (Msg, error) {
			n, err := s.client.SelectNumber(ctx, msg.Number)
			return NumberReplied{Number: n}, err
		})

	case RollDiceRequested:
		if !s.allowed(reconcile.ActionRollDice) {
			return
		}
		s.call(ctx, "roll_dice", func(ctx context.Context) (Msg, error) {
			n, err := s.client.RollDice(ctx)
			return NumberReplied{Number: n}, err
		})

	case NumberReplied:
		s.applyNumber(ctx, msg.Number)

	case SetSettingRequested:
		if !s.allowed(reconcile.ActionSetSetting) {
			return
		}
		s.call(ctx, "set_setting", func(ctx context.Context) (Msg, error) {
			err := s.client.SetSetting(ctx, msg.Setting, msg.On)
			return SettingApplied{Setting: msg.Setting, On: msg.On}, err
		})

	case SettingApplied:
		s.state = s.state.WithSetting(msg.Setting, msg.On)
		s.page.Controls = reconcile.Controls(s.state)
		s.render()

	case GetView:
		msg.Reply <- View{State: s.state, Page: s.page.Clone()}
	}
}

func (s *Session) allowed(action reconcile.Action) bool {
	if reconcile.Allowed(s.state, action) {
		return true
	}
	log.Warn().
		Str("action", string(action)).
		Bool("game_started", s.state.GameStarted).
		Bool("manual_dice", s.state.ManualDice()).
		Msg("control disabled, dropping action")
	return false
}

// call runs a game server request off the loop and feeds the reply back in.
// Failures are logged only; the next poll brings the mirror back in line.
func (s *Session) call(ctx context.Context, name string, fn func(ctx context.Context) (Msg, error)) {
	s.calls.Add(1)
	go func() {
		defer s.calls.Done()

		reqCtx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()

		reply, err := fn(reqCtx)
		if err != nil {
			log.Error().Err(err).Str("action", name).Msg("game server request failed")
			return
		}

		select {
		case s.inbox <- reply:
		case <-ctx.Done():
		}
	}()
}

// applyBoard replaces the mirror wholesale and rebuilds the page.
func (s *Session) applyBoard(ctx context.Context, b models.BoardState) {
	prev := s.state
	s.state = models.FromBoard(b)
	s.page = buildPage(s.state)
	s.publish(ctx, prev)
	s.synced = true
	s.render()
}

// applyNumber only moves the highlight, the layout is left alone.
func (s *Session) applyNumber(ctx context.Context, n int) {
	prev := s.state
	s.state.SelectedNumber = n
	board.Highlight(&s.page.Board, n)
	s.page.Controls.Keypad = reconcile.Keypad(n, s.page.Controls.Keypad.Visible)
	s.page.SelectedNumber = n
	s.publish(ctx, prev)
	s.render()
}

func (s *Session) publish(ctx context.Context, prev models.ClientState) {
	if !s.synced {
		return
	}

	evts, err := events.Diff(prev, s.state, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to build board events")
		return
	}

	for _, event := range evts {
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.Error().Err(err).
				Str("event_id", event.ID).
				Str("event_type", string(event.Type)).
				Msg("failed to publish board event")
		}
	}
}
