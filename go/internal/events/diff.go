package events

import (
	"time"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
)

// Diff returns the events implied by moving from prev to next, in the order
// mode, game lifecycle, number.
func Diff(prev, next models.ClientState, at time.Time) ([]Event, error) {
	var out []Event

	add := func(eventType EventType, payload interface{}) error {
		event, err := NewEvent(eventType, payload, at)
		if err != nil {
			return err
		}
		out = append(out, event)
		return nil
	}

	if prev.Extension != next.Extension {
		if err := add(EventTypeModeChanged, ModeChangedPayload{From: prev.Mode(), To: next.Mode()}); err != nil {
			return nil, err
		}
	}

	switch {
	case !prev.GameStarted && next.GameStarted:
		payload := GameStartedPayload{
			Mode:       next.Mode(),
			ManualDice: next.ManualDice(),
			Hexes:      len(next.Board.Resources),
		}
		if err := add(EventTypeGameStarted, payload); err != nil {
			return nil, err
		}
	case prev.GameStarted && !next.GameStarted:
		payload := GameEndedPayload{Mode: prev.Mode(), LastNumber: prev.SelectedNumber}
		if err := add(EventTypeGameEnded, payload); err != nil {
			return nil, err
		}
	}

	if next.SelectedNumber > 0 && next.SelectedNumber != prev.SelectedNumber {
		payload := NumberSelectedPayload{
			Number:   next.SelectedNumber,
			Previous: prev.SelectedNumber,
			Robber:   next.SelectedNumber == models.RobberNumber,
		}
		if err := add(EventTypeNumberSelected, payload); err != nil {
			return nil, err
		}
	}

	return out, nil
}
