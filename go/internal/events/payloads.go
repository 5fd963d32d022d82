package events

import (
	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

// NumberSelectedPayload is the payload for a NumberSelected event
type NumberSelectedPayload struct {
	Number   int  `json:"number"`
	Previous int  `json:"previous"`
	Robber   bool `json:"robber"`
}

// GameStartedPayload is the payload for a GameStarted event
type GameStartedPayload struct {
	Mode       models.Mode `json:"mode"`
	ManualDice bool        `json:"manual_dice"`
	Hexes      int         `json:"hexes"`
}

// GameEndedPayload is the payload for a GameEnded event
type GameEndedPayload struct {
	Mode       models.Mode `json:"mode"`
	LastNumber int         `json:"last_number"`
}

// ModeChangedPayload is the payload for a ModeChanged event
type ModeChangedPayload struct {
	From models.Mode `json:"from"`
	To   models.Mode `json:"to"`
}

// BoardUpdatedPayload carries the full page pushed to viewers
type BoardUpdatedPayload struct {
	Page viewmodel.Page `json:"page"`
}
