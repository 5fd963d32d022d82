package session

import (
	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

// Msg is anything the session loop consumes from its inbox.
type Msg interface{ isSessionMsg() }

// BoardPolled carries a board fetched by the poller.
type BoardPolled struct {
	Board models.BoardState
}

func (BoardPolled) isSessionMsg() {}

// Player requests.

type SetModeRequested struct {
	Mode models.Mode
}

func (SetModeRequested) isSessionMsg() {}

type ToggleGameRequested struct{}

func (ToggleGameRequested) isSessionMsg() {}

type SelectNumberRequested struct {
	Number int
}

func (SelectNumberRequested) isSessionMsg() {}

type RollDiceRequested struct{}

func (RollDiceRequested) isSessionMsg() {}

type SetSettingRequested struct {
	Setting models.Setting
	On      bool
}

func (SetSettingRequested) isSessionMsg() {}

// Game server replies, only sent when the request succeeded.

type ModeReplied struct {
	Mode  models.Mode
	Board models.BoardState
}

func (ModeReplied) isSessionMsg() {}

type GameReplied struct {
	Board models.BoardState
}

func (GameReplied) isSessionMsg() {}

type NumberReplied struct {
	Number int
}

func (NumberReplied) isSessionMsg() {}

type SettingApplied struct {
	Setting models.Setting
	On      bool
}

func (SettingApplied) isSessionMsg() {}

// GetView asks the loop for a race-free copy of its state.
type GetView struct {
	Reply chan View
}

func (GetView) isSessionMsg() {}

type View struct {
	State models.ClientState
	Page  viewmodel.Page
}
