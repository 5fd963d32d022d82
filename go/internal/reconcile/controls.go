// Package reconcile derives the state of every control around the board from
// the mirrored game state.
package reconcile

import (
	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

const (
	LabelClassic   = "Classic"
	LabelExtension = "Extension"
	LabelShuffle   = "Shuffle"
	LabelStartGame = "Start Game"
	LabelEndGame   = "End Game"
	LabelRollDice  = "Roll Dice"
	LabelSettings  = "Settings"
)

// keypadNumbers are the small keypad buttons; 7 gets its own big button.
var keypadNumbers = []int{2, 3, 4, 5, 6, 8, 9, 10, 11, 12}

// Controls reconciles every control with the mirrored state.
func Controls(state models.ClientState) viewmodel.Controls {
	running := state.GameStarted
	classicLabel, extensionLabel := ModeLabels(state.Extension)

	controls := viewmodel.Controls{
		Classic:      viewmodel.Button{Label: classicLabel, Disabled: running, Visible: true},
		Extension:    viewmodel.Button{Label: extensionLabel, Disabled: running, Visible: true},
		OpenSettings: viewmodel.Button{Label: LabelSettings, Disabled: running, Visible: true},
		StartStop:    viewmodel.Button{Label: LabelStartGame, Visible: true},
		Dice:         viewmodel.Button{Label: LabelRollDice, Visible: running},
		Settings:     make([]viewmodel.Checkbox, 0, len(models.AllSettings)),
		Keypad:       Keypad(state.SelectedNumber, running && state.ManualDice()),
	}
	if running {
		controls.StartStop.Label = LabelEndGame
	}

	for _, s := range models.AllSettings {
		controls.Settings = append(controls.Settings, viewmodel.Checkbox{
			Name:     string(s),
			Label:    s.Label(),
			Checked:  state.Settings[s],
			Disabled: running,
		})
	}

	return controls
}

// ModeLabels returns the classic and extension button labels. Each button
// names what pressing it does: the button for the current mode reshuffles,
// the other one switches mode.
func ModeLabels(extension bool) (classic, ext string) {
	if extension {
		return LabelClassic, LabelShuffle
	}
	return LabelShuffle, LabelExtension
}

// Keypad builds the number pad with the selected number highlighted.
func Keypad(selected int, visible bool) viewmodel.Keypad {
	keys := make([]viewmodel.KeypadKey, 0, len(keypadNumbers)+1)
	for _, n := range keypadNumbers {
		keys = append(keys, viewmodel.KeypadKey{Number: n, Active: n == selected})
	}
	keys = append(keys, viewmodel.KeypadKey{
		Number: models.RobberNumber,
		Active: selected == models.RobberNumber,
		Big:    true,
	})

	return viewmodel.Keypad{Visible: visible, Keys: keys}
}

// Allowed reports whether the control behind an action is enabled in the
// given state.
func Allowed(state models.ClientState, action Action) bool {
	switch action {
	case ActionSetMode, ActionSetSetting:
		return !state.GameStarted
	case ActionRollDice:
		return state.GameStarted
	case ActionSelectNumber:
		return state.GameStarted && state.ManualDice()
	case ActionToggleGame:
		return true
	default:
		return false
	}
}

// Action names a player action for enablement checks.
type Action string

const (
	ActionSetMode      Action = "set_mode"
	ActionToggleGame   Action = "toggle_game"
	ActionSelectNumber Action = "select_number"
	ActionRollDice     Action = "roll_dice"
	ActionSetSetting   Action = "set_setting"
)
