package terminal

import (
	"github.com/nsf/termbox-go"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

// Actions is what a key press can trigger.
type Actions interface {
	SetMode(mode models.Mode) error
	ToggleGame() error
	SelectNumber(n int) error
	RollDice() error
	SetSetting(setting models.Setting, on bool) error
}

type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandClassic
	CommandExtension
	CommandToggleGame
	CommandRoll
	CommandNumber
	CommandSetting
)

type Input struct {
	Command Command
	Number  int
	Setting models.Setting
}

// 0, - and = stand in for the two-digit totals.
var numberKeys = map[rune]int{
	'2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
	'0': 10, '-': 11, '=': 12,
}

var settingKeys = map[termbox.Key]int{
	termbox.KeyF1: 0,
	termbox.KeyF2: 1,
	termbox.KeyF3: 2,
	termbox.KeyF4: 3,
	termbox.KeyF5: 4,
}

// Decode maps a terminal event to a command.
func Decode(ev termbox.Event) (Input, bool) {
	if ev.Type != termbox.EventKey {
		return Input{}, false
	}

	if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
		return Input{Command: CommandQuit}, true
	}
	if i, ok := settingKeys[ev.Key]; ok && i < len(models.AllSettings) {
		return Input{Command: CommandSetting, Setting: models.AllSettings[i]}, true
	}

	switch ev.Ch {
	case 'q', 'Q':
		return Input{Command: CommandQuit}, true
	case 'c', 'C':
		return Input{Command: CommandClassic}, true
	case 'e', 'E':
		return Input{Command: CommandExtension}, true
	case 's', 'S':
		return Input{Command: CommandToggleGame}, true
	case 'r', 'R':
		return Input{Command: CommandRoll}, true
	}
	if n, ok := numberKeys[ev.Ch]; ok {
		return Input{Command: CommandNumber, Number: n}, true
	}

	return Input{}, false
}

// Execute runs the command. Settings flip relative to the checkbox shown in
// the current frame.
func Execute(in Input, page viewmodel.Page, actions Actions) error {
	switch in.Command {
	case CommandClassic:
		return actions.SetMode(models.ModeClassic)
	case CommandExtension:
		return actions.SetMode(models.ModeExtension)
	case CommandToggleGame:
		return actions.ToggleGame()
	case CommandRoll:
		return actions.RollDice()
	case CommandNumber:
		return actions.SelectNumber(in.Number)
	case CommandSetting:
		return actions.SetSetting(in.Setting, !checked(page, in.Setting))
	}
	return nil
}

func checked(page viewmodel.Page, setting models.Setting) bool {
	for _, cb := range page.Controls.Settings {
		if cb.Name == string(setting) {
			return cb.Checked
		}
	}
	return false
}
