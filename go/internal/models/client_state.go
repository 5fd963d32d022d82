package models

// ClientState is the local mirror of the game server state. It has no
// lifecycle of its own: every successful poll replaces it wholesale.
type ClientState struct {
	GameStarted    bool
	Extension      bool
	SelectedNumber int
	Settings       Settings
	Board          BoardState
}

// NewClientState returns the mirror shown before the first poll completes.
func NewClientState() ClientState {
	return ClientState{Settings: Settings{}}
}

// FromBoard builds the mirror for a server snapshot.
func FromBoard(b BoardState) ClientState {
	return ClientState{
		GameStarted:    b.GameStarted,
		Extension:      b.Extension,
		SelectedNumber: b.SelectedNumber,
		Settings:       SettingsOf(b),
		Board:          b,
	}
}

// ManualDice reports whether the player picks numbers on the keypad.
func (s ClientState) ManualDice() bool {
	return s.Settings[SettingManualDice]
}

// Mode returns the mirrored board mode.
func (s ClientState) Mode() Mode {
	return ModeOf(s.Extension)
}

// WithSetting returns a copy of the mirror with one toggle set.
func (s ClientState) WithSetting(setting Setting, on bool) ClientState {
	next := make(Settings, len(s.Settings)+1)
	for k, v := range s.Settings {
		next[k] = v
	}
	next[setting] = on
	s.Settings = next
	return s
}
