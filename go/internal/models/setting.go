package models

// Setting is one of the boolean game options the player can toggle before a
// game starts. The value doubles as the game server endpoint name.
type Setting string

const (
	SettingEightSixCanTouch     Setting = "eightSixCanTouch"
	SettingTwoTwelveCanTouch    Setting = "twoTwelveCanTouch"
	SettingSameNumbersCanTouch  Setting = "sameNumbersCanTouch"
	SettingSameResourceCanTouch Setting = "sameResourceCanTouch"
	SettingManualDice           Setting = "manualDice"
)

// AllSettings lists the settings in the order they appear in the settings panel.
var AllSettings = []Setting{
	SettingEightSixCanTouch,
	SettingTwoTwelveCanTouch,
	SettingSameNumbersCanTouch,
	SettingSameResourceCanTouch,
	SettingManualDice,
}

var settingLabels = map[Setting]string{
	SettingEightSixCanTouch:     "6 & 8 can touch",
	SettingTwoTwelveCanTouch:    "2 & 12 can touch",
	SettingSameNumbersCanTouch:  "Same numbers can touch",
	SettingSameResourceCanTouch: "Same resource can touch",
	SettingManualDice:           "Manual dice",
}

// ParseSetting validates a setting name.
func ParseSetting(s string) (Setting, error) {
	setting := Setting(s)
	if _, ok := settingLabels[setting]; !ok {
		return "", ErrUnknownSetting
	}
	return setting, nil
}

// Label returns the human readable name of the setting.
func (s Setting) Label() string {
	return settingLabels[s]
}

// Settings holds the checked state of every toggle.
type Settings map[Setting]bool

// SettingsOf extracts the toggles from a board snapshot.
func SettingsOf(b BoardState) Settings {
	return Settings{
		SettingEightSixCanTouch:     b.EightSixCanTouch,
		SettingTwoTwelveCanTouch:    b.TwoTwelveCanTouch,
		SettingSameNumbersCanTouch:  b.SameNumbersCanTouch,
		SettingSameResourceCanTouch: b.SameResourceCanTouch,
		SettingManualDice:           b.ManualDice,
	}
}
