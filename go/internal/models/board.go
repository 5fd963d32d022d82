package models

// Resource identifies the terrain of a hex as encoded by the game server.
type Resource int

const (
	ResourceSheep  Resource = 0
	ResourceWood   Resource = 1
	ResourceWheat  Resource = 2
	ResourceBrick  Resource = 3
	ResourceOre    Resource = 4
	ResourceDesert Resource = 5
)

// Class returns the CSS class used to color a hex of this resource.
// Unknown resources map to the empty class.
func (r Resource) Class() string {
	switch r {
	case ResourceSheep:
		return "sheep"
	case ResourceWood:
		return "wood"
	case ResourceWheat:
		return "wheat"
	case ResourceBrick:
		return "brick"
	case ResourceOre:
		return "ore"
	case ResourceDesert:
		return "desert"
	default:
		return ""
	}
}

func (r Resource) IsDesert() bool {
	return r == ResourceDesert
}

// Mode is the board size variant.
type Mode string

const (
	ModeClassic   Mode = "classic"
	ModeExtension Mode = "extension"
)

// ModeOf returns the mode implied by an extension flag.
func ModeOf(extension bool) Mode {
	if extension {
		return ModeExtension
	}
	return ModeClassic
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeClassic, ModeExtension:
		return Mode(s), nil
	default:
		return "", ErrUnknownMode
	}
}

// IsExtension reports whether the mode is the 30-hex board.
func (m Mode) IsExtension() bool {
	return m == ModeExtension
}

// RobberNumber is the dice total that highlights the whole board.
const RobberNumber = 7

// BoardState is the snapshot returned by the game server on every poll and
// by the mode and game endpoints.
type BoardState struct {
	Resources            []Resource `json:"resources"`
	Numbers              []int      `json:"numbers"`
	Extension            bool       `json:"extension"`
	GameStarted          bool       `json:"gameStarted"`
	SelectedNumber       int        `json:"selectedNumber"`
	ManualDice           bool       `json:"manualDice"`
	EightSixCanTouch     bool       `json:"eightSixCanTouch"`
	TwoTwelveCanTouch    bool       `json:"twoTwelveCanTouch"`
	SameNumbersCanTouch  bool       `json:"sameNumbersCanTouch"`
	SameResourceCanTouch bool       `json:"sameResourceCanTouch"`
}

// Mode returns the board mode of the snapshot.
func (b BoardState) Mode() Mode {
	return ModeOf(b.Extension)
}

// TokenAt returns the number token of hex i, or 0 when the server sent fewer
// numbers than resources.
func (b BoardState) TokenAt(i int) int {
	if i < 0 || i >= len(b.Numbers) {
		return 0
	}
	return b.Numbers[i]
}
