// Package viewmodel holds the toolkit-free representation of the board display.
// Renderers (web, terminal) only ever see these types.
package viewmodel

// DesertLabel is shown on desert hexes instead of a number token.
const DesertLabel = "--"

// Offset shifts a row sideways to approximate the extended hex layout.
type Offset string

const (
	OffsetNone  Offset = ""
	OffsetLeft  Offset = "left"
	OffsetRight Offset = "right"
)

// Cell is a single hex.
type Cell struct {
	Index    int    `json:"index"`
	Resource int    `json:"resource"`
	Class    string `json:"class"`
	Token    int    `json:"token"`
	Label    string `json:"label"`
	Active   bool   `json:"active"`
}

// Row is one horizontal line of hexes.
type Row struct {
	Offset Offset `json:"offset,omitempty"`
	Cells  []Cell `json:"cells"`
}

// Board is the laid out grid.
type Board struct {
	Extension bool  `json:"extension"`
	Rows      []Row `json:"rows"`
}

// CellCount returns the number of hexes across all rows.
func (b Board) CellCount() int {
	n := 0
	for _, row := range b.Rows {
		n += len(row.Cells)
	}
	return n
}

// RowSizes returns the length of each row.
func (b Board) RowSizes() []int {
	sizes := make([]int, len(b.Rows))
	for i, row := range b.Rows {
		sizes[i] = len(row.Cells)
	}
	return sizes
}

// Button is a clickable control.
type Button struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Visible  bool   `json:"visible"`
}

// Checkbox is one settings toggle.
type Checkbox struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Checked  bool   `json:"checked"`
	Disabled bool   `json:"disabled"`
}

// KeypadKey is a number on the manual dice keypad.
type KeypadKey struct {
	Number int  `json:"number"`
	Active bool `json:"active"`
	Big    bool `json:"big,omitempty"`
}

// Keypad is the manual number selection pad.
type Keypad struct {
	Visible bool        `json:"visible"`
	Keys    []KeypadKey `json:"keys"`
}

// Controls is the state of every interactive element around the board.
type Controls struct {
	Classic      Button     `json:"classic"`
	Extension    Button     `json:"extension"`
	OpenSettings Button     `json:"openSettings"`
	StartStop    Button     `json:"startStop"`
	Dice         Button     `json:"dice"`
	Settings     []Checkbox `json:"settings"`
	Keypad       Keypad     `json:"keypad"`
}

// Page is everything a renderer needs to draw one frame.
type Page struct {
	Board          Board    `json:"board"`
	Controls       Controls `json:"controls"`
	GameStarted    bool     `json:"gameStarted"`
	SelectedNumber int      `json:"selectedNumber"`
}

// Clone returns a deep copy so a renderer can hold on to a frame while the
// session keeps mutating its own.
func (p Page) Clone() Page {
	out := p

	out.Board.Rows = make([]Row, len(p.Board.Rows))
	for i, row := range p.Board.Rows {
		out.Board.Rows[i] = Row{
			Offset: row.Offset,
			Cells:  append([]Cell(nil), row.Cells...),
		}
	}
	out.Controls.Settings = append([]Checkbox(nil), p.Controls.Settings...)
	out.Controls.Keypad.Keys = append([]KeypadKey(nil), p.Controls.Keypad.Keys...)

	return out
}
