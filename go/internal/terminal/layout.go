// Package terminal draws the board in a termbox terminal and maps keys to
// player actions.
package terminal

import (
	"fmt"
	"strings"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

// Kind tells the screen how to color a span.
type Kind int

const (
	KindText Kind = iota
	KindHeader
	KindHex
	KindControl
	KindDisabled
	KindActive
)

type Span struct {
	Text   string
	Kind   Kind
	Class  string // resource class, hexes only
	Active bool
}

type Line []Span

func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

const (
	margin    = 2
	cellWidth = 8 // "[Sh  6] "
	rowShift  = 2
)

var classAbbr = map[string]string{
	"sheep":  "Sh",
	"wood":   "Wo",
	"wheat":  "Wh",
	"brick":  "Br",
	"ore":    "Or",
	"desert": "De",
}

// Lines lays a frame out as styled text, top to bottom.
func Lines(page viewmodel.Page) []Line {
	lines := []Line{header(page), {}}
	lines = append(lines, boardLines(page.Board)...)
	lines = append(lines, Line{}, controlLine(page.Controls))

	if page.Controls.Keypad.Visible {
		lines = append(lines, keypadLine(page.Controls.Keypad))
	}

	lines = append(lines, Line{}, Line{{Text: "Settings", Kind: KindHeader}})
	for i, cb := range page.Controls.Settings {
		lines = append(lines, settingLine(i, cb))
	}

	lines = append(lines, Line{}, Line{{Text: "[q] quit", Kind: KindText}})
	return lines
}

func header(page viewmodel.Page) Line {
	status := "waiting"
	if page.GameStarted {
		status = "running"
	}
	number := "-"
	if page.SelectedNumber > 0 {
		number = fmt.Sprint(page.SelectedNumber)
	}

	return Line{{
		Text: fmt.Sprintf("Catan  game: %s  mode: %s  number: %s", status, models.ModeOf(page.Board.Extension), number),
		Kind: KindHeader,
	}}
}

func boardLines(b viewmodel.Board) []Line {
	widest := 0
	for _, row := range b.Rows {
		if len(row.Cells) > widest {
			widest = len(row.Cells)
		}
	}

	lines := make([]Line, 0, len(b.Rows))
	for _, row := range b.Rows {
		if len(row.Cells) == 0 {
			continue
		}

		indent := margin + (widest-len(row.Cells))*cellWidth/2
		switch row.Offset {
		case viewmodel.OffsetLeft:
			indent -= rowShift
		case viewmodel.OffsetRight:
			indent += rowShift
		}

		line := Line{{Text: strings.Repeat(" ", indent)}}
		for _, cell := range row.Cells {
			line = append(line,
				Span{Text: cellText(cell), Kind: KindHex, Class: cell.Class, Active: cell.Active},
				Span{Text: " "},
			)
		}
		lines = append(lines, line)
	}
	return lines
}

func cellText(cell viewmodel.Cell) string {
	abbr, ok := classAbbr[cell.Class]
	if !ok {
		abbr = "??"
	}
	return fmt.Sprintf("[%s%3s]", abbr, cell.Label)
}

func controlLine(c viewmodel.Controls) Line {
	var line Line
	add := func(key string, b viewmodel.Button) {
		if !b.Visible {
			return
		}
		kind := KindControl
		if b.Disabled {
			kind = KindDisabled
		}
		line = append(line, Span{Text: fmt.Sprintf("[%s] %s", key, b.Label), Kind: kind}, Span{Text: "  "})
	}

	add("c", c.Classic)
	add("e", c.Extension)
	add("s", c.StartStop)
	add("r", c.Dice)
	return line
}

func keypadLine(k viewmodel.Keypad) Line {
	line := Line{{Text: "Number: "}}
	for _, key := range k.Keys {
		text := fmt.Sprint(key.Number)
		if key.Big {
			text = "[" + text + "]"
		}
		kind := KindControl
		if key.Active {
			kind = KindActive
		}
		line = append(line, Span{Text: text, Kind: kind, Active: key.Active}, Span{Text: " "})
	}
	return line
}

func settingLine(i int, cb viewmodel.Checkbox) Line {
	mark := " "
	if cb.Checked {
		mark = "x"
	}
	kind := KindControl
	if cb.Disabled {
		kind = KindDisabled
	}
	return Line{{Text: fmt.Sprintf("[F%d] [%s] %s", i+1, mark, cb.Label), Kind: kind}}
}
