// Package board lays the flat resource/number arrays sent by the game server
// out into hex rows and decides which hexes are highlighted.
package board

import (
	"strconv"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
)

var (
	classicRows   = []int{3, 4, 5, 4, 3}
	extensionRows = []int{4, 5, 6, 6, 5, 4}
)

// RowSizes returns the row shape for a board mode.
func RowSizes(extension bool) []int {
	rows := classicRows
	if extension {
		rows = extensionRows
	}
	out := make([]int, len(rows))
	copy(out, rows)
	return out
}

// Capacity returns the number of hexes a board of this mode holds.
func Capacity(extension bool) int {
	total := 0
	for _, n := range RowSizes(extension) {
		total += n
	}
	return total
}

// Build lays out a board snapshot. Hexes are assigned row-major; entries beyond
// the layout's capacity are dropped and the walk stops early if the server sent
// fewer hexes than the layout holds.
func Build(state models.BoardState, selected int) viewmodel.Board {
	sizes := RowSizes(state.Extension)
	out := viewmodel.Board{
		Extension: state.Extension,
		Rows:      make([]viewmodel.Row, 0, len(sizes)),
	}

	hexIndex := 0
	for row, size := range sizes {
		r := viewmodel.Row{
			Offset: rowOffset(state.Extension, row, len(sizes)),
			Cells:  make([]viewmodel.Cell, 0, size),
		}
		for col := 0; col < size && hexIndex < len(state.Resources); col++ {
			r.Cells = append(r.Cells, buildCell(state, hexIndex, selected))
			hexIndex++
		}
		out.Rows = append(out.Rows, r)
	}

	return out
}

// Highlight recomputes the active flag of every hex for a new selected number
// without rebuilding the layout.
func Highlight(b *viewmodel.Board, selected int) {
	for r := range b.Rows {
		cells := b.Rows[r].Cells
		for c := range cells {
			cells[c].Active = IsActive(cells[c].Label, selected)
		}
	}
}

// IsActive is the highlight rule. A roll of 7 lights up the whole board;
// otherwise a hex is active when its label is the selected number. Desert
// hexes show no number so they only light up on 7.
func IsActive(label string, selected int) bool {
	if selected == models.RobberNumber {
		return true
	}
	if selected <= 0 {
		return false
	}
	return label == strconv.Itoa(selected)
}

func buildCell(state models.BoardState, i, selected int) viewmodel.Cell {
	resource := state.Resources[i]
	token := state.TokenAt(i)

	label := strconv.Itoa(token)
	if resource.IsDesert() {
		label = viewmodel.DesertLabel
	}

	return viewmodel.Cell{
		Index:    i,
		Resource: int(resource),
		Class:    resource.Class(),
		Token:    token,
		Label:    label,
		Active:   IsActive(label, selected),
	}
}

// rowOffset shifts the upper half of an extended board one way and the lower
// half the other.
func rowOffset(extension bool, row, rows int) viewmodel.Offset {
	if !extension {
		return viewmodel.OffsetNone
	}
	if row < rows/2 {
		return viewmodel.OffsetLeft
	}
	return viewmodel.OffsetRight
}
