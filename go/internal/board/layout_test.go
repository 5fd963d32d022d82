package board

import (
	"testing"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
	"github.com/Shabbypenguin/smart-catan/go/internal/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullBoard returns a board of n hexes cycling through the non-desert
// resources with tokens 2..12 skipping 7.
func fullBoard(n int, extension bool) models.BoardState {
	tokens := []int{2, 3, 4, 5, 6, 8, 9, 10, 11, 12}
	state := models.BoardState{Extension: extension}
	for i := 0; i < n; i++ {
		state.Resources = append(state.Resources, models.Resource(i%5))
		state.Numbers = append(state.Numbers, tokens[i%len(tokens)])
	}
	return state
}

func TestBuild_RowShapes(t *testing.T) {
	t.Run("classic board has five rows of 3-4-5-4-3", func(t *testing.T) {
		b := Build(fullBoard(19, false), 0)

		assert.Equal(t, []int{3, 4, 5, 4, 3}, b.RowSizes())
		assert.Equal(t, 19, b.CellCount())
		assert.False(t, b.Extension)
	})

	t.Run("extension board has six rows of 4-5-6-6-5-4", func(t *testing.T) {
		b := Build(fullBoard(30, true), 0)

		assert.Equal(t, []int{4, 5, 6, 6, 5, 4}, b.RowSizes())
		assert.Equal(t, 30, b.CellCount())
		assert.True(t, b.Extension)
	})

	t.Run("surplus hexes are truncated", func(t *testing.T) {
		b := Build(fullBoard(30, false), 0)

		assert.Equal(t, []int{3, 4, 5, 4, 3}, b.RowSizes())
		assert.Equal(t, 19, b.CellCount())
		last := b.Rows[len(b.Rows)-1].Cells
		assert.Equal(t, 18, last[len(last)-1].Index)
	})

	t.Run("short arrays stop the walk early", func(t *testing.T) {
		b := Build(fullBoard(9, true), 0)

		assert.Equal(t, []int{4, 5, 0, 0, 0, 0}, b.RowSizes())
		assert.Equal(t, 9, b.CellCount())
	})

	t.Run("missing numbers become zero tokens", func(t *testing.T) {
		state := models.BoardState{
			Resources: []models.Resource{models.ResourceOre, models.ResourceOre},
			Numbers:   []int{5},
		}

		b := Build(state, 0)

		require.Len(t, b.Rows[0].Cells, 2)
		assert.Equal(t, 0, b.Rows[0].Cells[1].Token)
	})
}

func TestBuild_Offsets(t *testing.T) {
	classic := Build(fullBoard(19, false), 0)
	for _, row := range classic.Rows {
		assert.Equal(t, viewmodel.OffsetNone, row.Offset)
	}

	extension := Build(fullBoard(30, true), 0)
	want := []viewmodel.Offset{
		viewmodel.OffsetLeft, viewmodel.OffsetLeft, viewmodel.OffsetLeft,
		viewmodel.OffsetRight, viewmodel.OffsetRight, viewmodel.OffsetRight,
	}
	for i, row := range extension.Rows {
		assert.Equal(t, want[i], row.Offset, "row %d", i)
	}
}

func TestBuild_DesertShowsPlaceholder(t *testing.T) {
	state := models.BoardState{
		Resources: []models.Resource{models.ResourceDesert, models.ResourceDesert},
		Numbers:   []int{0, 8},
	}

	b := Build(state, 8)

	for _, cell := range b.Rows[0].Cells {
		assert.Equal(t, viewmodel.DesertLabel, cell.Label)
		assert.Equal(t, "desert", cell.Class)
		assert.False(t, cell.Active)
	}
}

func TestBuild_Scenario(t *testing.T) {
	// Given: a three hex classic board with a desert and two sixes
	state := models.BoardState{
		Resources:      []models.Resource{5, 0, 1},
		Numbers:        []int{0, 6, 6},
		Extension:      false,
		SelectedNumber: 6,
	}

	// When: the board is laid out for the selected number
	b := Build(state, state.SelectedNumber)

	// Then: one row of three with both sixes highlighted
	require.Equal(t, []int{3, 0, 0, 0, 0}, b.RowSizes())
	cells := b.Rows[0].Cells
	assert.Equal(t, viewmodel.Cell{Index: 0, Resource: 5, Class: "desert", Token: 0, Label: "--", Active: false}, cells[0])
	assert.Equal(t, viewmodel.Cell{Index: 1, Resource: 0, Class: "sheep", Token: 6, Label: "6", Active: true}, cells[1])
	assert.Equal(t, viewmodel.Cell{Index: 2, Resource: 1, Class: "wood", Token: 6, Label: "6", Active: true}, cells[2])
}

func TestHighlight(t *testing.T) {
	b := Build(fullBoard(19, false), 0)

	for _, selected := range []int{2, 3, 4, 5, 6, 8, 9, 10, 11, 12} {
		Highlight(&b, selected)

		for _, row := range b.Rows {
			for _, cell := range row.Cells {
				assert.Equal(t, cell.Token == selected, cell.Active, "selected %d token %d", selected, cell.Token)
			}
		}
	}

	t.Run("seven lights up every hex including the desert", func(t *testing.T) {
		state := fullBoard(18, false)
		state.Resources = append(state.Resources, models.ResourceDesert)
		state.Numbers = append(state.Numbers, 0)
		b := Build(state, 0)

		Highlight(&b, models.RobberNumber)

		for _, row := range b.Rows {
			for _, cell := range row.Cells {
				assert.True(t, cell.Active)
			}
		}
	})

	t.Run("nothing selected clears every hex", func(t *testing.T) {
		b := Build(fullBoard(19, false), 7)

		Highlight(&b, 0)

		for _, row := range b.Rows {
			for _, cell := range row.Cells {
				assert.False(t, cell.Active)
			}
		}
	})
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, 19, Capacity(false))
	assert.Equal(t, 30, Capacity(true))
}

func TestRowSizes_ReturnsCopy(t *testing.T) {
	rows := RowSizes(false)
	rows[0] = 99

	assert.Equal(t, []int{3, 4, 5, 4, 3}, RowSizes(false))
}
