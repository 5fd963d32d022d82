package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_Class(t *testing.T) {
	cases := map[Resource]string{
		ResourceSheep:  "sheep",
		ResourceWood:   "wood",
		ResourceWheat:  "wheat",
		ResourceBrick:  "brick",
		ResourceOre:    "ore",
		ResourceDesert: "desert",
		Resource(9):    "",
	}
	for resource, class := range cases {
		assert.Equal(t, class, resource.Class(), "resource %d", resource)
	}
}

func TestBoardState_DecodesServerPayload(t *testing.T) {
	payload := `{
		"resources": [5, 0, 1],
		"numbers": [0, 6, 8],
		"extension": true,
		"gameStarted": true,
		"selectedNumber": 8,
		"manualDice": false,
		"eightSixCanTouch": true,
		"twoTwelveCanTouch": false,
		"sameNumbersCanTouch": true,
		"sameResourceCanTouch": false
	}`

	var board BoardState
	require.NoError(t, json.Unmarshal([]byte(payload), &board))

	assert.Equal(t, []Resource{ResourceDesert, ResourceSheep, ResourceWood}, board.Resources)
	assert.Equal(t, []int{0, 6, 8}, board.Numbers)
	assert.Equal(t, ModeExtension, board.Mode())
	assert.True(t, board.GameStarted)
	assert.Equal(t, 8, board.SelectedNumber)
	assert.Equal(t, Settings{
		SettingEightSixCanTouch:     true,
		SettingTwoTwelveCanTouch:    false,
		SettingSameNumbersCanTouch:  true,
		SettingSameResourceCanTouch: false,
		SettingManualDice:           false,
	}, SettingsOf(board))
}

func TestBoardState_TokenAt(t *testing.T) {
	board := BoardState{Numbers: []int{4, 9}}

	assert.Equal(t, 4, board.TokenAt(0))
	assert.Equal(t, 9, board.TokenAt(1))
	assert.Equal(t, 0, board.TokenAt(2))
	assert.Equal(t, 0, board.TokenAt(-1))
}

func TestParseSetting(t *testing.T) {
	for _, s := range AllSettings {
		got, err := ParseSetting(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.NotEmpty(t, got.Label())
	}

	_, err := ParseSetting("robberCanMove")
	assert.ErrorIs(t, err, ErrUnknownSetting)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("extension")
	require.NoError(t, err)
	assert.True(t, mode.IsExtension())

	_, err = ParseMode("seafarers")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestClientState_WithSettingDoesNotAlias(t *testing.T) {
	original := FromBoard(BoardState{ManualDice: true})

	updated := original.WithSetting(SettingManualDice, false)

	assert.True(t, original.ManualDice())
	assert.False(t, updated.ManualDice())
}
