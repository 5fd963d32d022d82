package catan_client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
)

// GetBoard fetches the current board state.
func (c *CatanClient) GetBoard(ctx context.Context) (models.BoardState, error) {
	return c.getBoardState(ctx, GetBoardEndpoint)
}

// SetMode asks the server to switch to (or reshuffle) the given board mode.
// The returned state tells whether the server actually applied it.
func (c *CatanClient) SetMode(ctx context.Context, mode models.Mode) (models.BoardState, error) {
	switch mode {
	case models.ModeClassic:
		return c.getBoardState(ctx, SetClassicEndpoint)
	case models.ModeExtension:
		return c.getBoardState(ctx, SetExtensionEndpoint)
	default:
		return models.BoardState{}, fmt.Errorf("%w: %q", models.ErrUnknownMode, mode)
	}
}

// StartGame begins a game session.
func (c *CatanClient) StartGame(ctx context.Context) (models.BoardState, error) {
	return c.getBoardState(ctx, StartGameEndpoint)
}

// EndGame ends the running game session.
func (c *CatanClient) EndGame(ctx context.Context) (models.BoardState, error) {
	return c.getBoardState(ctx, EndGameEndpoint)
}

func (c *CatanClient) getBoardState(ctx context.Context, endpoint string) (models.BoardState, error) {
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return models.BoardState{}, fmt.Errorf("failed to get %s: %w", endpoint, err)
	}

	var state models.BoardState
	if err := json.Unmarshal(body, &state); err != nil {
		return models.BoardState{}, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return state, nil
}
