package catan_client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SelectNumber records a manually rolled number and returns the server's echo.
func (c *CatanClient) SelectNumber(ctx context.Context, n int) (int, error) {
	endpoint := fmt.Sprintf("%s?%s", SelectNumberEndpoint, url.Values{ValueParam: {strconv.Itoa(n)}}.Encode())
	return c.getNumber(ctx, endpoint)
}

// RollDice asks the server for a roll.
func (c *CatanClient) RollDice(ctx context.Context) (int, error) {
	return c.getNumber(ctx, RollDiceEndpoint)
}

func (c *CatanClient) getNumber(ctx context.Context, endpoint string) (int, error) {
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s: %w", endpoint, err)
	}

	return parseNumber(body)
}

func parseNumber(body []byte) (int, error) {
	raw := strings.TrimSpace(string(body))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return n, nil
}
