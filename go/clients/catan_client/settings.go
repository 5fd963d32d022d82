package catan_client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Shabbypenguin/smart-catan/go/internal/models"
)

// SetSetting toggles one game option. The response body carries nothing useful
// and is discarded.
func (c *CatanClient) SetSetting(ctx context.Context, setting models.Setting, on bool) error {
	if _, err := models.ParseSetting(string(setting)); err != nil {
		return fmt.Errorf("%w: %q", err, setting)
	}

	value := "0"
	if on {
		value = "1"
	}
	endpoint := fmt.Sprintf("/%s?%s", setting, url.Values{ValueParam: {value}}.Encode())

	if _, err := c.Get(ctx, endpoint); err != nil {
		return fmt.Errorf("failed to set %s: %w", setting, err)
	}

	return nil
}
