package catan_client

import (
	"errors"
	"time"

	"github.com/Shabbypenguin/smart-catan/go/clients"
)

// ErrInvalidNumber is returned when a dice endpoint echoes something that is
// not an integer.
var ErrInvalidNumber = errors.New("invalid number in server response")

type CatanClient struct {
	*clients.BaseClient
}

func NewCatanClient(baseURL string, timeout time.Duration) *CatanClient {
	client := &CatanClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(AcceptHeader, JsonContentType)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return client
}
