package mocks

import (
	"context"

	"photo-sync/core/source"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of source.Client
type Client struct {
	mock.Mock
}

func (m *Client) FetchStream(ctx context.Context, baseURL string) ([]byte, error) {
	args := m.Called(ctx, baseURL)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) FetchAssetURLs(ctx context.Context, baseURL string, guids []string) ([]source.AssetCandidate, error) {
	args := m.Called(ctx, baseURL, guids)
	if c, ok := args.Get(0).([]source.AssetCandidate); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
