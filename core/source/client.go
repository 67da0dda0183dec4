package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrNoAssetURLs is returned when identifiers were sent for lookup but the
// upstream returned no asset candidates at all. Unlike an empty album this
// indicates upstream malfunction and aborts the run.
var ErrNoAssetURLs = errors.New("asset lookup returned no URLs")

// Client defines the interface for the remote shared-album endpoints.
type Client interface {
	// FetchStream retrieves the raw photo stream payload for an album.
	FetchStream(ctx context.Context, baseURL string) ([]byte, error)
	// FetchAssetURLs resolves asset candidates for the given photo GUIDs.
	// Requests are chunked to respect the upstream request-size limit;
	// candidate indices stay globally unique across chunks.
	FetchAssetURLs(ctx context.Context, baseURL string, guids []string) ([]AssetCandidate, error)
}

// NewClient creates an HTTP client for the shared-album service.
func NewClient(cfg Config) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.Logger = nil // the pipeline logs at its own level

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	rc.HTTPClient.Timeout = time.Duration(timeout) * time.Second

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 150
	}

	return &httpClient{http: rc, chunkSize: chunkSize}
}

type httpClient struct {
	http      *retryablehttp.Client
	chunkSize int
}

func (c *httpClient) FetchStream(ctx context.Context, baseURL string) ([]byte, error) {
	// A null ctag requests the full stream instead of a delta.
	body, err := c.post(ctx, baseURL+"webstream", map[string]any{"streamCtag": nil})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photo stream: %w", err)
	}
	return body, nil
}

func (c *httpClient) FetchAssetURLs(ctx context.Context, baseURL string, guids []string) ([]AssetCandidate, error) {
	var candidates []AssetCandidate

	for start := 0; start < len(guids); start += c.chunkSize {
		end := start + c.chunkSize
		if end > len(guids) {
			end = len(guids)
		}

		body, err := c.post(ctx, baseURL+"webasseturls", map[string]any{"photoGuids": guids[start:end]})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch asset URLs: %w", err)
		}

		candidates = append(candidates, ExtractAssetCandidates(body, len(candidates))...)
	}

	if len(guids) > 0 && len(candidates) == 0 {
		return nil, ErrNoAssetURLs
	}
	return candidates, nil
}

func (c *httpClient) post(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	return body, nil
}
