package manifest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/glycoguide/backend/internal/domain"
)

// Client fetches the published image manifest from the asset CDN. The
// manifest is the same JSON shape the local index builder writes, so remote
// and local candidate sources are interchangeable.
type Client struct {
	http   *resty.Client
	url    string
	logger *zap.Logger
}

// NewClient creates a manifest client for the given manifest URL
func NewClient(manifestURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	http := resty.New().
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("User-Agent", "GlycoGuide-Curate/1.0")

	return &Client{http: http, url: manifestURL, logger: logger}
}

// Candidates downloads and decodes the manifest
func (c *Client) Candidates(ctx context.Context) ([]domain.ImageCandidate, error) {
	var index []domain.ImageCandidate

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&index).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrManifestFailure, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrManifestFailure, resp.StatusCode())
	}

	c.logger.Info("Image manifest fetched",
		zap.String("url", c.url),
		zap.Int("images", len(index)))
	return index, nil
}
