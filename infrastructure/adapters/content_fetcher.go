package adapters

import (
	"context"
	"fmt"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"io"
	"net/http"
	"time"
)

// mediaFetchTimeout bounds the synchronous media download; the provider
// keeps the webhook open while we copy the blob.
const mediaFetchTimeout = 30 * time.Second

type contentFetcher struct {
	client *http.Client
	logger outbound.LoggerPort
}

func NewContentFetcher(logger outbound.LoggerPort) outbound.MediaFetcherPort {
	return NewContentFetcherWithClient(&http.Client{Timeout: mediaFetchTimeout}, logger)
}

func NewContentFetcherWithClient(client *http.Client, logger outbound.LoggerPort) outbound.MediaFetcherPort {
	return &contentFetcher{
		client: client,
		logger: logger,
	}
}

func (c *contentFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build media request for %s: %w", url, err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", map[string]interface{}{
			"URL": url,
		})
		return nil, err
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.ErrorWithFields(err, "Failed to close the response body", map[string]interface{}{
				"URL": url,
			})
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(res.Body)
		c.logger.ErrorWithFields(nil, "HTTP request returned non-OK status code", map[string]interface{}{
			"URL":     url,
			"status":  res.StatusCode,
			"message": string(payload),
		})
		return nil, fmt.Errorf("HTTP request returned non-OK status code: %d", res.StatusCode)
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read the response body", map[string]interface{}{
			"URL": url,
		})
		return nil, err
	}

	return payload, nil
}
