package outbound

import "context"

// MediaFetcherPort downloads recording media from the provider's hosted URL.
type MediaFetcherPort interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
