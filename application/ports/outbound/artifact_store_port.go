package outbound

import (
	"context"
	"errors"
)

// ErrObjectNotFound reports that a key does not exist in the store. Callers
// deciding between "not yet written" and a real failure test for it with
// errors.Is.
var ErrObjectNotFound = errors.New("object not found")

// ArtifactStorePort is the key/value persistence surface for webhook
// payloads, derived records and media blobs. All writes are single-object
// puts; the store gives no cross-object atomicity.
type ArtifactStorePort interface {
	Put(ctx context.Context, bucket string, key string, body []byte) error
	Get(ctx context.Context, bucket string, key string) ([]byte, error)
	// List returns the keys under prefix. On S3 the enumeration comes back
	// in lexical key order.
	List(ctx context.Context, bucket string, prefix string) ([]string, error)
}
