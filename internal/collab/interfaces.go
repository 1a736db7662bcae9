// Package collab defines the out-of-core collaborators named in §1/§6:
// an asynchronous job worker, object storage, ZIP packaging, and signed-URL
// brokering. These surround the core but "contain no novel engineering
// beyond plumbing" — the interfaces are the contract; the local
// implementations in this package exist only to exercise them in tests and
// to give pkg/retry, pkg/limiter, pkg/hashutil and pkg/fileutil a home now
// that the crawler they were written for is gone.
package collab

import (
	"context"
	"time"

	"github.com/hr95savage/semantic-blocks/pkg/failure"
)

// JobWorker runs extraction jobs asynchronously and reports their outcome.
type JobWorker interface {
	Submit(ctx context.Context, job Job) (JobID, failure.ClassifiedError)
	Result(ctx context.Context, id JobID) (JobResult, failure.ClassifiedError)
}

// ObjectStore persists and retrieves extraction output (JSON documents,
// Markdown previews) by key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) (ObjectRecord, failure.ClassifiedError)
	Get(ctx context.Context, key string) ([]byte, failure.ClassifiedError)
}

// ZipPackager bundles named files into a single archive for download.
type ZipPackager interface {
	Package(files map[string][]byte) ([]byte, failure.ClassifiedError)
}

// SignedURLBroker mints time-bounded download/upload URLs for an object key.
type SignedURLBroker interface {
	Sign(key string, ttl time.Duration) (SignedURL, failure.ClassifiedError)
}
