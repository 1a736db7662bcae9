package collab

import (
	"time"

	"github.com/google/uuid"
	"github.com/hr95savage/semantic-blocks/pkg/failure"
)

var _ SignedURLBroker = (*LocalSignedURLBroker)(nil)

// LocalSignedURLBroker mints an opaque, time-bounded token per key. It does
// not talk to a real object-storage provider's presign API — that plumbing
// is exactly what §1 says this module contains none of beyond the
// interface.
type LocalSignedURLBroker struct {
	baseURL string
}

func NewLocalSignedURLBroker(baseURL string) *LocalSignedURLBroker {
	return &LocalSignedURLBroker{baseURL: baseURL}
}

func (b *LocalSignedURLBroker) Sign(key string, ttl time.Duration) (SignedURL, failure.ClassifiedError) {
	if key == "" {
		return SignedURL{}, &CollabError{Message: "empty object key", Retryable: false, Cause: ErrCauseSigningFail}
	}
	token := uuid.NewString()
	return SignedURL{
		URL:       b.baseURL + "/" + key + "?token=" + token,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}
