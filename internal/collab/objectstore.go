package collab

import (
	"context"
	"sync"

	"github.com/hr95savage/semantic-blocks/pkg/failure"
	"github.com/hr95savage/semantic-blocks/pkg/hashutil"
)

var _ ObjectStore = (*LocalObjectStore)(nil)

// LocalObjectStore is an in-memory ObjectStore keyed by string. Every write
// is content-addressed with pkg/hashutil so re-uploading identical bytes
// under the same key is a no-op, matching the idempotent-rerun behavior the
// teacher's storage.LocalSink provides for Markdown writes.
type LocalObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	hashes  map[string]string
}

func NewLocalObjectStore() *LocalObjectStore {
	return &LocalObjectStore{
		objects: make(map[string][]byte),
		hashes:  make(map[string]string),
	}
}

func (s *LocalObjectStore) Put(_ context.Context, key string, data []byte) (ObjectRecord, failure.ClassifiedError) {
	hash, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	if err != nil {
		return ObjectRecord{}, &CollabError{Message: err.Error(), Retryable: false, Cause: ErrCausePackagingFail}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.hashes[key]; ok && existing == hash {
		return ObjectRecord{Key: key, ContentHash: hash, Size: len(s.objects[key])}, nil
	}
	s.objects[key] = append([]byte(nil), data...)
	s.hashes[key] = hash
	return ObjectRecord{Key: key, ContentHash: hash, Size: len(data)}, nil
}

func (s *LocalObjectStore) Get(_ context.Context, key string) ([]byte, failure.ClassifiedError) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, &CollabError{Message: key, Retryable: false, Cause: ErrCauseObjectNotFound}
	}
	return append([]byte(nil), data...), nil
}
