package collab_test

import (
	"context"
	"testing"
	"time"

	"github.com/hr95savage/semantic-blocks/internal/collab"
	"github.com/hr95savage/semantic-blocks/internal/config"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalObjectStore_PutGetRoundtrip(t *testing.T) {
	store := collab.NewLocalObjectStore()
	ctx := context.Background()

	rec, err := store.Put(ctx, "doc.json", []byte(`{"a":1}`))
	require.Nil(t, err)
	assert.Equal(t, "doc.json", rec.Key)
	assert.NotEmpty(t, rec.ContentHash)

	data, err := store.Get(ctx, "doc.json")
	require.Nil(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestLocalObjectStore_GetMissingKeyErrors(t *testing.T) {
	store := collab.NewLocalObjectStore()
	_, err := store.Get(context.Background(), "nope.json")
	require.NotNil(t, err)
}

func TestLocalObjectStore_PutIdempotentOnSameBytes(t *testing.T) {
	store := collab.NewLocalObjectStore()
	ctx := context.Background()

	first, err := store.Put(ctx, "k", []byte("same"))
	require.Nil(t, err)
	second, err := store.Put(ctx, "k", []byte("same"))
	require.Nil(t, err)
	assert.Equal(t, first.ContentHash, second.ContentHash)
}

func TestLocalZipPackager_PackageProducesNonEmptyArchive(t *testing.T) {
	pkg := collab.NewLocalZipPackager()
	data, err := pkg.Package(map[string][]byte{
		"doc.json":   []byte(`{"a":1}`),
		"preview.md": []byte("# Title"),
	})
	require.Nil(t, err)
	assert.NotEmpty(t, data)
}

func TestLocalZipPackager_EmptyInputErrors(t *testing.T) {
	pkg := collab.NewLocalZipPackager()
	_, err := pkg.Package(nil)
	require.NotNil(t, err)
}

func TestLocalSignedURLBroker_SignProducesExpiringURL(t *testing.T) {
	broker := collab.NewLocalSignedURLBroker("https://objects.example.com")
	signed, err := broker.Sign("doc.json", time.Minute)
	require.Nil(t, err)
	assert.Contains(t, signed.URL, "doc.json")
	assert.True(t, signed.ExpiresAt.After(time.Now()))
}

func TestLocalSignedURLBroker_EmptyKeyErrors(t *testing.T) {
	broker := collab.NewLocalSignedURLBroker("https://objects.example.com")
	_, err := broker.Sign("", time.Minute)
	require.NotNil(t, err)
}

func TestLocalJobWorker_SubmitAndResultSucceeds(t *testing.T) {
	store := collab.NewLocalObjectStore()
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)
	worker := collab.NewLocalJobWorker(store, metadata.NewRecorder(), cfg, 2, 8)

	id, cerr := worker.Submit(context.Background(), collab.Job{
		SourceURL: "https://example.com/page",
		HTML:      `<html><body><main><h1>Hi</h1><p>Hello world.</p></main></body></html>`,
	})
	require.Nil(t, cerr)
	require.NotEmpty(t, id)

	var result collab.JobResult
	require.Eventually(t, func() bool {
		result, cerr = worker.Result(context.Background(), id)
		return cerr == nil && result.Status != collab.JobQueued && result.Status != collab.JobRunning
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, collab.JobSucceeded, result.Status)
	assert.NotEmpty(t, result.ObjectKey)

	stored, cerr := store.Get(context.Background(), result.ObjectKey)
	require.Nil(t, cerr)
	assert.Contains(t, string(stored), `"Hi"`)
}

func TestLocalJobWorker_ResultUnknownIDErrors(t *testing.T) {
	store := collab.NewLocalObjectStore()
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)
	worker := collab.NewLocalJobWorker(store, metadata.NewRecorder(), cfg, 1, 4)

	_, cerr := worker.Result(context.Background(), "missing")
	require.NotNil(t, cerr)
}
