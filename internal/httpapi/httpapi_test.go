package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hr95savage/semantic-blocks/internal/httpapi"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ValidBodyReturns200AndDocument(t *testing.T) {
	r := httpapi.NewRouter(metadata.NewRecorder())

	body, err := json.Marshal(map[string]string{
		"url":  "https://example.com/page",
		"html": `<html><body><main><h1>Hi</h1><p>Hello world.</p></main></body></html>`,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Validation struct {
			Status string `json:"status"`
		} `json:"validation"`
		Blocks []json.RawMessage `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pass", resp.Validation.Status)
	require.Len(t, resp.Blocks, 2)
}

func TestExtract_EmptyHTMLReturns400(t *testing.T) {
	r := httpapi.NewRouter(metadata.NewRecorder())

	body, err := json.Marshal(map[string]string{"url": "https://example.com/"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtract_MalformedJSONReturns400(t *testing.T) {
	r := httpapi.NewRouter(metadata.NewRecorder())

	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtract_GETReturns405(t *testing.T) {
	r := httpapi.NewRouter(metadata.NewRecorder())

	req := httptest.NewRequest(http.MethodGet, "/extract", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
