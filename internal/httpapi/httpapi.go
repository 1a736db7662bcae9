// Package httpapi thinly wraps the core pipeline behind a single
// POST /extract route (§6), one of the out-of-core collaborators §1 says
// should contain no novel engineering beyond plumbing.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hr95savage/semantic-blocks/internal/config"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/hr95savage/semantic-blocks/internal/pipeline"
)

// extractRequest is the JSON request body: HTML plus the page's own URL
// (the core never fetches, so the caller supplies it) and an optional
// config override.
type extractRequest struct {
	URL    string         `json:"url"`
	HTML   string         `json:"html"`
	Config *requestConfig `json:"config,omitempty"`
}

type requestConfig struct {
	EyebrowMode                 config.EyebrowMode `json:"eyebrow_mode,omitempty"`
	DropBlogFeedsOnNonBlogPages *bool              `json:"drop_blog_feeds_on_non_blog_pages,omitempty"`
	StrictSEOMode               bool               `json:"strict_seo_mode,omitempty"`
	DropBreakpointHidden        bool               `json:"drop_breakpoint_hidden,omitempty"`
}

// NewRouter builds the chi router exposing the extraction surface. sink
// receives every RecordExtraction/RecordError call the core pipeline makes.
func NewRouter(sink metadata.MetadataSink) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Post("/extract", handleExtract(sink))
	r.Get("/extract", methodNotAllowed)
	return r
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "method not allowed: use POST", http.StatusMethodNotAllowed)
}

func handleExtract(sink metadata.MetadataSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req extractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			sink.RecordError(time.Now(), "httpapi", "handleExtract", metadata.CausePolicyDisallow, err.Error(), nil)
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if req.HTML == "" {
			sink.RecordError(time.Now(), "httpapi", "handleExtract", metadata.CausePolicyDisallow, "empty html body", nil)
			http.Error(w, "html body must not be empty", http.StatusBadRequest)
			return
		}

		cfg, cfgErr := buildConfig(req.Config)
		if cfgErr != nil {
			http.Error(w, cfgErr.Error(), http.StatusBadRequest)
			return
		}

		doc := pipeline.Extract(req.HTML, req.URL, cfg, sink)

		body, err := doc.MarshalPretty()
		if err != nil {
			sink.RecordError(time.Now(), "httpapi", "handleExtract", metadata.CauseUnknown, err.Error(), nil)
			http.Error(w, "failed to render document", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

func buildConfig(reqCfg *requestConfig) (config.Config, error) {
	builder := config.WithDefault()
	if reqCfg == nil {
		return builder.Build()
	}
	if reqCfg.EyebrowMode != "" {
		builder = builder.WithEyebrowMode(reqCfg.EyebrowMode)
	}
	if reqCfg.DropBlogFeedsOnNonBlogPages != nil {
		builder = builder.WithDropBlogFeedsOnNonBlogPages(*reqCfg.DropBlogFeedsOnNonBlogPages)
	}
	builder = builder.WithStrictSEOMode(reqCfg.StrictSEOMode)
	builder = builder.WithDropBreakpointHidden(reqCfg.DropBreakpointHidden)
	return builder.Build()
}
