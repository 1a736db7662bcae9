package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/andybalholm/cascadia"
)

// EyebrowMode controls how small micro-labels above headings are handled.
type EyebrowMode string

const (
	EyebrowAnnotate EyebrowMode = "annotate"
	EyebrowDrop     EyebrowMode = "drop"
	EyebrowKeep     EyebrowMode = "keep"
)

// Config holds the recognized extraction options (spec §6). It follows the
// chainable-builder + JSON-DTO pattern: private fields, public With* setters,
// a configDTO for (de)serialization, and Build() for validation.
type Config struct {
	// EyebrowMode controls whether short micro-labels preceding a heading are
	// annotated with meta.role="eyebrow", dropped, or kept untouched.
	eyebrowMode EyebrowMode
	// DropBlogFeedsOnNonBlogPages removes blog-feed runs (H2 "blog"/"posts"
	// marker until the next non-blog H2) on pages that are not themselves a
	// blog post page.
	dropBlogFeedsOnNonBlogPages bool
	// StrictSEOMode is reserved; it has no effect on current extraction
	// behavior but is threaded through so future passes can read it.
	strictSEOMode bool
	// DropBreakpointHidden treats breakpoint-only visibility classes
	// (elementor-hidden-mobile|tablet|desktop) as hidden. Off by default
	// because those classes only hide content at certain viewport widths.
	dropBreakpointHidden bool
	// CustomDocSelectors extends the known-selector fallback list used when
	// no <main> or [role="main"] container is found.
	customDocSelectors []string
}

type configDTO struct {
	EyebrowMode                 EyebrowMode `json:"eyebrow_mode,omitempty"`
	DropBlogFeedsOnNonBlogPages *bool       `json:"drop_blog_feeds_on_non_blog_pages,omitempty"`
	StrictSEOMode               bool        `json:"strict_seo_mode,omitempty"`
	DropBreakpointHidden        bool        `json:"drop_breakpoint_hidden,omitempty"`
	CustomDocSelectors          []string    `json:"custom_doc_selectors,omitempty"`
}

// WithDefault returns the default configuration: eyebrow annotation on,
// blog-feed removal on, strict SEO mode off, breakpoint-hidden classes
// treated as visible.
func WithDefault() *Config {
	return &Config{
		eyebrowMode:                 EyebrowAnnotate,
		dropBlogFeedsOnNonBlogPages: true,
		strictSEOMode:               false,
		dropBreakpointHidden:        false,
	}
}

func (c *Config) WithEyebrowMode(mode EyebrowMode) *Config {
	c.eyebrowMode = mode
	return c
}

func (c *Config) WithDropBlogFeedsOnNonBlogPages(drop bool) *Config {
	c.dropBlogFeedsOnNonBlogPages = drop
	return c
}

func (c *Config) WithStrictSEOMode(strict bool) *Config {
	c.strictSEOMode = strict
	return c
}

func (c *Config) WithDropBreakpointHidden(drop bool) *Config {
	c.dropBreakpointHidden = drop
	return c
}

func (c *Config) WithCustomDocSelectors(selectors []string) *Config {
	c.customDocSelectors = selectors
	return c
}

// Build validates and freezes the config. EyebrowMode defaults to
// EyebrowAnnotate if left unset; an unrecognized value is rejected with
// ErrInvalidConfig.
func (c *Config) Build() (Config, error) {
	switch c.eyebrowMode {
	case EyebrowAnnotate, EyebrowDrop, EyebrowKeep:
	case "":
		c.eyebrowMode = EyebrowAnnotate
	default:
		return Config{}, fmt.Errorf("%w: unrecognized eyebrow_mode %q", ErrInvalidConfig, c.eyebrowMode)
	}
	for _, sel := range c.customDocSelectors {
		if _, err := cascadia.Compile(sel); err != nil {
			return Config{}, fmt.Errorf("%w: invalid custom_doc_selectors entry %q: %s", ErrInvalidConfig, sel, err.Error())
		}
	}
	return *c, nil
}

// WithConfigFile loads a configDTO from a JSON file on disk and merges it
// over the default configuration. Unset DTO fields keep their default value.
func WithConfigFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	var dto configDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(dto)
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	if dto.EyebrowMode != "" {
		cfg.eyebrowMode = dto.EyebrowMode
	}
	if dto.DropBlogFeedsOnNonBlogPages != nil {
		cfg.dropBlogFeedsOnNonBlogPages = *dto.DropBlogFeedsOnNonBlogPages
	}
	cfg.strictSEOMode = dto.StrictSEOMode
	cfg.dropBreakpointHidden = dto.DropBreakpointHidden
	if len(dto.CustomDocSelectors) > 0 {
		cfg.customDocSelectors = dto.CustomDocSelectors
	}

	return cfg.Build()
}

func (c Config) EyebrowMode() EyebrowMode {
	return c.eyebrowMode
}

func (c Config) DropBlogFeedsOnNonBlogPages() bool {
	return c.dropBlogFeedsOnNonBlogPages
}

func (c Config) StrictSEOMode() bool {
	return c.strictSEOMode
}

func (c Config) DropBreakpointHidden() bool {
	return c.dropBreakpointHidden
}

func (c Config) CustomDocSelectors() []string {
	selectors := make([]string, len(c.customDocSelectors))
	copy(selectors, c.customDocSelectors)
	return selectors
}
