// Package preview renders the pruned main-content subtree as Markdown for
// human review alongside the JSON output. It is never part of the pure
// extract() contract (§9 design note) — callers opt in with --preview.
package preview

import (
	"errors"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/hr95savage/semantic-blocks/pkg/failure"
	"golang.org/x/net/html"
)

// ConvertRule converts a pruned content subtree to Markdown. Implementations
// must be deterministic: the same subtree always yields the same bytes.
type ConvertRule interface {
	Convert(contentRoot *html.Node) (string, failure.ClassifiedError)
}

var _ ConvertRule = (*StrictConversionRule)(nil)

type StrictConversionRule struct {
	metadataSink metadata.MetadataSink
}

func NewRule(metadataSink metadata.MetadataSink) *StrictConversionRule {
	return &StrictConversionRule{metadataSink: metadataSink}
}

func (s *StrictConversionRule) Convert(contentRoot *html.Node) (string, failure.ClassifiedError) {
	markdown, err := convert(contentRoot)
	if err != nil {
		var conversionError *ConversionError
		errors.As(err, &conversionError)

		s.metadataSink.RecordError(
			time.Now(),
			"preview",
			"StrictConversionRule.Convert",
			mapConversionErrorToMetadataCause(*conversionError),
			err.Error(),
			nil,
		)
		return "", conversionError
	}
	return markdown, nil
}

// convert is a stateless pure function: the pruned subtree in, Markdown
// text out, using html-to-markdown/v2's base/commonmark/table plugin set
// for GitHub-flavored output (headings, tables, lists all map directly).
func convert(contentRoot *html.Node) (string, *ConversionError) {
	if contentRoot == nil {
		return "", &ConversionError{
			Message:   "cannot convert nil content root",
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(contentRoot)
	if err != nil {
		return "", &ConversionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}
	return string(markdown), nil
}
