package collab

import (
	"archive/zip"
	"bytes"
	"sort"

	"github.com/hr95savage/semantic-blocks/pkg/failure"
)

var _ ZipPackager = (*LocalZipPackager)(nil)

// LocalZipPackager bundles a job's JSON document (and optional Markdown
// preview) into a single archive for download. archive/zip is stdlib: no
// pack example wires a ZIP format, and the standard library's writer is
// the complete, correct implementation of a well-specified container
// format — there is no semantic behavior here for a third-party library to
// own beyond what archive/zip already is.
type LocalZipPackager struct{}

func NewLocalZipPackager() *LocalZipPackager {
	return &LocalZipPackager{}
}

func (p *LocalZipPackager) Package(files map[string][]byte) ([]byte, failure.ClassifiedError) {
	if len(files) == 0 {
		return nil, &CollabError{Message: "no files to package", Retryable: false, Cause: ErrCausePackagingFail}
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, &CollabError{Message: err.Error(), Retryable: false, Cause: ErrCausePackagingFail}
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, &CollabError{Message: err.Error(), Retryable: false, Cause: ErrCausePackagingFail}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &CollabError{Message: err.Error(), Retryable: false, Cause: ErrCausePackagingFail}
	}
	return buf.Bytes(), nil
}
