package cli

import (
	"fmt"
	"os"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// readAsUTF8 reads path and transcodes it to UTF-8 if chardet detects a
// different charset. The core itself only ever sees a UTF-8 string (§6);
// this sniffing happens once, at the CLI boundary, for file input that
// didn't arrive pre-declared as UTF-8.
func readAsUTF8(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if len(raw) == 0 {
		return "", nil
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || result == nil || isUTF8Like(result.Charset) {
		return string(raw), nil
	}

	enc, err := htmlindex.Get(result.Charset)
	if err != nil {
		// Unrecognized or unsupported charset name: fall back to the raw
		// bytes rather than failing the whole extraction over a sniffing
		// miss.
		return string(raw), nil
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("transcoding %s from %s: %w", path, result.Charset, err)
	}
	return string(decoded), nil
}

func isUTF8Like(charset string) bool {
	switch charset {
	case "UTF-8", "ASCII", "":
		return true
	default:
		return false
	}
}
