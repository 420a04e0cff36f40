package markdown

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingFrontMatter = errors.New("markdown: missing front matter delimiters")
	ErrFrontMatterInvalid = errors.New("markdown: front matter is malformed")
)

// FormatError reports a source file whose front matter is absent or
// malformed. The pipeline skips the file, counts it invalid, and continues.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e == nil {
		return ErrFrontMatterInvalid.Error()
	}
	base := ErrFrontMatterInvalid
	if errors.Is(e.Err, ErrMissingFrontMatter) {
		base = ErrMissingFrontMatter
	}
	path := strings.TrimSpace(e.Path)
	if path == "" {
		return base.Error()
	}
	return fmt.Sprintf("%s: path=%s", base.Error(), path)
}

func (e *FormatError) Unwrap() error {
	if e == nil || e.Err == nil {
		return ErrFrontMatterInvalid
	}
	return e.Err
}
