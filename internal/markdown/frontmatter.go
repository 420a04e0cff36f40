package markdown

import (
	"bytes"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the structured metadata block leading every exercise source
// file. Collection fields accept bracketed YAML lists.
type FrontMatter struct {
	ID               string         `yaml:"id"`
	Name             string         `yaml:"name"`
	Category         string         `yaml:"category"`
	PrimaryMuscles   []string       `yaml:"primaryMuscles"`
	SecondaryMuscles []string       `yaml:"secondaryMuscles"`
	Equipment        []string       `yaml:"equipment"`
	Difficulty       string         `yaml:"difficulty"`
	Tags             []string       `yaml:"tags"`
	Custom           map[string]any `yaml:",inline"`
}

// ParseFrontMatter extracts metadata and the Markdown body from the provided
// source bytes. A source without leading front matter delimiters fails with
// a FormatError wrapping ErrMissingFrontMatter.
func ParseFrontMatter(path string, source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	trimmed := bytes.TrimLeft(source, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("---")) {
		return FrontMatter{}, nil, &FormatError{Path: path, Err: ErrMissingFrontMatter}
	}

	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, &FormatError{Path: path, Err: err}
	}

	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}

	return meta, body, nil
}
