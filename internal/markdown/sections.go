package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// engine is stateless so a single instance can be shared across parses.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Section holds the content captured under one body heading. Paragraph
// blocks accumulate into Text; a list block replaces whatever was captured
// before it, so Items being non-nil means a list was the last capture.
type Section struct {
	Text  string
	Items []string
}

// Document is the parser output for a single source file.
type Document struct {
	Path     string
	Meta     FrontMatter
	Sections map[string]Section
	Images   []string
	Videos   []string
	Body     []byte
}

// SectionText returns the captured paragraph text for a heading, matched
// case-insensitively.
func (d *Document) SectionText(heading string) string {
	return d.Sections[strings.ToLower(heading)].Text
}

// SectionItems returns the captured list items for a heading, matched
// case-insensitively.
func (d *Document) SectionItems(heading string) []string {
	return d.Sections[strings.ToLower(heading)].Items
}

// Parse extracts front matter, body sections, and asset references from one
// source file. It fails with a FormatError when front matter is absent or
// malformed; body extraction itself cannot fail.
func Parse(path string, source []byte) (*Document, error) {
	meta, body, err := ParseFrontMatter(path, source)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:     path,
		Meta:     meta,
		Sections: map[string]Section{},
		Body:     body,
	}
	doc.extractBody(body)

	return doc, nil
}

// extractBody walks the rendered AST once, capturing heading sections at the
// top level and asset references at any depth.
func (d *Document) extractBody(body []byte) {
	root := engine.Parser().Parse(text.NewReader(body))

	current := ""
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch typed := node.(type) {
		case *ast.Heading:
			current = strings.ToLower(strings.TrimSpace(nodeText(typed, body)))
		case *ast.Paragraph:
			if current == "" {
				continue
			}
			section := d.Sections[current]
			paragraph := strings.TrimSpace(nodeText(typed, body))
			if paragraph == "" {
				continue
			}
			if section.Text == "" {
				section.Text = paragraph
			} else {
				section.Text += "\n\n" + paragraph
			}
			d.Sections[current] = section
		case *ast.List:
			if current == "" {
				continue
			}
			// A list under a heading that already captured paragraph text
			// overwrites it. Later lists overwrite earlier ones too.
			d.Sections[current] = Section{Items: listItems(typed, body)}
		}
	}

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := node.(type) {
		case *ast.Image:
			d.Images = append(d.Images, string(typed.Destination))
		case *ast.Link:
			label := strings.ToLower(nodeText(typed, body))
			if strings.Contains(label, "video") {
				d.Videos = append(d.Videos, string(typed.Destination))
			}
		}
		return ast.WalkContinue, nil
	})
}

func listItems(list *ast.List, source []byte) []string {
	items := []string{}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if trimmed := strings.TrimSpace(nodeText(item, source)); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// nodeText concatenates the text segments beneath a node, covering nested
// emphasis and link labels.
func nodeText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := child.(type) {
		case *ast.Text:
			sb.Write(typed.Segment.Value(source))
		case *ast.String:
			sb.Write(typed.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
