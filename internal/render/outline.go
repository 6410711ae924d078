package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type Heading struct {
	Level int
	Text  string
	Line  int
}

// Outline lists the structure of a note: its headings and the images and
// links it references.
type Outline struct {
	Headings []Heading
	Images   []string
	Links    []string
}

// Title returns the first top-level heading, or the first heading of any
// level when there is none.
func (o Outline) Title() string {
	for _, h := range o.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	if len(o.Headings) > 0 {
		return o.Headings[0].Text
	}
	return ""
}

// Attachments returns referenced images that are relative to the note
// directory, such as captured screenshots.
func (o Outline) Attachments() []string {
	var result []string
	for _, img := range o.Images {
		if strings.Contains(img, "://") || strings.HasPrefix(img, "/") {
			continue
		}
		result = append(result, img)
	}
	return result
}

// ParseOutline walks the Markdown AST of source.
func (r *Renderer) ParseOutline(markdown string) Outline {
	source := []byte(markdown)
	document := r.md.Parser().Parse(text.NewReader(source))

	var outline Outline
	_ = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := n.(type) {
		case *ast.Heading:
			line := 0
			if lines := n.Lines(); lines != nil && lines.Len() > 0 {
				segment := lines.At(0)
				line = 1 + bytes.Count(source[:segment.Start], []byte("\n"))
			}
			outline.Headings = append(outline.Headings, Heading{
				Level: n.Level,
				Text:  strings.TrimSpace(string(n.Text(source))),
				Line:  line,
			})
		case *ast.Image:
			outline.Images = append(outline.Images, string(n.Destination))
		case *ast.Link:
			outline.Links = append(outline.Links, string(n.Destination))
		}
		return ast.WalkContinue, nil
	})

	return outline
}
