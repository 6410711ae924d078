// Package render turns note Markdown into HTML documents and terminal output.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/Paintersrp/notepy/internal/cache"
)

const (
	defaultCacheSize = 64
	defaultWordWrap  = 100
)

// Themes accepted by the theme setting. "auto" follows the terminal
// background.
var Themes = []string{"auto", "dark", "light", "dracula", "pink", "notty", "ascii"}

// Source is a note that can be rendered into a standalone document.
type Source interface {
	Name() string
	Contents() string
	BasePath() string
	CSS() string
}

type Renderer struct {
	md       goldmark.Markdown
	theme    string
	wordWrap int
	profile  termenv.Profile
	html     *cache.LRUCache[string, string]
}

type Option func(*Renderer)

func WithWordWrap(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.wordWrap = width
		}
	}
}

func WithColorProfile(profile termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = profile
	}
}

func WithCacheSize(size int) Option {
	return func(r *Renderer) {
		r.html = cache.NewLRUCache[string, string](size)
	}
}

func New(theme string, opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		theme:    theme,
		wordWrap: defaultWordWrap,
		profile:  termenv.ANSI256,
		html:     cache.NewLRUCache[string, string](defaultCacheSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidateTheme reports an error for themes glamour does not ship.
func ValidateTheme(theme string) error {
	for _, t := range Themes {
		if t == theme {
			return nil
		}
	}
	return fmt.Errorf(
		"invalid theme: %q. Please choose from %s.",
		theme,
		strings.Join(Themes, ", "),
	)
}

// Style resolves a theme setting to a glamour standard style.
func Style(theme string) string {
	switch theme {
	case "", "auto":
		if termenv.HasDarkBackground() {
			return "dark"
		}
		return "light"
	default:
		return theme
	}
}

// HTML converts Markdown to an HTML fragment. Results are cached by content.
func (r *Renderer) HTML(markdown string) (string, error) {
	if out, ok := r.html.Get(markdown); ok {
		return out, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	out := buf.String()
	r.html.Put(markdown, out)
	return out, nil
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<base href="{{.Base}}">
<style>
{{.CSS}}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Document renders a note into a standalone HTML page. Relative links resolve
// against the note directory.
func (r *Renderer) Document(src Source) (string, error) {
	body, err := r.HTML(src.Contents())
	if err != nil {
		return "", err
	}

	base := "file://" + filepath.ToSlash(src.BasePath()) + "/"

	var buf bytes.Buffer
	err = documentTemplate.Execute(&buf, struct {
		Title string
		Base  template.URL
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: src.Name(),
		Base:  template.URL(base),
		CSS:   template.CSS(src.CSS()),
		Body:  template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders Markdown for display in a terminal of the given width.
// A width of zero uses the configured word wrap.
func (r *Renderer) Terminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = r.wordWrap
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(Style(r.theme)),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(r.profile),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	out, err := tr.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
