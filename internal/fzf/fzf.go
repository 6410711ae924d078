package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/notepy/internal/model"
)

// ErrNoSelection is returned when the picker was aborted.
var ErrNoSelection = errors.New("no note selected")

// Previewer renders note contents for the preview window.
type Previewer interface {
	Terminal(markdown string, width int) (string, error)
}

// FuzzyFinder picks a note from a list with a rendered preview.
type FuzzyFinder struct {
	notes   []*model.Note
	preview Previewer
	Header  string

	find func(items []*model.Note, label func(int) string, opts ...fuzzyfinder.Option) (int, error)
}

func NewFuzzyFinder(notes []*model.Note, preview Previewer, header string) *FuzzyFinder {
	return &FuzzyFinder{
		notes:   notes,
		preview: preview,
		Header:  header,
		find: func(items []*model.Note, label func(int) string, opts ...fuzzyfinder.Option) (int, error) {
			return fuzzyfinder.Find(items, label, opts...)
		},
	}
}

// Run shows the picker and returns the chosen note.
func (f *FuzzyFinder) Run(query string) (*model.Note, error) {
	if len(f.notes) == 0 {
		return nil, fmt.Errorf("no notes to pick from")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := f.find(f.notes, f.label, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return nil, ErrNoSelection
	}
	if err != nil {
		return nil, fmt.Errorf("error selecting note: %w", err)
	}
	if idx < 0 || idx >= len(f.notes) {
		return nil, ErrNoSelection
	}

	return f.notes[idx], nil
}

func (f *FuzzyFinder) label(i int) string {
	n := f.notes[i]
	tags := n.Tags()
	if len(tags) == 0 {
		return fmt.Sprintf("%s [No tags]", n.Name())
	}
	return fmt.Sprintf("%s [Tags: %s]", n.Name(), strings.Join(tags, ", "))
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	contents := f.notes[i].Contents()
	if f.preview == nil {
		return contents
	}

	out, err := f.preview.Terminal(contents, w-4)
	if err != nil {
		return "Error rendering markdown"
	}
	return out
}
