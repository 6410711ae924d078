// Package model holds the in-memory view of the note store: notes, the
// collection that indexes them and the events views subscribe to.
package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Paintersrp/notepy/internal/constants"
	"github.com/Paintersrp/notepy/internal/persistence"
)

// ErrInvalidNote is returned by operations that need a real note but were
// called on the no-selection sentinel or a deleted note.
var ErrInvalidNote = errors.New("note is not valid")

// Store is the subset of persistence the model depends on.
type Store interface {
	ListNotes() ([]string, error)
	ReadNote(name string) (string, error)
	WriteNote(name, text string) error
	RenameNote(oldName, newName string) error
	RemoveNote(name string) error
	ReadTags(name string) ([]string, error)
	WriteTags(name string, tags []string) error
	Screenshot(name string) (string, error)
	ModTime(name string) (time.Time, error)
	NotePath(name string) string
	CSS() string
}

// changeListener is informed when a note was renamed or deleted.
type changeListener interface {
	NoteChanged()
}

type Note struct {
	parent   changeListener
	store    Store
	name     string
	contents string
	tags     []string
	valid    bool
}

func newNote(parent changeListener, store Store, name string) (*Note, error) {
	n := &Note{parent: parent, store: store, name: name, valid: true}
	if err := n.Reload(); err != nil {
		return nil, err
	}
	return n, nil
}

func newInvalidNote(parent changeListener, store Store) *Note {
	return &Note{parent: parent, store: store, tags: []string{}}
}

func (n *Note) String() string { return n.name }

func (n *Note) Name() string { return n.name }

// SetName renames the note on disk and lets the owning collection re-index.
func (n *Note) SetName(name string) error {
	if !n.valid || name == n.name {
		return nil
	}

	if err := n.store.RenameNote(n.name, name); err != nil {
		return err
	}
	n.name = name
	n.parent.NoteChanged()
	return nil
}

func (n *Note) Contents() string { return n.contents }

func (n *Note) SetContents(text string) error {
	if !n.valid {
		return nil
	}

	if err := n.store.WriteNote(n.name, text); err != nil {
		return err
	}
	n.contents = text
	return nil
}

// Tags returns a copy of the note's tags, sorted.
func (n *Note) Tags() []string {
	return slices.Clone(n.tags)
}

func (n *Note) SetTags(tags []string) error {
	if !n.valid {
		return nil
	}

	normalized := persistence.NormalizeTags(tags)
	if err := n.store.WriteTags(n.name, normalized); err != nil {
		return err
	}
	n.tags = normalized
	return nil
}

func (n *Note) HasTag(tag string) bool {
	return slices.Contains(n.tags, tag)
}

// Matches reports whether filter is a case-insensitive substring of the name
// or the contents and the note carries every tag in tags.
func (n *Note) Matches(filter string, tags []string) bool {
	if !n.valid {
		return false
	}

	for _, tag := range tags {
		if !n.HasTag(tag) {
			return false
		}
	}

	filter = strings.ToLower(filter)
	return strings.Contains(strings.ToLower(n.name), filter) ||
		strings.Contains(strings.ToLower(n.contents), filter)
}

// Delete removes the note and all related files.
func (n *Note) Delete() error {
	if !n.valid {
		return nil
	}

	if err := n.store.RemoveNote(n.name); err != nil {
		return err
	}
	n.valid = false
	n.parent.NoteChanged()
	return nil
}

// Screenshot captures a screenshot into the note directory and returns its
// file name.
func (n *Note) Screenshot() (string, error) {
	if !n.valid {
		return "", ErrInvalidNote
	}
	return n.store.Screenshot(n.name)
}

// ScreenshotLink returns the Markdown image for a screenshot stored in the
// note directory.
func ScreenshotLink(filename string) string {
	return fmt.Sprintf("![screenshot](%s)", filename)
}

// AppendScreenshot adds an image link for filename as a new paragraph at the
// end of the note.
func (n *Note) AppendScreenshot(filename string) error {
	if !n.valid {
		return ErrInvalidNote
	}

	contents := n.contents
	if contents != "" {
		contents = strings.TrimRight(contents, "\n") + "\n\n"
	}
	return n.SetContents(contents + ScreenshotLink(filename) + "\n")
}

// BasePath returns the directory of the note.
func (n *Note) BasePath() string {
	return n.store.NotePath(n.name)
}

// FilePath returns the Markdown file holding the note contents.
func (n *Note) FilePath() string {
	return filepath.Join(n.BasePath(), constants.NoteFile)
}

// CSS returns the stylesheet used when rendering the note. All notes share
// the same stylesheet.
func (n *Note) CSS() string {
	return n.store.CSS()
}

func (n *Note) ModTime() (time.Time, error) {
	if !n.valid {
		return time.Time{}, ErrInvalidNote
	}
	return n.store.ModTime(n.name)
}

// Reload re-reads contents and tags from the store.
func (n *Note) Reload() error {
	if !n.valid {
		return nil
	}

	contents, err := n.store.ReadNote(n.name)
	if err != nil {
		return err
	}
	tags, err := n.store.ReadTags(n.name)
	if err != nil {
		return err
	}

	n.contents = contents
	n.tags = persistence.NormalizeTags(tags)
	return nil
}

func (n *Note) IsValid() bool { return n.valid }
