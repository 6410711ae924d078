package model

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/Paintersrp/notepy/internal/persistence"
)

// memoryStore is an in-memory Store used by the model tests.
type memoryStore struct {
	notes   map[string]string
	tags    map[string][]string
	renames [][2]string
	removed []string
	shotErr error
}

func newMemoryStore(notes map[string]string) *memoryStore {
	s := &memoryStore{notes: map[string]string{}, tags: map[string][]string{}}
	for name, contents := range notes {
		s.notes[name] = contents
	}
	return s
}

func (s *memoryStore) ListNotes() ([]string, error) {
	names := make([]string, 0, len(s.notes))
	for name := range s.notes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memoryStore) ReadNote(name string) (string, error) {
	contents, ok := s.notes[name]
	if !ok {
		s.notes[name] = ""
	}
	return contents, nil
}

func (s *memoryStore) WriteNote(name, text string) error {
	s.notes[name] = text
	return nil
}

func (s *memoryStore) RenameNote(oldName, newName string) error {
	if _, ok := s.notes[oldName]; !ok {
		return fmt.Errorf("%w: %q", persistence.ErrNoteNotFound, oldName)
	}
	if _, ok := s.notes[newName]; ok {
		return fmt.Errorf("%w: %q", persistence.ErrNoteExists, newName)
	}
	s.notes[newName] = s.notes[oldName]
	s.tags[newName] = s.tags[oldName]
	delete(s.notes, oldName)
	delete(s.tags, oldName)
	s.renames = append(s.renames, [2]string{oldName, newName})
	return nil
}

func (s *memoryStore) RemoveNote(name string) error {
	delete(s.notes, name)
	delete(s.tags, name)
	s.removed = append(s.removed, name)
	return nil
}

func (s *memoryStore) ReadTags(name string) ([]string, error) {
	return append([]string{}, s.tags[name]...), nil
}

func (s *memoryStore) WriteTags(name string, tags []string) error {
	s.tags[name] = append([]string{}, tags...)
	return nil
}

func (s *memoryStore) Screenshot(name string) (string, error) {
	if s.shotErr != nil {
		return "", s.shotErr
	}
	return "screenshot_test.png", nil
}

func (s *memoryStore) ModTime(name string) (time.Time, error) {
	if _, ok := s.notes[name]; !ok {
		return time.Time{}, errors.New("not found")
	}
	return time.Unix(0, 0), nil
}

func (s *memoryStore) NotePath(name string) string {
	return path.Join("/notes", name)
}

func (s *memoryStore) CSS() string { return "body {}" }

func (s *memoryStore) Geometry() string { return "640x480" }

func (s *memoryStore) FontSize() int { return 14 }

func (s *memoryStore) Theme() string { return "dark" }

// nopListener stands in for the owning collection.
type nopListener struct{ calls int }

func (l *nopListener) NoteChanged() { l.calls++ }
