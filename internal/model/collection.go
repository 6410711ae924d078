package model

import (
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/constants"
	"github.com/Paintersrp/notepy/internal/persistence"
)

// NoteCollection indexes the notes of a store by name and tracks the current
// selection.
type NoteCollection struct {
	store    Store
	logger   *zap.Logger
	notes    map[string]*Note
	invalid  *Note
	selected *Note

	OnChanged          Event
	OnSelectionChanged Event
}

type CollectionOption func(*NoteCollection)

func WithCollectionLogger(logger *zap.Logger) CollectionOption {
	return func(c *NoteCollection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewNoteCollection reads every note of store.
func NewNoteCollection(store Store, opts ...CollectionOption) (*NoteCollection, error) {
	c := &NoteCollection{
		store:  store,
		logger: zap.NewNop(),
		notes:  make(map[string]*Note),
	}
	for _, opt := range opts {
		opt(c)
	}

	names, err := store.ListNotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	for _, name := range names {
		note, err := newNote(c, store, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read note %q: %w", name, err)
		}
		c.notes[name] = note
	}

	c.invalid = newInvalidNote(c, store)
	c.selected = c.invalid
	return c, nil
}

func (c *NoteCollection) generateName() string {
	name := constants.UntitledNoteTitle
	for number := 1; ; number++ {
		if _, exists := c.notes[name]; !exists {
			return name
		}
		name = fmt.Sprintf("%s %d", constants.UntitledNoteTitle, number)
	}
}

// rebuildIndex re-keys the notes by their current names and drops deleted
// ones. A deleted selection falls back to the sentinel.
func (c *NoteCollection) rebuildIndex() {
	notes := make(map[string]*Note, len(c.notes))
	for _, note := range c.notes {
		if note.IsValid() {
			notes[note.Name()] = note
		}
	}
	c.notes = notes

	if !c.selected.IsValid() && c.selected != c.invalid {
		c.selected = c.invalid
		c.OnSelectionChanged.Fire()
	}
}

// Query returns the notes matching filter and tags ordered by name.
func (c *NoteCollection) Query(filter string, tags []string, reverse bool) []*Note {
	result := make([]*Note, 0, len(c.notes))
	for _, note := range c.notes {
		if note.Matches(filter, tags) {
			result = append(result, note)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if reverse {
			return result[i].Name() > result[j].Name()
		}
		return result[i].Name() < result[j].Name()
	})
	return result
}

// AddNew creates a note named "Untitled" (or "Untitled N" when taken).
func (c *NoteCollection) AddNew() (*Note, error) {
	return c.Create(c.generateName())
}

// Create adds a new, empty note called name.
func (c *NoteCollection) Create(name string) (*Note, error) {
	if _, exists := c.notes[name]; exists {
		return nil, fmt.Errorf("%w: %q", persistence.ErrNoteExists, name)
	}

	note, err := newNote(c, c.store, name)
	if err != nil {
		return nil, err
	}
	c.notes[name] = note
	c.logger.Debug("created note", zap.String("note", name))
	c.OnChanged.Fire()
	return note, nil
}

// Get returns the note called name.
func (c *NoteCollection) Get(name string) (*Note, bool) {
	note, ok := c.notes[name]
	return note, ok
}

// Lookup is Get with a not-found error.
func (c *NoteCollection) Lookup(name string) (*Note, error) {
	note, ok := c.notes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", persistence.ErrNoteNotFound, name)
	}
	return note, nil
}

func (c *NoteCollection) Len() int { return len(c.notes) }

// Names returns all note names, sorted.
func (c *NoteCollection) Names() []string {
	names := make([]string, 0, len(c.notes))
	for name := range c.notes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tags returns the union of all tags in the collection, sorted.
func (c *NoteCollection) Tags() []string {
	var all []string
	for _, note := range c.notes {
		all = append(all, note.tags...)
	}
	return persistence.NormalizeTags(all)
}

// NoteChanged is called by notes after a rename or delete.
func (c *NoteCollection) NoteChanged() {
	c.rebuildIndex()
	c.OnChanged.Fire()
}

// Selected returns the selected note or the invalid sentinel.
func (c *NoteCollection) Selected() *Note { return c.selected }

// Select selects the note called name. Unknown names clear the selection.
func (c *NoteCollection) Select(name string) {
	if note, ok := c.notes[name]; ok {
		c.selected = note
	} else {
		c.selected = c.invalid
	}
	c.OnSelectionChanged.Fire()
}

// Reload synchronises the collection with the store after external changes.
// Notes that still exist keep their identity and are re-read.
func (c *NoteCollection) Reload() error {
	names, err := c.store.ListNotes()
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make(map[string]*Note, len(names))
	for _, name := range names {
		if note, ok := c.notes[name]; ok {
			if err := note.Reload(); err != nil {
				return fmt.Errorf("failed to reload note %q: %w", name, err)
			}
			notes[name] = note
			continue
		}

		note, err := newNote(c, c.store, name)
		if err != nil {
			return fmt.Errorf("failed to read note %q: %w", name, err)
		}
		notes[name] = note
	}

	for name, note := range c.notes {
		if _, ok := notes[name]; !ok {
			note.valid = false
		}
	}
	c.notes = notes

	if c.selected != c.invalid && !slices.Contains(names, c.selected.Name()) {
		c.selected = c.invalid
		c.OnSelectionChanged.Fire()
	}

	c.logger.Debug("reloaded notes", zap.Int("count", len(c.notes)))
	c.OnChanged.Fire()
	return nil
}
