package state

import (
	"fmt"
	"strings"
)

// StatusLine summarises the note store for the UI footer.
func (s *State) StatusLine() string {
	if s == nil || s.Notes == nil {
		return ""
	}

	parts := []string{
		fmt.Sprintf("%d notes", s.Notes.Len()),
		fmt.Sprintf("%d tags", len(s.Notes.Tags())),
	}
	if s.Persistence != nil {
		parts = append(parts, s.Persistence.BasePath())
	}
	if s.Watcher != nil {
		parts = append(parts, "watching")
	}

	return strings.Join(parts, " · ")
}
