// Package cmdtest provides helpers for exercising commands against a
// temporary note store.
package cmdtest

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/persistence"
	"github.com/Paintersrp/notepy/internal/state"
)

// NewState opens a note store below a temporary directory. Extra config
// lines replace default lines with the same key.
func NewState(t *testing.T, configLines ...string) *state.State {
	t.Helper()

	root := t.TempDir()
	configPath := filepath.Join(root, "config.yml")
	lines := []string{
		"persistence_version: 3",
		"base_path: " + filepath.Join(root, "base"),
		"theme: notty",
		`screenshot_command: touch "{filename}"`,
	}
	for _, extra := range configLines {
		key, _, _ := strings.Cut(extra, ":")
		lines = slices.DeleteFunc(lines, func(line string) bool {
			return strings.HasPrefix(line, key+":")
		})
		lines = append(lines, extra)
	}
	if err := os.WriteFile(configPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	p, err := persistence.New(configPath, persistence.WithHome(root))
	if err != nil {
		t.Fatalf("failed to open persistence: %v", err)
	}

	s, err := state.FromPersistence(p, configPath, root, nil)
	if err != nil {
		t.Fatalf("failed to build state: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// AddNote creates a note with contents and optional tags.
func AddNote(t *testing.T, s *state.State, name, contents string, tags ...string) {
	t.Helper()

	note, err := s.Notes.Create(name)
	if err != nil {
		t.Fatalf("failed to create note %q: %v", name, err)
	}
	if err := note.SetContents(contents); err != nil {
		t.Fatalf("failed to write note %q: %v", name, err)
	}
	if len(tags) > 0 {
		if err := note.SetTags(tags); err != nil {
			t.Fatalf("failed to tag note %q: %v", name, err)
		}
	}
}

// Run executes cmd with args and returns everything written to stdout.
func Run(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
