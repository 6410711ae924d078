package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/notepy/internal/fzf"
	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/pathutil"
	"github.com/Paintersrp/notepy/internal/state"
)

// IsInteractive reports whether stdin and stdout are attached to a terminal.
var IsInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// pick is replaced in tests.
var pick = func(s *state.State, header string) (*model.Note, error) {
	finder := fzf.NewFuzzyFinder(s.Notes.Query("", nil, false), s.Renderer, header)
	return finder.Run("")
}

// ResolveNote returns the note named by the first argument. The argument may
// also be a path to a note directory or file below the base path. Without an
// argument an interactive session falls back to the fuzzy picker.
func ResolveNote(cmd *cobra.Command, s *state.State, args []string) (*model.Note, error) {
	if s == nil || !s.Loaded() {
		return nil, fmt.Errorf("state is not initialized")
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		if !IsInteractive() {
			return nil, fmt.Errorf("a note name is required")
		}
		return pick(s, fmt.Sprintf("Select a note to %s", cmd.Name()))
	}

	name := args[0]
	if note, ok := s.Notes.Get(name); ok {
		return note, nil
	}

	if fromPath, ok := noteNameFromPath(s.Persistence.BasePath(), name); ok {
		if note, ok := s.Notes.Get(fromPath); ok {
			return note, nil
		}
	}

	return s.Notes.Lookup(name)
}

// noteNameFromPath maps a path inside the base path to a note name.
func noteNameFromPath(basePath, arg string) (string, bool) {
	if !filepath.IsAbs(arg) && !strings.HasPrefix(arg, "."+string(filepath.Separator)) {
		return "", false
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", false
	}

	rel, err := pathutil.VaultRelative(basePath, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}

	first, _, _ := strings.Cut(rel, "/")
	return pathutil.UnescapeName(first), true
}
