package pick

import (
	"errors"
	"testing"

	"github.com/Paintersrp/notepy/internal/fzf"
	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/pkg/cmd/cmdtest"
)

func stubFinder(t *testing.T, choose func(query string) (*model.Note, error)) {
	t.Helper()
	original := runFinder
	runFinder = func(_ *fzf.FuzzyFinder, query string) (*model.Note, error) {
		return choose(query)
	}
	t.Cleanup(func() { runFinder = original })
}

func TestPickPrintsName(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "Groceries", "")

	var gotQuery string
	stubFinder(t, func(query string) (*model.Note, error) {
		gotQuery = query
		return s.Notes.Lookup("Groceries")
	})

	out, err := cmdtest.Run(NewCmdPick(s), "", "groc")
	if err != nil {
		t.Fatalf("pick returned error: %v", err)
	}
	if out != "Groceries\n" || gotQuery != "groc" {
		t.Fatalf("unexpected output %q for query %q", out, gotQuery)
	}
	if s.Notes.Selected().Name() != "Groceries" {
		t.Fatalf("expected picked note to be selected, got %q", s.Notes.Selected().Name())
	}
}

func TestPickEdit(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "a", "")
	stubFinder(t, func(string) (*model.Note, error) { return s.Notes.Lookup("a") })

	original := openEditor
	t.Cleanup(func() { openEditor = original })
	var opened string
	openEditor = func(path, _ string) error {
		opened = path
		return nil
	}

	out, err := cmdtest.Run(NewCmdPick(s), "", "--edit")
	if err != nil {
		t.Fatalf("pick returned error: %v", err)
	}
	note, _ := s.Notes.Get("a")
	if out != "" || opened != note.FilePath() {
		t.Fatalf("expected editor on %q, got %q (output %q)", note.FilePath(), opened, out)
	}
}

func TestPickAborted(t *testing.T) {
	s := cmdtest.NewState(t)
	stubFinder(t, func(string) (*model.Note, error) { return nil, fzf.ErrNoSelection })

	if _, err := cmdtest.Run(NewCmdPick(s), ""); !errors.Is(err, fzf.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}
