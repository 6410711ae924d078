package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/persistence"
	"github.com/Paintersrp/notepy/internal/state"
	"github.com/Paintersrp/notepy/pkg/cmd/cmdtest"
)

func TestResolveNote(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "a/b", "contents")
	base := s.Persistence.BasePath()

	tests := map[string]struct {
		args    []string
		want    string
		wantErr error
	}{
		"display name":   {args: []string{"a/b"}, want: "a/b"},
		"note directory": {args: []string{filepath.Join(base, "a%2Fb")}, want: "a/b"},
		"note file":      {args: []string{filepath.Join(base, "a%2Fb", "README.md")}, want: "a/b"},
		"unknown":        {args: []string{"missing"}, wantErr: persistence.ErrNoteNotFound},
		"outside base":   {args: []string{filepath.Join(filepath.Dir(base), "a%2Fb")}, wantErr: persistence.ErrNoteNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			note, err := ResolveNote(&cobra.Command{Use: "show"}, s, tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveNote returned error: %v", err)
			}
			if note.Name() != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, note.Name())
			}
		})
	}
}

func TestResolveNoteWithoutArgs(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "picked", "")

	originalInteractive, originalPick := IsInteractive, pick
	t.Cleanup(func() { IsInteractive, pick = originalInteractive, originalPick })

	IsInteractive = func() bool { return false }
	if _, err := ResolveNote(&cobra.Command{Use: "show"}, s, nil); err == nil {
		t.Fatal("expected an error without a terminal")
	}

	IsInteractive = func() bool { return true }
	pick = func(s *state.State, header string) (*model.Note, error) {
		if header != "Select a note to show" {
			t.Fatalf("unexpected header %q", header)
		}
		note, _ := s.Notes.Get("picked")
		return note, nil
	}

	note, err := ResolveNote(&cobra.Command{Use: "show"}, s, nil)
	if err != nil {
		t.Fatalf("ResolveNote returned error: %v", err)
	}
	if note.Name() != "picked" {
		t.Fatalf("unexpected note %q", note.Name())
	}
}

func TestResolveNoteRequiresState(t *testing.T) {
	if _, err := ResolveNote(&cobra.Command{Use: "show"}, &state.State{}, []string{"x"}); err == nil {
		t.Fatal("expected an error for an unloaded state")
	}
}
