package tags

import (
	"slices"
	"testing"

	"github.com/Paintersrp/notepy/pkg/cmd/cmdtest"
)

func TestTagsListsCounts(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "a", "", "work", "home")
	cmdtest.AddNote(t, s, "b", "", "work")
	cmdtest.AddNote(t, s, "c", "")

	out, err := cmdtest.Run(NewCmdTags(s), "")
	if err != nil {
		t.Fatalf("tags returned error: %v", err)
	}
	if out != "home  1\nwork  2\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTagsListNote(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "a", "", "y", "x")

	out, err := cmdtest.Run(NewCmdTags(s), "", "list", "a")
	if err != nil {
		t.Fatalf("tags list returned error: %v", err)
	}
	if out != "x\ny\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTagsEdit(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "a", "", "keep", "drop")

	steps := []struct {
		args []string
		want []string
	}{
		{args: []string{"add", "a", "new, more"}, want: []string{"drop", "keep", "more", "new"}},
		{args: []string{"remove", "a", "drop", "more"}, want: []string{"keep", "new"}},
		{args: []string{"set", "a", "only"}, want: []string{"only"}},
		{args: []string{"set", "a"}, want: []string{}},
	}

	for _, step := range steps {
		if _, err := cmdtest.Run(NewCmdTags(s), "", step.args...); err != nil {
			t.Fatalf("tags %v returned error: %v", step.args, err)
		}
		note, _ := s.Notes.Get("a")
		if got := note.Tags(); !slices.Equal(got, step.want) {
			t.Fatalf("after %v expected %v, got %v", step.args, step.want, got)
		}
	}

	if tags, _ := s.Persistence.ReadTags("a"); len(tags) != 0 {
		t.Fatalf("expected tags to be cleared on disk, got %v", tags)
	}
}

func TestTagsEditUnknownNote(t *testing.T) {
	s := cmdtest.NewState(t)

	if _, err := cmdtest.Run(NewCmdTags(s), "", "add", "missing", "x"); err == nil {
		t.Fatal("expected an error for an unknown note")
	}
}
