package write

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/notepy/pkg/cmd/cmdtest"
)

func TestWriteCreatesNoteFromStdin(t *testing.T) {
	s := cmdtest.NewState(t)

	if _, err := cmdtest.Run(NewCmdWrite(s), "# Fresh\n", "Fresh"); err != nil {
		t.Fatalf("write returned error: %v", err)
	}

	if got, _ := s.Persistence.ReadNote("Fresh"); got != "# Fresh\n" {
		t.Fatalf("unexpected contents %q", got)
	}
}

func TestWriteAppends(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "List", "- milk")

	if _, err := cmdtest.Run(NewCmdWrite(s), "- eggs\n", "List", "--append"); err != nil {
		t.Fatalf("write returned error: %v", err)
	}

	note, _ := s.Notes.Get("List")
	if note.Contents() != "- milk\n- eggs\n" {
		t.Fatalf("unexpected contents %q", note.Contents())
	}
}

func TestWriteFromFile(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "Doc", "old")

	file := filepath.Join(t.TempDir(), "in.md")
	if err := os.WriteFile(file, []byte("new"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := cmdtest.Run(NewCmdWrite(s), "", "Doc", "--file", file); err != nil {
		t.Fatalf("write returned error: %v", err)
	}

	note, _ := s.Notes.Get("Doc")
	if note.Contents() != "new" {
		t.Fatalf("unexpected contents %q", note.Contents())
	}
}

func TestWriteRequiresName(t *testing.T) {
	s := cmdtest.NewState(t)

	if _, err := cmdtest.Run(NewCmdWrite(s), "x"); err == nil {
		t.Fatal("expected an error without a name")
	}
}

func TestJoinBlocks(t *testing.T) {
	cases := map[string][3]string{
		"empty":        {"", "b", "b"},
		"with newline": {"a\n", "b", "a\nb"},
		"no newline":   {"a", "b", "a\nb"},
	}
	for name, c := range cases {
		if got := joinBlocks(c[0], c[1]); got != c[2] {
			t.Fatalf("%s: joinBlocks(%q, %q) = %q, want %q", name, c[0], c[1], got, c[2])
		}
	}
}
