package list

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Paintersrp/notepy/pkg/cmd/cmdtest"
)

func TestListFilters(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "Groceries", "milk", "home")
	cmdtest.AddNote(t, s, "Standup", "blockers", "work", "daily")
	cmdtest.AddNote(t, s, "Retro", "went well", "work")

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "all", want: "Groceries\nRetro\nStandup\n"},
		{name: "reverse", args: []string{"-r"}, want: "Standup\nRetro\nGroceries\n"},
		{name: "filter contents", args: []string{"--filter", "MILK"}, want: "Groceries\n"},
		{name: "tag", args: []string{"--tag", "work"}, want: "Retro\nStandup\n"},
		{name: "all tags", args: []string{"--tag", "work", "--tag", "daily"}, want: "Standup\n"},
		{name: "nothing", args: []string{"--filter", "zzz"}, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := cmdtest.Run(NewCmdList(s), "", tc.args...)
			if err != nil {
				t.Fatalf("list returned error: %v", err)
			}
			if out != tc.want {
				t.Fatalf("unexpected output %q, want %q", out, tc.want)
			}
		})
	}
}

func TestListSince(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "old", "")
	cmdtest.AddNote(t, s, "new", "")

	past := time.Date(2020, 1, 1, 12, 0, 0, 0, time.Local)
	readme := filepath.Join(s.Persistence.NotePath("old"), "README.md")
	if err := os.Chtimes(readme, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	out, err := cmdtest.Run(NewCmdList(s), "", "--since", "2021-06-01")
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if out != "new\n" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := cmdtest.Run(NewCmdList(s), "", "--since", "not a date"); err == nil {
		t.Fatal("expected an error for an invalid date")
	}
}

func TestListLong(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "tagged", "", "b", "a")

	out, err := cmdtest.Run(NewCmdList(s), "", "-l")
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if !strings.HasPrefix(out, "tagged  ") || !strings.HasSuffix(out, "a, b\n") {
		t.Fatalf("unexpected output %q", out)
	}
}
