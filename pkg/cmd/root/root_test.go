package root

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/notepy/internal/constants"
	"github.com/Paintersrp/notepy/internal/state"
	"github.com/Paintersrp/notepy/pkg/cmd/cmdtest"
)

func TestRootRunsSubcommandsOnLoadedState(t *testing.T) {
	s := cmdtest.NewState(t)
	cmdtest.AddNote(t, s, "Groceries", "milk", "home")
	cmdtest.AddNote(t, s, "Standup", "", "work")

	out, err := cmdtest.Run(NewCmdRoot(s), "", "list", "--tag", "work")
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if out != "Standup\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRootRegistersCommands(t *testing.T) {
	cmd := NewCmdRoot(cmdtest.NewState(t))

	for _, name := range []string{
		"ui", "list", "show", "new", "write", "edit", "rename", "rm",
		"tags", "screenshot", "export", "config", "backup", "pick",
	} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found == cmd {
			t.Fatalf("expected command %q to be registered", name)
		}
	}
}

func TestRootVersion(t *testing.T) {
	out, err := cmdtest.Run(NewCmdRoot(cmdtest.NewState(t)), "", "--version")
	if err != nil {
		t.Fatalf("--version returned error: %v", err)
	}
	if !strings.Contains(out, constants.Version) {
		t.Fatalf("expected version in output, got %q", out)
	}
}

func TestRootLoadsConfigFlag(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "config.yml")
	cfg := "persistence_version: 3\nbase_path: " + filepath.Join(root, "base") + "\ntheme: notty\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	s := &state.State{}
	t.Cleanup(func() { _ = s.Close() })

	logFile := filepath.Join(root, "notepy.log")
	if _, err := cmdtest.Run(NewCmdRoot(s), "", "--config", configPath, "--log-file", logFile, "-v", "new", "First"); err != nil {
		t.Fatalf("new returned error: %v", err)
	}

	if !s.Loaded() || s.ConfigPath != configPath {
		t.Fatalf("expected state to be loaded from %q, got %q", configPath, s.ConfigPath)
	}
	if _, err := os.Stat(filepath.Join(root, "base", "First", constants.NoteFile)); err != nil {
		t.Fatalf("expected note file: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "opened note store") || !strings.Contains(string(data), `"persistence_version":3`) {
		t.Fatalf("expected debug log entry, got %q", data)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	quiet, err := newLogger(false, "")
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	if quiet.Core().Enabled(-1) {
		t.Fatal("expected debug to be disabled by default")
	}

	verbose, err := newLogger(true, "")
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	if !verbose.Core().Enabled(-1) {
		t.Fatal("expected debug to be enabled with --verbose")
	}
}
