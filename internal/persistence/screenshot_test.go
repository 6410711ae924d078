package persistence

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/Paintersrp/notepy/internal/constants"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("screenshot tests rely on a POSIX shell")
	}
}

func TestExitCode(t *testing.T) {
	skipWithoutShell(t)

	if code := exitCode(exec.Command("true").Run()); code != 0 {
		t.Fatalf("expected exit code 0 for true, got %d", code)
	}
	if code := exitCode(exec.Command("false").Run()); code == 0 {
		t.Fatal("expected nonzero exit code for false")
	}
	if code := exitCode(exec.Command("sh", "-c", "exit 3").Run()); code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
	if code := exitCode(exec.Command("notepy-command-that-does-not-exist").Run()); code == 0 {
		t.Fatal("expected nonzero exit code when the command cannot start")
	}
}

func TestScreenshotReturnsRelativeFilename(t *testing.T) {
	skipWithoutShell(t)

	root := t.TempDir()
	opts := defaultConfigOptions()
	opts.screenshotCommand = `touch "{filename}"`
	configPath := writeConfigFile(t, root, opts)
	p := mustOpen(t, configPath)

	if err := p.WriteNote("shots", ""); err != nil {
		t.Fatalf("WriteNote returned error: %v", err)
	}

	filename, err := p.Screenshot("shots")
	if err != nil {
		t.Fatalf("Screenshot returned error: %v", err)
	}

	if !strings.HasPrefix(filename, constants.ScreenshotPrefix) || !strings.HasSuffix(filename, constants.ScreenshotSuffix) {
		t.Fatalf("unexpected screenshot filename %q", filename)
	}
	if filepath.Base(filename) != filename {
		t.Fatalf("expected a relative file name, got %q", filename)
	}
	if _, err := os.Stat(filepath.Join(p.NotePath("shots"), filename)); err != nil {
		t.Fatalf("expected screenshot file in note directory: %v", err)
	}
}

func TestScreenshotUnavailable(t *testing.T) {
	skipWithoutShell(t)

	root := t.TempDir()
	opts := defaultConfigOptions()
	opts.screenshotCommand = "false"
	configPath := writeConfigFile(t, root, opts)
	p := mustOpen(t, configPath)

	filename, err := p.Screenshot("shots")
	if !errors.Is(err, ErrScreenshotUnavailable) {
		t.Fatalf("expected ErrScreenshotUnavailable, got %v", err)
	}
	if filename != "" {
		t.Fatalf("expected no filename on failure, got %q", filename)
	}
}

func TestExitCodeSignal(t *testing.T) {
	skipWithoutShell(t)

	if code := exitCode(exec.Command("sh", "-c", "kill -TERM $$").Run()); code != -int(syscall.SIGTERM) {
		t.Fatalf("expected exit code %d for a terminated process, got %d", -int(syscall.SIGTERM), code)
	}
}

func TestScreenshotDoesNotEvaluateNoteName(t *testing.T) {
	skipWithoutShell(t)

	root := t.TempDir()
	opts := defaultConfigOptions()
	opts.screenshotCommand = `touch "{filename}"`
	configPath := writeConfigFile(t, root, opts)
	p := mustOpen(t, configPath)

	marker := filepath.Join(root, "marker")
	names := []string{
		"x $(touch " + marker + ")",
		"y `touch " + marker + "`",
		`z"; touch ` + marker + `; echo "`,
	}

	for _, name := range names {
		if err := p.WriteNote(name, ""); err != nil {
			t.Fatalf("WriteNote(%q) returned error: %v", name, err)
		}

		filename, err := p.Screenshot(name)
		if err != nil {
			t.Fatalf("Screenshot(%q) returned error: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(p.NotePath(name), filename)); err != nil {
			t.Fatalf("expected screenshot inside note %q: %v", name, err)
		}
	}

	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Fatalf("expected note names not to run as shell code, got err %v", err)
	}
}
