package editor

import (
	"runtime"
	"slices"
	"testing"
)

func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	original := getenv
	getenv = func(key string) string { return env[key] }
	t.Cleanup(func() { getenv = original })
}

func TestForPathTerminalEditors(t *testing.T) {
	withEnv(t, nil)

	for _, editor := range []string{"nvim", "vim", "nano"} {
		launch, err := ForPath("/notes/a/README.md", editor)
		if err != nil {
			t.Fatalf("ForPath(%q) returned error: %v", editor, err)
		}
		if !launch.Wait || launch.Silent {
			t.Fatalf("expected %s to block in the terminal", editor)
		}
		if !slices.Equal(launch.Cmd.Args, []string{editor, "/notes/a/README.md"}) {
			t.Fatalf("unexpected args %v", launch.Cmd.Args)
		}
	}
}

func TestForPathUsesEnvironment(t *testing.T) {
	withEnv(t, map[string]string{"EDITOR": "emacs -nw"})

	launch, err := ForPath("/notes/a/README.md", "")
	if err != nil {
		t.Fatalf("ForPath returned error: %v", err)
	}
	if !slices.Equal(launch.Cmd.Args, []string{"emacs", "-nw", "/notes/a/README.md"}) {
		t.Fatalf("unexpected args %v", launch.Cmd.Args)
	}
}

func TestForPathPrefersVisual(t *testing.T) {
	withEnv(t, map[string]string{"VISUAL": "hx", "EDITOR": "vi"})

	launch, err := ForPath("/f", "custom")
	if err != nil {
		t.Fatalf("ForPath returned error: %v", err)
	}
	if !slices.Equal(launch.Cmd.Args, []string{"hx", "/f"}) {
		t.Fatalf("unexpected args %v", launch.Cmd.Args)
	}
}

func TestForPathDefaultsToNvim(t *testing.T) {
	withEnv(t, nil)

	launch, err := ForPath("/f", "")
	if err != nil {
		t.Fatalf("ForPath returned error: %v", err)
	}
	if launch.Cmd.Args[0] != "nvim" {
		t.Fatalf("expected nvim fallback, got %v", launch.Cmd.Args)
	}
}

func TestForPathErrors(t *testing.T) {
	withEnv(t, nil)

	if _, err := ForPath("/f", "custom"); err == nil {
		t.Fatal("expected custom editor without environment to fail")
	}
	if _, err := ForPath("/f", "ed"); err == nil {
		t.Fatal("expected unsupported editor to fail")
	}
}

func TestForPathVSCode(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("vscode arguments differ per platform")
	}
	withEnv(t, nil)

	launch, err := ForPath("/f", "code")
	if err != nil {
		t.Fatalf("ForPath returned error: %v", err)
	}
	if !launch.Silent || !slices.Equal(launch.Cmd.Args, []string{"code", "--wait", "/f"}) {
		t.Fatalf("unexpected launch %+v", launch.Cmd.Args)
	}
}
