package config

import (
	"strings"
	"testing"

	"github.com/Paintersrp/notepy/internal/config"
	"github.com/Paintersrp/notepy/pkg/cmd/cmdtest"
)

func TestConfigShow(t *testing.T) {
	s := cmdtest.NewState(t)

	out, err := cmdtest.Run(NewCmdConfig(s), "")
	if err != nil {
		t.Fatalf("config returned error: %v", err)
	}
	if !strings.HasPrefix(out, "# "+s.ConfigPath+"\n") {
		t.Fatalf("expected config path header, got %q", out)
	}
	for _, key := range config.Keys {
		if !strings.Contains(out, key) {
			t.Fatalf("expected %q in output %q", key, out)
		}
	}
}

func TestConfigSetAndGet(t *testing.T) {
	s := cmdtest.NewState(t)

	if _, err := cmdtest.Run(NewCmdConfig(s), "", "set", "theme", "dracula"); err != nil {
		t.Fatalf("config set returned error: %v", err)
	}

	out, err := cmdtest.Run(NewCmdConfig(s), "", "get", "theme")
	if err != nil {
		t.Fatalf("config get returned error: %v", err)
	}
	if out != "dracula\n" {
		t.Fatalf("unexpected theme %q", out)
	}

	reloaded, err := config.Load(s.ConfigPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if reloaded.Theme != "dracula" {
		t.Fatalf("expected theme to be persisted, got %q", reloaded.Theme)
	}
}

func TestConfigSetRejectsInvalidValues(t *testing.T) {
	s := cmdtest.NewState(t)

	cases := [][]string{
		{"set", "theme", "neon"},
		{"set", "geometry", "wide"},
		{"set", "font_size", "big"},
		{"set", "font_size", "-1"},
		{"set", "editor", "ed"},
		{"set", "persistence_version", "1"},
		{"set", "nope", "x"},
		{"get", "nope"},
	}
	for _, args := range cases {
		if _, err := cmdtest.Run(NewCmdConfig(s), "", args...); err == nil {
			t.Fatalf("expected %v to fail", args)
		}
	}

	if s.Persistence.Theme() != "notty" {
		t.Fatalf("expected theme to stay unchanged, got %q", s.Persistence.Theme())
	}
}

func TestConfigSetWindowSettings(t *testing.T) {
	s := cmdtest.NewState(t)

	for _, args := range [][]string{
		{"set", "font_size", " 14 "},
		{"set", "geometry", "640x480"},
	} {
		if _, err := cmdtest.Run(NewCmdConfig(s), "", args...); err != nil {
			t.Fatalf("config %v returned error: %v", args, err)
		}
	}

	if s.Persistence.FontSize() != 14 || s.Persistence.Geometry() != "640x480" {
		t.Fatalf("unexpected settings %d %q", s.Persistence.FontSize(), s.Persistence.Geometry())
	}

	reloaded, err := config.Load(s.ConfigPath)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if reloaded.FontSize != 14 || reloaded.Geometry != "640x480" {
		t.Fatalf("expected settings to be persisted, got %d %q", reloaded.FontSize, reloaded.Geometry)
	}
}
