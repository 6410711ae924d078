// Package editor launches an external editor on a note file.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Paintersrp/notepy/internal/constants"
)

// Launch is a prepared editor process. Wait reports whether the caller should
// block until it exits; Silent editors do not take over the terminal.
type Launch struct {
	Cmd    *exec.Cmd
	Wait   bool
	Silent bool
}

type editorCommand struct {
	command string
	args    []string
	wait    bool
	silence bool
}

var getenv = os.Getenv

// ForPath prepares the editor configured as editor for path. An empty editor
// falls back to $VISUAL, $EDITOR and finally nvim.
func ForPath(path, editor string) (*Launch, error) {
	cmd, err := buildEditorCommand(path, strings.TrimSpace(editor))
	if err != nil {
		return nil, err
	}
	return cmd.launch(), nil
}

func buildEditorCommand(path, editor string) (*editorCommand, error) {
	switch editor {
	case "nvim":
		return &editorCommand{command: "nvim", args: []string{path}, wait: true}, nil
	case "vim":
		return &editorCommand{command: "vim", args: []string{path}, wait: true}, nil
	case "nano":
		return &editorCommand{command: "nano", args: []string{path}, wait: true}, nil
	case "vscode", "code":
		return buildVSCodeCommand(path)
	case "custom", "":
		return buildEnvCommand(path, editor)
	default:
		return nil, fmt.Errorf("unsupported editor: %s", editor)
	}
}

func buildEnvCommand(path, editor string) (*editorCommand, error) {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(getenv(key)); len(fields) > 0 {
			args := append(fields[1:len(fields):len(fields)], path)
			return &editorCommand{command: fields[0], args: args, wait: true}, nil
		}
	}

	if editor == "custom" {
		return nil, fmt.Errorf("custom editor requires $VISUAL or $EDITOR to be set")
	}
	return buildEditorCommand(path, constants.DefaultEditor)
}

func buildVSCodeCommand(path string) (*editorCommand, error) {
	switch runtime.GOOS {
	case "darwin":
		return &editorCommand{command: "open", args: []string{"-n", "-b", "com.microsoft.VSCode", "--args", path}, silence: true}, nil
	case "linux":
		return &editorCommand{command: "code", args: []string{"--wait", path}, wait: true, silence: true}, nil
	case "windows":
		return &editorCommand{command: "cmd", args: []string{"/c", "code", "--wait", path}, wait: true, silence: true}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func (c *editorCommand) launch() *Launch {
	return &Launch{
		Cmd:    exec.Command(c.command, c.args...),
		Wait:   c.wait,
		Silent: c.silence,
	}
}

// Open runs the editor on path. Terminal editors inherit stdio and block.
func Open(path, editor string) error {
	launch, err := ForPath(path, editor)
	if err != nil {
		return err
	}

	if !launch.Wait {
		if err := launch.Cmd.Start(); err != nil {
			return fmt.Errorf("failed to start editor: %w", err)
		}
		return launch.Cmd.Process.Release()
	}

	if !launch.Silent {
		launch.Cmd.Stdin = os.Stdin
		launch.Cmd.Stdout = os.Stdout
		launch.Cmd.Stderr = os.Stderr
	}

	if err := launch.Cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}
