package persistence

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/constants"
)

// ScreenshotEnv carries the capture path to the screenshot command. The
// {filename} placeholder expands to a reference to it, so the path itself is
// never parsed by the shell.
const ScreenshotEnv = "NOTEPY_SCREENSHOT"

// screenshotCommand builds the shell command for template with the capture
// path passed through the environment.
func screenshotCommand(template, path string) *exec.Cmd {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		// Delayed expansion happens after cmd has parsed the line.
		command := strings.ReplaceAll(template, "{filename}", "!"+ScreenshotEnv+"!")
		cmd = exec.Command("cmd", "/V:ON", "/C", command)
	} else {
		command := strings.ReplaceAll(template, "{filename}", "${"+ScreenshotEnv+"}")
		cmd = exec.Command("sh", "-c", command)
	}
	cmd.Env = append(os.Environ(), ScreenshotEnv+"="+path)
	return cmd
}

// exitCode maps the result of exec.Cmd.Run to a process exit code: 0 on
// success, the exit status otherwise, minus the signal number when the
// process was killed by a signal and -1 when it never started.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return -1
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return -int(status.Signal())
	}
	return exitErr.ExitCode()
}

// Screenshot runs the configured screenshot command and returns the file name
// of the capture relative to the note directory.
func (p *Persistence) Screenshot(name string) (string, error) {
	dir, err := p.noteDir(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := constants.ScreenshotPrefix + uuid.NewString() + constants.ScreenshotSuffix
	path := filepath.Join(dir, filename)

	code := exitCode(screenshotCommand(p.cfg.ScreenshotCommand, path).Run())
	if code != 0 {
		p.logger.Warn("screenshot command failed",
			zap.String("note", name),
			zap.String("command", p.cfg.ScreenshotCommand),
			zap.String("file", path),
			zap.Int("exit_code", code),
		)
		return "", fmt.Errorf("%w: command exited with status %d", ErrScreenshotUnavailable, code)
	}

	p.logger.Debug("captured screenshot", zap.String("note", name), zap.String("file", filename))
	return filename, nil
}
