// Package watcher reports changes below the note base path to the terminal UI.
package watcher

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/notepy/internal/constants"
	"github.com/Paintersrp/notepy/internal/pathutil"
)

const DefaultDebounce = 150 * time.Millisecond

// NotesChangedMsg lists the display names of notes that changed on disk.
type NotesChangedMsg struct {
	Notes []string
}

type WatcherErrMsg struct {
	Err error
}

type NoteWatcher struct {
	watcher  *fsnotify.Watcher
	base     string
	debounce time.Duration
	done     chan struct{}
	once     sync.Once
	mu       sync.Mutex
	onChange func([]string)
}

func New(basePath string, debounce time.Duration) (*NoteWatcher, error) {
	normalized := pathutil.NormalizePath(basePath)
	if normalized == "" {
		return nil, errors.New("base path cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &NoteWatcher{
		watcher:  w,
		base:     normalized,
		debounce: debounce,
		done:     make(chan struct{}),
	}

	if err := watcher.addRecursive(normalized); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start returns a command that blocks until notes change and reports them as
// a single NotesChangedMsg once the directory has been quiet for the debounce
// interval. Re-issue the command after each message.
func (w *NoteWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		changed := make(map[string]struct{})
		var quiet <-chan time.Time

		for {
			select {
			case <-w.done:
				return nil
			case <-quiet:
				notes := make([]string, 0, len(changed))
				for name := range changed {
					notes = append(notes, name)
				}
				sort.Strings(notes)

				w.mu.Lock()
				onChange := w.onChange
				w.mu.Unlock()
				if onChange != nil {
					onChange(notes)
				}
				return NotesChangedMsg{Notes: notes}
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
					}
				}

				name, ok := w.noteName(event)
				if !ok {
					continue
				}
				changed[name] = struct{}{}
				quiet = time.After(w.debounce)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return WatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *NoteWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

// OnChange registers a callback that receives note names before the message
// is delivered.
func (w *NoteWatcher) OnChange(fn func([]string)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

func (w *NoteWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}

		return w.watcher.Add(path)
	})
}

// noteName maps an event to the display name of the note it belongs to.
// Files directly below the base path, such as the stylesheet, are ignored.
func (w *NoteWatcher) noteName(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return "", false
	}

	rel, err := pathutil.VaultRelative(w.base, pathutil.NormalizePath(event.Name))
	if err != nil || rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return "", false
	}

	first, _, nested := strings.Cut(rel, "/")
	if !nested {
		switch first {
		case constants.StyleFile, constants.ConfigFile + "." + constants.ConfigFileType:
			return "", false
		}
		if strings.HasPrefix(first, ".") {
			return "", false
		}
	}

	return pathutil.UnescapeName(first), true
}
