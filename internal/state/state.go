package state

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/config"
	"github.com/Paintersrp/notepy/internal/model"
	"github.com/Paintersrp/notepy/internal/persistence"
	"github.com/Paintersrp/notepy/internal/render"
	"github.com/Paintersrp/notepy/internal/watcher"
)

type State struct {
	ConfigPath  string
	Home        string
	Persistence *persistence.Persistence
	Model       *model.AppModel
	Notes       *model.NoteCollection
	Renderer    *render.Renderer
	Logger      *zap.Logger
	Watcher     *watcher.NoteWatcher
}

// NewState opens the note store. An empty configPath uses the default config
// location below the home directory.
func NewState(configPath string, logger *zap.Logger) (*State, error) {
	s := &State{}
	if err := s.Load(configPath, logger); err != nil {
		return nil, err
	}
	return s, nil
}

// Load opens the note store into s. Commands share one State that is filled
// once flags have been parsed.
func (s *State) Load(configPath string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	home, err := GetHomeDir()
	if err != nil {
		return err
	}

	if configPath == "" {
		configPath, err = config.EnsureConfigExists(home)
		if err != nil {
			return err
		}
	}

	p, err := persistence.New(
		configPath,
		persistence.WithHome(home),
		persistence.WithLogger(logger.Named("persistence")),
	)
	if err != nil {
		return err
	}

	return s.init(p, configPath, home, logger)
}

// Loaded reports whether the note store has been opened.
func (s *State) Loaded() bool {
	return s != nil && s.Persistence != nil
}

// FromPersistence builds the application state around an opened store.
func FromPersistence(p *persistence.Persistence, configPath, home string, logger *zap.Logger) (*State, error) {
	s := &State{}
	if err := s.init(p, configPath, home, logger); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *State) init(p *persistence.Persistence, configPath, home string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	m, err := model.NewAppModel(p, model.WithCollectionLogger(logger.Named("model")))
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	s.ConfigPath = configPath
	s.Home = home
	s.Persistence = p
	s.Model = m
	s.Notes = m.Notes
	s.Renderer = render.New(p.Theme())
	s.Logger = logger
	return nil
}

// StartWatcher watches the base path for external changes. It is safe to call
// more than once.
func (s *State) StartWatcher() (*watcher.NoteWatcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}

	w, err := watcher.New(s.Persistence.BasePath(), watcher.DefaultDebounce)
	if err != nil {
		return nil, fmt.Errorf("failed to create note watcher: %w", err)
	}
	w.OnChange(func(notes []string) {
		s.Logger.Debug("notes changed on disk", zap.Strings("notes", notes))
	})

	s.Watcher = w
	return w, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

// Close releases the watcher, if any.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
