// Package persistence stores notes as directories below a base path and keeps
// the on-disk layout at the current persistence version.
package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/config"
	"github.com/Paintersrp/notepy/internal/constants"
	"github.com/Paintersrp/notepy/internal/pathutil"
)

// Persistence owns the config file and every file below the base path.
type Persistence struct {
	cfg      *config.Config
	home     string
	basePath string
	css      string
	logger   *zap.Logger
}

type Option func(*Persistence)

// WithLogger routes migration and screenshot logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Persistence) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithHome overrides the directory substituted for {home} in base_path.
func WithHome(home string) Option {
	return func(p *Persistence) {
		p.home = home
	}
}

// New loads the config at configPath, prepares the base directory, migrates
// older layouts and loads the stylesheet.
func New(configPath string, opts ...Option) (*Persistence, error) {
	p := &Persistence{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}

	if p.home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		p.home = home
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	p.cfg = cfg

	p.basePath = pathutil.NormalizePath(pathutil.ExpandHome(cfg.BasePath, p.home))
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	if err := p.migrate(); err != nil {
		return nil, err
	}

	css, err := p.loadCSS()
	if err != nil {
		return nil, err
	}
	p.css = css

	return p, nil
}

func (p *Persistence) loadCSS() (string, error) {
	filename := filepath.Join(p.basePath, constants.StyleFile)

	data, err := os.ReadFile(filename)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read stylesheet: %w", err)
	}

	if err := os.WriteFile(filename, []byte(constants.DefaultCSS), 0o644); err != nil {
		return "", fmt.Errorf("failed to write default stylesheet: %w", err)
	}
	return constants.DefaultCSS, nil
}

func (p *Persistence) noteDir(name string) (string, error) {
	escaped := pathutil.EscapeName(name)
	if strings.TrimSpace(name) == "" || escaped == "." || escaped == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(p.basePath, escaped), nil
}

func (p *Persistence) noteFile(name string) (string, error) {
	dir, err := p.noteDir(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.NoteFile), nil
}

// Config exposes the loaded configuration.
func (p *Persistence) Config() *config.Config { return p.cfg }

func (p *Persistence) BasePath() string { return p.basePath }

func (p *Persistence) CSS() string { return p.css }

func (p *Persistence) Version() int { return p.cfg.PersistenceVersion }

func (p *Persistence) Geometry() string { return p.cfg.Geometry }

func (p *Persistence) SetGeometry(geometry string) error {
	return p.cfg.Set("geometry", geometry)
}

func (p *Persistence) FontSize() int { return p.cfg.FontSize }

func (p *Persistence) SetFontSize(size int) error {
	return p.cfg.Set("font_size", strconv.Itoa(size))
}

func (p *Persistence) Theme() string { return p.cfg.Theme }

func (p *Persistence) SetTheme(theme string) error {
	return p.cfg.Set("theme", theme)
}

func (p *Persistence) Editor() string { return p.cfg.Editor }

func (p *Persistence) Backup() config.BackupConfig { return p.cfg.Backup }

// NotePath returns the directory of a note, whether or not it exists.
func (p *Persistence) NotePath(name string) string {
	return filepath.Join(p.basePath, pathutil.EscapeName(name))
}

// ListNotes returns the display names of all notes, sorted. Directories whose
// names would not map back to themselves are skipped.
func (p *Persistence) ListNotes() ([]string, error) {
	entries, err := os.ReadDir(p.basePath)
	if err != nil {
		return nil, err
	}

	notes := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		readme := filepath.Join(p.basePath, entry.Name(), constants.NoteFile)
		if info, err := os.Stat(readme); err != nil || !info.Mode().IsRegular() {
			continue
		}

		name := pathutil.UnescapeName(entry.Name())
		if pathutil.EscapeName(name) != entry.Name() {
			p.logger.Warn("skipped note directory: name is not escaped",
				zap.String("dir", entry.Name()),
				zap.String("expected", pathutil.EscapeName(name)),
			)
			continue
		}
		notes = append(notes, name)
	}

	sort.Strings(notes)
	return notes, nil
}

// ReadNote returns the contents of a note. Missing notes are created empty.
func (p *Persistence) ReadNote(name string) (string, error) {
	filename, err := p.noteFile(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		if err := p.WriteNote(name, ""); err != nil {
			return "", err
		}
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (p *Persistence) WriteNote(name, text string) error {
	dir, err := p.noteDir(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, constants.NoteFile), []byte(text), 0o644)
}

// RenameNote moves a note directory, attachments included.
func (p *Persistence) RenameNote(oldName, newName string) error {
	oldDir, err := p.noteDir(oldName)
	if err != nil {
		return err
	}
	newDir, err := p.noteDir(newName)
	if err != nil {
		return err
	}

	if oldDir == newDir {
		return nil
	}

	if _, err := os.Stat(oldDir); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNoteNotFound, oldName)
	}

	// Case-only renames resolve to the same directory on case-insensitive
	// filesystems.
	if !strings.EqualFold(oldDir, newDir) {
		if _, err := os.Stat(newDir); err == nil {
			return fmt.Errorf("%w: %q", ErrNoteExists, newName)
		}
	}

	return os.Rename(oldDir, newDir)
}

// RemoveNote deletes a note including all related files.
func (p *Persistence) RemoveNote(name string) error {
	dir, err := p.noteDir(name)
	if err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

// ModTime reports when the contents of a note were last written.
func (p *Persistence) ModTime(name string) (time.Time, error) {
	filename, err := p.noteFile(name)
	if err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(filename)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// ReadTags returns the tags of a note. A missing tag file means no tags.
func (p *Persistence) ReadTags(name string) ([]string, error) {
	dir, err := p.noteDir(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(dir, constants.TagsFile))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var tags []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		tags = append(tags, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NormalizeTags(tags), nil
}

// WriteTags replaces the tags of a note. An empty set removes the tag file.
func (p *Persistence) WriteTags(name string, tags []string) error {
	dir, err := p.noteDir(name)
	if err != nil {
		return err
	}

	filename := filepath.Join(dir, constants.TagsFile)
	normalized := NormalizeTags(tags)
	if len(normalized) == 0 {
		if err := os.Remove(filename); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(strings.Join(normalized, "\n")+"\n"), 0o644)
}

// ListTags returns the union of all tags, deduplicated and sorted.
func (p *Persistence) ListTags() ([]string, error) {
	notes, err := p.ListNotes()
	if err != nil {
		return nil, err
	}

	var all []string
	for _, name := range notes {
		tags, err := p.ReadTags(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read tags of %q: %w", name, err)
		}
		all = append(all, tags...)
	}

	return NormalizeTags(all), nil
}

// NormalizeTags trims, drops blanks, deduplicates and sorts tags. The tag
// file holds one tag per line, so a tag spanning lines becomes several tags.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		for _, line := range strings.FieldsFunc(tag, isLineBreak) {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if _, exists := seen[trimmed]; exists {
				continue
			}
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	sort.Strings(result)
	return result
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}
