package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Paintersrp/notepy/internal/constants"
	"github.com/Paintersrp/notepy/internal/pathutil"
)

type migration struct {
	from        int
	description string
	run         func(p *Persistence)
}

// migrations are applied in order; each one lifts the layout from `from` to
// `from+1`.
var migrations = []migration{
	{from: 1, description: "rename note.md to README.md", run: migrateV1ToV2},
	{from: 2, description: "move notes into the base path", run: migrateV2ToV3},
}

func (p *Persistence) migrate() error {
	version := p.cfg.PersistenceVersion
	if version > constants.PersistenceVersion {
		return fmt.Errorf(
			"persistence version %d is newer than supported version %d",
			version,
			constants.PersistenceVersion,
		)
	}

	start := version
	for _, m := range migrations {
		if m.from != version {
			continue
		}
		p.logger.Info("migrating persistence",
			zap.Int("from", m.from),
			zap.Int("to", m.from+1),
			zap.String("step", m.description),
		)
		m.run(p)
		version = m.from + 1
	}

	if version == start {
		return nil
	}

	if err := p.cfg.SetPersistenceVersion(version); err != nil {
		return fmt.Errorf("failed to record persistence version: %w", err)
	}
	return nil
}

func (p *Persistence) legacyNotesDir() string {
	return filepath.Join(p.basePath, constants.LegacyNotesDir)
}

func migrateV1ToV2(p *Persistence) {
	notesDir := p.legacyNotesDir()
	entries, err := os.ReadDir(notesDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			p.logger.Error("failed to list notes", zap.String("dir", notesDir), zap.Error(err))
		}
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(notesDir, entry.Name())
		oldFile := filepath.Join(dir, constants.LegacyNoteFile)
		newFile := filepath.Join(dir, constants.NoteFile)

		if _, err := os.Stat(oldFile); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if _, err := os.Stat(newFile); err == nil {
			p.logger.Warn("skipped note: README.md already present",
				zap.String("note", entry.Name()),
			)
			continue
		}

		if err := os.Rename(oldFile, newFile); err != nil {
			p.logger.Error("failed to migrate note",
				zap.String("note", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		p.logger.Info("migrated note", zap.String("note", entry.Name()))
	}
}

// migrateV2ToV3 flattens notes/ into the base path. Legacy directory names
// were never escaped, so each one is escaped on the way.
func migrateV2ToV3(p *Persistence) {
	notesDir := p.legacyNotesDir()
	entries, err := os.ReadDir(notesDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			p.logger.Error("failed to list notes", zap.String("dir", notesDir), zap.Error(err))
		}
		return
	}

	for _, entry := range entries {
		source := filepath.Join(notesDir, entry.Name())
		target := filepath.Join(p.basePath, pathutil.EscapeName(entry.Name()))

		if _, err := os.Stat(target); err == nil {
			p.logger.Error("failed to move note: target exists",
				zap.String("note", entry.Name()),
				zap.String("target", target),
			)
			continue
		}

		if err := os.Rename(source, target); err != nil {
			p.logger.Error("failed to move note",
				zap.String("note", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		p.logger.Info("moved note", zap.String("note", entry.Name()))
	}

	if err := os.Remove(notesDir); err != nil {
		p.logger.Warn("kept legacy notes directory",
			zap.String("dir", notesDir),
			zap.Error(err),
		)
	}
}
