package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"

	"github.com/Paintersrp/notepy/internal/constants"
)

type BackupConfig struct {
	Bucket string `yaml:"bucket,omitempty" json:"bucket"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix"`
	Region string `yaml:"region,omitempty" json:"region"`
}

// Enabled reports whether a backup target is configured.
func (b BackupConfig) Enabled() bool {
	return strings.TrimSpace(b.Bucket) != ""
}

type Config struct {
	PersistenceVersion int          `yaml:"persistence_version" json:"persistence_version"`
	BasePath           string       `yaml:"base_path"           json:"base_path"`
	Geometry           string       `yaml:"geometry"            json:"geometry"`
	FontSize           int          `yaml:"font_size"           json:"font_size"`
	ScreenshotCommand  string       `yaml:"screenshot_command"  json:"screenshot_command"`
	Theme              string       `yaml:"theme"               json:"theme"`
	Editor             string       `yaml:"editor,omitempty"    json:"editor"`
	Backup             BackupConfig `yaml:"backup,omitempty"    json:"backup"`

	path string `yaml:"-"`
}

var validEditorNames = []string{"nvim", "vim", "nano", "vscode", "code", "custom"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

var geometryPattern = regexp.MustCompile(`^\d+x\d+$`)

// Keys lists the settings accepted by Set, in display order.
var Keys = []string{
	"persistence_version",
	"base_path",
	"geometry",
	"font_size",
	"screenshot_command",
	"theme",
	"editor",
	"backup.bucket",
	"backup.prefix",
	"backup.region",
}

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		validEditorList(),
	)
}

func validEditorList() string {
	quoted := make([]string, len(validEditorNames))
	for i, name := range validEditorNames {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 0 {
		return ""
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

func ValidateGeometry(geometry string) error {
	if !geometryPattern.MatchString(geometry) {
		return fmt.Errorf("invalid geometry: %q. Expected WIDTHxHEIGHT, e.g. 800x600", geometry)
	}
	return nil
}

// Default returns a configuration for a fresh installation at the current
// persistence version.
func Default() *Config {
	return &Config{
		PersistenceVersion: constants.PersistenceVersion,
		BasePath:           constants.DefaultBasePath,
		Geometry:           constants.DefaultGeometry,
		FontSize:           constants.DefaultFontSize,
		ScreenshotCommand:  DetectScreenshotCommand(),
		Theme:              constants.DefaultTheme,
	}
}

// Load reads the config at path. A missing file is created with defaults.
// Files written before the persistence_version key existed are treated as
// version 1.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to create config file: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := &Config{path: path}
	if len(strings.TrimSpace(string(data))) > 0 {
		raw := make(map[string]interface{})
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
		if _, ok := raw["persistence_version"]; !ok {
			cfg.PersistenceVersion = 1
		}
	} else {
		cfg.PersistenceVersion = 1
	}

	cfg.ensureDefaults()

	if cfg.Editor != "" {
		if err := ValidateEditor(cfg.Editor); err != nil {
			return nil, err
		}
	}

	cfg.syncViper()
	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	if cfg.PersistenceVersion <= 0 {
		cfg.PersistenceVersion = 1
	}
	if strings.TrimSpace(cfg.BasePath) == "" {
		cfg.BasePath = constants.DefaultBasePath
	}
	if strings.TrimSpace(cfg.Geometry) == "" {
		cfg.Geometry = constants.DefaultGeometry
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = constants.DefaultFontSize
	}
	if strings.TrimSpace(cfg.ScreenshotCommand) == "" {
		cfg.ScreenshotCommand = DetectScreenshotCommand()
	}
	if strings.TrimSpace(cfg.Theme) == "" {
		cfg.Theme = constants.DefaultTheme
	}
}

func (cfg *Config) syncViper() {
	viper.Set("persistence_version", cfg.PersistenceVersion)
	viper.Set("base_path", cfg.BasePath)
	viper.Set("geometry", cfg.Geometry)
	viper.Set("font_size", cfg.FontSize)
	viper.Set("screenshot_command", cfg.ScreenshotCommand)
	viper.Set("theme", cfg.Theme)
	viper.Set("editor", cfg.Editor)
	viper.Set("backup", cfg.Backup)
}

// Path returns the file the config is persisted to.
func (cfg *Config) Path() string {
	return cfg.path
}

func (cfg *Config) Save() error {
	if cfg.path == "" {
		return fmt.Errorf("config has no file path")
	}

	if cfg.Editor != "" {
		if err := ValidateEditor(cfg.Editor); err != nil {
			return err
		}
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(cfg.path, data, 0o644)
}

// Get returns the string form of a setting.
func (cfg *Config) Get(key string) (string, error) {
	switch key {
	case "persistence_version":
		return strconv.Itoa(cfg.PersistenceVersion), nil
	case "base_path":
		return cfg.BasePath, nil
	case "geometry":
		return cfg.Geometry, nil
	case "font_size":
		return strconv.Itoa(cfg.FontSize), nil
	case "screenshot_command":
		return cfg.ScreenshotCommand, nil
	case "theme":
		return cfg.Theme, nil
	case "editor":
		return cfg.Editor, nil
	case "backup.bucket":
		return cfg.Backup.Bucket, nil
	case "backup.prefix":
		return cfg.Backup.Prefix, nil
	case "backup.region":
		return cfg.Backup.Region, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set validates and stores a setting, then persists the config.
func (cfg *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "persistence_version":
		return fmt.Errorf("persistence_version is managed by migrations")
	case "base_path":
		if value == "" {
			return fmt.Errorf("base_path cannot be empty")
		}
		cfg.BasePath = value
	case "geometry":
		if err := ValidateGeometry(value); err != nil {
			return err
		}
		cfg.Geometry = value
	case "font_size":
		size, err := strconv.Atoi(value)
		if err != nil || size <= 0 {
			return fmt.Errorf("invalid font size: %q", value)
		}
		cfg.FontSize = size
	case "screenshot_command":
		if value == "" {
			return fmt.Errorf("screenshot_command cannot be empty")
		}
		cfg.ScreenshotCommand = value
	case "theme":
		if value == "" {
			return fmt.Errorf("theme cannot be empty")
		}
		cfg.Theme = value
	case "editor":
		if value != "" {
			if err := ValidateEditor(value); err != nil {
				return err
			}
		}
		cfg.Editor = value
	case "backup.bucket":
		cfg.Backup.Bucket = value
	case "backup.prefix":
		cfg.Backup.Prefix = value
	case "backup.region":
		cfg.Backup.Region = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	return cfg.Save()
}

// SetPersistenceVersion records a completed migration.
func (cfg *Config) SetPersistenceVersion(version int) error {
	cfg.PersistenceVersion = version
	return cfg.Save()
}
