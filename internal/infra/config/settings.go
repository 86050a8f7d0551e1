// Where: internal/infra/config/settings.go
// What: User settings load/save.
// Why: Manage ~/.dotnet-el/settings.yaml consistently.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
	"github.com/sebasmonia/dotnet.el/internal/infra/fileops"
	"github.com/sebasmonia/dotnet.el/internal/meta"
	"gopkg.in/yaml.v3"
)

const (
	DefaultVerbosity    = "normal"
	DefaultKeymapPrefix = "C-c C-n"
	DefaultLanguage     = "C#"
)

var ErrUnknownSetting = errors.New("unknown setting")

// Settings is the user configuration. Verbosity and KeymapPrefix are passed
// through without interpretation.
type Settings struct {
	Verbosity       string           `yaml:"verbosity,omitempty"`
	KeymapPrefix    string           `yaml:"keymap_prefix,omitempty"`
	DefaultLanguage string           `yaml:"default_language,omitempty"`
	RootMarkers     []string         `yaml:"root_markers,omitempty"`
	ExcludeDirs     []string         `yaml:"exclude_dirs,omitempty"`
	Aliases         map[string]Alias `yaml:"aliases,omitempty"`
}

// Alias is a user-defined targeted command. Args may contain template
// expressions; the literal "%s" argument is the target slot.
type Alias struct {
	Description string   `yaml:"description,omitempty"`
	Constraint  string   `yaml:"constraint,omitempty"`
	Args        []string `yaml:"args"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Verbosity:       DefaultVerbosity,
		KeymapPrefix:    DefaultKeymapPrefix,
		DefaultLanguage: DefaultLanguage,
		Aliases:         map[string]Alias{},
	}
}

func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if strings.TrimSpace(s.Verbosity) == "" {
		s.Verbosity = def.Verbosity
	}
	if strings.TrimSpace(s.KeymapPrefix) == "" {
		s.KeymapPrefix = def.KeymapPrefix
	}
	if strings.TrimSpace(s.DefaultLanguage) == "" {
		s.DefaultLanguage = def.DefaultLanguage
	}
	if s.Aliases == nil {
		s.Aliases = map[string]Alias{}
	}
}

// AliasNames returns alias names in sorted order.
func (s Settings) AliasNames() []string {
	names := make([]string, 0, len(s.Aliases))
	for name := range s.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SettingsPath returns the settings file path, honouring the
// DOTNET_EL_CONFIG override.
func SettingsPath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(meta.Env("CONFIG"))); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, meta.HomeDir, meta.SettingsFile), nil
}

// LoadSettings reads, validates and parses the settings file. A missing file
// yields the defaults.
func LoadSettings(path string) (Settings, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return parseSettings(payload)
}

func parseSettings(payload []byte) (Settings, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return DefaultSettings(), nil
	}
	if err := validateSettings(payload); err != nil {
		return Settings{}, err
	}
	var cfg Settings
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// SaveSettings writes cfg to path under an exclusive file lock.
func SaveSettings(path string, cfg Settings) error {
	unlock, err := lockSettings(path)
	if err != nil {
		return err
	}
	defer unlock()
	return writeSettings(path, cfg)
}

// UpdateSettings loads, mutates and saves the settings while holding the lock,
// so concurrent writers do not lose each other's changes.
func UpdateSettings(path string, mutate func(*Settings) error) (Settings, error) {
	unlock, err := lockSettings(path)
	if err != nil {
		return Settings{}, err
	}
	defer unlock()

	cfg, err := LoadSettings(path)
	if err != nil {
		return Settings{}, err
	}
	if err := mutate(&cfg); err != nil {
		return Settings{}, err
	}
	if err := writeSettings(path, cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func writeSettings(path string, cfg Settings) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := validateSettings(payload); err != nil {
		return err
	}
	if err := fileops.WriteConfigFile(path, payload); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func lockSettings(path string) (func(), error) {
	if err := fileops.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock settings: %w", err)
	}
	return func() { _ = lock.Unlock() }, nil
}

// Set assigns one scalar or list setting by its YAML key. List values are
// comma separated.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "verbosity":
		s.Verbosity = value
	case "keymap_prefix":
		s.KeymapPrefix = value
	case "default_language":
		s.DefaultLanguage = value
	case "root_markers":
		s.RootMarkers = splitList(value)
	case "exclude_dirs":
		s.ExcludeDirs = splitList(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	s.applyDefaults()
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
