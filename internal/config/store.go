// Package config manages shipit configuration.
//
// Configuration is a single tree merged from four layers in increasing
// priority:
//   - built-in defaults
//   - the user file ~/.shipit.yml
//   - the project file <workdir>/.shipit.yml
//   - SHIPIT_* environment variables
//
// Values are addressed by dotted paths ("adapters.github.config.base_url").
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// ConfigFileName is the name of the per-user and per-project configuration file.
const ConfigFileName = ".shipit.yml"

// EnvPrefix is the prefix for environment variable overrides, so
// SHIPIT_CACHE_DIR overrides the cache-dir key.
const EnvPrefix = "SHIPIT"

// Store holds the merged configuration tree.
type Store struct {
	v *viper.Viper
}

// Load reads and merges all configuration layers for the given working
// directory. Missing files are not an error; a file that exists but fails to
// parse aborts the load with a ConfigParseError.
func Load(workDir string) (*Store, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	userPath, err := UserConfigPath()
	if err == nil {
		if err := mergeFile(v, userPath); err != nil {
			return nil, err
		}
	}

	if workDir != "" {
		if err := mergeFile(v, filepath.Join(workDir, ConfigFileName)); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Store{v: v}, nil
}

// LoadFile reads a single configuration file without the layering, defaults,
// or environment overrides of Load. A missing file yields an empty store.
func LoadFile(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := mergeFile(v, path); err != nil {
		return nil, err
	}
	return &Store{v: v}, nil
}

// FromTree wraps an in-memory configuration tree in a Store. The builder uses
// this to hand adapters their reshaped view of the configuration.
func FromTree(tree map[string]any) *Store {
	v := viper.New()
	v.SetConfigType("yaml")
	if tree != nil {
		// MergeConfigMap only errors on unreadable io, never for a plain map.
		_ = v.MergeConfigMap(tree)
	}
	return &Store{v: v}
}

// mergeFile merges one YAML file into the tree. Missing files are skipped.
func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return shipiterrors.NewConfigParseError(path, err)
	}
	return nil
}

// setDefaults seeds the lowest-priority layer. The adapter key deliberately
// has no default; an unset adapter is what triggers provider detection.
func setDefaults(v *viper.Viper) {
	v.SetDefault("cache-dir", defaultCacheDir())
	v.SetDefault("log.level", "info")
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "shipit")
	}
	return filepath.Join(home, ".cache", "shipit")
}

// Get returns the value at the dotted path, and whether any layer set it.
func (s *Store) Get(path string) (any, bool) {
	if !s.v.IsSet(path) {
		return nil, false
	}
	return s.v.Get(path), true
}

// GetString returns the string at the dotted path, or "" when unset.
func (s *Store) GetString(path string) string {
	return s.v.GetString(path)
}

// GetBool returns the bool at the dotted path, or false when unset.
func (s *Store) GetBool(path string) bool {
	return s.v.GetBool(path)
}

// Sub returns the subtree at the dotted path as a plain map, or nil when the
// path is unset or not a map.
func (s *Store) Sub(path string) map[string]any {
	sub := s.v.Sub(path)
	if sub == nil {
		return nil
	}
	return sub.AllSettings()
}

// Merge deep-merges the given tree into the store. Values from the incoming
// tree win at the leaves; siblings in the existing tree survive.
func (s *Store) Merge(tree map[string]any) error {
	return s.v.MergeConfigMap(tree)
}

// Set records an explicit override at the dotted path. Overrides outrank
// every file and environment layer.
func (s *Store) Set(path string, value any) {
	s.v.Set(path, value)
}

// Raw returns the fully merged tree. The builder reshapes a copy of this.
func (s *Store) Raw() map[string]any {
	return s.v.AllSettings()
}

// UserConfigPath returns the location of the per-user configuration file.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ConfigFileName), nil
}

// WriteUserConfig persists the given tree to the per-user configuration file.
// Only the configure command writes configuration.
func WriteUserConfig(tree map[string]any) (string, error) {
	path, err := UserConfigPath()
	if err != nil {
		return "", err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.MergeConfigMap(tree); err != nil {
		return "", err
	}
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
