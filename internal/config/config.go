// cara - Commit history changelog generator
// Author: Ariel Frischer
// Source: https://github.com/torodean/CARA

// Package config provides layered configuration for cara using koanf.
// Values are resolved with priority: overrides set by the CLI > environment
// variables (CARA_*) > config file > defaults. The config file is read as
// KEY=VALUE lines unless its extension marks it as YAML or JSON.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment variables that override config keys.
const EnvPrefix = "CARA_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceFile     ConfigSource = "file"
	SourceEnv      ConfigSource = "env"
	SourceOverride ConfigSource = "override"
)

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// Path is the config file to read (default: cara.conf).
	Path string
	// Explicit marks Path as user supplied; a missing file is then an error.
	Explicit bool
	// SkipEnv ignores CARA_* environment variables.
	SkipEnv bool
}

// Config holds resolved key/value settings.
type Config struct {
	k       *koanf.Koanf
	sources map[string]ConfigSource
	file    string
}

// Load loads configuration from defaults, the config file and environment.
func Load(opts LoadOptions) (*Config, error) {
	c := &Config{k: koanf.New("."), sources: make(map[string]ConfigSource)}

	c.loadDefaults()

	if err := c.loadFile(opts); err != nil {
		return nil, err
	}

	if !opts.SkipEnv {
		if err := c.loadEnvironment(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// New returns a Config holding only the defaults.
func New() *Config {
	c := &Config{k: koanf.New("."), sources: make(map[string]ConfigSource)}
	c.loadDefaults()
	return c
}

// loadDefaults applies default configuration values
func (c *Config) loadDefaults() {
	for key, value := range GetDefaults() {
		c.k.Set(key, value)
		c.sources[key] = SourceDefault
	}
}

// loadFile reads the config file into its own layer so keys can be
// normalized to upper case before merging.
func (c *Config) loadFile(opts LoadOptions) error {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}

	if !fileExists(path) {
		if opts.Explicit {
			return &NotFoundError{Path: path}
		}
		return nil
	}

	layer := koanf.New(".")
	if err := layer.Load(file.Provider(path), parserFor(path)); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}

	for key, value := range layer.All() {
		key = strings.ToUpper(key)
		v := stringify(value)
		if err := ValidateValue(key, v); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		c.k.Set(key, v)
		c.sources[key] = SourceFile
	}

	c.file = path
	return nil
}

// loadEnvironment loads CARA_* overrides for known keys.
func (c *Config) loadEnvironment() error {
	layer := koanf.New(".")
	if err := layer.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}

	for key, value := range layer.All() {
		v := stringify(value)
		if err := ValidateValue(key, v); err != nil {
			return fmt.Errorf("environment %s%s: %w", EnvPrefix, key, err)
		}
		c.k.Set(key, v)
		c.sources[key] = SourceEnv
	}
	return nil
}

// envTransform converts environment variable names to config keys and
// drops variables that do not name a known key.
// Example: CARA_MIN_WORDS -> MIN_WORDS
func envTransform(s string) string {
	key := strings.ToUpper(strings.TrimPrefix(s, EnvPrefix))
	if !IsKnownKey(key) {
		return ""
	}
	return key
}

// Get returns the value for key, or def when the key is unset.
func (c *Config) Get(key, def string) string {
	if !c.k.Exists(key) {
		return def
	}
	return stringify(c.k.Get(key))
}

// Lookup returns the value for key and whether it is set.
func (c *Config) Lookup(key string) (string, bool) {
	if !c.k.Exists(key) {
		return "", false
	}
	return stringify(c.k.Get(key)), true
}

// Set overrides key with value after validating it against the schema.
func (c *Config) Set(key, value string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	if err := ValidateValue(key, value); err != nil {
		return err
	}
	c.k.Set(key, value)
	c.sources[key] = SourceOverride
	return nil
}

// Source reports where the value of key came from.
func (c *Config) Source(key string) ConfigSource {
	return c.sources[key]
}

// File returns the config file that was loaded, or "" when none was.
func (c *Config) File() string {
	return c.file
}

// Keys returns every set key in alphabetical order.
func (c *Config) Keys() []string {
	keys := c.k.Keys()
	sort.Strings(keys)
	return keys
}

// stringify renders a parsed config value as the string form the rest of
// cara works with. YAML and JSON lists become comma separated values.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}

// fileExists returns true if the path exists and is not a directory
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// NotFoundError reports an explicitly requested config file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}
