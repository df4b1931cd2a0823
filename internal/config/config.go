// Package config loads and writes the .todoscan project configuration.
//
// Project settings live in .todoscan.toml (or .todoscan.yaml) at the
// scan root; environment variables with the TODOSCAN_ prefix override
// file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// ConfigFileName is the canonical project config file.
const ConfigFileName = ".todoscan.toml"

// CheckConfig holds the policy thresholds consumed by the check command.
type CheckConfig struct {
	// Max caps the total number of annotations; nil means unlimited.
	Max *int `mapstructure:"max" toml:"max,omitempty"`
	// MaxNew caps annotations added relative to a base ref.
	MaxNew *int `mapstructure:"max_new" toml:"max_new,omitempty"`
	// BlockTags fails the check when any listed tag appears at all.
	BlockTags []string `mapstructure:"block_tags" toml:"block_tags"`
}

// WatchConfig tunes the watch subsystem.
type WatchConfig struct {
	// DebounceMs is the coalescing window for filesystem events.
	DebounceMs int `mapstructure:"debounce_ms" toml:"debounce_ms"`
}

// Config is the resolved project configuration. Consumers treat it as
// an opaque value; only TagsPattern/CompilePattern interpret the tag
// vocabulary.
type Config struct {
	Tags            []string    `mapstructure:"tags" toml:"tags"`
	ExcludeDirs     []string    `mapstructure:"exclude_dirs" toml:"exclude_dirs"`
	ExcludePatterns []string    `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
	Check           CheckConfig `mapstructure:"check" toml:"check"`
	Watch           WatchConfig `mapstructure:"watch" toml:"watch"`
}

// DefaultDebounceMs is used when the config does not set a window.
const DefaultDebounceMs = 300

// Default returns the configuration used when no project file exists.
func Default() *Config {
	return &Config{
		Tags:            []string{"TODO", "FIXME", "HACK", "XXX", "BUG", "NOTE"},
		ExcludeDirs:     []string{".git", "node_modules", "target", "vendor", "dist"},
		ExcludePatterns: []string{},
		Watch:           WatchConfig{DebounceMs: DefaultDebounceMs},
	}
}

// Load resolves the configuration for a scan root. A missing config
// file is not an error; defaults apply. A malformed file is.
func Load(root string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".todoscan")
	v.AddConfigPath(root)
	v.SetEnvPrefix("TODOSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config in %s: %w", root, err)
		}
		return cfg, nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", v.ConfigFileUsed(), err)
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = Default().Tags
	}
	if cfg.Watch.DebounceMs <= 0 {
		cfg.Watch.DebounceMs = DefaultDebounceMs
	}
	return cfg, nil
}

// TagsPattern builds the line-scanning regex source for the configured
// tag vocabulary. Capture groups: 1=tag, 2=author, 3=priority bangs,
// 4=message.
func (c *Config) TagsPattern() string {
	quoted := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	return fmt.Sprintf(`(?i)\b(%s)(?:\(([^)]*)\))?\s*:\s*(!{1,2})?\s*(.*)`, strings.Join(quoted, "|"))
}

// CompilePattern compiles the tag pattern. A failure here indicates a
// bad configuration and is fatal to the caller.
func (c *Config) CompilePattern() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.TagsPattern())
	if err != nil {
		return nil, fmt.Errorf("invalid tags pattern %q: %w", c.TagsPattern(), err)
	}
	return re, nil
}

// ExcludeRegexps compiles the configured exclude patterns. Invalid
// patterns are silently dropped rather than failing the caller.
func (c *Config) ExcludeRegexps() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(c.ExcludePatterns))
	for _, p := range c.ExcludePatterns {
		if re, err := regexp.Compile(p); err == nil {
			out = append(out, re)
		}
	}
	return out
}

// Save writes the config as TOML to root/.todoscan.toml.
func (c *Config) Save(root string) error {
	path := filepath.Join(root, ConfigFileName)
	f, err := os.Create(path) // #nosec G304 - path is derived from the user-chosen root
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
