package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ryotapoi/linkconv/internal/core"
)

const (
	// FileName is the per-vault config file at the vault root.
	FileName = "linkconv.yaml"
	// DataDir holds generated state (the file index) inside the vault.
	DataDir = ".linkconv"
)

// ErrInvalidFormat is returned when final_link_format names no known style.
var ErrInvalidFormat = errors.New("invalid final_link_format")

// Config represents the merged linkconv configuration.
type Config struct {
	FinalLinkFormat     string   `yaml:"final_link_format" default:"not-change"`
	KeepMtime           bool     `yaml:"keep_mtime"`
	SkipFrontmatterKeys []string `yaml:"skip_frontmatter_keys" default:"[\"excalidraw-plugin\",\"kanban-plugin\"]"`
	ExcludePaths        []string `yaml:"exclude_paths"`
	SkipCode            bool     `yaml:"skip_code"`
	UseIndex            bool     `yaml:"use_index"`
	LogLevel            string   `yaml:"log_level" default:"info"`

	// Sources lists the files that were merged, lowest precedence first.
	Sources []string `yaml:"-"`
}

// UserConfigPath returns the per-user config file.
// Can be overridden for testing.
var UserConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "linkconv", "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	c := new(Config)
	// Tags are static; Set only fails on malformed tags.
	_ = defaults.Set(c)
	return c
}

// Load merges the defaults, the user config and the vault's linkconv.yaml,
// in that order. Missing files are skipped.
func Load(vaultPath string) (*Config, error) {
	c := new(Config)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	for _, p := range []string{UserConfigPath(), filepath.Join(vaultPath, FileName)} {
		ok, err := c.merge(p)
		if err != nil {
			return nil, err
		}
		if ok {
			c.Sources = append(c.Sources, p)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// merge overlays the keys present in the YAML file at p onto c.
func (c *Config) merge(p string) (bool, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "read config file %s failed", p)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return false, errors.Wrapf(err, "parse config file %s failed", p)
	}
	return true, nil
}

// Validate checks the format name and the exclude patterns.
func (c *Config) Validate() error {
	if _, err := c.Format(); err != nil {
		return err
	}
	return validateGlobPatterns(c.ExcludePaths)
}

// Format returns the configured final link format.
func (c *Config) Format() (core.FormatPreference, error) {
	p, err := core.ParseFormatPreference(c.FinalLinkFormat)
	if err != nil {
		return core.FormatUnchanged, errors.Wrapf(ErrInvalidFormat, "%q", c.FinalLinkFormat)
	}
	return p, nil
}

// AddExcludes appends extra exclude globs, e.g. from the command line.
func (c *Config) AddExcludes(patterns []string) error {
	if err := validateGlobPatterns(patterns); err != nil {
		return err
	}
	c.ExcludePaths = append(c.ExcludePaths, patterns...)
	return nil
}

// Excluded reports whether the vault-relative path matches an exclude glob.
// The data directory is always excluded.
func (c *Config) Excluded(p string) bool {
	if p == DataDir || strings.HasPrefix(p, DataDir+"/") {
		return true
	}
	for _, g := range c.ExcludePaths {
		if globMatch(g, p) {
			return true
		}
	}
	return false
}

// FilterExcluded removes files matching any exclude glob.
func (c *Config) FilterExcluded(files []string) []string {
	result := make([]string, 0, len(files))
	for _, f := range files {
		if !c.Excluded(f) {
			result = append(result, f)
		}
	}
	return result
}

// validateGlobPatterns checks that none of the patterns use unsupported character classes.
func validateGlobPatterns(patterns []string) error {
	for _, p := range patterns {
		if strings.Contains(p, "[") {
			return errors.Errorf("unsupported glob pattern (character class): %s", p)
		}
	}
	return nil
}

// globMatch implements SQLite GLOB semantics in Go.
// '*' matches any sequence of characters (including '/').
// '?' matches exactly one character.
// '[' is treated as a literal character (character classes not supported).
func globMatch(pattern, s string) bool {
	return globMatchImpl([]rune(pattern), []rune(s))
}

func globMatchImpl(pattern, s []rune) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if globMatchImpl(pattern, s[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(s) == 0 {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		default:
			if len(s) == 0 || pattern[0] != s[0] {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		}
	}
	return len(s) == 0
}
