// Package config loads the optional autoinject.yaml file of a module.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the module root.
const FileName = "autoinject.yaml"

// DefaultCache is the manifest path used when the config does not set one.
const DefaultCache = ".autoinject.cache"

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("invalid config")

	// ErrVersion is returned when the tool version does not satisfy requires.
	ErrVersion = errors.New("tool version does not satisfy requires")
)

// Config is the contents of autoinject.yaml.
type Config struct {
	// Requires is a semver constraint on the tool version, e.g. ">= 1.2, < 2".
	Requires string `yaml:"requires"`

	// Exclude lists module-relative directory globs that are never scanned.
	// A pattern ending in "/..." also matches everything below it.
	Exclude []string `yaml:"exclude"`

	// Concurrency bounds the number of packages processed at once.
	Concurrency int `yaml:"concurrency"`

	// Cache is the module-relative manifest path.
	Cache string `yaml:"cache"`

	// Prune removes outputs of earlier runs that this run no longer produces.
	Prune *bool `yaml:"prune"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

// Load reads the config at path. A missing file yields Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filepath.ToSlash(path), err)
	}
	return c, nil
}

// Decode parses and validates a config document. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	var c Config
	if len(bytes.TrimSpace(b)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative, got %d", ErrInvalid, c.Concurrency)
	}
	if strings.TrimSpace(c.Requires) != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return fmt.Errorf("%w: requires %q: %w", ErrInvalid, c.Requires, err)
		}
	}
	for _, pat := range c.Exclude {
		if _, err := path.Match(strings.TrimSuffix(pat, "/..."), ""); err != nil {
			return fmt.Errorf("%w: exclude %q: %w", ErrInvalid, pat, err)
		}
	}
	if filepath.IsAbs(c.Cache) {
		return fmt.Errorf("%w: cache must be relative to the module root, got %q", ErrInvalid, c.Cache)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Concurrency == 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
	if c.Cache == "" {
		c.Cache = DefaultCache
	}
	if c.Prune == nil {
		prune := true
		c.Prune = &prune
	}
}

// PruneEnabled reports whether stale outputs should be removed.
func (c Config) PruneEnabled() bool { return c.Prune == nil || *c.Prune }

// CheckVersion verifies that version satisfies c.Requires.
// Development builds (empty or "dev") always pass.
func (c Config) CheckVersion(version string) error {
	if strings.TrimSpace(c.Requires) == "" || version == "" || version == "dev" {
		return nil
	}

	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("%w: requires %q: %w", ErrInvalid, c.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("parsing tool version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: version %s, requires %s", ErrVersion, v, c.Requires)
	}
	return nil
}

// Excluded reports whether the module-relative, slash-separated dir matches an exclude pattern.
func (c Config) Excluded(rel string) bool {
	for _, pat := range c.Exclude {
		if base, ok := strings.CutSuffix(pat, "/..."); ok {
			if rel == base || strings.HasPrefix(rel, base+"/") {
				return true
			}
			if ok, _ := path.Match(base, rel); ok {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
