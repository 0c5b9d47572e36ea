// Package config loads uxlint configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sofmeright/uxlint/src/lint"
)

// DefaultFile is loaded when no --extend file is given and it exists.
const DefaultFile = ".uxlint.yml"

// LinterConfig holds per-linter overrides.
type LinterConfig struct {
	// Enabled overrides the linter's default; nil keeps it.
	Enabled *bool
	Options map[string]any
}

// Config is one configuration file, or several layered together.
type Config struct {
	Language  string
	Verbose   bool
	Requires  string
	Exclude   []string
	Gitignore bool
	Linters   map[string]LinterConfig
	// Unknown lists top-level keys that were neither recognized nor usable
	// as linter options.
	Unknown []string
}

// LoadOptions controls LoadFile.
type LoadOptions struct {
	// IgnoreErrors returns an empty config instead of failing on a
	// missing or malformed file.
	IgnoreErrors bool
}

// New returns an empty config.
func New() *Config {
	return &Config{Linters: map[string]LinterConfig{}}
}

// LoadFile reads and decodes one file. The format follows the extension:
// .toml is TOML, everything else is YAML, which also accepts JSON.
func LoadFile(path string, opts LoadOptions) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		if opts.IgnoreErrors {
			return New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	raw, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg, err := fromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Load layers files in order, later files winning. With no files it
// loads DefaultFile when present and returns an empty config otherwise.
func Load(paths []string, opts LoadOptions) (*Config, error) {
	if len(paths) == 0 {
		if _, err := os.Stat(DefaultFile); errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		paths = []string{DefaultFile}
	}
	cfg := New()
	for _, p := range paths {
		next, err := LoadFile(p, opts)
		if err != nil {
			return nil, err
		}
		cfg = cfg.Merge(next)
	}
	return cfg, nil
}

func decode(path string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json", ".hjson":
		if err := hjson.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// fromMap builds a Config from a decoded document. Top-level keys other
// than the known ones are taken as linter options when they hold a map,
// the flat layout older configuration files use.
func fromMap(raw map[string]any) (*Config, error) {
	cfg := New()
	flat := map[string]map[string]any{}
	var errs []error
	for key, v := range raw {
		switch key {
		case "language":
			s, ok := v.(string)
			if !ok {
				errs = append(errs, fmt.Errorf("language: want a string, got %T", v))
			}
			cfg.Language = s
		case "verbose":
			b, ok := v.(bool)
			if !ok {
				errs = append(errs, fmt.Errorf("verbose: want a boolean, got %T", v))
			}
			cfg.Verbose = b
		case "requires":
			s, ok := v.(string)
			if !ok {
				errs = append(errs, fmt.Errorf("requires: want a string, got %T", v))
			}
			cfg.Requires = s
		case "gitignore":
			b, ok := v.(bool)
			if !ok {
				errs = append(errs, fmt.Errorf("gitignore: want a boolean, got %T", v))
			}
			cfg.Gitignore = b
		case "exclude":
			list, err := stringList(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("exclude: %w", err))
			}
			cfg.Exclude = list
		case "linters":
			m, ok := toStringMap(v)
			if !ok {
				errs = append(errs, fmt.Errorf("linters: want a map, got %T", v))
				continue
			}
			for name, entry := range m {
				lc, err := linterConfig(entry)
				if err != nil {
					errs = append(errs, fmt.Errorf("linters.%s: %w", name, err))
					continue
				}
				cfg.Linters[name] = lc
			}
		default:
			if m, ok := toStringMap(v); ok {
				flat[key] = m
				continue
			}
			cfg.Unknown = append(cfg.Unknown, key)
		}
	}
	// Entries under "linters" take precedence over the flat layout.
	for name, m := range flat {
		if _, set := cfg.Linters[name]; !set {
			cfg.Linters[name] = LinterConfig{Options: m}
		}
	}
	sort.Strings(cfg.Unknown)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func linterConfig(v any) (LinterConfig, error) {
	var lc LinterConfig
	switch t := v.(type) {
	case bool:
		lc.Enabled = &t
		return lc, nil
	case nil:
		return lc, nil
	}
	m, ok := toStringMap(v)
	if !ok {
		return lc, fmt.Errorf("want a map or boolean, got %T", v)
	}
	for key, val := range m {
		switch key {
		case "enabled":
			b, ok := val.(bool)
			if !ok {
				return lc, fmt.Errorf("enabled: want a boolean, got %T", val)
			}
			lc.Enabled = &b
		case "options":
			opts, ok := toStringMap(val)
			if !ok && val != nil {
				return lc, fmt.Errorf("options: want a map, got %T", val)
			}
			lc.Options = opts
		default:
			return lc, fmt.Errorf("unknown key %q (want enabled or options)", key)
		}
	}
	return lc, nil
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: want a string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("want a list of strings, got %T", v)
}

// Merge returns c with other layered on top. Scalars from other win when
// set, exclude lists accumulate and each linter entry is replaced whole.
func (c *Config) Merge(other *Config) *Config {
	out := New()
	out.Language = c.Language
	out.Verbose = c.Verbose || other.Verbose
	out.Requires = c.Requires
	out.Gitignore = c.Gitignore || other.Gitignore
	out.Exclude = append(append([]string{}, c.Exclude...), other.Exclude...)
	out.Unknown = append(append([]string{}, c.Unknown...), other.Unknown...)
	if other.Language != "" {
		out.Language = other.Language
	}
	if other.Requires != "" {
		out.Requires = other.Requires
	}
	for name, lc := range c.Linters {
		out.Linters[name] = lc
	}
	for name, lc := range other.Linters {
		out.Linters[name] = lc
	}
	return out
}

// Options converts the config into run options.
func (c *Config) Options() lint.Options {
	opts := lint.Options{
		Language: c.Language,
		Verbose:  c.Verbose,
		Linters:  map[string]map[string]any{},
		Collect: lint.CollectOptions{
			Exclude:          append([]string{}, c.Exclude...),
			RespectGitignore: c.Gitignore,
		},
	}
	for name, lc := range c.Linters {
		if lc.Options != nil {
			opts.Linters[name] = lc.Options
		}
	}
	return opts
}

// Selection returns the per-linter enablement overrides.
func (c *Config) Selection() lint.Selection {
	sel := lint.Selection{Enabled: map[string]bool{}}
	for name, lc := range c.Linters {
		if lc.Enabled != nil {
			sel.Enabled[name] = *lc.Enabled
		}
	}
	return sel
}
