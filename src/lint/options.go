package lint

import "maps"

// Options configures one orchestrated run.
type Options struct {
	// Language hints what kind of inline text is being linted
	// ("javascript", "html", "css", ...). Linters that do not understand
	// the language skip the input.
	Language string
	// Verbose is consumed by reporters only.
	Verbose bool
	// Linters holds each linter's opaque settings, keyed by linter name.
	Linters map[string]map[string]any
	// Collect is applied whenever a linter resolves file patterns.
	Collect CollectOptions
}

// LinterOptions is what a single linter receives.
type LinterOptions struct {
	Language string
	Settings map[string]any
	Collect  CollectOptions
}

// For returns the options passed to the named linter. Settings is never nil.
func (o Options) For(name string) LinterOptions {
	settings := map[string]any{}
	if s, ok := o.Linters[name]; ok && s != nil {
		settings = s
	}
	return LinterOptions{Language: o.Language, Settings: settings, Collect: o.Collect}
}

// Merge layers other on top of o. Linter settings are replaced per linter,
// not merged key by key; scalar fields win when set in other and exclude
// lists accumulate.
func (o Options) Merge(other Options) Options {
	out := Options{
		Language: o.Language,
		Verbose:  o.Verbose || other.Verbose,
		Linters:  make(map[string]map[string]any, len(o.Linters)+len(other.Linters)),
		Collect: CollectOptions{
			Exclude:          append(append([]string{}, o.Collect.Exclude...), other.Collect.Exclude...),
			RespectGitignore: o.Collect.RespectGitignore || other.Collect.RespectGitignore,
		},
	}
	if other.Language != "" {
		out.Language = other.Language
	}
	maps.Copy(out.Linters, o.Linters)
	maps.Copy(out.Linters, other.Linters)
	return out
}

// AcceptsLanguage reports whether a linter supporting langs should process
// inline text declared as lang. An empty lang accepts everything.
func (o LinterOptions) AcceptsLanguage(langs ...string) bool {
	if o.Language == "" {
		return true
	}
	for _, l := range langs {
		if l == o.Language {
			return true
		}
	}
	return false
}

// String returns the named setting when it is a string.
func (o LinterOptions) String(key string) string {
	s, _ := o.Settings[key].(string)
	return s
}

// Map returns the named setting when it is a nested object.
func (o LinterOptions) Map(key string) map[string]any {
	switch m := o.Settings[key].(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out
	}
	return nil
}

// Strings returns the named setting as a string list, accepting a single
// string or a list of strings.
func (o LinterOptions) Strings(key string) []string {
	switch v := o.Settings[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
