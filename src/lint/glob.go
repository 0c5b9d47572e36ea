package lint

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchGlob matches a slash pattern supporting "**", classes and {a,b}
// alternation against a slash path. Malformed patterns match nothing.
func matchGlob(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// hasMeta reports whether s contains glob metacharacters.
func hasMeta(s string) bool {
	return strings.ContainsAny(s, `*?[{\`)
}

// validPattern reports whether pattern is a well formed glob.
func validPattern(pattern string) bool {
	return pattern != "" && doublestar.ValidatePattern(pattern)
}

// inHiddenDir reports whether match sits inside a dot-directory below base.
func inHiddenDir(base, match string) bool {
	if base == "" {
		base = "."
	}
	rel, err := filepath.Rel(filepath.FromSlash(base), match)
	if err != nil {
		return false
	}
	segs := strings.Split(filepath.ToSlash(rel), "/")
	for _, seg := range segs[:len(segs)-1] {
		if seg != "." && seg != ".." && strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// normalizeSlashPath converts a path to forward slashes and strips leading "./".
func normalizeSlashPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	return p
}

// matchExcludePattern matches a single exclude pattern against a normalized path.
// Patterns containing "/" or "**" match against the full path; others match base name only.
func matchExcludePattern(pattern, normPath, baseName string) bool {
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") {
		return matchGlob(pattern, normPath)
	}
	return matchGlob(pattern, baseName)
}

// excluded reports whether path matches any exclude pattern.
func excluded(patterns []string, path string) bool {
	if len(patterns) == 0 {
		return false
	}
	normPath := normalizeSlashPath(path)
	baseName := filepath.Base(normPath)
	for _, pattern := range patterns {
		if matchExcludePattern(pattern, normPath, baseName) {
			return true
		}
	}
	return false
}
