package lint

import (
	"path/filepath"
	"testing"
)

func TestMatchGlobPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.js", "app.js", true},
		{"*.js", "src/app.js", false},
		{"src/**/*.js", "src/app.js", true},
		{"src/**/*.js", "src/a/b/app.js", true},
		{"src/**/*.js", "lib/app.js", false},
		{"src/**", "src/a/b/c.html", true},
		{"**/*.html", "a/b/c.html", true},
		{"**/*.html", "c.html", true},
		{"s?c/*.js", "src/app.js", true},
		{"src/[ab].js", "src/c.js", false},
		{"{src,lib}/*.js", "lib/app.js", true},
		{"src/[a-", "src/a", false},
	}
	for _, tt := range tests {
		if got := matchGlob(tt.pattern, tt.path); got != tt.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestValidPattern(t *testing.T) {
	for _, p := range []string{"*.js", "src/**/*.js", "a/[bc]/d"} {
		if !validPattern(p) {
			t.Errorf("validPattern(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"", "[", "src/[a-/x.js"} {
		if validPattern(p) {
			t.Errorf("validPattern(%q) = true, want false", p)
		}
	}
}

func TestInHiddenDir(t *testing.T) {
	tests := []struct {
		base  string
		match string
		want  bool
	}{
		{"src", "src/a.js", false},
		{"src", "src/.cache/a.js", true},
		{"src", "src/x/.git/y/a.js", true},
		{"src", "src/.eslintrc.js", false},
		{"src/.cache", "src/.cache/a.js", false},
		{".", ".hidden/a.js", true},
		{"", "a.js", false},
	}
	for _, tt := range tests {
		if got := inHiddenDir(tt.base, filepath.FromSlash(tt.match)); got != tt.want {
			t.Errorf("inHiddenDir(%q, %q) = %v, want %v", tt.base, tt.match, got, tt.want)
		}
	}
}

func TestExcluded(t *testing.T) {
	patterns := []string{"*.min.js", "vendor/**"}
	if !excluded(patterns, "src/app.min.js") {
		t.Error("base-name pattern should exclude src/app.min.js")
	}
	if !excluded(patterns, "./vendor/lib/x.js") {
		t.Error("path pattern should exclude vendor/lib/x.js")
	}
	if excluded(patterns, "src/app.js") {
		t.Error("src/app.js should not be excluded")
	}
}
