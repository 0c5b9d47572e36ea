package lint

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// CollectOptions narrows which files ReadFiles returns.
type CollectOptions struct {
	// Exclude drops files matching any of these globs. Patterns with "/"
	// or "**" match the full path, others match the base name.
	Exclude []string
	// RespectGitignore drops files ignored by the enclosing git worktree.
	RespectGitignore bool
}

// ReadFiles resolves glob patterns to regular files and reads them.
//
// Patterns matching nothing, and malformed patterns, contribute no files
// rather than failing the call. Directories and other non-regular files
// are skipped. Reads run concurrently; the first read failure fails the
// whole call.
func ReadFiles(ctx context.Context, patterns []string, opts CollectOptions) ([]FileInfo, error) {
	paths := resolvePatterns(patterns)

	if len(opts.Exclude) > 0 {
		kept := paths[:0]
		for _, p := range paths {
			if !excluded(opts.Exclude, p) {
				kept = append(kept, p)
			}
		}
		paths = kept
	}

	if opts.RespectGitignore && len(paths) > 0 {
		paths = filterGitignored(paths)
	}

	if len(paths) == 0 {
		return []FileInfo{}, nil
	}

	files := make([]FileInfo, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU() * 2)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("could not read file %s: %w", p, err)
			}
			files[i] = FileInfo{Path: p, Contents: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// resolvePatterns expands patterns into a sorted, deduplicated list of
// regular file paths.
func resolvePatterns(patterns []string) []string {
	seen := map[string]bool{}
	var out []string

	add := func(p string) {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			return
		}
		clean := filepath.Clean(p)
		if seen[clean] {
			return
		}
		seen[clean] = true
		out = append(out, clean)
	}

	for _, raw := range patterns {
		pattern := normalizeSlashPath(raw)
		if !validPattern(pattern) {
			slog.Debug("ignoring malformed file pattern", "pattern", raw)
			continue
		}
		if !hasMeta(pattern) {
			add(filepath.FromSlash(pattern))
			continue
		}
		for _, p := range expandGlob(pattern) {
			add(p)
		}
	}

	sort.Strings(out)
	return out
}

// expandGlob returns the regular files matching pattern. Files inside
// hidden directories below the pattern's static base are left out.
func expandGlob(pattern string) []string {
	matches, err := doublestar.FilepathGlob(filepath.FromSlash(pattern), doublestar.WithFilesOnly())
	if err != nil {
		slog.Debug("ignoring file pattern", "pattern", pattern, "err", err)
		return nil
	}
	base, _ := doublestar.SplitPattern(pattern)
	kept := matches[:0]
	for _, m := range matches {
		if !inHiddenDir(base, m) {
			kept = append(kept, m)
		}
	}
	return kept
}

// ExpandDirs rewrites directory arguments into recursive patterns, so
// "src" means every file below src. Other arguments pass through.
func ExpandDirs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !hasMeta(arg) {
			if info, err := os.Stat(arg); err == nil && info.IsDir() {
				out = append(out, strings.TrimRight(filepath.ToSlash(arg), "/")+"/**")
				continue
			}
		}
		out = append(out, arg)
	}
	return out
}
