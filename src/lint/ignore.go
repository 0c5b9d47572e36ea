package lint

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// filterGitignored drops paths ignored by the git worktree enclosing the
// current directory. Outside a worktree every path is kept.
func filterGitignored(paths []string) []string {
	cwd, err := os.Getwd()
	if err != nil {
		return paths
	}
	return filterGitignoredIn(cwd, paths)
}

// filterGitignoredIn is filterGitignored for the worktree enclosing dir.
func filterGitignoredIn(dir string, paths []string) []string {
	matcher, root, ok := gitignoreMatcher(dir)
	if !ok {
		return paths
	}

	kept := paths[:0]
	for _, p := range paths {
		if !ignoredBy(matcher, root, p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// gitignoreMatcher loads every .gitignore in the worktree containing dir.
func gitignoreMatcher(dir string) (gitignore.Matcher, string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("gitignore: not a git repository, keeping all files", "dir", dir)
		return nil, "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		slog.Debug("gitignore: no worktree, keeping all files", "err", err)
		return nil, "", false
	}
	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		slog.Debug("gitignore: reading patterns failed, keeping all files", "err", err)
		return nil, "", false
	}
	return gitignore.NewMatcher(patterns), wt.Filesystem.Root(), true
}

func ignoredBy(m gitignore.Matcher, root, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return m.Match(strings.Split(filepath.ToSlash(rel), "/"), false)
}
