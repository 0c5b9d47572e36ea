package lint

import "context"

// Linter wraps one external linting engine behind a uniform contract.
//
// Check and Fix resolve file patterns with ReadFiles and only consider
// files the engine understands. CheckCode and FixCode operate on inline
// text and return immediately when opts.Language names a language the
// engine does not parse. Fix persists corrections to disk and returns the
// findings that remain afterwards. Linters without fixing capability
// implement Fix as Check and FixCode as the identity.
type Linter interface {
	Name() string
	DefaultEnabled() bool
	Check(ctx context.Context, patterns []string, opts LinterOptions) ([]Result, error)
	CheckCode(ctx context.Context, code string, opts LinterOptions) ([]Result, error)
	Fix(ctx context.Context, patterns []string, opts LinterOptions) ([]Result, error)
	FixCode(ctx context.Context, code string, opts LinterOptions) (string, error)
}
