// Package linters declares the built-in linter set.
package linters

import (
	"github.com/sofmeright/uxlint/src/lint"
	"github.com/sofmeright/uxlint/src/lint/linters/eslint"
	"github.com/sofmeright/uxlint/src/lint/linters/htmlhint"
	"github.com/sofmeright/uxlint/src/lint/linters/polymer"
	"github.com/sofmeright/uxlint/src/lint/linters/secrets"
)

// Default returns a registry of every built-in linter. Registration order
// is the order fixers run in.
func Default() *lint.Registry {
	return lint.NewRegistry(
		eslint.New(),
		htmlhint.New(),
		polymer.New(),
		secrets.New(),
	)
}
