package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// MaxExitCode caps the result count used as the exit status. Shells
// reserve 126 and above.
const MaxExitCode = 125

// DefaultPatterns are linted when no files or directories are given.
var DefaultPatterns = []string{"src/**/*.js", "*.js"}

// flags holds everything parsed from the command line.
type flags struct {
	extend    []string
	fix       bool
	language  string
	stdin     bool
	format    string
	junitDir  string
	only      []string
	skip      []string
	gitignore bool
	timeout   time.Duration
	trace     bool
	verbose   bool
}

var lintFlags flags

// exitError carries a non-error exit status out of RunE.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var rootCmd = &cobra.Command{
	Use:   "uxlint [options] [file.js ...] [dir ...]",
	Short: "Run JavaScript, HTML and web component linters as one",
	Long: `uxlint runs eslint, htmlhint and the polymer component checks over the
given files and reports every finding in one sorted list.

Directories are linted recursively. With no arguments the patterns
src/**/*.js and *.js are used. The exit status is the number of findings.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLint(cmd, &lintFlags, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	fl := rootCmd.Flags()
	fl.StringArrayVar(&lintFlags.extend, "extend", nil, "layer a config file (repeatable, later files win)")
	fl.BoolVar(&lintFlags.fix, "fix", false, "automatically fix problems")
	fl.StringVar(&lintFlags.language, "language", "", "language of text read with --stdin (javascript, html)")
	fl.BoolVar(&lintFlags.stdin, "stdin", false, "lint source text read from stdin")
	fl.StringVar(&lintFlags.format, "format", formatStylish, "report format: stylish, json or junit")
	fl.StringVar(&lintFlags.junitDir, "junit-dir", ".uxlint/reports", "directory for junit reports")
	fl.StringSliceVar(&lintFlags.only, "linter", nil, "run only these linters (comma-separated)")
	fl.StringSliceVar(&lintFlags.skip, "no-linter", nil, "skip these linters (comma-separated)")
	fl.BoolVar(&lintFlags.gitignore, "gitignore", false, "skip files ignored by .gitignore")
	fl.DurationVar(&lintFlags.timeout, "timeout", 0, "overall deadline (0 means none)")
	fl.BoolVar(&lintFlags.trace, "trace", false, "export OpenTelemetry spans and metrics to stderr")
	rootCmd.PersistentFlags().BoolVarP(&lintFlags.verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command and returns the exit status.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %s\n", err)
	return 1
}

// exitCode maps a result count onto a process exit status.
func exitCode(results int) int {
	if results > MaxExitCode {
		return MaxExitCode
	}
	return results
}
