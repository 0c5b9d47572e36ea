package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/uxlint/src/config"
	"github.com/sofmeright/uxlint/src/lint"
	"github.com/sofmeright/uxlint/src/lint/linters"
	"github.com/sofmeright/uxlint/src/output"
	"github.com/sofmeright/uxlint/src/telemetry"
	"github.com/sofmeright/uxlint/src/version"
)

const (
	formatStylish = "stylish"
	formatJSON    = "json"
	formatJUnit   = "junit"
)

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runLint(cmd *cobra.Command, f *flags, args []string) error {
	switch f.format {
	case formatStylish, formatJSON, formatJUnit:
	default:
		return fmt.Errorf("unknown format %q (want stylish, json or junit)", f.format)
	}

	logger := newLogger(cmd.ErrOrStderr(), f.verbose)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	if f.trace {
		shutdown, err := telemetry.Init(ctx, telemetry.Config{Writer: cmd.ErrOrStderr(), Version: version.Version, Metrics: true})
		if err != nil {
			return fmt.Errorf("starting telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown failed", "error", err)
			}
		}()
	}

	cfg, err := config.Load(f.extend, config.LoadOptions{})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cmd, f, cfg)

	registry := linters.Default()
	warnings, err := config.Validate(cfg, registry.Names(), version.Version)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn("config", "warning", w)
	}

	sel := cfg.Selection()
	sel.Only = f.only
	sel.Skip = f.skip
	selected, err := registry.Select(sel)
	if err != nil {
		return err
	}

	runner := lint.NewRunner(selected...)
	runner.Logger = logger
	opts := cfg.Options()

	names := make([]string, len(selected))
	for i, l := range selected {
		names[i] = l.Name()
	}
	logger.Debug("linters selected", "linters", names)

	start := time.Now()
	var rep lint.Report
	if f.stdin {
		code, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		if f.fix {
			fixed, err := runner.FixCode(ctx, string(code), opts)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), fixed)
			return err
		}
		rep, err = runner.Run(ctx, lint.OpCheckCode, lint.Input{Code: string(code)}, opts)
		if err != nil {
			return err
		}
	} else {
		patterns := args
		if len(patterns) == 0 {
			patterns = DefaultPatterns
		}
		patterns = lint.ExpandDirs(patterns)
		logger.Debug("resolving files", "patterns", patterns)

		op := lint.OpCheck
		if f.fix {
			op = lint.OpFix
		}
		rep, err = runner.Run(ctx, op, lint.Input{Patterns: patterns}, opts)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	for _, st := range rep.Stats {
		logger.Debug("linter finished",
			"linter", st.Name,
			"results", st.Results,
			"errors", st.Errors,
			"warnings", st.Warnings,
			"elapsed", st.Elapsed.Round(time.Millisecond),
		)
	}

	if err := report(cmd.OutOrStdout(), f, opts, names, rep.Results, elapsed); err != nil {
		return err
	}

	if n := len(rep.Results); n > 0 {
		return &exitError{code: exitCode(n)}
	}
	return nil
}

// applyFlags layers explicitly set command line flags over the config.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("language") {
		cfg.Language = f.language
	}
	if fl.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if fl.Changed("gitignore") {
		cfg.Gitignore = f.gitignore
	}
}

func report(out io.Writer, f *flags, opts lint.Options, linterNames []string, results []lint.Result, elapsed time.Duration) error {
	// CI always gets a junit report.
	if f.format == formatJUnit || output.IsCI() {
		path, err := output.WriteJUnit(f.junitDir, results, linterNames, elapsed)
		if err != nil {
			return err
		}
		slog.Info("junit report written", "path", path)
	}
	if f.format == formatJSON {
		return output.JSON(out, results)
	}

	color := false
	if file, ok := out.(*os.File); ok {
		color = output.UseColor(file)
	}
	output.SectionStart(out, "uxlint", "Lint")
	err := output.Stylish(out, results, output.StylishOptions{Verbose: opts.Verbose, Color: color})
	output.SectionEnd(out, "uxlint")
	return err
}
