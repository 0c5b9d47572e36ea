package lint

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Op selects what a Runner does.
type Op int

const (
	OpCheck Op = iota
	OpCheckCode
	OpFix
	OpFixCode
)

func (o Op) String() string {
	switch o {
	case OpCheck:
		return "check"
	case OpCheckCode:
		return "checkCode"
	case OpFix:
		return "fix"
	case OpFixCode:
		return "fixCode"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Input is either file patterns (check, fix) or inline text (checkCode, fixCode).
type Input struct {
	Patterns []string
	Code     string
}

// LinterStats holds per-linter statistics for one run.
type LinterStats struct {
	Name     string
	Results  int
	Errors   int
	Warnings int
	Elapsed  time.Duration
}

// Report is the outcome of Runner.Run. Code is only set for OpFixCode.
type Report struct {
	Results []Result
	Code    string
	Stats   []LinterStats
}

// Runner drives a fixed, ordered set of linters. It keeps no state
// between calls.
//
// Check operations run every linter concurrently and merge the results in
// sorted order. Fix operations run linters one at a time in order, since
// fixers write to the same files; FixCode threads the text through each
// fixer in turn. Any linter failure fails the whole call.
type Runner struct {
	Linters []Linter
	Logger  *slog.Logger
}

// NewRunner creates a runner over linters, in the order given.
func NewRunner(linters ...Linter) *Runner {
	return &Runner{Linters: linters}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Check lints files matching patterns.
func (r *Runner) Check(ctx context.Context, patterns []string, opts Options) ([]Result, error) {
	rep, err := r.Run(ctx, OpCheck, Input{Patterns: patterns}, opts)
	return rep.Results, err
}

// CheckCode lints inline text.
func (r *Runner) CheckCode(ctx context.Context, code string, opts Options) ([]Result, error) {
	rep, err := r.Run(ctx, OpCheckCode, Input{Code: code}, opts)
	return rep.Results, err
}

// Fix fixes files matching patterns and returns what could not be fixed.
func (r *Runner) Fix(ctx context.Context, patterns []string, opts Options) ([]Result, error) {
	rep, err := r.Run(ctx, OpFix, Input{Patterns: patterns}, opts)
	return rep.Results, err
}

// FixCode returns code with every linter's fixes applied.
func (r *Runner) FixCode(ctx context.Context, code string, opts Options) (string, error) {
	rep, err := r.Run(ctx, OpFixCode, Input{Code: code}, opts)
	return rep.Code, err
}

// CheckByLinter lints files and keys the results by linter name.
func (r *Runner) CheckByLinter(ctx context.Context, patterns []string, opts Options) (map[string][]Result, error) {
	perLinter, _, err := r.concurrent(ctx, OpCheck, Input{Patterns: patterns}, opts)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]Result, len(r.Linters))
	for i, l := range r.Linters {
		Sort(perLinter[i])
		out[l.Name()] = perLinter[i]
	}
	return out, nil
}

// Run dispatches op across all linters.
func (r *Runner) Run(ctx context.Context, op Op, in Input, opts Options) (Report, error) {
	switch op {
	case OpCheck, OpCheckCode:
		perLinter, stats, err := r.concurrent(ctx, op, in, opts)
		if err != nil {
			return Report{}, err
		}
		var merged []Result
		for _, res := range perLinter {
			merged = append(merged, res...)
		}
		Sort(merged)
		if merged == nil {
			merged = []Result{}
		}
		return Report{Results: merged, Stats: stats}, nil
	case OpFix:
		return r.fixFiles(ctx, in.Patterns, opts)
	case OpFixCode:
		return r.fixCode(ctx, in.Code, opts)
	default:
		return Report{}, fmt.Errorf("lint: unsupported operation %s", op)
	}
}

// concurrent runs op on every linter at once. Results land in per-linter
// slots so the merge never depends on completion order.
func (r *Runner) concurrent(ctx context.Context, op Op, in Input, opts Options) ([][]Result, []LinterStats, error) {
	perLinter := make([][]Result, len(r.Linters))
	stats := make([]LinterStats, len(r.Linters))

	g, gctx := errgroup.WithContext(ctx)
	for i, l := range r.Linters {
		g.Go(func() error {
			res, _, st, err := r.invoke(gctx, l, op, in, opts.For(l.Name()))
			if err != nil {
				return err
			}
			perLinter[i] = res
			stats[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return perLinter, stats, nil
}

// fixFiles runs each fixer to completion, disk writes included, before
// starting the next.
func (r *Runner) fixFiles(ctx context.Context, patterns []string, opts Options) (Report, error) {
	rep := Report{Results: []Result{}}
	for _, l := range r.Linters {
		res, _, st, err := r.invoke(ctx, l, OpFix, Input{Patterns: patterns}, opts.For(l.Name()))
		if err != nil {
			return Report{}, err
		}
		rep.Results = append(rep.Results, res...)
		rep.Stats = append(rep.Stats, st)
	}
	return rep, nil
}

// fixCode folds code through every fixer in order.
func (r *Runner) fixCode(ctx context.Context, code string, opts Options) (Report, error) {
	rep := Report{Results: []Result{}, Code: code}
	for _, l := range r.Linters {
		_, fixed, st, err := r.invoke(ctx, l, OpFixCode, Input{Code: rep.Code}, opts.For(l.Name()))
		if err != nil {
			return Report{}, err
		}
		rep.Code = fixed
		rep.Stats = append(rep.Stats, st)
	}
	return rep, nil
}

// invoke calls one linter operation with tracing, metrics and logging.
func (r *Runner) invoke(ctx context.Context, l Linter, op Op, in Input, lopts LinterOptions) ([]Result, string, LinterStats, error) {
	name := l.Name()
	ctx, span := startLinterSpan(ctx, name, op)
	start := time.Now()

	var (
		results []Result
		code    string
		err     error
	)
	switch op {
	case OpCheck:
		results, err = l.Check(ctx, in.Patterns, lopts)
	case OpCheckCode:
		results, err = l.CheckCode(ctx, in.Code, lopts)
	case OpFix:
		results, err = l.Fix(ctx, in.Patterns, lopts)
	case OpFixCode:
		code, err = l.FixCode(ctx, in.Code, lopts)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
	}

	st := LinterStats{Name: name, Results: len(results), Elapsed: time.Since(start)}
	for _, res := range results {
		if res.Type == TypeError {
			st.Errors++
		} else {
			st.Warnings++
		}
	}

	endLinterSpan(span, len(results), err)
	recordLinterMetrics(ctx, name, op, st.Elapsed, st, err)

	if err != nil {
		r.logger().Debug("linter failed", "linter", name, "op", op.String(), "err", err)
		return nil, "", st, err
	}
	r.logger().Debug("linter finished", "linter", name, "op", op.String(),
		"results", st.Results, "elapsed", st.Elapsed)
	return results, code, st, nil
}
