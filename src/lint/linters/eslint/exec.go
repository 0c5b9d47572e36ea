package eslint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sofmeright/uxlint/src/lint"
)

// Exec drives an external eslint binary through its JSON formatter.
type Exec struct {
	// Command is the executable and leading arguments, e.g. ["npx", "eslint"].
	Command []string
	// Args are appended before the file list.
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
}

// LintFiles runs eslint over the files' paths.
func (e *Exec) LintFiles(ctx context.Context, files []lint.FileInfo, settings map[string]any, fix bool) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, nil
	}
	args := e.args(settings, fix)
	for _, f := range files {
		args = append(args, f.Path)
	}
	out, err := e.run(ctx, args, nil)
	if err != nil {
		return nil, err
	}
	return decodeResults(out)
}

// LintText runs eslint on stdin.
func (e *Exec) LintText(ctx context.Context, text, filename string, settings map[string]any, fix bool) (FileResult, error) {
	args := append(e.args(settings, fix), "--stdin")
	if filename != "" {
		args = append(args, "--stdin-filename", filename)
	}
	out, err := e.run(ctx, args, strings.NewReader(text))
	if err != nil {
		return FileResult{}, err
	}
	results, err := decodeResults(out)
	if err != nil {
		return FileResult{}, err
	}
	if len(results) == 0 {
		return FileResult{FilePath: filename}, nil
	}
	return results[0], nil
}

// args builds the shared flags. Fixes are always computed as a dry run;
// the adapter decides what to persist.
func (e *Exec) args(settings map[string]any, fix bool) []string {
	args := append([]string{}, e.Command[1:]...)
	args = append(args, "--format", "json")
	if fix {
		args = append(args, "--fix-dry-run")
	}
	if raw, ok := settings["rules"].(map[string]any); ok {
		for name, v := range raw {
			data, err := json.Marshal(map[string]any{name: v})
			if err != nil {
				continue
			}
			args = append(args, "--rule", string(data))
		}
	}
	return append(args, e.Args...)
}

// run executes eslint. Exit status 1 means problems were found and is not
// an error; anything else non-zero is.
func (e *Exec) run(ctx context.Context, args []string, stdin *strings.Reader) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	cmd.Dir = e.Dir
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = strings.TrimSpace(string(out))
			}
			return nil, fmt.Errorf("running %s: %w: %s", strings.Join(e.Command, " "), err, msg)
		}
	}
	return out, nil
}

func decodeResults(out []byte) ([]FileResult, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}
	var results []FileResult
	if err := json.Unmarshal(out, &results); err != nil {
		return nil, fmt.Errorf("decoding eslint output: %w", err)
	}
	return results, nil
}
