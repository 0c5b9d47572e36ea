package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sofmeright/uxlint/src/lint"
)

// CI environment detection.

func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// GitLab collapsible section helpers. Both are no-ops outside GitLab CI.

func SectionStart(w io.Writer, id, name string) {
	if !IsGitLabCI() {
		return
	}
	fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", time.Now().Unix(), id, name)
}

func SectionEnd(w io.Writer, id string) {
	if !IsGitLabCI() {
		return
	}
	fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", time.Now().Unix(), id)
}

// JUnit XML types for CI test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitFile is the report file name inside the report directory.
const JUnitFile = "uxlint.xml"

// inlineCase names the test case for results that have no file.
const inlineCase = "<stdin>"

// BuildJUnit groups results into one suite per linter and one case per file.
// A case fails when any of its results is an error; warnings are listed in
// the case's system-out.
func BuildJUnit(results []lint.Result, linters []string, elapsed time.Duration) JUnitTestSuites {
	byLinter := make(map[string]map[string][]lint.Result, len(linters))
	files := map[string]bool{}
	var order []string
	for _, r := range results {
		file := r.File
		if file == "" {
			file = inlineCase
		}
		if byLinter[r.Plugin] == nil {
			byLinter[r.Plugin] = map[string][]lint.Result{}
		}
		byLinter[r.Plugin][file] = append(byLinter[r.Plugin][file], r)
		if !files[file] {
			files[file] = true
			order = append(order, file)
		}
	}

	names := append([]string(nil), linters...)
	for plugin := range byLinter {
		if !contains(names, plugin) {
			names = append(names, plugin)
		}
	}

	perSuite := "0.000"
	if len(names) > 0 {
		perSuite = fmt.Sprintf("%.3f", elapsed.Seconds()/float64(len(names)))
	}

	root := JUnitTestSuites{
		Name: "uxlint",
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}
	for _, name := range names {
		suite := JUnitTestSuite{Name: "uxlint/" + name, Time: perSuite}
		for _, file := range order {
			tc := JUnitTestCase{
				Name:      file,
				Classname: "uxlint." + name,
				Time:      "0.000",
			}
			var errs, warns []string
			for _, r := range byLinter[name][file] {
				line := fmt.Sprintf("  %d:%d [%s] %s (%s)", r.Line, r.Character, r.Type, r.Description, r.Code)
				if r.Type == lint.TypeError {
					errs = append(errs, line)
				} else {
					warns = append(warns, line)
				}
			}
			if len(errs) > 0 {
				tc.Failure = &JUnitFailure{
					Message: fmt.Sprintf("%d error(s) in %s", len(errs), file),
					Type:    string(lint.TypeError),
					Body:    strings.Join(errs, "\n"),
				}
				suite.Failures++
			}
			if len(warns) > 0 {
				tc.SystemOut = strings.Join(warns, "\n")
			}
			suite.Cases = append(suite.Cases, tc)
			suite.Tests++
		}
		root.Tests += suite.Tests
		root.Failures += suite.Failures
		root.Suites = append(root.Suites, suite)
	}
	return root
}

// WriteJUnit writes results as JUnit XML to dir/uxlint.xml and returns the
// path written.
func WriteJUnit(dir string, results []lint.Result, linters []string, elapsed time.Duration) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	path := filepath.Join(dir, JUnitFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := EncodeJUnit(f, BuildJUnit(results, linters, elapsed)); err != nil {
		return "", err
	}
	return path, nil
}

// EncodeJUnit writes the XML header and the indented document.
func EncodeJUnit(w io.Writer, root JUnitTestSuites) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
