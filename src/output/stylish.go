package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/sofmeright/uxlint/src/lint"
)

const (
	symbolError   = "✖"
	symbolWarning = "⚠"
	symbolSuccess = "✔"
)

// StylishOptions controls the human-readable report.
type StylishOptions struct {
	// Verbose appends the rule code in parentheses to every row.
	Verbose bool
	Color   bool
}

type palette struct {
	color   bool
	gray    lipgloss.Style
	red     lipgloss.Style
	blue    lipgloss.Style
	yellow  lipgloss.Style
	green   lipgloss.Style
	heading lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		color:   color,
		gray:    r.NewStyle().Foreground(lipgloss.Color("8")),
		red:     r.NewStyle().Foreground(lipgloss.Color("1")),
		blue:    r.NewStyle().Foreground(lipgloss.Color("4")),
		yellow:  r.NewStyle().Foreground(lipgloss.Color("3")),
		green:   r.NewStyle().Foreground(lipgloss.Color("2")),
		heading: r.NewStyle().Underline(true),
	}
}

func (p palette) paint(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Stylish writes results grouped by file with aligned columns, followed by
// an error and warning tally. results is sorted in place.
func Stylish(w io.Writer, results []lint.Result, opts StylishOptions) error {
	p := newPalette(w, opts.Color)
	lint.Sort(results)

	rows := make([][]string, len(results))
	headers := make([]string, len(results))
	errCount, warnCount := 0, 0
	prev := ""
	for i, r := range results {
		desc := p.paint(p.blue, r.Description)
		if r.Type == lint.TypeError {
			desc = p.paint(p.red, r.Description)
			errCount++
		} else {
			warnCount++
		}
		row := []string{
			"",
			p.paint(p.gray, r.Plugin),
			p.paint(p.gray, r.Code),
			p.paint(p.gray, fmt.Sprintf("line %d", r.Line)),
			p.paint(p.gray, fmt.Sprintf("col %d", r.Character)),
			desc,
		}
		if opts.Verbose {
			row = append(row, p.paint(p.gray, "("+r.Code+")"))
		}
		if i == 0 || r.File != prev {
			headers[i] = r.File
		}
		prev = r.File
		rows[i] = row
	}

	var b strings.Builder
	for i, line := range alignRows(rows) {
		if headers[i] != "" {
			fmt.Fprintf(&b, "\n  %s\n", p.paint(p.heading, headers[i]))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if errCount+warnCount == 0 {
		fmt.Fprintf(&b, "%s No problems\n", p.paint(p.green, symbolSuccess))
	} else {
		if errCount > 0 {
			fmt.Fprintf(&b, "%s  %d %s\n", p.paint(p.red, symbolError), errCount, plural("error", errCount))
		}
		if warnCount > 0 {
			fmt.Fprintf(&b, "%s  %d %s\n", p.paint(p.yellow, symbolWarning), warnCount, plural("warning", warnCount))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// alignRows pads every column to its widest cell. Widths are measured
// without escape sequences.
func alignRows(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := lipgloss.Width(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	lines := make([]string, len(rows))
	for r, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			}
		}
		lines[r] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// UseColor reports whether f should get colored output.
// Respects NO_COLOR and TERM=dumb.
func UseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
