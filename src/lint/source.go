package lint

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// LineIndex maps byte offsets in a source text to 1-based positions.
type LineIndex struct {
	src    string
	starts []int
}

// NewLineIndex indexes the line starts of src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// Lines returns the number of lines, counting a trailing empty line.
func (x *LineIndex) Lines() int { return len(x.starts) }

// LineStart returns the byte offset where line n (1-based) begins.
func (x *LineIndex) LineStart(n int) int {
	if n < 1 {
		return 0
	}
	if n > len(x.starts) {
		return len(x.src)
	}
	return x.starts[n-1]
}

// Line returns line n (1-based) without its terminator.
func (x *LineIndex) Line(n int) string {
	if n < 1 || n > len(x.starts) {
		return ""
	}
	start := x.starts[n-1]
	end := len(x.src)
	if n < len(x.starts) {
		end = x.starts[n] - 1
	}
	return strings.TrimSuffix(x.src[start:end], "\r")
}

// Position converts a byte offset to a line and a rune-based column.
func (x *LineIndex) Position(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.src) {
		offset = len(x.src)
	}
	i := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	return i + 1, utf8.RuneCountInString(x.src[x.starts[i]:offset]) + 1
}
