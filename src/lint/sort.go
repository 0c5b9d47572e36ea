package lint

import (
	"cmp"
	"slices"
)

// Compare orders results by file, line, character, then plugin.
// The empty file name sorts before any real path.
func Compare(a, b Result) int {
	return cmp.Or(
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Character, b.Character),
		cmp.Compare(a.Plugin, b.Plugin),
	)
}

// Less reports whether a sorts before b.
func Less(a, b Result) bool { return Compare(a, b) < 0 }

// Sort orders results in place. It is stable, so records that compare
// equal keep their relative order and sorting twice is a no-op.
func Sort(results []Result) {
	slices.SortStableFunc(results, Compare)
}
