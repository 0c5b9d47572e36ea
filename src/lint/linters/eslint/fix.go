package eslint

import (
	"sort"
	"strings"
)

// maxFixPasses bounds how often text is re-linted after applying fixes.
const maxFixPasses = 10

// applyFixes applies every non-overlapping fix in messages to text. It
// reports whether anything changed.
func applyFixes(text string, messages []Message) (string, bool) {
	var fixes []*Fix
	for i := range messages {
		if messages[i].Fix != nil {
			fixes = append(fixes, messages[i].Fix)
		}
	}
	if len(fixes) == 0 {
		return text, false
	}
	sort.SliceStable(fixes, func(i, j int) bool {
		if fixes[i].Range[0] != fixes[j].Range[0] {
			return fixes[i].Range[0] < fixes[j].Range[0]
		}
		return fixes[i].Range[1] < fixes[j].Range[1]
	})

	var b strings.Builder
	b.Grow(len(text))
	pos, lastEnd := 0, -1
	applied := false
	for _, f := range fixes {
		start, end := f.Range[0], f.Range[1]
		if start <= lastEnd || start < pos || end < start || end > len(text) {
			continue
		}
		b.WriteString(text[pos:start])
		b.WriteString(f.Text)
		pos = end
		lastEnd = end
		applied = true
	}
	b.WriteString(text[pos:])

	out := b.String()
	return out, applied && out != text
}
