package output

import (
	"encoding/json"
	"io"

	"github.com/sofmeright/uxlint/src/lint"
)

// JSON writes results as an indented JSON array. A nil slice is written
// as [].
func JSON(w io.Writer, results []lint.Result) error {
	if results == nil {
		results = []lint.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
