package polymer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/uxlint/src/lint/markup"
)

func TestParseDirectives(t *testing.T) {
	doc := markup.Parse("<!-- bplint-disable a, b -->x<!-- bplint-enable -->y<!-- bplint-disabled -->")
	ds := parseDirectives(doc)
	require.Len(t, ds, 2)
	assert.True(t, ds[0].disable)
	assert.Equal(t, []string{"a", "b"}, ds[0].rules)
	assert.False(t, ds[1].disable)
	assert.Empty(t, ds[1].rules)
}

func TestSuppressed(t *testing.T) {
	ds := []directive{
		{offset: 10, disable: true},
		{offset: 20, disable: false, rules: []string{"a"}},
	}
	assert.False(t, suppressed(ds, "a", 5))
	assert.True(t, suppressed(ds, "a", 15))
	assert.False(t, suppressed(ds, "a", 25))
	assert.True(t, suppressed(ds, "b", 25))
}
