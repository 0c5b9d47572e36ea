package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(linters []Linter) []string {
	out := make([]string, 0, len(linters))
	for _, l := range linters {
		out = append(out, l.Name())
	}
	return out
}

func testRegistry() *Registry {
	return NewRegistry(
		&fakeLinter{name: "eslint"},
		&fakeLinter{name: "htmlhint"},
		&fakeLinter{name: "secrets", disabled: true},
	)
}

func TestRegistryOrder(t *testing.T) {
	r := testRegistry()
	assert.Equal(t, []string{"eslint", "htmlhint", "secrets"}, r.Names())
	assert.True(t, r.Has("htmlhint"))
	assert.False(t, r.Has("jshint"))

	l, err := r.Get("eslint")
	require.NoError(t, err)
	assert.Equal(t, "eslint", l.Name())

	_, err = r.Get("jshint")
	assert.ErrorIs(t, err, ErrUnknownLinter)
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := testRegistry()
	assert.Panics(t, func() { r.Register(&fakeLinter{name: "eslint"}) })
}

func TestSelect(t *testing.T) {
	r := testRegistry()

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"defaults", Selection{}, []string{"eslint", "htmlhint"}},
		{"enable opt-in", Selection{Enabled: map[string]bool{"secrets": true}}, []string{"eslint", "htmlhint", "secrets"}},
		{"disable default", Selection{Enabled: map[string]bool{"eslint": false}}, []string{"htmlhint"}},
		{"only keeps registry order", Selection{Only: []string{"secrets", "eslint"}}, []string{"eslint", "secrets"}},
		{"skip", Selection{Skip: []string{"htmlhint"}}, []string{"eslint"}},
		{"skip wins over only", Selection{Only: []string{"eslint", "htmlhint"}, Skip: []string{"eslint"}}, []string{"htmlhint"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Select(tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSelectErrors(t *testing.T) {
	r := testRegistry()

	_, err := r.Select(Selection{Only: []string{"jscs"}})
	assert.ErrorIs(t, err, ErrUnknownLinter)

	_, err = r.Select(Selection{Skip: []string{"jscs"}})
	assert.ErrorIs(t, err, ErrUnknownLinter)

	_, err = r.Select(Selection{Skip: []string{"eslint", "htmlhint"}})
	assert.EqualError(t, err, "no linters selected")
}
