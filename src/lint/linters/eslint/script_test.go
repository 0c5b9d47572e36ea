package eslint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractScripts(t *testing.T) {
	doc := "<p>hi</p>\n<script>var a;</script>\n<script type=\"text/template\"><b></b></script>\n<SCRIPT type=\"module\">b();</SCRIPT>\n"
	scripts := extractScripts(doc)
	require.Len(t, scripts, 2)

	assert.Equal(t, "var a;", scripts[0].text)
	assert.Equal(t, len("<p>hi</p>\n<script>"), scripts[0].offset)
	assert.Equal(t, "b();", scripts[1].text)
	assert.Equal(t, doc[scripts[1].offset:scripts[1].offset+4], "b();")
}
