package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsHTML(t *testing.T) {
	assert.False(t, ContainsHTML(""))
	assert.False(t, ContainsHTML("plain text"))
	assert.False(t, ContainsHTML("1 < 2"))
	assert.True(t, ContainsHTML("line<br>line"))
	assert.True(t, ContainsHTML("<p>para</p>"))
	assert.True(t, ContainsHTML(`See <a href="https://example.com">docs</a>`))
	assert.True(t, ContainsHTML("<B>Loud</B>"))
}

func TestContainsHTMLIgnoresPlaceholders(t *testing.T) {
	for _, in := range []string{
		"<ruta>",
		"<nombre_variable>",
		"Use <ruta> here",
		"a<b and c>d",
		"<p> without close",
		"</p>",
	} {
		assert.False(t, ContainsHTML(in), in)
	}
}

func TestExtractRemovesNoise(t *testing.T) {
	out, err := New().Extract(`<p>keep</p><style>p{}</style><input type="text"><iframe src="x"></iframe>`)
	require.NoError(t, err)
	assert.Equal(t, "<p>keep</p>", out)
}
