package readability_test

import (
	"testing"

	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractText("")

	require.Error(t, err)
	assert.Equal(t, leadscout.EINVALID, leadscout.ErrorCode(err))
}

func TestExtractor_KeepsContactDetailsInText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Harbor Cafe</title></head>
<body>
<article>
<p>Harbor Cafe has been serving the Portland waterfront since 2009. We
roast our own beans and bake everything in house, every morning.</p>
<p>Visit us at 12 Pier St or call 503-555-0188. For catering inquiries
write to events@harbor-cafe.example and we will get back to you within
a day.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	text, err := ext.ExtractText(html)

	require.NoError(t, err)
	assert.Contains(t, text, "503-555-0188")
	assert.Contains(t, text, "events@harbor-cafe.example")
}

func TestExtractor_RemovesNavigation(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Harbor Cafe</title></head>
<body>
<nav><a href="/menu">Menu Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>Harbor Cafe has been serving the Portland waterfront since
2009, roasting our own beans and baking everything in house.</p></article>
</body>
</html>`

	ext := readability.NewExtractor()
	text, err := ext.ExtractText(html)

	require.NoError(t, err)
	assert.NotContains(t, text, "Menu Nav Link")
	assert.NotContains(t, text, "About Nav Link")
	assert.Contains(t, text, "Portland waterfront")
}

func TestExtractor_ReturnsPlainText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Harbor Cafe</title></head>
<body>
<article>
<p>Harbor Cafe has been serving the <strong>Portland waterfront</strong>
since 2009. We roast our own beans and bake everything in house.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	text, err := ext.ExtractText(html)

	require.NoError(t, err)
	assert.Contains(t, text, "Portland waterfront")
	assert.NotContains(t, text, "<strong>")
	assert.NotContains(t, text, "<p>")
}
