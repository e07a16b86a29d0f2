package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements jursearch.Extractor at compile time.
var _ jursearch.Extractor = (*trafilatura.Extractor)(nil)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
<title>Вычет по НДФЛ за лечение | Налоговый журнал</title>
<meta property="og:title" content="Вычет по НДФЛ за лечение">
</head>
<body>
<nav class="main-nav"><a href="/">Главная</a><a href="/news">Новости</a></nav>
<article>
<h1>Вычет по НДФЛ за лечение</h1>
<p>Социальный налоговый вычет предоставляется налогоплательщику в сумме, уплаченной за медицинские услуги.</p>
<p>Для получения вычета   подайте декларацию 3-НДФЛ
в инспекцию по месту жительства.</p>
</article>
<footer><p>Copyright 2025 Налоговый журнал</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(articleHTML)

		require.NoError(t, err)
		assert.Contains(t, result.Title, "Вычет по НДФЛ за лечение")
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(articleHTML)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Социальный налоговый вычет")
		assert.Contains(t, result.Text, "Социальный налоговый вычет")
	})

	t.Run("normalizes text whitespace", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(articleHTML)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Для получения вычета подайте декларацию 3-НДФЛ в инспекцию")
		assert.NotContains(t, result.Text, "\n")
		assert.NotContains(t, result.Text, "  ")
	})

	t.Run("removes boilerplate", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(articleHTML)

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "main-nav")
		assert.NotContains(t, result.Text, "Copyright 2025")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("  ")

		assert.Equal(t, jursearch.EINVALID, jursearch.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(`<html><body><p>Simple content</p></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})
}
