package goquery_test

import (
	"testing"

	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements jursearch.Extractor at compile time.
var _ jursearch.Extractor = (*goquery.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("removes noise elements", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Штрафы за опоздание с отчётностью</title><style>p{color:red}</style></head>
<body>
<header>Логотип</header>
<nav><a href="/">Главная</a></nav>
<script>var tracking = 1;</script>
<div class="content">
<h1>Штрафы</h1>
<p>За несвоевременную сдачу декларации штраф составляет 5% от суммы налога.</p>
</div>
<aside>Реклама</aside>
<footer>Контакты</footer>
</body>
</html>`

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Штрафы За несвоевременную сдачу декларации штраф составляет 5% от суммы налога.", result.Text)
		assert.Equal(t, "Штрафы за опоздание с отчётностью", result.Title)
		assert.NotContains(t, result.ContentHTML, "tracking")
		assert.NotContains(t, result.ContentHTML, "Реклама")
		assert.Contains(t, result.ContentHTML, "<h1>Штрафы</h1>")
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><p>  много\n\n  пробелов  </p><p>\tи строк</p></body></html>"

		result, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "много пробелов и строк", result.Text)
	})

	t.Run("handles fragments without body", func(t *testing.T) {
		t.Parallel()

		result, err := goquery.NewExtractor().Extract("<p>Фрагмент</p>")

		require.NoError(t, err)
		assert.Equal(t, "Фрагмент", result.Text)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract("")

		assert.Equal(t, jursearch.EINVALID, jursearch.ErrorCode(err))
	})
}
