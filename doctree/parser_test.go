package doctree_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements jursearch.DocumentParser at compile time.
var _ jursearch.DocumentParser = (*doctree.Parser)(nil)

func textNode(value string) map[string]any {
	return map[string]any{"type": "text", "options": map[string]any{"value": value}}
}

func paragraph(values ...string) map[string]any {
	children := make([]any, len(values))
	for i, v := range values {
		children[i] = textNode(v)
	}
	return map[string]any{"type": "p", "children": children}
}

func numbered(typ string, number int, value string) map[string]any {
	return map[string]any{
		"type":     typ,
		"options":  map[string]any{"number": number},
		"children": []any{textNode(value)},
	}
}

func body(viewType string, children ...any) map[string]any {
	b := map[string]any{"children": children}
	if viewType != "" {
		b["options"] = map[string]any{"viewType": viewType}
	}
	return b
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func encodeString(t *testing.T, v any) string {
	t.Helper()
	return string(encode(t, v))
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts nested paragraph and skips images", func(t *testing.T) {
		t.Parallel()

		payload := `{"document":{"content":{"body":{"children":[{"type":"p","children":[{"type":"text","options":{"value":"Налог"}}]}, {"type":"image"}]}}}}`

		ext := doctree.NewParser(nil).Parse([]byte(payload))

		assert.Equal(t, "Налог", ext.Text)
		assert.Equal(t, []string{"Налог"}, ext.Fragments)
	})

	t.Run("degrades gracefully", func(t *testing.T) {
		t.Parallel()

		for _, payload := range []string{
			``,
			`{}`,
			`null`,
			`"garbage"`,
			`not json`,
			`[1,2,3]`,
			`{"document":null}`,
			`{"document":{}}`,
			`{"document":{"content":5}}`,
			`{"document":{"content":{"body":"{broken"}}}`,
			`{"document":{"content":{"body":{"children":{"type":"p"}}}}}`,
			`{"foo":{"bar":[]}}`,
		} {
			ext := doctree.NewParser(nil).Parse([]byte(payload))
			require.NotNil(t, ext, payload)
			assert.Equal(t, "", ext.Text, payload)
		}
	})

	t.Run("string-encoded content matches the decoded form", func(t *testing.T) {
		t.Parallel()

		content := map[string]any{"children": []any{textNode("Hi")}}
		encoded := encode(t, map[string]any{"document": map[string]any{"content": encodeString(t, content)}})
		decoded := encode(t, map[string]any{"document": map[string]any{"content": content}})

		p := doctree.NewParser(nil)
		assert.Equal(t, "Hi", p.Parse(encoded).Text)
		assert.Equal(t, "Hi", p.Parse(decoded).Text)
	})

	t.Run("string-encoded document and body", func(t *testing.T) {
		t.Parallel()

		doc := map[string]any{"content": map[string]any{"body": encodeString(t, body("", paragraph("Текст")))}}
		payload := encode(t, map[string]any{"document": encodeString(t, doc)})

		ext := doctree.NewParser(nil).Parse(payload)

		assert.Equal(t, "Текст", ext.Text)
	})

	t.Run("image and div subtrees never contribute", func(t *testing.T) {
		t.Parallel()

		with := body("",
			paragraph("до"),
			map[string]any{"type": "image", "children": []any{paragraph("картинка")}},
			map[string]any{"type": "div", "children": []any{paragraph("блок")}},
			paragraph("после"),
		)
		without := body("", paragraph("до"), paragraph("после"))

		p := doctree.NewParser(nil)
		got := p.Parse(encode(t, map[string]any{"document": map[string]any{"content": map[string]any{"body": with}}}))
		want := p.Parse(encode(t, map[string]any{"document": map[string]any{"content": map[string]any{"body": without}}}))

		assert.Equal(t, want, got)
		assert.Equal(t, "до после", got.Text)
	})

	t.Run("numbers repeated view types per call", func(t *testing.T) {
		t.Parallel()

		var docs []any
		for i := 1; i <= 3; i++ {
			docs = append(docs, map[string]any{
				"content": map[string]any{"body": body("situation", numbered("list", i, fmt.Sprintf("шаг %d", i)))},
			})
		}
		payload := encode(t, map[string]any{"document": map[string]any{
			"content":   map[string]any{"title": "Ситуации"},
			"documents": docs,
		}})

		p := doctree.NewParser(nil)
		for range 2 {
			ext := p.Parse(payload)

			assert.Equal(t, []string{
				"number_1_view_type_situation_1_tag_list", "шаг 1",
				"number_2_view_type_situation_2_tag_list", "шаг 2",
				"number_3_view_type_situation_3_tag_list", "шаг 3",
			}, ext.Fragments)
			assert.Equal(t, "шаг 1 шаг 2 шаг 3", ext.Text)
		}
	})

	t.Run("counters are kept per view type", func(t *testing.T) {
		t.Parallel()

		payload := encode(t, map[string]any{"document": map[string]any{
			"content": map[string]any{
				"body": body("searchArt", numbered("phrase", 1, "a")),
				"snippets": []any{
					map[string]any{"content": map[string]any{"body": body("snippet", numbered("phrase", 1, "b"))}},
					map[string]any{"content": map[string]any{"body": body("searchArt", numbered("phrase", 1, "c"))}},
					map[string]any{"content": map[string]any{"body": body("other", numbered("phrase", 1, "d"))}},
				},
			},
		}})

		ext := doctree.NewParser(nil).Parse(payload)

		assert.Equal(t, []string{
			"number_1_view_type_searchArt_1_tag_phrase", "a",
			"number_1_view_type_snippet_1_tag_phrase", "b",
			"number_1_view_type_searchArt_2_tag_phrase", "c",
			"number_1_view_type_other_tag_phrase", "d",
		}, ext.Fragments)
	})

	t.Run("snippets info uses its own view type", func(t *testing.T) {
		t.Parallel()

		withType := numbered("phrase", 7, "первый")
		withType["options"].(map[string]any)["viewType"] = "searchArt"
		payload := encode(t, map[string]any{"document": map[string]any{
			"content": map[string]any{
				"snippetsInfo": []any{
					map[string]any{"content": withType},
					map[string]any{"content": numbered("list", 8, "второй")},
					map[string]any{"title": "no content"},
				},
			},
		}})

		ext := doctree.NewParser(nil).Parse(payload)

		assert.Equal(t, []string{
			"number_7_view_type_searchArt_tag_phrase", "первый",
			"number_8_view_type_unknown_tag_list", "второй",
		}, ext.Fragments)
		assert.Equal(t, "первый второй", ext.Text)
	})

	t.Run("collects regions in order", func(t *testing.T) {
		t.Parallel()

		payload := encode(t, map[string]any{"document": map[string]any{
			"content": map[string]any{
				"snippetsInfo": []any{map[string]any{"content": paragraph("S")}},
				"body":         body("", paragraph("B")),
				"snippets":     []any{map[string]any{"content": map[string]any{"body": body("", paragraph("N"))}}},
			},
			"documents": []any{
				map[string]any{
					"content": map[string]any{"body": body("", paragraph("D1"))},
					"documents": []any{
						map[string]any{"content": encodeString(t, map[string]any{"body": body("", paragraph("D2"))})},
					},
				},
			},
		}})

		ext := doctree.NewParser(nil).Parse(payload)

		assert.Equal(t, "S B D1 D2 N", ext.Text)
	})

	t.Run("content without body is its own body", func(t *testing.T) {
		t.Parallel()

		payload := encode(t, map[string]any{"document": map[string]any{
			"content": map[string]any{"children": []any{paragraph("корень")}},
		}})

		ext := doctree.NewParser(nil).Parse(payload)

		assert.Equal(t, "корень", ext.Text)
	})

	t.Run("never leaks markers", func(t *testing.T) {
		t.Parallel()

		payload := encode(t, map[string]any{"document": map[string]any{
			"content": map[string]any{"body": body("situation",
				map[string]any{"type": "p", "children": []any{
					numbered("phrase", 1, "один"),
					numbered("list", 2, "два"),
					textNode("number_3_view_type_fake"),
				}},
			)},
		}})

		ext := doctree.NewParser(nil).Parse(payload)

		assert.NotContains(t, ext.Text, "_view_type_")
		assert.Equal(t, "один два", ext.Text)
		assert.Len(t, ext.Fragments, 5)
	})

	t.Run("cleans the joined text", func(t *testing.T) {
		t.Parallel()

		payload := encode(t, map[string]any{"document": map[string]any{
			"content": map[string]any{"body": body("", paragraph("Ставка", ",", "20%", "(", "НДС", ")", "порядок:"))},
		}})

		ext := doctree.NewParser(nil).Parse(payload)

		assert.Equal(t, "Ставка, 20% (НДС) порядок ...", ext.Text)
	})

	t.Run("logs and skips a broken secondary branch", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		payload := encode(t, map[string]any{"document": map[string]any{
			"content":   map[string]any{"body": body("", paragraph("основной"))},
			"documents": "{broken",
		}})

		ext := doctree.NewParser(logger).Parse(payload)

		assert.Equal(t, "основной", ext.Text)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "document.documents")
	})

	t.Run("logs undecodable payloads", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		ext := doctree.NewParser(logger).Parse([]byte(`{"document":`))

		assert.Equal(t, "", ext.Text)
		assert.Contains(t, buf.String(), "decode document payload")
	})

	t.Run("returns an independent fragment copy", func(t *testing.T) {
		t.Parallel()

		payload := encode(t, map[string]any{"document": map[string]any{
			"content": map[string]any{"body": body("", paragraph("a", "b"))},
		}})
		p := doctree.NewParser(nil)

		first := p.Parse(payload)
		first.Fragments[0] = "changed"
		second := p.Parse(payload)

		assert.Equal(t, []string{"a", "b"}, second.Fragments)
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		p := doctree.NewParser(nil)
		var wg sync.WaitGroup
		results := make([]string, 32)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				payload := encode(t, map[string]any{"document": map[string]any{
					"content": map[string]any{"body": body("situation",
						numbered("phrase", i, fmt.Sprintf("документ %d", i)),
					)},
				}})
				results[i] = strings.Join(p.Parse(payload).Fragments, "|")
			}(i)
		}
		wg.Wait()

		for i, got := range results {
			assert.Equal(t, fmt.Sprintf("number_%d_view_type_situation_1_tag_phrase|документ %d", i, i), got)
		}
	})
}

func TestParser_Title(t *testing.T) {
	t.Parallel()

	t.Run("returns the cleaned title", func(t *testing.T) {
		t.Parallel()

		title, err := doctree.NewParser(nil).Title([]byte(`{"document":{"content":{"title":"Налог , декларация"}}}`))

		require.NoError(t, err)
		assert.Equal(t, "Налог, декларация", title)
	})

	t.Run("reads string-encoded content", func(t *testing.T) {
		t.Parallel()

		payload := encode(t, map[string]any{"document": map[string]any{
			"content": encodeString(t, map[string]any{"title": "Отчёт"}),
		}})

		title, err := doctree.NewParser(nil).Title(payload)

		require.NoError(t, err)
		assert.Equal(t, "Отчёт", title)
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()

		_, err := doctree.NewParser(nil).Title([]byte(`{"document":{"content":{}}}`))

		assert.Equal(t, jursearch.ENOTFOUND, jursearch.ErrorCode(err))
	})

	t.Run("non-string title", func(t *testing.T) {
		t.Parallel()

		_, err := doctree.NewParser(nil).Title([]byte(`{"document":{"content":{"title":12}}}`))

		assert.Equal(t, jursearch.EINVALID, jursearch.ErrorCode(err))
	})

	t.Run("malformed payload", func(t *testing.T) {
		t.Parallel()

		_, err := doctree.NewParser(nil).Title([]byte(`{`))

		assert.Equal(t, jursearch.EINVALID, jursearch.ErrorCode(err))
	})
}
