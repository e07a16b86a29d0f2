package jursearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ContentPreviewLimit is the number of characters of document content
// included per document in FormatDocuments output.
const ContentPreviewLimit = 10000

// SnippetLimit is the number of characters of content kept as a snippet
// in the search marker payload.
const SnippetLimit = 300

// SearchMarker prefixes the JSON payload appended to tool output for the UI.
const SearchMarker = "__SEARCH_TOOL_RESULT__:"

// FormatDocuments formats search hits as numbered text for an LLM.
// Content longer than ContentPreviewLimit characters is cut, with a note
// giving the full size.
func FormatDocuments(docs []*UnifiedDoc, total int) string {
	if len(docs) == 0 {
		return "Документы не найдены."
	}

	lines := []string{fmt.Sprintf("Найдено документов: %d\n", total)}
	for i, doc := range docs {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, doc.Title),
			"   URL: "+doc.URL,
			"   Источник: "+string(doc.Source),
		)

		if doc.Content != "" {
			size := utf8.RuneCountInString(doc.Content)
			lines = append(lines, "   Содержимое: "+TruncateRunes(doc.Content, ContentPreviewLimit))
			if size > ContentPreviewLimit {
				lines = append(lines, fmt.Sprintf("   [Контент обрезан, полный размер: %d символов]", size))
			}
		}

		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// SearchDocument is a search hit as shown in the UI.
type SearchDocument struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// SearchToolResult is the UI payload describing one tool invocation.
type SearchToolResult struct {
	ToolName   string           `json:"tool_name"`
	Query      string           `json:"query"`
	Documents  []SearchDocument `json:"documents"`
	TotalFound int              `json:"total_found"`
}

// AppendSearchMarker appends SearchMarker and a SearchToolResult JSON
// payload to text so the UI can render the hits next to the answer.
func AppendSearchMarker(text, toolName, query string, docs []*UnifiedDoc) string {
	result := SearchToolResult{
		ToolName:   toolName,
		Query:      query,
		Documents:  make([]SearchDocument, 0, len(docs)),
		TotalFound: len(docs),
	}
	for _, doc := range docs {
		result.Documents = append(result.Documents, SearchDocument{
			Title:   doc.Title,
			URL:     doc.URL,
			Snippet: TruncateRunes(doc.Content, SnippetLimit),
			Source:  string(doc.Source),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return text
	}

	return text + "\n\n" + SearchMarker + strings.TrimRight(buf.String(), "\n")
}

// ParseSearchMarker splits tool output into its text and UI payload.
// ok is false when the output carries no marker.
func ParseSearchMarker(output string) (text string, result *SearchToolResult, ok bool) {
	idx := strings.LastIndex(output, SearchMarker)
	if idx < 0 {
		return output, nil, false
	}
	var r SearchToolResult
	if err := json.Unmarshal([]byte(output[idx+len(SearchMarker):]), &r); err != nil {
		return output, nil, false
	}
	return strings.TrimSuffix(output[:idx], "\n\n"), &r, true
}

// TruncateRunes returns the first n characters of s.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
