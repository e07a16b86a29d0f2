package search

import (
	"context"
	"log/slog"

	"github.com/fwojciec/jursearch"
)

// logSnippetLimit bounds the text excerpt logged per parsed document.
const logSnippetLimit = 800

// Internal searches the content API and reduces every hit to plain text.
type Internal struct {
	Client jursearch.ContentClient
	Parser jursearch.DocumentParser
	Logger *slog.Logger
}

// Search runs the search and parses each fetched document. Fetch and
// parse failures are collected in the result rather than failing the call;
// only a failed search request is returned as an error.
func (s *Internal) Search(ctx context.Context, params jursearch.SearchParams, pages int) (*jursearch.InternalResult, error) {
	results, err := s.Client.Search(ctx, params, pages)
	if err != nil {
		return nil, err
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	out := &jursearch.InternalResult{
		Items:    make([]jursearch.SearchItem, 0, len(results)),
		Parsed:   []*jursearch.ParsedDocument{},
		Failures: []*jursearch.FetchFailure{},
	}
	for _, r := range results {
		out.Items = append(out.Items, r.Item)

		if r.Err != "" {
			logger.Error("document fetch failed", "moduleId", r.Item.ModuleID, "id", r.Item.ID, "err", r.Err)
			out.Failures = append(out.Failures, &jursearch.FetchFailure{Item: r.Item, Err: r.Err})
			continue
		}

		title, err := s.Parser.Title(r.Document)
		if err != nil {
			logger.Error("document parse failed", "moduleId", r.Item.ModuleID, "id", r.Item.ID, "err", err)
			out.Failures = append(out.Failures, &jursearch.FetchFailure{
				Item: r.Item,
				Err:  "parse error: " + jursearch.ErrorMessage(err),
			})
			continue
		}

		ext := s.Parser.Parse(r.Document)
		doc := &jursearch.ParsedDocument{
			ID:        r.Item.ID,
			ModuleID:  r.Item.ModuleID,
			APIURL:    r.Item.URL,
			Title:     title,
			PlainText: ext.Text,
		}
		out.Parsed = append(out.Parsed, doc)
		logger.Debug("document parsed",
			"moduleId", doc.ModuleID,
			"id", doc.ID,
			"title", doc.Title,
			"text", jursearch.TruncateRunes(doc.PlainText, logSnippetLimit),
		)
	}
	return out, nil
}
