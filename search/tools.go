package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/jursearch"
)

// Tool limits.
const (
	DefaultToolLimit = 5
	MinToolLimit     = 1
	MaxToolLimit     = 10
)

const emptyQueryResult = "Документы не найдены. Запрос пустой."

var _ jursearch.ToolRunner = (*Tools)(nil)

// Tools exposes the search service as agent tools.
type Tools struct {
	Service jursearch.SearchService
	Logger  *slog.Logger
}

// RunTool runs one of the search tools and formats the hits for the model,
// followed by the UI search marker.
func (t *Tools) RunTool(ctx context.Context, name, query string, limit int) (string, error) {
	search, failure, err := t.lookup(name)
	if err != nil {
		return "", err
	}

	logger := t.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("tool called", "tool", name, "query", query, "limit", limit)

	if strings.TrimSpace(query) == "" {
		logger.Warn("empty tool query", "tool", name)
		return emptyQueryResult, nil
	}
	limit = max(MinToolLimit, min(limit, MaxToolLimit))

	results, err := search(ctx, query, limit)
	if err != nil {
		logger.Error("tool search failed", "tool", name, "err", err)
		return failure + err.Error(), nil
	}

	text := jursearch.FormatDocuments(results.Docs, len(results.Docs))
	return jursearch.AppendSearchMarker(text, name, query, results.Docs), nil
}

type searchFunc func(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error)

func (t *Tools) lookup(name string) (searchFunc, string, error) {
	switch name {
	case jursearch.ToolSearchInternal:
		return t.Service.SearchInternal, "Ошибка при поиске во внутренней базе: ", nil
	case jursearch.ToolSearchYandex:
		return t.Service.SearchWeb, "Ошибка при поиске в Яндексе: ", nil
	case jursearch.ToolSearchEverywhere:
		return t.Service.SearchEverywhere, "Ошибка при поиске: ", nil
	}
	return nil, "", jursearch.Errorf(jursearch.ENOTFOUND, "unknown tool %q", name)
}
