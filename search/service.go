package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/fwojciec/jursearch"
	"golang.org/x/sync/errgroup"
)

// Provider names reported in SearchResults.Meta["provider"].
const (
	ProviderInternal   = "internal"
	ProviderYandex     = "yandex"
	ProviderEverywhere = "everywhere"
)

var _ jursearch.SearchService = (*Service)(nil)

// Service merges content API and web search into ranked unified results.
type Service struct {
	Internal *Internal
	Web      *Web

	// Params are the base content API parameters. Zero value means
	// BaseParams.
	Params *jursearch.SearchParams

	// Pages is the number of content API pages to fetch. Zero means
	// DefaultPages.
	Pages int

	Logger *slog.Logger
}

// SearchInternal searches the content API. Failures are reported in
// Meta["error"] with no documents.
func (s *Service) SearchInternal(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error) {
	logger := s.logger()
	logger.Info("internal search", "query", query, "limit", limit)

	params := BaseParams()
	if s.Params != nil {
		params = *s.Params
	}
	pages := s.Pages
	if pages <= 0 {
		pages = DefaultPages
	}

	result, err := s.Internal.Search(ctx, params.WithQuery(query), pages)
	if err != nil {
		logger.Error("internal search failed", "query", query, "err", err)
		return failed(ProviderInternal, err), nil
	}

	parsed := result.Parsed
	if limit >= 0 && len(parsed) > limit {
		parsed = parsed[:limit]
	}
	docs := make([]*jursearch.UnifiedDoc, 0, len(parsed))
	for _, p := range parsed {
		title := p.Title
		if title == "" {
			title = jursearch.UntitledPlaceholder
		}
		docs = append(docs, &jursearch.UnifiedDoc{
			Title:     title,
			Content:   p.PlainText,
			URL:       fmt.Sprintf(documentURLFormat, p.ModuleID, p.ID),
			Source:    jursearch.SourceInternal,
			ScoreRank: InternalScore,
		})
	}

	logger.Info("internal search completed", "query", query, "count", len(docs))
	return &jursearch.SearchResults{Docs: docs, Meta: meta(ProviderInternal, len(docs))}, nil
}

// SearchWeb searches the web and ranks pages by domain weight. Failures are
// reported in Meta["error"] with no documents.
func (s *Service) SearchWeb(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error) {
	logger := s.logger()
	logger.Info("web search", "query", query, "limit", limit)

	pages, err := s.Web.Search(ctx, query, limit)
	if err != nil {
		logger.Error("web search failed", "query", query, "err", err)
		return failed(ProviderYandex, err), nil
	}

	docs := make([]*jursearch.UnifiedDoc, 0, len(pages))
	for _, p := range pages {
		doc := &jursearch.UnifiedDoc{
			Title:       p.Title,
			Content:     p.Content,
			URL:         p.URL,
			Source:      jursearch.SourceYandex,
			ScoreRank:   DomainWeight(p.URL),
			PublishedAt: p.PublishedAt,
		}
		if err := doc.Validate(); err != nil {
			logger.Error("skipping web result", "url", p.URL, "err", err)
			continue
		}
		docs = append(docs, doc)
	}
	sortByScore(docs)

	logger.Info("web search completed", "query", query, "count", len(docs))
	return &jursearch.SearchResults{Docs: docs, Meta: meta(ProviderYandex, len(docs))}, nil
}

// SearchEverywhere runs both searches in parallel and returns the limit
// best-scored documents.
func (s *Service) SearchEverywhere(ctx context.Context, query string, limit int) (*jursearch.SearchResults, error) {
	logger := s.logger()
	logger.Info("everywhere search", "query", query, "limit", limit)

	var internal, web *jursearch.SearchResults
	var g errgroup.Group
	g.Go(func() (err error) {
		internal, err = s.SearchInternal(ctx, query, limit)
		return err
	})
	g.Go(func() (err error) {
		web, err = s.SearchWeb(ctx, query, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]*jursearch.UnifiedDoc, 0, len(internal.Docs)+len(web.Docs))
	all = append(all, internal.Docs...)
	all = append(all, web.Docs...)
	if len(all) == 0 {
		logger.Warn("no documents found in any source", "query", query)
		return &jursearch.SearchResults{Docs: all, Meta: meta(ProviderEverywhere, 0)}, nil
	}

	sortByScore(all)
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}

	logger.Info("everywhere search completed",
		"query", query,
		"internal", len(internal.Docs),
		"yandex", len(web.Docs),
		"returned", len(all),
	)
	m := meta(ProviderEverywhere, len(all))
	m["internal_count"] = strconv.Itoa(len(internal.Docs))
	m["yandex_count"] = strconv.Itoa(len(web.Docs))
	return &jursearch.SearchResults{Docs: all, Meta: m}, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// sortByScore orders docs by descending score, keeping ties in place.
func sortByScore(docs []*jursearch.UnifiedDoc) {
	slices.SortStableFunc(docs, func(a, b *jursearch.UnifiedDoc) int {
		switch {
		case a.ScoreRank > b.ScoreRank:
			return -1
		case a.ScoreRank < b.ScoreRank:
			return 1
		}
		return 0
	})
}

func meta(provider string, count int) map[string]string {
	return map[string]string{"provider": provider, "count": strconv.Itoa(count)}
}

func failed(provider string, err error) *jursearch.SearchResults {
	m := meta(provider, 0)
	m["error"] = err.Error()
	return &jursearch.SearchResults{Docs: []*jursearch.UnifiedDoc{}, Meta: m}
}
