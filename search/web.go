package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/bloom"
	"golang.org/x/sync/errgroup"
)

// ModTimeLayout is the layout of Yandex modtime stamps.
const ModTimeLayout = "20060102T150405"

// DefaultScrapeConcurrency bounds parallel page scrapes.
const DefaultScrapeConcurrency = 5

// dedupFalsePositiveRate keeps accidental link drops negligible for the
// handful of links a search returns.
const dedupFalsePositiveRate = 0.0001

// Web runs a web search and scrapes every result page.
type Web struct {
	Searcher    jursearch.LinkSearcher
	Scraper     jursearch.PageScraper
	Concurrency int
	Logger      *slog.Logger
}

// Search returns up to n scraped pages for query in search ranking order.
// Duplicate links are scraped once. Pages that fail to scrape are logged
// and skipped.
func (w *Web) Search(ctx context.Context, query string, n int) ([]*jursearch.WebPage, error) {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	links, err := w.Searcher.SearchLinks(ctx, query, n)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		logger.Warn("web search returned no links", "query", query)
		return []*jursearch.WebPage{}, nil
	}
	links = dedupLinks(links)

	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultScrapeConcurrency
	}

	pages := make([]*jursearch.WebPage, len(links))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, link := range links {
		g.Go(func() error {
			page, err := w.Scraper.Scrape(gctx, link.URL)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Error("scrape failed", "url", link.URL, "err", err)
				return nil
			}
			if page.Title == "" || page.Title == jursearch.UntitledPlaceholder {
				if link.Title != "" {
					page.Title = link.Title
				}
			}
			page.URL = link.URL
			page.PublishedAt = parseModTime(logger, link.ModTime)
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*jursearch.WebPage, 0, len(pages))
	for _, p := range pages {
		if p != nil {
			out = append(out, p)
		}
	}
	logger.Info("scraping finished", "query", query, "ok", len(out), "failed", len(links)-len(out))
	return out, nil
}

// dedupLinks drops links whose canonical URL was already seen.
func dedupLinks(links []jursearch.Link) []jursearch.Link {
	seen := bloom.NewFilter(uint(len(links)), dedupFalsePositiveRate)
	out := links[:0:0]
	for _, l := range links {
		if seen.Seen(l.URL) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func parseModTime(logger *slog.Logger, s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(ModTimeLayout, s)
	if err != nil {
		logger.Warn("unparseable modtime", "modtime", s, "err", err)
		return nil
	}
	return &t
}
