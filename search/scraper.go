// Package search implements the search layer: content API search with
// document parsing, web search with page scraping, the merged ranking
// service and the agent tool handlers.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/jursearch"
)

var _ jursearch.PageScraper = (*Scraper)(nil)

// Scraper fetches a web page and reduces it to a title and readable text.
type Scraper struct {
	Fetcher jursearch.Fetcher
	Titles  jursearch.TitleExtractor

	// Extractors are tried in order; the first with non-empty text wins.
	Extractors []jursearch.Extractor

	// Converter, when set, renders the winning extractor's HTML as
	// Markdown instead of using its plain text.
	Converter jursearch.Converter

	// RateLimiter, when set, throttles requests per domain.
	RateLimiter jursearch.DomainLimiter

	// RetryDelays are the waits between fetch attempts. Nil means
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Scrape fetches rawURL and extracts its content. It fails if the page
// cannot be fetched or no extractor finds any text.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*jursearch.WebPage, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, jursearch.Errorf(jursearch.EINVALID, "invalid page URL %q", rawURL)
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, rawURL, s.Fetcher.Fetch, s.logger(), delays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	title := jursearch.UntitledPlaceholder
	if s.Titles != nil {
		title = s.Titles.ExtractTitle(html)
	}

	for _, ext := range s.Extractors {
		result, err := ext.Extract(html)
		if err != nil {
			s.logger().Debug("extractor failed", "url", rawURL, "extractor", fmt.Sprintf("%T", ext), "err", err)
			continue
		}
		content := s.content(rawURL, result)
		if content == "" {
			continue
		}
		if title == jursearch.UntitledPlaceholder && result.Title != "" {
			title = result.Title
		}
		return &jursearch.WebPage{URL: rawURL, Title: title, Content: content}, nil
	}

	return nil, fmt.Errorf("no content extracted from %s", rawURL)
}

func (s *Scraper) content(rawURL string, result *jursearch.ExtractResult) string {
	if s.Converter != nil && result.ContentHTML != "" {
		md, err := s.Converter.Convert(result.ContentHTML)
		if err == nil && md != "" {
			return md
		}
		s.logger().Debug("markdown conversion failed", "url", rawURL, "err", err)
	}
	return jursearch.CollapseWhitespace(result.Text)
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
