package search_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/mock"
	"github.com/fwojciec/jursearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// internalWith returns an Internal whose client yields one parsed document
// per ID.
func internalWith(ids ...string) *search.Internal {
	return &search.Internal{
		Client: &mock.ContentClient{
			SearchFn: func(context.Context, jursearch.SearchParams, int) ([]*jursearch.SearchResult, error) {
				results := make([]*jursearch.SearchResult, len(ids))
				for i, id := range ids {
					results[i] = &jursearch.SearchResult{
						Item:     jursearch.SearchItem{ID: id, ModuleID: "99"},
						Document: json.RawMessage(`{}`),
					}
				}
				return results, nil
			},
		},
		Parser: &mock.DocumentParser{
			TitleFn: func([]byte) (string, error) { return "Документ", nil },
			ParseFn: func([]byte) *jursearch.Extraction { return &jursearch.Extraction{Text: "текст"} },
		},
	}
}

func failingInternal(err error) *search.Internal {
	return &search.Internal{
		Client: &mock.ContentClient{
			SearchFn: func(context.Context, jursearch.SearchParams, int) ([]*jursearch.SearchResult, error) {
				return nil, err
			},
		},
	}
}

func webWith(urls ...string) *search.Web {
	links := make([]jursearch.Link, len(urls))
	for i, u := range urls {
		links[i] = jursearch.Link{URL: u}
	}
	return &search.Web{Searcher: linkSearcher(links...), Scraper: echoScraper()}
}

func failingWeb(err error) *search.Web {
	return &search.Web{
		Searcher: &mock.LinkSearcher{
			SearchLinksFn: func(context.Context, string, int) ([]jursearch.Link, error) {
				return nil, err
			},
		},
	}
}

func urls(docs []*jursearch.UnifiedDoc) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.URL
	}
	return out
}

func TestService_SearchInternal(t *testing.T) {
	t.Parallel()

	t.Run("maps parsed documents to unified docs", func(t *testing.T) {
		t.Parallel()

		var got jursearch.SearchParams
		in := internalWith("123", "456", "789")
		client := in.Client.(*mock.ContentClient)
		next := client.SearchFn
		client.SearchFn = func(ctx context.Context, params jursearch.SearchParams, pages int) ([]*jursearch.SearchResult, error) {
			got = params
			assert.Equal(t, search.DefaultPages, pages)
			return next(ctx, params, pages)
		}
		s := &search.Service{Internal: in}

		results, err := s.SearchInternal(context.Background(), "НДС", 2)

		require.NoError(t, err)
		assert.Equal(t, "НДС", got.FString)
		assert.Equal(t, "bss.plus", got.PubAlias)
		assert.Equal(t, 220, got.PubID)
		require.Len(t, results.Docs, 2)
		assert.Equal(t, &jursearch.UnifiedDoc{
			Title:     "Документ",
			Content:   "текст",
			URL:       "https://1gl.ru/?#/document/99/123",
			Source:    jursearch.SourceInternal,
			ScoreRank: search.InternalScore,
		}, results.Docs[0])
		assert.Equal(t, map[string]string{"provider": "internal", "count": "2"}, results.Meta)
	})

	t.Run("reports failure in meta", func(t *testing.T) {
		t.Parallel()

		s := &search.Service{Internal: failingInternal(errors.New("HTTP 502"))}

		results, err := s.SearchInternal(context.Background(), "q", 5)

		require.NoError(t, err)
		assert.Empty(t, results.Docs)
		assert.Equal(t, map[string]string{"provider": "internal", "count": "0", "error": "HTTP 502"}, results.Meta)
	})
}

func TestService_SearchWeb(t *testing.T) {
	t.Parallel()

	t.Run("ranks pages by domain weight keeping ties in order", func(t *testing.T) {
		t.Parallel()

		s := &search.Service{Web: webWith(
			"https://ppt.ru/a",
			"https://unknown.example/b",
			"https://www.consultant.ru/c",
			"https://nalog.gov.ru/d",
			"https://minfin.gov.ru/e",
		)}

		results, err := s.SearchWeb(context.Background(), "q", 5)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.consultant.ru/c",
			"https://nalog.gov.ru/d",
			"https://minfin.gov.ru/e",
			"https://ppt.ru/a",
			"https://unknown.example/b",
		}, urls(results.Docs))
		assert.Equal(t, 1.0, results.Docs[0].ScoreRank)
		assert.Equal(t, search.DefaultDomainWeight, results.Docs[4].ScoreRank)
		for _, d := range results.Docs {
			assert.Equal(t, jursearch.SourceYandex, d.Source)
		}
		assert.Equal(t, map[string]string{"provider": "yandex", "count": "5"}, results.Meta)
	})

	t.Run("skips invalid pages", func(t *testing.T) {
		t.Parallel()

		s := &search.Service{Web: &search.Web{
			Searcher: linkSearcher(jursearch.Link{URL: "https://a.ru/"}, jursearch.Link{URL: "https://b.ru/"}),
			Scraper: &mock.PageScraper{
				ScrapeFn: func(_ context.Context, url string) (*jursearch.WebPage, error) {
					title := "Нормальный"
					if url == "https://a.ru/" {
						title = "x"
					}
					return &jursearch.WebPage{URL: url, Title: title, Content: "c"}, nil
				},
			},
		}}

		results, err := s.SearchWeb(context.Background(), "q", 2)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://b.ru/"}, urls(results.Docs))
	})

	t.Run("reports failure in meta", func(t *testing.T) {
		t.Parallel()

		s := &search.Service{Web: failingWeb(errors.New("quota"))}

		results, err := s.SearchWeb(context.Background(), "q", 5)

		require.NoError(t, err)
		assert.Empty(t, results.Docs)
		assert.Equal(t, "quota", results.Meta["error"])
		assert.Equal(t, "0", results.Meta["count"])
	})
}

func TestService_SearchEverywhere(t *testing.T) {
	t.Parallel()

	t.Run("merges by score with internal first on ties", func(t *testing.T) {
		t.Parallel()

		s := &search.Service{
			Internal: internalWith("1", "2"),
			Web:      webWith("https://ppt.ru/a", "https://www.consultant.ru/b", "https://x.example/c"),
		}

		results, err := s.SearchEverywhere(context.Background(), "q", 4)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.consultant.ru/b",
			"https://1gl.ru/?#/document/99/1",
			"https://1gl.ru/?#/document/99/2",
			"https://ppt.ru/a",
		}, urls(results.Docs))
		assert.Equal(t, map[string]string{
			"provider":       "everywhere",
			"count":          "4",
			"internal_count": "2",
			"yandex_count":   "3",
		}, results.Meta)
	})

	t.Run("keeps the working provider when the other fails", func(t *testing.T) {
		t.Parallel()

		s := &search.Service{
			Internal: failingInternal(errors.New("down")),
			Web:      webWith("https://ppt.ru/a"),
		}

		results, err := s.SearchEverywhere(context.Background(), "q", 5)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://ppt.ru/a"}, urls(results.Docs))
		assert.Equal(t, "0", results.Meta["internal_count"])
		assert.Equal(t, "1", results.Meta["yandex_count"])
	})

	t.Run("returns empty result when both are empty", func(t *testing.T) {
		t.Parallel()

		s := &search.Service{
			Internal: failingInternal(errors.New("down")),
			Web:      failingWeb(errors.New("down")),
		}

		results, err := s.SearchEverywhere(context.Background(), "q", 5)

		require.NoError(t, err)
		assert.Empty(t, results.Docs)
		assert.Equal(t, map[string]string{"provider": "everywhere", "count": "0"}, results.Meta)
	})
}

func TestDomainWeight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.95, search.DomainWeight("https://BASE.garant.ru/12345/"))
	assert.Equal(t, 0.5, search.DomainWeight("https://journal.tinkoff.ru:443/nds"))
	assert.Equal(t, search.DefaultDomainWeight, search.DomainWeight("https://consultant.ru/"))
	assert.Equal(t, search.DefaultDomainWeight, search.DomainWeight("::"))
}
