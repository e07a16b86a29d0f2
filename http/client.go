package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/jursearch"
	"golang.org/x/sync/errgroup"
)

// Content API defaults.
const (
	DefaultSearchURL      = "https://1gl.ru/system/content/search-new/"
	DefaultDocumentURL    = "https://site-backend-ss.prod.ss.aservices.tech/api/v1/desktop/document_get-by-id"
	DefaultClientTimeout  = 15 * time.Second
	DefaultMaxConnections = 50
)

// browserUserAgent is sent to the content API, which rejects bare clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// contentTypeSnippet bounds the body excerpt quoted in content-type errors.
const contentTypeSnippet = 300

// Ensure Client implements jursearch.ContentClient at compile time.
var _ jursearch.ContentClient = (*Client)(nil)

// Client talks to the content API: paged full-text search plus document
// retrieval by module and document ID.
type Client struct {
	client         *http.Client
	searchURL      string
	documentURL    string
	timeout        time.Duration
	maxConnections int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithSearchURL overrides the search endpoint.
func WithSearchURL(u string) ClientOption {
	return func(c *Client) { c.searchURL = u }
}

// WithDocumentURL overrides the document endpoint.
func WithDocumentURL(u string) ClientOption {
	return func(c *Client) { c.documentURL = u }
}

// WithClientTimeout sets the per-request timeout.
// Defaults to DefaultClientTimeout (15s).
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithMaxConnections bounds concurrent requests to the API.
// Defaults to DefaultMaxConnections (50).
func WithMaxConnections(n int) ClientOption {
	return func(c *Client) { c.maxConnections = n }
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option
// is ignored when a client is supplied.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a content API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		searchURL:      DefaultSearchURL,
		documentURL:    DefaultDocumentURL,
		timeout:        DefaultClientTimeout,
		maxConnections: DefaultMaxConnections,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxConnections <= 0 {
		c.maxConnections = DefaultMaxConnections
	}
	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxConnsPerHost:     c.maxConnections,
				MaxIdleConnsPerHost: c.maxConnections,
				ForceAttemptHTTP2:   true,
			},
		}
	}
	return c
}

// searchPage is the part of a search response the client reads.
type searchPage struct {
	Data struct {
		SearchResponse struct {
			Items json.RawMessage `json:"items"`
		} `json:"searchResponse"`
	} `json:"data"`
}

// Search fetches result pages 1..pages concurrently, then every hit's
// document. Results follow the order of the hits across pages.
func (c *Client) Search(ctx context.Context, params jursearch.SearchParams, pages int) ([]*jursearch.SearchResult, error) {
	if pages <= 0 {
		return []*jursearch.SearchResult{}, nil
	}

	pageItems := make([][]jursearch.SearchItem, pages)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConnections)
	for i := range pages {
		g.Go(func() error {
			items, err := c.searchPage(gctx, params, i+1)
			if err != nil {
				return fmt.Errorf("search page %d: %w", i+1, err)
			}
			pageItems[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []jursearch.SearchItem
	for _, page := range pageItems {
		items = append(items, page...)
	}
	return c.fetchDocuments(ctx, items), nil
}

func (c *Client) searchPage(ctx context.Context, params jursearch.SearchParams, page int) ([]jursearch.SearchItem, error) {
	q := params.Values()
	q.Set("page", strconv.Itoa(page))

	body, err := c.getJSON(ctx, c.searchURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var resp searchPage
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	raw := resp.Data.SearchResponse.Items
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil
	}
	var items []jursearch.SearchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode search items: %w", err)
	}
	return items, nil
}

// fetchDocuments retrieves every item's document. Failures are recorded
// per result and never abort the batch.
func (c *Client) fetchDocuments(ctx context.Context, items []jursearch.SearchItem) []*jursearch.SearchResult {
	results := make([]*jursearch.SearchResult, len(items))
	var g errgroup.Group
	g.SetLimit(c.maxConnections)
	for i, item := range items {
		item.URL = c.DocumentURL(item.ModuleID, item.ID)
		results[i] = &jursearch.SearchResult{Item: item}
		g.Go(func() error {
			body, err := c.getJSON(ctx, item.URL)
			if err != nil {
				results[i].Err = err.Error()
				return nil
			}
			results[i].Document = body
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// DocumentURL returns the address of a document in the content API.
func (c *Client) DocumentURL(moduleID, documentID string) string {
	q := url.Values{}
	q.Set("moduleId", moduleID)
	q.Set("documentId", documentID)
	return c.documentURL + "?" + q.Encode()
}

// getJSON GETs target and returns the body of a successful JSON response.
func (c *Client) getJSON(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Referer", "https://1gl.ru/")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, fmt.Errorf("unexpected content-type %q: %q", ct, excerpt(body))
	}
	return body, nil
}

// excerpt returns the leading characters of body on a single line.
func excerpt(body []byte) string {
	s := strings.ToValidUTF8(string(body), "")
	if r := []rune(s); len(r) > contentTypeSnippet {
		s = string(r[:contentTypeSnippet])
	}
	return strings.ReplaceAll(s, "\n", " ")
}
