package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/jursearch"
)

// SearchType selects the Yandex search domain and result language.
type SearchType string

// Supported search types.
const (
	SearchTypeRussian SearchType = "ru"
	SearchTypeCom     SearchType = "com"
	SearchTypeTurkish SearchType = "tr"
)

// yandexNoResults is the Yandex error code for an empty result set.
const yandexNoResults = "15"

// host returns the search domain and l10n value for the type.
func (t SearchType) host() (domain, l10n string, ok bool) {
	switch t {
	case SearchTypeRussian, "":
		return "yandex.ru", "ru", true
	case SearchTypeCom:
		return "yandex.com", "en", true
	case SearchTypeTurkish:
		return "yandex.com.tr", "tr", true
	}
	return "", "", false
}

// Ensure YandexSearcher implements jursearch.LinkSearcher at compile time.
var _ jursearch.LinkSearcher = (*YandexSearcher)(nil)

// YandexSearcher finds web pages through the Yandex XML search API.
type YandexSearcher struct {
	client     *http.Client
	folderID   string
	apiKey     string
	searchType SearchType
	endpoint   string
}

// YandexOption configures a YandexSearcher.
type YandexOption func(*YandexSearcher)

// WithSearchType sets the search domain. Defaults to SearchTypeRussian.
func WithSearchType(t SearchType) YandexOption {
	return func(s *YandexSearcher) { s.searchType = t }
}

// WithEndpoint overrides the XML endpoint derived from the search type.
func WithEndpoint(u string) YandexOption {
	return func(s *YandexSearcher) { s.endpoint = u }
}

// WithYandexHTTPClient replaces the HTTP client.
func WithYandexHTTPClient(hc *http.Client) YandexOption {
	return func(s *YandexSearcher) { s.client = hc }
}

// NewYandexSearcher creates a searcher authenticated with a Yandex Cloud
// folder ID and API key.
func NewYandexSearcher(folderID, apiKey string, opts ...YandexOption) *YandexSearcher {
	s := &YandexSearcher{
		client:     &http.Client{Timeout: DefaultFetchTimeout},
		folderID:   folderID,
		apiKey:     apiKey,
		searchType: SearchTypeRussian,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchLinks returns up to n result links for query in ranking order.
func (s *YandexSearcher) SearchLinks(ctx context.Context, query string, n int) ([]jursearch.Link, error) {
	if s.folderID == "" || s.apiKey == "" {
		return nil, jursearch.Errorf(jursearch.EINVALID, "yandex folder ID and API key required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, jursearch.Errorf(jursearch.EINVALID, "query required")
	}
	if n <= 0 {
		return []jursearch.Link{}, nil
	}

	target, err := s.requestURL(query, n)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for yandex search", resp.StatusCode)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("parsing yandex XML: %w", err)
	}
	return parseYandexResponse(doc, n)
}

func (s *YandexSearcher) requestURL(query string, n int) (string, error) {
	domain, l10n, ok := s.searchType.host()
	if !ok {
		return "", jursearch.Errorf(jursearch.EINVALID, "unknown search type %q", s.searchType)
	}
	endpoint := s.endpoint
	if endpoint == "" {
		endpoint = "https://" + domain + "/search/xml"
	}

	q := url.Values{}
	q.Set("folderid", s.folderID)
	q.Set("apikey", s.apiKey)
	q.Set("query", query)
	q.Set("l10n", l10n)
	q.Set("sortby", "rlv")
	q.Set("filter", "moderate")
	q.Set("groupby", `attr="".mode=flat.groups-on-page=`+strconv.Itoa(n)+`.docs-in-group=1`)
	return endpoint + "?" + q.Encode(), nil
}

// parseYandexResponse reads links from a Yandex XML response document.
func parseYandexResponse(doc *etree.Document, n int) ([]jursearch.Link, error) {
	if e := doc.FindElement("//response/error"); e != nil {
		code := e.SelectAttrValue("code", "")
		if code == yandexNoResults {
			return []jursearch.Link{}, nil
		}
		return nil, fmt.Errorf("yandex error %s: %s", code, strings.TrimSpace(innerText(e)))
	}

	links := []jursearch.Link{}
	for _, d := range doc.FindElements("//group/doc") {
		u := strings.TrimSpace(childText(d, "url"))
		if u == "" {
			continue
		}
		links = append(links, jursearch.Link{
			URL:     u,
			Title:   strings.Join(strings.Fields(childText(d, "title")), " "),
			ModTime: strings.TrimSpace(childText(d, "modtime")),
		})
		if len(links) == n {
			break
		}
	}
	return links, nil
}

func childText(e *etree.Element, tag string) string {
	child := e.SelectElement(tag)
	if child == nil {
		return ""
	}
	return innerText(child)
}

// innerText concatenates the character data of e and its descendants,
// which flattens highlight markup such as <hlword>.
func innerText(e *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch tok := tok.(type) {
			case *etree.CharData:
				b.WriteString(tok.Data)
			case *etree.Element:
				walk(tok)
			}
		}
	}
	walk(e)
	return b.String()
}
