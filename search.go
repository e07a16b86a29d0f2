package jursearch

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// SearchParams are the query parameters of the content API search endpoint.
// Zero-valued fields are omitted from the request.
type SearchParams struct {
	PubAlias        string
	FixedRegionCode string
	IsUseHints      string
	FString         string
	SortBy          string
	Status          string
	DataFormat      string
	PubDivID        int
	PubID           int

	// Extra holds additional parameters passed through verbatim.
	Extra map[string]string
}

// WithQuery returns a copy of the params with the full-text query set.
func (p SearchParams) WithQuery(query string) SearchParams {
	p.FString = query
	if p.Extra != nil {
		extra := make(map[string]string, len(p.Extra))
		for k, v := range p.Extra {
			extra[k] = v
		}
		p.Extra = extra
	}
	return p
}

// Values encodes the params using the API's parameter names.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("pubAlias", p.PubAlias)
	set("fixedregioncode", p.FixedRegionCode)
	set("isUseHints", p.IsUseHints)
	set("fstring", p.FString)
	set("sortby", p.SortBy)
	set("status", p.Status)
	set("dataformat", p.DataFormat)
	if p.PubDivID != 0 {
		v.Set("pubdivid", strconv.Itoa(p.PubDivID))
	}
	if p.PubID != 0 {
		v.Set("pubId", strconv.Itoa(p.PubID))
	}
	for k, val := range p.Extra {
		set(k, val)
	}
	return v
}

// SearchItem is a single hit from the content API search endpoint.
type SearchItem struct {
	ID        string   `json:"id"`
	ModuleID  string   `json:"moduleId"`
	URL       string   `json:"url,omitempty"`
	DocName   string   `json:"docName,omitempty"`
	Snippet   string   `json:"snippet,omitempty"`
	Anchor    string   `json:"anchor,omitempty"`
	Position  *int     `json:"position,omitempty"`
	Score     *float64 `json:"score,omitempty"`
	IsEtalon  *bool    `json:"isEtalon,omitempty"`
	IsPopular *bool    `json:"isPopular,omitempty"`
}

// UnmarshalJSON accepts both numeric and string identifiers.
func (i *SearchItem) UnmarshalJSON(data []byte) error {
	type alias SearchItem
	var raw struct {
		alias
		ID       flexString `json:"id"`
		ModuleID flexString `json:"moduleId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = SearchItem(raw.alias)
	i.ID = string(raw.ID)
	i.ModuleID = string(raw.ModuleID)
	return nil
}

// flexString decodes a JSON string or number into its textual form.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// SearchResult pairs a search hit with its fetched document payload.
// Exactly one of Document and Err is set.
type SearchResult struct {
	Item     SearchItem
	Document json.RawMessage
	Err      string
}

// ContentClient searches the content API and fetches matching documents.
type ContentClient interface {
	// Search fetches the first pages of results for params and then every
	// hit's full document. A failed page fails the call; a failed document
	// is reported in that result's Err.
	Search(ctx context.Context, params SearchParams, pages int) ([]*SearchResult, error)
}

// ParsedDocument is a content API document reduced to plain text.
type ParsedDocument struct {
	ID        string `json:"id"`
	ModuleID  string `json:"moduleId"`
	APIURL    string `json:"apiUrl"`
	Title     string `json:"title"`
	PlainText string `json:"plainText"`
}

// FetchFailure records a search hit that could not be fetched or parsed.
type FetchFailure struct {
	Item SearchItem `json:"item"`
	Err  string     `json:"error"`
}

// InternalResult is the outcome of a content API search with parsing.
type InternalResult struct {
	Items    []SearchItem
	Parsed   []*ParsedDocument
	Failures []*FetchFailure
}
