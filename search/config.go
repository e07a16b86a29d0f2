package search

import (
	"net/url"
	"strings"

	"github.com/fwojciec/jursearch"
)

// Defaults for the content API search.
const (
	// InternalScore is the rank assigned to every content API hit.
	InternalScore = 0.8

	// DefaultPages is the number of result pages requested per search.
	DefaultPages = 1

	// DefaultDomainWeight ranks web pages from unlisted domains.
	DefaultDomainWeight = 0.1

	documentURLFormat = "https://1gl.ru/?#/document/%s/%s"
)

// BaseParams returns the fixed content API search parameters.
func BaseParams() jursearch.SearchParams {
	return jursearch.SearchParams{
		PubAlias:        "bss.plus",
		FixedRegionCode: "77",
		IsUseHints:      "false",
		SortBy:          "Relevance",
		Status:          "actual",
		DataFormat:      "json",
		PubDivID:        1,
		PubID:           220,
	}
}

// DomainWeights ranks web results by the trustworthiness of their host.
var DomainWeights = map[string]float64{
	"www.consultant.ru":  1.0,
	"base.garant.ru":     0.95,
	"minfin.gov.ru":      0.9,
	"nalog.gov.ru":       0.9,
	"ppt.ru":             0.7,
	"journal.tinkoff.ru": 0.5,
}

// DomainWeight returns the rank weight for the host of rawURL.
// Hosts are matched exactly, case-insensitively.
func DomainWeight(rawURL string) float64 {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultDomainWeight
	}
	if w, ok := DomainWeights[strings.ToLower(u.Hostname())]; ok {
		return w
	}
	return DefaultDomainWeight
}
