package jursearch

import "context"

// SearchPreference tells the agent which source to search by default.
type SearchPreference string

// Search preferences.
const (
	PreferInternal   SearchPreference = "internal"
	PreferYandex     SearchPreference = "yandex"
	PreferEverywhere SearchPreference = "everywhere"
)

// Tool names exposed to the agent.
const (
	ToolSearchInternal   = "search_internal"
	ToolSearchYandex     = "search_yandex"
	ToolSearchEverywhere = "search_everywhere"
)

// ToolRunner executes agent tool calls.
type ToolRunner interface {
	// RunTool runs the named search tool and returns its text output.
	// Search failures are reported inside the output; an error is returned
	// only for unknown tools.
	RunTool(ctx context.Context, name, query string, limit int) (string, error)
}

// Asker answers legal and accounting questions using the search tools.
type Asker interface {
	// Ask answers a natural language question.
	// Returns EINVALID if the question is empty.
	Ask(ctx context.Context, question string, pref SearchPreference) (string, error)
}
