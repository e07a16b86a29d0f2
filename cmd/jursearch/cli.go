package main

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/jursearch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Parser    jursearch.DocumentParser
	Search    jursearch.SearchService
	Documents jursearch.DocumentService
	Asker     jursearch.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"JURSEARCH_DB" default:"${default_db}" help:"SQLite database path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Pages     int     `default:"1" help:"Content API result pages to fetch"`
	RateLimit float64 `name:"rate-limit" default:"2" help:"Page requests per second per domain"`
	Proxy     string  `env:"HTTPS_PROXY,HTTP_PROXY" help:"Proxy URL for page fetches"`

	YandexFolderID string `name:"yandex-folder-id" env:"YANDEX_FOLDER_ID" help:"Yandex Cloud folder ID"`
	YandexAPIKey   string `name:"yandex-api-key" env:"YANDEX_API_KEY" help:"Yandex Search API key"`
	GeminiAPIKey   string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model          string `env:"JURSEARCH_MODEL" help:"Gemini model (default gemini-2.5-flash)"`

	Parse      ParseCmd      `cmd:"" help:"Print the title and text of a document payload"`
	Internal   InternalCmd   `cmd:"" help:"Search the internal content API"`
	Web        WebCmd        `cmd:"" help:"Search the web with Yandex"`
	Everywhere EverywhereCmd `cmd:"" help:"Search both sources and merge the results"`
	Ask        AskCmd        `cmd:"" help:"Ask a legal or accounting question"`
	Docs       DocsCmd       `cmd:"" help:"List saved documents"`
}

func (c *CLI) needsDB(command string) bool {
	switch {
	case strings.HasPrefix(command, "docs"):
		return true
	case strings.HasPrefix(command, "internal"):
		return c.Internal.Save
	case strings.HasPrefix(command, "web"):
		return c.Web.Save
	case strings.HasPrefix(command, "everywhere"):
		return c.Everywhere.Save
	}
	return false
}

func (c *CLI) needsSearch(command string) bool {
	for _, prefix := range []string{"internal", "web", "everywhere", "ask"} {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}

// proxyURL returns the configured proxy, or nil when unset or invalid.
func (c *CLI) proxyURL() *url.URL {
	if c.Proxy == "" {
		return nil
	}
	u, err := url.Parse(c.Proxy)
	if err != nil || u.Host == "" {
		return nil
	}
	return u
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File      string `arg:"" help:"Document payload file, or - for stdin"`
	Fragments bool   `help:"Print raw fragments one per line instead of text"`
}

// SearchFlags are shared by the search subcommands.
type SearchFlags struct {
	Query string `arg:"" help:"Search query"`
	Limit int    `short:"n" default:"5" help:"Maximum number of documents"`
	Save  bool   `help:"Save results to the document store"`
}

// InternalCmd is the "internal" subcommand.
type InternalCmd struct {
	SearchFlags `embed:""`
}

// WebCmd is the "web" subcommand.
type WebCmd struct {
	SearchFlags `embed:""`
	Markdown    bool `help:"Keep page content as Markdown"`
}

// EverywhereCmd is the "everywhere" subcommand.
type EverywhereCmd struct {
	SearchFlags `embed:""`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to answer"`
	Prefer   string `default:"everywhere" enum:"internal,yandex,everywhere" help:"Default search source (internal, yandex, everywhere)"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Source string `help:"Only list documents from this source (internal or yandex)"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of documents"`
	Full   bool   `help:"Show full document content"`
}
