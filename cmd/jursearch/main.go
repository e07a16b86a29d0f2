package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jursearch"
	"github.com/fwojciec/jursearch/doctree"
	"github.com/fwojciec/jursearch/gemini"
	"github.com/fwojciec/jursearch/goquery"
	"github.com/fwojciec/jursearch/htmltomarkdown"
	jshttp "github.com/fwojciec/jursearch/http"
	"github.com/fwojciec/jursearch/readability"
	"github.com/fwojciec/jursearch/search"
	jsslog "github.com/fwojciec/jursearch/slog"
	"github.com/fwojciec/jursearch/sqlite"
	"github.com/fwojciec/jursearch/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by the parse command for "-".
	Stdin io.Reader

	// SQLite database used by the document store. Opened only by commands
	// that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jursearch"),
		kong.Description("Search legal and accounting documents and ask questions about them"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Vars{"default_db": defaultDBPath()},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jursearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger
	deps.Parser = doctree.NewParser(logger)

	if cli.needsDB(kongCtx.Command()) {
		_ = os.MkdirAll(filepath.Dir(cli.DB), 0o755)
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set JURSEARCH_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Documents = sqlite.NewDocumentService(m.DB)
	}

	if cli.needsSearch(kongCtx.Command()) {
		svc, closeFn := m.searchService(cli, deps)
		defer closeFn()
		deps.Search = jsslog.NewLoggingSearchService(svc, logger)
	}

	if strings.HasPrefix(kongCtx.Command(), "ask") {
		if cli.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return jursearch.Errorf(jursearch.EINVALID, "GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		tools := jsslog.NewLoggingToolRunner(&search.Tools{Service: deps.Search, Logger: logger}, logger)
		agent := gemini.NewAgent(client.Models, tools, cli.Model)
		agent.Logger = logger
		if tc, err := gemini.NewTokenCounter(""); err == nil {
			agent.Tokens = tc
		} else {
			logger.Debug("token counting disabled", "err", err)
		}
		deps.Asker = jsslog.NewLoggingAsker(agent, logger)
	}

	return kongCtx.Run(deps)
}

// searchService wires the content API and web search stacks. The returned
// func releases the page fetcher.
func (m *Main) searchService(cli *CLI, deps *Dependencies) (*search.Service, func()) {
	logger := deps.Logger

	internal := &search.Internal{
		Client: jsslog.NewLoggingContentClient(jshttp.NewClient(), logger),
		Parser: deps.Parser,
		Logger: logger,
	}

	fetcher := jshttp.NewFetcher(jshttp.WithProxy(cli.proxyURL()))
	scraper := &search.Scraper{
		Fetcher: jsslog.NewLoggingFetcher(fetcher, logger),
		Titles:  goquery.NewTitleExtractor(),
		Extractors: []jursearch.Extractor{
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
			goquery.NewExtractor(),
		},
		RateLimiter: search.NewDomainLimiter(cli.RateLimit),
		Logger:      logger,
	}
	if cli.Web.Markdown {
		scraper.Converter = htmltomarkdown.NewConverter()
	}

	web := &search.Web{
		Searcher: jsslog.NewLoggingLinkSearcher(jshttp.NewYandexSearcher(cli.YandexFolderID, cli.YandexAPIKey), logger),
		Scraper:  scraper,
		Logger:   logger,
	}

	svc := &search.Service{
		Internal: internal,
		Web:      web,
		Pages:    cli.Pages,
		Logger:   logger,
	}
	return svc, func() { _ = fetcher.Close() }
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "jursearch.db"
	}
	return filepath.Join(home, ".jursearch", "jursearch.db")
}
