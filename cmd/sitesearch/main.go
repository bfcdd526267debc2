package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/crawl"
	"github.com/fwojciec/sitesearch/gemini"
	"github.com/fwojciec/sitesearch/goquery"
	sshttp "github.com/fwojciec/sitesearch/http"
	"github.com/fwojciec/sitesearch/search"
	sslog "github.com/fwojciec/sitesearch/slog"
	"github.com/fwojciec/sitesearch/sqlite"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PageService  sitesearch.PageService
	CrawlService sitesearch.CrawlService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
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
	cfg, err := loadConfigFromArgs(args)
	if err != nil {
		return err
	}
	if cfg.DB != "" {
		m.DBPath = cfg.DB
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitesearch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"depth":       strconv.Itoa(cfg.Crawl.Depth),
			"timeout":     cfg.Crawl.Timeout,
			"delay":       cfg.Crawl.Delay,
			"concurrency": strconv.Itoa(cfg.Crawl.Concurrency),
			"model":       cfg.Search.Model,
			"limit":       strconv.Itoa(cfg.Search.Limit),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitesearch --help' to see available commands")
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

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITESEARCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.PageService = sslog.NewLoggingPageService(sqlite.NewPageService(m.DB), logger)
	m.CrawlService = sqlite.NewCrawlService(m.DB)
	deps.DB = m.DB
	deps.Pages = m.PageService
	deps.Crawls = m.CrawlService

	// Wire command-specific dependencies based on command
	if cmd == "crawl" {
		fetcherOpts := []sshttp.Option{}
		if cfg.Crawl.UserAgent != "" {
			fetcherOpts = append(fetcherOpts, sshttp.WithUserAgent(cfg.Crawl.UserAgent))
		}
		fetcher := sslog.NewLoggingFetcher(sshttp.NewFetcher(fetcherOpts...), logger)
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   goquery.NewExtractor(),
			Pages:       deps.Pages,
			Logger:      logger,
			Concurrency: cli.Crawl.Concurrency,
			MaxPages:    cli.Crawl.MaxPages,
		}
	}

	if cmd == "search" {
		deps.Engine = &search.Engine{Pages: deps.Pages, Logger: logger}
	}

	if cmd == "ask" {
		model, err := sitesearch.ParseModel(cli.Ask.Model)
		if err != nil {
			return err
		}

		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Engine = &search.Engine{
			Pages:    deps.Pages,
			Oracle:   sslog.NewLoggingOracle(gemini.NewOracle(client, model), logger),
			Logger:   logger,
			Limit:    cli.Ask.Limit,
			NoAnswer: cli.Ask.NoAnswer,
		}
	}

	return kongCtx.Run(deps)
}

// loadConfigFromArgs resolves the config file before Kong parses the
// full command line. The flag has to be scanned by hand because its
// value decides the defaults the parser is built with.
func loadConfigFromArgs(args []string) (Config, error) {
	path := os.Getenv("SITESEARCH_CONFIG")
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			path = args[i+1]
		} else if strings.HasPrefix(a, "--config=") {
			path = strings.TrimPrefix(a, "--config=")
		}
	}
	if path == "" {
		return DefaultConfig(), nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SITESEARCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitesearch.db"
	}
	dir := filepath.Join(home, ".sitesearch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sitesearch.db")
}
