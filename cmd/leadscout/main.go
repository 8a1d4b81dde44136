package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/clipboard"
	"github.com/fwojciec/leadscout/csv"
	"github.com/fwojciec/leadscout/enrich"
	"github.com/fwojciec/leadscout/etree"
	"github.com/fwojciec/leadscout/excelize"
	"github.com/fwojciec/leadscout/fs"
	"github.com/fwojciec/leadscout/gemini"
	"github.com/fwojciec/leadscout/github"
	"github.com/fwojciec/leadscout/goquery"
	lshttp "github.com/fwojciec/leadscout/http"
	"github.com/fwojciec/leadscout/readability"
	"github.com/fwojciec/leadscout/rod"
	leadslog "github.com/fwojciec/leadscout/slog"
	"github.com/fwojciec/leadscout/sqlite"
	"github.com/fwojciec/leadscout/trafilatura"
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
	SearchService   leadscout.SearchService
	LeadService     leadscout.LeadService
	SourceService   leadscout.SourceService
	SettingsService leadscout.SettingsService
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("leadscout"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'leadscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEADSCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.SearchService = sqlite.NewSearchService(m.DB)
	m.LeadService = sqlite.NewLeadService(m.DB)
	m.SourceService = sqlite.NewSourceService(m.DB)
	m.SettingsService = sqlite.NewSettingsService(m.DB)
	deps.DB = m.DB
	deps.Searches = m.SearchService
	deps.Leads = m.LeadService
	deps.Sources = m.SourceService
	deps.Settings = m.SettingsService

	// Stored settings are the fallback credential source; environment
	// variables take precedence when both are set.
	settings, err := m.SettingsService.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Wire command-specific dependencies based on command
	if cmd == "search" {
		generator, err := buildGenerator(ctx, cli, settings, stderr)
		if err != nil {
			return err
		}
		if cli.Search.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			generator = leadslog.NewLoggingGenerator(generator, logger)
		}
		deps.Streamer = &leadscout.Streamer{Generator: generator}
	}

	if cmd == "export" {
		exporter, err := buildExporter(ctx, cli, settings, stderr)
		if err != nil {
			return err
		}
		deps.Exporter = exporter
	}

	if cmd == "enrich" {
		var fetcher leadscout.Fetcher = lshttp.NewFetcher()
		if cli.Enrich.Browser {
			browserFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: --browser needs Chrome or Chromium installed")
				return fmt.Errorf("failed to launch browser: %w", err)
			}
			defer browserFetcher.Close()
			fetcher = browserFetcher
		}
		if cli.Enrich.Verbose {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			fetcher = leadslog.NewLoggingFetcher(fetcher, logger)
		}
		deps.Enricher = &enrich.Enricher{
			Fetcher:      fetcher,
			Contacts:     goquery.NewContactExtractor(),
			Text:         trafilatura.NewExtractor(),
			TextFallback: readability.NewExtractor(),
			Leads:        m.LeadService,
			RateLimiter:  enrich.NewDomainLimiter(enrichRequestsPerSecond),
			Concurrency:  cli.Enrich.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// enrichRequestsPerSecond limits enrichment fetches per domain. Lead
// websites are third-party servers; stay polite.
const enrichRequestsPerSecond = 1.0

// buildGenerator picks the lead generator for a search: a relay client if
// a relay URL is configured, otherwise the Gemini API directly.
func buildGenerator(ctx context.Context, cli *CLI, settings *leadscout.Settings, stderr io.Writer) (leadscout.Generator, error) {
	relayURL := cli.Search.Relay
	if relayURL == "" {
		relayURL = os.Getenv("LEADSCOUT_RELAY")
	}
	if relayURL == "" {
		relayURL = settings.RelayURL
	}
	if relayURL != "" {
		return lshttp.NewClient(relayURL), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = settings.GeminiAPIKey
	}
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY not set. Get an API key at https://aistudio.google.com/apikey, then export it or run 'leadscout config set gemini-api-key <key>'.")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewGenerator(client), nil
}

// buildExporter picks the exporter for the requested format.
func buildExporter(ctx context.Context, cli *CLI, settings *leadscout.Settings, stderr io.Writer) (leadscout.Exporter, error) {
	switch cli.Export.Format {
	case "csv":
		return &csv.Exporter{Path: cli.Export.Out}, nil
	case "xlsx":
		return &excelize.Exporter{Path: cli.Export.Out}, nil
	case "kml":
		return &etree.KMLExporter{Path: cli.Export.Out}, nil
	case "jsonl":
		return &fs.Exporter{Path: cli.Export.Out}, nil
	case "clipboard":
		return &clipboard.Exporter{}, nil
	case "gist":
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			token = settings.GitHubToken
		}
		if token == "" {
			fmt.Fprintln(stderr, "GITHUB_TOKEN not set. Create a token with the gist scope, then export it or run 'leadscout config set github-token <token>'.")
			return nil, fmt.Errorf("GITHUB_TOKEN not set")
		}
		exporter := github.NewGistExporter(ctx, token)
		exporter.Public = cli.Export.Public
		return exporter, nil
	default:
		return nil, leadscout.Errorf(leadscout.EINVALID, "unknown export format %q", cli.Export.Format)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("LEADSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "leadscout.db"
	}
	dir := filepath.Join(home, ".leadscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "leadscout.db")
}
