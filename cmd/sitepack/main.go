package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitepack"
	"github.com/fwojciec/sitepack/archive"
	"github.com/fwojciec/sitepack/bloom"
	"github.com/fwojciec/sitepack/extract"
	"github.com/fwojciec/sitepack/goquery"
	"github.com/fwojciec/sitepack/htmltomarkdown"
	sitepackhttp "github.com/fwojciec/sitepack/http"
	"github.com/fwojciec/sitepack/inmem"
	"github.com/fwojciec/sitepack/postgres"
	"github.com/fwojciec/sitepack/prometheus"
	"github.com/fwojciec/sitepack/readability"
	"github.com/fwojciec/sitepack/rod"
	spslog "github.com/fwojciec/sitepack/slog"
	"github.com/fwojciec/sitepack/sqlite"
	"github.com/fwojciec/sitepack/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// closers are released in reverse order by Close.
	closers []func() error

	// Services for end-to-end testing. When set they replace the
	// configured store.
	ExtractionService sitepack.ExtractionService
	PreviewService    sitepack.PreviewService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitepack"),
		kong.Description("Extract, package and report on the frontend assets of a website."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitepack --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.LogLevel, cli.LogFormat)

	if err := m.openStore(ctx, cli, deps); err != nil {
		return err
	}

	deps.Extractions = spslog.NewLoggingExtractionService(deps.Extractions, deps.Logger)
	deps.Composer = goquery.NewComposer()
	deps.Archives = archive.NewBuilder()
	deps.Reports = archive.NewReportRenderer(htmltomarkdown.NewConverter())

	switch kongCtx.Command() {
	case "serve":
		deps.Metrics = prometheus.NewMetrics()
		fallthrough
	case "analyze <url>":
		if err := m.wireAnalyzer(cli, deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// openStore connects the configured storage backend.
func (m *Main) openStore(ctx context.Context, cli *CLI, deps *Dependencies) error {
	if m.ExtractionService != nil {
		deps.Extractions = m.ExtractionService
		deps.Previews = m.PreviewService
		if deps.Previews == nil {
			deps.Previews = inmem.NewPreviewService()
		}
		return nil
	}

	switch cli.Store {
	case "memory":
		deps.Extractions = inmem.NewExtractionService()
		deps.Previews = inmem.NewPreviewService()

	case "postgres":
		if cli.PostgresURL == "" {
			fmt.Fprintln(deps.Stderr, "Hint: Set SITEPACK_POSTGRES_URL or pass --postgres-url")
			return sitepack.Errorf(sitepack.EINVALID, "postgres connection string required")
		}
		db := postgres.NewDB(cli.PostgresURL)
		if err := db.Open(ctx); err != nil {
			return fmt.Errorf("failed to open postgres database: %w", err)
		}
		m.closers = append(m.closers, db.Close)
		deps.Extractions = postgres.NewExtractionService(db)
		deps.Previews = postgres.NewPreviewService(db)
		deps.HealthCheck = db.Ping

	default:
		path := cli.DB
		if path == "" {
			path = defaultDBPath()
		}
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			fmt.Fprintf(deps.Stderr, "Hint: Set SITEPACK_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		m.closers = append(m.closers, db.Close)
		deps.Extractions = sqlite.NewExtractionService(db)
		deps.Previews = sqlite.NewPreviewService(db)
		deps.HealthCheck = db.PingContext
	}
	return nil
}

// wireAnalyzer builds the extraction pipeline. Pages are fetched with the
// configured fetcher while assets always use plain HTTP.
func (m *Main) wireAnalyzer(cli *CLI, deps *Dependencies) error {
	logger := deps.Logger

	var assets sitepack.Fetcher = sitepackhttp.NewFetcher(sitepackhttp.WithTimeout(cli.FetchTimeout))
	assets = spslog.NewLoggingFetcher(assets, logger)
	if deps.Metrics != nil {
		assets = prometheus.NewFetcher(assets, deps.Metrics)
	}

	pages := assets
	if cli.Fetcher == "browser" {
		browser, err := rod.NewFetcher(rod.WithFetchTimeout(cli.FetchTimeout))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, browser.Close)
		pages = spslog.NewLoggingFetcher(browser, logger)
		if deps.Metrics != nil {
			pages = prometheus.NewFetcher(pages, deps.Metrics)
		}
	}

	analyzer := goquery.NewAnalyzer()
	if cli.Dedupe {
		analyzer.NewURLSet = bloom.NewURLSetFunc()
	}

	x := &extract.Extractor{
		Fetcher:     assets,
		PageFetcher: pages,
		Pages:       spslog.NewLoggingPageAnalyzer(analyzer, logger),
		Extractions: deps.Extractions,
		Metadata:    newMetadataExtractor(cli.Metadata),
		Logger:      logger,
		Concurrency: cli.Concurrency,
		Timeout:     cli.FetchTimeout,
		RetryDelays: extract.DefaultRetryDelays(),
	}
	if cli.RateLimit > 0 {
		x.RateLimiter = extract.NewDomainLimiter(cli.RateLimit, cli.Concurrency)
	}

	var a sitepack.Analyzer = spslog.NewLoggingAnalyzer(x, logger)
	if deps.Metrics != nil {
		a = prometheus.NewAnalyzer(a, deps.Metrics)
	}
	deps.Analyzer = a
	return nil
}

func newMetadataExtractor(name string) sitepack.MetadataExtractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "none":
		return nil
	}
	return readability.NewExtractor()
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitepack.db"
	}
	dir := filepath.Join(home, ".sitepack")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sitepack.db")
}
