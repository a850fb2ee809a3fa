package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepack"
	"github.com/fwojciec/sitepack/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Extractions sitepack.ExtractionService
	Previews    sitepack.PreviewService
	Composer    sitepack.PreviewComposer
	Archives    sitepack.ArchiveBuilder
	Reports     sitepack.ReportRenderer

	// Analyzer is only wired for commands that fetch pages.
	Analyzer sitepack.Analyzer
	Metrics  *prometheus.Metrics

	HealthCheck func(ctx context.Context) error
	Now         func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Store       string `enum:"sqlite,postgres,memory" default:"sqlite" env:"SITEPACK_STORE" help:"Storage backend (sqlite, postgres, memory)"`
	DB          string `name:"db" env:"SITEPACK_DB" help:"SQLite database path (default ~/.sitepack/sitepack.db)"`
	PostgresURL string `name:"postgres-url" env:"SITEPACK_POSTGRES_URL" help:"PostgreSQL connection string"`

	Fetcher      string        `enum:"http,browser" default:"http" env:"SITEPACK_FETCHER" help:"Page fetcher (http, browser)"`
	Metadata     string        `enum:"readability,trafilatura,none" default:"readability" env:"SITEPACK_METADATA" help:"Metadata extractor"`
	FetchTimeout time.Duration `default:"60s" env:"SITEPACK_FETCH_TIMEOUT" help:"Timeout for fetching a page and its assets"`
	Concurrency  int           `default:"8" env:"SITEPACK_CONCURRENCY" help:"Concurrent asset fetch limit"`
	RateLimit    float64       `default:"0" env:"SITEPACK_RATE_LIMIT" help:"Requests per second per host (0 disables)"`
	Dedupe       bool          `env:"SITEPACK_DEDUPE" help:"Skip asset URLs repeated within a page"`

	LogLevel  string `enum:"debug,info,warn,error" default:"info" env:"SITEPACK_LOG_LEVEL" help:"Log level"`
	LogFormat string `enum:"text,json" default:"text" env:"SITEPACK_LOG_FORMAT" help:"Log format"`

	Serve   ServeCmd   `cmd:"" help:"Run the HTTP API"`
	Analyze AnalyzeCmd `cmd:"" help:"Extract the assets of a URL"`
	List    ListCmd    `cmd:"" help:"List recent extractions"`
	Show    ShowCmd    `cmd:"" help:"Show an extraction"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an extraction"`
	Export  ExportCmd  `cmd:"" help:"Write an extraction archive"`
	Report  ReportCmd  `cmd:"" help:"Print an extraction report"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"SITEPACK_ADDR" help:"Listen address"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL  string `arg:"" help:"Page URL"`
	JSON bool   `help:"Print the full extraction as JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int `short:"n" default:"10" help:"Maximum number of extractions"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Extraction ID"`
	JSON bool   `help:"Print the full extraction as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Extraction ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID      string `arg:"" help:"Extraction ID"`
	Project bool   `help:"Export as a runnable project instead of grouped assets"`
	Output  string `short:"o" help:"Output file, '-' for stdout (default: generated name)" xor:"target"`
	Dir     string `help:"Unpack into this directory instead of writing a zip" type:"path" xor:"target"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	ID     string `arg:"" help:"Extraction ID"`
	Format string `enum:"json,markdown,html" default:"markdown" help:"Report format"`
}
