package main

import (
	"context"
	"io"

	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/enrich"
	"github.com/fwojciec/leadscout/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Searches leadscout.SearchService
	Leads    leadscout.LeadService
	Sources  leadscout.SourceService
	Settings leadscout.SettingsService
	Streamer *leadscout.Streamer
	Exporter leadscout.Exporter
	Enricher *enrich.Enricher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Search   SearchCmd   `cmd:"" help:"Run a lead search and archive the results"`
	Searches SearchesCmd `cmd:"" help:"List archived searches"`
	Show     ShowCmd     `cmd:"" help:"Show the archived leads of a search"`
	Delete   DeleteCmd   `cmd:"" help:"Delete an archived search"`
	Export   ExportCmd   `cmd:"" help:"Export an archived search"`
	Enrich   EnrichCmd   `cmd:"" help:"Discover contact details on lead websites"`
	Config   ConfigCmd   `cmd:"" help:"Manage stored settings"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Keyword  string `arg:"" help:"What kind of business to look for"`
	Location string `arg:"" help:"Where to look"`
	Limit    int    `short:"n" default:"30" help:"Maximum number of leads to request"`
	Relay    string `help:"Relay server URL (overrides the stored setting)"`
	Save     bool   `default:"true" negatable:"" help:"Archive the results (--no-save to skip)"`
	JSONL    bool   `name:"jsonl" help:"Print raw JSON lines instead of formatted leads"`
	Verbose  bool   `short:"v" help:"Log generation details and skipped lines to stderr"`
}

// SearchesCmd is the "searches" subcommand.
type SearchesCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Search ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Search ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" optional:"" help:"Search ID"`
	Last   bool   `help:"Export the most recent search"`
	Format string `short:"f" default:"csv" enum:"csv,xlsx,kml,jsonl,gist,clipboard" help:"Export format"`
	Out    string `short:"o" help:"Destination path (file formats only)"`
	Public bool   `help:"Make the gist public (gist format only)"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	ID          string `arg:"" help:"Search ID"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent page fetch limit"`
	Apply       bool   `help:"Write discovered contacts to the archive"`
	Browser     bool   `help:"Render pages in headless Chrome (for JavaScript-heavy sites)"`
	Verbose     bool   `short:"v" help:"Log page fetches to stderr"`
}

// ConfigCmd groups the settings subcommands.
type ConfigCmd struct {
	Set   ConfigSetCmd   `cmd:"" help:"Store a setting"`
	Get   ConfigGetCmd   `cmd:"" help:"Print a stored setting"`
	Unset ConfigUnsetCmd `cmd:"" help:"Remove a stored setting"`
}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	Key   string `arg:"" enum:"gemini-api-key,github-token,relay-url" help:"Setting key (gemini-api-key, github-token, relay-url)"`
	Value string `arg:"" help:"Setting value"`
}

// ConfigGetCmd is the "config get" subcommand.
type ConfigGetCmd struct {
	Key string `arg:"" enum:"gemini-api-key,github-token,relay-url" help:"Setting key (gemini-api-key, github-token, relay-url)"`
}

// ConfigUnsetCmd is the "config unset" subcommand.
type ConfigUnsetCmd struct {
	Key string `arg:"" enum:"gemini-api-key,github-token,relay-url" help:"Setting key (gemini-api-key, github-token, relay-url)"`
}
