package main

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blogwatch"
	"github.com/fwojciec/blogwatch/fs"
	"github.com/fwojciec/blogwatch/mail"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// URL and SourceName come from the root flags.
	URL        string
	SourceName string

	Fetcher   blogwatch.Fetcher
	Extractor blogwatch.ItemExtractor
	Titler    blogwatch.PageTitler
	Converter blogwatch.Converter

	// Notifier overrides the SMTP notifier built from the check flags.
	Notifier blogwatch.Notifier

	// Debug wraps services with logging decorators.
	Debug bool
}

// Vars returns the values interpolated into flag defaults.
func Vars() kong.Vars {
	return kong.Vars{
		"cache_file": fs.DefaultSnapshotPath,
		"smtp_host":  mail.DefaultHost,
		"smtp_port":  strconv.Itoa(mail.DefaultPort),
	}
}

// CLI defines the command-line interface structure for Kong. Every flag can
// also be set from the environment.
type CLI struct {
	URL       string        `name:"url" env:"BLOG_URL" required:"" help:"Page to watch"`
	Source    string        `name:"source" env:"SOURCE_NAME" help:"Name used in digests (default: page title)"`
	Exclude   string        `name:"exclude" env:"EXCLUDE_PHRASES" help:"Pipe-delimited phrases to strip from text"`
	MaxItems  int           `name:"max-items" env:"MAX_ITEMS" default:"5" help:"Maximum items read from the page"`
	Timeout   time.Duration `name:"timeout" env:"FETCH_TIMEOUT" default:"10s" help:"Fetch timeout"`
	UserAgent string        `name:"user-agent" env:"USER_AGENT" help:"User-Agent header sent when fetching"`
	Debug     bool          `name:"debug" env:"DEBUG" help:"Log every service call"`

	Check   CheckCmd   `cmd:"" default:"withargs" help:"Check the page and email new items (default)"`
	Preview PreviewCmd `cmd:"" help:"Print the items found on the page without saving or sending"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Email       string   `name:"email" env:"EMAIL_ADDRESS" help:"Sender account address"`
	Password    string   `name:"password" env:"EMAIL_PASSWORD" help:"Sender account password"`
	To          []string `name:"to" env:"EMAIL_TO" help:"Recipients (default: sender)"`
	SMTPHost    string   `name:"smtp-host" env:"SMTP_HOST" default:"${smtp_host}" help:"SMTP server (default: ${default})"`
	SMTPPort    int      `name:"smtp-port" env:"SMTP_PORT" default:"${smtp_port}" help:"SMTP submission port (default: ${default})"`
	CacheFile   string   `name:"cache-file" env:"CACHE_FILE" default:"${cache_file}" help:"Snapshot file (default: ${default})"`
	KeepOnEmpty bool     `name:"keep-on-empty" env:"KEEP_SNAPSHOT_ON_EMPTY" help:"Keep the snapshot when the page yields no items"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	Digest bool `help:"Print the text digest instead of the item list"`
}
