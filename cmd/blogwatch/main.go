package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blogwatch"
	"github.com/fwojciec/blogwatch/goquery"
	"github.com/fwojciec/blogwatch/htmltomarkdown"
	bwhttp "github.com/fwojciec/blogwatch/http"
	"github.com/fwojciec/blogwatch/readability"
	bwslog "github.com/fwojciec/blogwatch/slog"
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
	// Services for end-to-end testing. Nil fields are built from flags.
	Fetcher  blogwatch.Fetcher
	Notifier blogwatch.Notifier
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("blogwatch"),
		kong.Description("Watch a page for new posts and email a digest"),
		kong.Writers(stdout, stderr),
		Vars(),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Debug = cli.Debug

	fetcher := m.Fetcher
	if fetcher == nil {
		opts := []bwhttp.Option{bwhttp.WithTimeout(cli.Timeout)}
		if cli.UserAgent != "" {
			opts = append(opts, bwhttp.WithUserAgent(cli.UserAgent))
		}
		fetcher = bwhttp.NewFetcher(opts...)
	}
	defer fetcher.Close()

	var extractor blogwatch.ItemExtractor = goquery.NewExtractor(
		goquery.WithMaxItems(cli.MaxItems),
		goquery.WithExclusions(blogwatch.ParseExclusionSet(cli.Exclude)),
	)

	if cli.Debug {
		fetcher = bwslog.NewLoggingFetcher(fetcher, deps.Logger)
		extractor = bwslog.NewLoggingExtractor(extractor, deps.Logger)
	}

	deps.Fetcher = fetcher
	deps.Extractor = extractor
	deps.Titler = readability.NewTitler()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Notifier = m.Notifier

	deps.URL = cli.URL
	deps.SourceName = cli.Source

	return kongCtx.Run(deps)
}
