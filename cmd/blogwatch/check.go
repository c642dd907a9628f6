package main

import (
	"fmt"

	"github.com/fwojciec/blogwatch"
	"github.com/fwojciec/blogwatch/fs"
	"github.com/fwojciec/blogwatch/mail"
	bwslog "github.com/fwojciec/blogwatch/slog"
	"github.com/fwojciec/blogwatch/watch"
)

// Run executes the check command. Step failures are reported in the log and
// the summary but do not fail the command, so a scheduler keeps running it.
func (c *CheckCmd) Run(deps *Dependencies) error {
	notifier := deps.Notifier
	if notifier == nil {
		n, err := mail.NewNotifier(mail.Config{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Address:  c.Email,
			Password: c.Password,
			To:       c.To,
		})
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Set EMAIL_ADDRESS and EMAIL_PASSWORD")
			return fmt.Errorf("configure mail: %s", blogwatch.ErrorMessage(err))
		}
		notifier = n
	}

	var snapshots blogwatch.SnapshotStore = fs.NewSnapshotStore(c.CacheFile)
	if deps.Debug {
		snapshots = bwslog.NewLoggingSnapshotStore(snapshots, deps.Logger)
		notifier = bwslog.NewLoggingNotifier(notifier, deps.Logger)
	}

	w := &watch.Watcher{
		URL:                 deps.URL,
		SourceName:          deps.SourceName,
		Fetcher:             deps.Fetcher,
		Extractor:           deps.Extractor,
		Snapshots:           snapshots,
		Renderer:            blogwatch.NewDigestRenderer(deps.Converter),
		Notifier:            notifier,
		Titler:              deps.Titler,
		Logger:              deps.Logger,
		KeepSnapshotOnEmpty: c.KeepOnEmpty,
	}

	res := w.Run(deps.Ctx)

	fmt.Fprintf(deps.Stdout, "run %s: %d extracted, %d new, notified=%t, saved=%t, errors=%d\n",
		res.RunID, len(res.Extracted), len(res.New), res.Notified, res.Saved, len(res.Errors))
	return nil
}
