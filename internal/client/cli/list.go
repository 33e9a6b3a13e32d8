package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/journal"
)

// List prints the cached journal, oldest first.
func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	entries := a.journal.Entries().SortedByTime()
	if len(entries) == 0 {
		printlnFn("Journal is empty")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-8s %s", e.Time().Format("2006-01-02 15:04"), e.ActivityType, e.Detail)
		if e.Metric != nil {
			line += fmt.Sprintf("  %g %s", *e.Metric, e.Unit)
		}
		if e.Note != "" {
			line += "  // " + e.Note
		}
		printlnFn(line)
	}
	return nil
}

// Stats prints all-time and monthly totals per activity type.
func (a *App) Stats(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	entries := a.journal.Entries()
	types := journal.ActivityTypes(entries)
	if len(types) == 0 {
		printlnFn("Nothing to aggregate yet")
		return nil
	}

	for _, at := range types {
		printlnFn(fmt.Sprintf("%s: %g total", at, journal.Total(entries, at)))
		for _, pt := range journal.Totals(entries, at, journal.BucketMonth) {
			printlnFn(fmt.Sprintf("  %s  %g", pt.Period, pt.Total))
		}
	}
	return nil
}

// Suggest shows quick-log prompts derived from recent history and logs the
// accepted ones.
func (a *App) Suggest(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	prompts := journal.Suggestions(a.journal.Entries(), time.Now())
	if len(prompts) == 0 {
		printlnFn("No suggestions right now")
		return nil
	}

	for _, s := range prompts {
		answer, err := GetSimpleText(a.reader, s.Message+" [y/N]", os.Stdout)
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			continue
		}

		kind, _ := journal.KindByName(s.ActivityType)
		metric, err := GetOptionalFloat(a.reader, kind.MetricLabel, os.Stdout)
		if err != nil {
			return err
		}
		entry := journal.Entry{
			ActivityType: s.ActivityType,
			Detail:       s.Detail,
			Metric:       metric,
			Unit:         kind.Unit,
		}
		if err := a.journal.Append(ctx, entry); err != nil {
			return err
		}
		printlnFn("Logged", s.ActivityType)
	}
	return nil
}

// Reload discards the cached journal and fetches the remote state again.
func (a *App) Reload(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	entries, err := a.journal.Load(ctx)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Reloaded, %d entries", len(entries)))
	return nil
}
