package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/LorenzoDOrtona/life-logger/internal/journal"
)

// Add records one entry interactively: pick an activity kind, fill in its
// fields, append.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	kinds := journal.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	idx, err := GetChoice(a.reader, "What did you do?", names, os.Stdout)
	if err != nil {
		return err
	}
	kind := kinds[idx]

	detailPrompt := kind.DetailLabel
	if kind.Name == journal.KindSport.Name {
		detailPrompt = fmt.Sprintf("%s (e.g. %s)", kind.DetailLabel, strings.Join(journal.SportDetails, ", "))
	}
	detail, err := GetSimpleText(a.reader, detailPrompt, os.Stdout)
	if err != nil {
		return err
	}

	metric, err := GetOptionalFloat(a.reader, kind.MetricLabel, os.Stdout)
	if err != nil {
		return err
	}

	note, err := GetSimpleText(a.reader, "Note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	entry := journal.Entry{
		ActivityType: kind.Name,
		Detail:       detail,
		Metric:       metric,
		Unit:         kind.Unit,
		Note:         note,
	}
	if err := a.journal.Append(ctx, entry); err != nil {
		return err
	}
	printlnFn("Logged", kind.Name)
	return nil
}
