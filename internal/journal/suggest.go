package journal

import (
	"fmt"
	"time"
)

// Suggestion is a quick-log prompt derived from recent journal history.
// Accepting one prefills a new entry of the given type and detail.
type Suggestion struct {
	ID           string
	Message      string
	ActivityType string
	Detail       string
}

// Suggestions inspects the log as of now and proposes quick entries:
//
//   - continue the most recent book when it has not been logged today
//   - a sport session when none was logged today
//
// The log itself is never modified; the caller decides what to do with
// the prompts.
func Suggestions(l Log, now time.Time) []Suggestion {
	var prompts []Suggestion
	if len(l) == 0 {
		return prompts
	}

	today := l.OnDate(now)

	if last := l.SortedByTime().LastByType(KindReading.Name); last != nil && last.Detail != "" {
		loggedToday := false
		for _, e := range today.FilterByType(KindReading.Name) {
			if e.Detail == last.Detail {
				loggedToday = true
				break
			}
		}
		if !loggedToday {
			prompts = append(prompts, Suggestion{
				ID:           "read_cont",
				Message:      fmt.Sprintf("Still reading %q?", last.Detail),
				ActivityType: KindReading.Name,
				Detail:       last.Detail,
			})
		}
	}

	if len(today.FilterByType(KindSport.Name)) == 0 {
		prompts = append(prompts, Suggestion{
			ID:           "sport_check",
			Message:      "No sport yet today. Log a quick session?",
			ActivityType: KindSport.Name,
			Detail:       SportDetails[0],
		})
	}

	return prompts
}
