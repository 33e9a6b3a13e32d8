package journal

import (
	"fmt"
	"time"
)

// Bucket selects the resolution stats are aggregated at.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
)

// PeriodTotal is the summed metric of one activity over one period.
type PeriodTotal struct {
	Period string
	Total  float64
}

// periodKey maps a timestamp onto its bucket label.
func periodKey(t time.Time, b Bucket) string {
	switch b {
	case BucketDay:
		return t.Format("2006-01-02")
	case BucketWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case BucketMonth:
		return t.Format("2006-01")
	case BucketYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// Totals sums the metric of one activity type per period, ordered
// chronologically. Entries with unparseable timestamps are skipped.
func Totals(l Log, activityType string, b Bucket) []PeriodTotal {
	sums := make(map[string]float64)
	var order []string

	for _, e := range l.FilterByType(activityType).SortedByTime() {
		t := e.Time()
		if t.IsZero() {
			continue
		}
		key := periodKey(t, b)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += e.MetricValue()
	}

	out := make([]PeriodTotal, 0, len(order))
	for _, key := range order {
		out = append(out, PeriodTotal{Period: key, Total: sums[key]})
	}
	return out
}

// Total sums the metric of one activity type over the whole log.
func Total(l Log, activityType string) float64 {
	var sum float64
	for _, e := range l.FilterByType(activityType) {
		sum += e.MetricValue()
	}
	return sum
}

// ActivityTypes lists the distinct activity types present in the log,
// in first-appearance order.
func ActivityTypes(l Log) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range l {
		if _, ok := seen[e.ActivityType]; !ok {
			seen[e.ActivityType] = struct{}{}
			out = append(out, e.ActivityType)
		}
	}
	return out
}
