// Package journal defines the plaintext data model of a user's activity log:
// entries, the ordered log, its YAML wire form, activity kinds, and the pure
// queries (stats, suggestions) computed over a decoded log.
//
// The package is schema-agnostic beyond the fixed common fields: whatever
// extra keys an activity kind writes survive decode/encode untouched.
package journal

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeLayout is the timestamp format written to new entries (ISO-8601).
const TimeLayout = time.RFC3339

// legacyTimeLayout matches records written before the switch to ISO-8601.
const legacyTimeLayout = "2006-01-02 15:04:05"

// Entry is one immutable journal record. The set of known fields is a stable
// superset: decoding an old record yields defaults for the fields it predates,
// and keys this version does not know about are kept in Extra.
type Entry struct {
	ID           string         `yaml:"id"`
	Timestamp    string         `yaml:"timestamp"`
	ActivityType string         `yaml:"activity_type"`
	Detail       string         `yaml:"detail"`
	Metric       *float64       `yaml:"metric"`
	Unit         string         `yaml:"unit"`
	Note         string         `yaml:"note"`
	Extra        map[string]any `yaml:",inline"`
}

// Time parses the entry timestamp. Both the current ISO-8601 layout and the
// legacy space-separated layout are accepted; a zero time is returned for
// anything else.
func (e *Entry) Time() time.Time {
	if t, err := time.Parse(TimeLayout, e.Timestamp); err == nil {
		return t
	}
	if t, err := time.Parse(legacyTimeLayout, e.Timestamp); err == nil {
		return t
	}
	return time.Time{}
}

// MetricValue returns the metric or 0 when the record has none.
func (e *Entry) MetricValue() float64 {
	if e.Metric == nil {
		return 0
	}
	return *e.Metric
}

// Log is an ordered sequence of entries; insertion order is append order.
// The store never reorders a log: an entry may carry a caller-chosen date
// distinct from append order, so callers sort when they need time order.
type Log []Entry

// Encode serializes the log as a YAML sequence, one mapping per entry,
// keeping field order stable so documents stay line-diffable.
func (l Log) Encode() ([]byte, error) {
	data, err := yaml.Marshal([]Entry(l))
	if err != nil {
		return nil, fmt.Errorf("encode log: %w", err)
	}
	return data, nil
}

// DecodeLog parses a YAML document into a Log. An empty or null document is
// a valid empty log, distinct from "document absent" which the store layer
// reports before decoding is ever reached.
func DecodeLog(data []byte) (Log, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode log: %w", err)
	}
	if entries == nil {
		return Log{}, nil
	}
	return Log(entries), nil
}

// SortedByTime returns a copy of the log ordered by entry timestamp,
// oldest first. Entries with unparseable timestamps sort first.
func (l Log) SortedByTime() Log {
	out := make(Log, len(l))
	copy(out, l)
	// insertion sort: logs are small and usually already near-ordered
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Time().Before(out[j-1].Time()); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// FilterByType returns the entries of one activity type, append order kept.
func (l Log) FilterByType(activityType string) Log {
	var out Log
	for _, e := range l {
		if e.ActivityType == activityType {
			out = append(out, e)
		}
	}
	return out
}

// LastByType returns the most recently appended entry of the given type,
// or nil if the log has none.
func (l Log) LastByType(activityType string) *Entry {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].ActivityType == activityType {
			e := l[i]
			return &e
		}
	}
	return nil
}

// OnDate returns the entries whose timestamp falls on the given calendar day.
func (l Log) OnDate(day time.Time) Log {
	y, m, d := day.Date()
	var out Log
	for _, e := range l {
		ey, em, ed := e.Time().Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}
