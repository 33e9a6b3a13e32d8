package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestDecodeLog_Empty(t *testing.T) {
	for _, doc := range []string{"", "null\n", "[]\n"} {
		log, err := DecodeLog([]byte(doc))
		require.NoError(t, err, "doc %q", doc)
		assert.NotNil(t, log)
		assert.Len(t, log, 0)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := Log{
		{
			ID:           "a1",
			Timestamp:    "2024-03-01T18:30:00Z",
			ActivityType: "Sport",
			Detail:       "Running",
			Metric:       fp(30),
			Unit:         "minutes",
			Note:         "evening run",
		},
		{
			ID:           "a2",
			Timestamp:    "2024-03-02T21:00:00Z",
			ActivityType: "Reading",
			Detail:       "Dune",
			Metric:       fp(40),
			Unit:         "pages",
			Extra:        map[string]any{"mood": "tired"},
		},
	}

	data, err := in.Encode()
	require.NoError(t, err)

	out, err := DecodeLog(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].Detail, out[0].Detail)
	assert.Equal(t, *in[0].Metric, *out[0].Metric)
	assert.Equal(t, "tired", out[1].Extra["mood"])
}

func TestEncode_LineDiffable(t *testing.T) {
	l := Log{{ID: "a1", Timestamp: "2024-03-01T18:30:00Z", ActivityType: "Sport"}}
	data, err := l.Encode()
	require.NoError(t, err)

	// one field per line, stable key order
	text := string(data)
	assert.True(t, strings.Index(text, "timestamp:") < strings.Index(text, "activity_type:"))
	assert.Contains(t, text, "metric: null")
}

func TestDecodeLog_OldRecordsNormalized(t *testing.T) {
	// a record written before detail/metric/unit existed
	doc := "- timestamp: \"2023-01-01 10:00:00\"\n  activity_type: Sport\n  note: old style\n"

	log, err := DecodeLog([]byte(doc))
	require.NoError(t, err)
	require.Len(t, log, 1)

	e := log[0]
	assert.Equal(t, "", e.Detail)
	assert.Nil(t, e.Metric)
	assert.Equal(t, float64(0), e.MetricValue())
	assert.Equal(t, "", e.Unit)

	// legacy timestamp layout still parses
	assert.Equal(t, 2023, e.Time().Year())
}

func TestLog_SortedByTime(t *testing.T) {
	l := Log{
		{ID: "b", Timestamp: "2024-02-01T00:00:00Z"},
		{ID: "a", Timestamp: "2024-01-01T00:00:00Z"},
		{ID: "c", Timestamp: "2024-03-01T00:00:00Z"},
	}
	sorted := l.SortedByTime()
	assert.Equal(t, []string{"a", "b", "c"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	// original untouched
	assert.Equal(t, "b", l[0].ID)
}

func TestLog_Queries(t *testing.T) {
	l := Log{
		{ID: "1", Timestamp: "2024-03-01T08:00:00Z", ActivityType: "Reading", Detail: "Dune"},
		{ID: "2", Timestamp: "2024-03-01T18:00:00Z", ActivityType: "Sport", Detail: "Gym"},
		{ID: "3", Timestamp: "2024-03-02T09:00:00Z", ActivityType: "Reading", Detail: "Solaris"},
	}

	assert.Len(t, l.FilterByType("Reading"), 2)

	last := l.LastByType("Reading")
	require.NotNil(t, last)
	assert.Equal(t, "Solaris", last.Detail)

	assert.Nil(t, l.LastByType("Movie"))

	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Len(t, l.OnDate(day), 2)
}

func TestKindByName(t *testing.T) {
	k, ok := KindByName("Sport")
	require.True(t, ok)
	assert.Equal(t, "minutes", k.Unit)

	_, ok = KindByName("Skydiving")
	assert.False(t, ok)
}
