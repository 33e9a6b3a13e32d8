package journal

// Kind describes one activity type the client knows how to record: its
// display name, the unit its metric is measured in, and the labels the CLI
// uses when prompting. Kinds shape only the UI boundary; the store itself
// stays schema-agnostic.
type Kind struct {
	Name        string
	Unit        string
	MetricLabel string
	DetailLabel string
}

var (
	KindReading = Kind{Name: "Reading", Unit: "pages", MetricLabel: "Pages read", DetailLabel: "Book title"}
	KindSport   = Kind{Name: "Sport", Unit: "minutes", MetricLabel: "Minutes", DetailLabel: "Activity"}
	KindMovie   = Kind{Name: "Movie", Unit: "rating", MetricLabel: "Rating (1-10)", DetailLabel: "Title"}
	KindGeneric = Kind{Name: "Other", Unit: "generic", MetricLabel: "Value (optional)", DetailLabel: "Activity"}
)

// SportDetails are the suggested sub-activities for the Sport kind.
var SportDetails = []string{"Gym", "Running", "Swimming", "Yoga", "Cycling"}

// Kinds returns all registered activity kinds in menu order.
func Kinds() []Kind {
	return []Kind{KindReading, KindSport, KindMovie, KindGeneric}
}

// KindByName finds a kind by its display name. The second result is false
// when the name is unknown; callers then fall back to the generic kind.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
