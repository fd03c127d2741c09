package controller

// Record is implemented by every entity model; embedding models.Meta is
// enough.
type Record interface {
	RecordID() int
}

// Schema parametrizes the generic controllers for one entity: where its
// collection lives and how to read the fields the filter and summary logic
// needs. Concrete screens instantiate controllers from a Schema instead of
// duplicating fetch/filter/submit/delete/export code per entity.
type Schema[T Record] struct {
	// Name is the entity slug used for display and export file naming,
	// e.g. "milk-yield".
	Name string
	// Endpoint is the collection base path, e.g. "/api/milk-yields/".
	Endpoint string
	// Date returns the record's primary ISO date, or "" when the entity has
	// no date axis. Nil disables date filtering.
	Date func(T) string
	// Search returns the text fields the substring search scans. Nil
	// disables search.
	Search func(T) []string
	// Enums maps filterable enum field names to accessors.
	Enums map[string]func(T) string
	// Sums and Maxima map summary labels to decimal-string accessors.
	Sums   map[string]func(T) string
	Maxima map[string]func(T) string
}
