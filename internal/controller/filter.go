package controller

import "strings"

// Filters is the local filter state of one list screen. Empty values match
// everything; active predicates combine with logical AND. Dates are
// inclusive ISO YYYY-MM-DD bounds, search is a case-insensitive substring
// over the schema's text fields, and enums match exactly.
type Filters struct {
	StartDate string
	EndDate   string
	Search    string
	Enums     map[string]string
}

// IsZero reports whether no predicate is active.
func (f Filters) IsZero() bool {
	if f.StartDate != "" || f.EndDate != "" || f.Search != "" {
		return false
	}
	for _, v := range f.Enums {
		if v != "" {
			return false
		}
	}
	return true
}

// WithEnum returns a copy with one enum predicate set, keeping the receiver
// untouched so filter state updates stay atomic.
func (f Filters) WithEnum(field, value string) Filters {
	enums := make(map[string]string, len(f.Enums)+1)
	for k, v := range f.Enums {
		enums[k] = v
	}
	enums[field] = value
	f.Enums = enums
	return f
}

// Apply evaluates the filters against every record and returns the matching
// subset. It is a pure function of (records, filters): no side effects, and
// applying the same filters twice yields the same result as once.
func Apply[T Record](s Schema[T], records []T, f Filters) []T {
	if f.IsZero() {
		return records
	}

	matched := make([]T, 0, len(records))
	for _, rec := range records {
		if matches(s, rec, f) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func matches[T Record](s Schema[T], rec T, f Filters) bool {
	if s.Date != nil && (f.StartDate != "" || f.EndDate != "") {
		date := s.Date(rec)
		// ISO dates compare correctly as strings, both bounds inclusive.
		if f.StartDate != "" && date < f.StartDate {
			return false
		}
		if f.EndDate != "" && date > f.EndDate {
			return false
		}
	}

	if f.Search != "" && s.Search != nil {
		needle := strings.ToLower(f.Search)
		found := false
		for _, field := range s.Search(rec) {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for field, want := range f.Enums {
		if want == "" {
			continue
		}
		accessor, ok := s.Enums[field]
		if !ok {
			continue
		}
		if accessor(rec) != want {
			return false
		}
	}

	return true
}
