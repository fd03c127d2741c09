package controller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/controller"
)

// entry is a minimal record standing in for any dated entity.
type entry struct {
	id     int
	date   string
	name   string
	status string
	litres string
}

func (e entry) RecordID() int { return e.id }

func testSchema() controller.Schema[entry] {
	return controller.Schema[entry]{
		Name:     "entry",
		Endpoint: "/api/entries/",
		Date:     func(e entry) string { return e.date },
		Search:   func(e entry) []string { return []string{e.name} },
		Enums: map[string]func(entry) string{
			"status": func(e entry) string { return e.status },
		},
		Sums: map[string]func(entry) string{
			"litres": func(e entry) string { return e.litres },
		},
		Maxima: map[string]func(entry) string{
			"litres": func(e entry) string { return e.litres },
		},
	}
}

func testRecords() []entry {
	return []entry{
		{id: 1, date: "2024-01-05", name: "BVD", status: "completed", litres: "10.00"},
		{id: 2, date: "2024-01-15", name: "bvd-booster", status: "scheduled", litres: "12.50"},
		{id: 3, date: "2024-02-01", name: "FMD", status: "completed", litres: "8.25"},
		{id: 4, date: "2024-01-31", name: "Anthrax", status: "overdue", litres: "not-a-number"},
	}
}

func TestApplyDateRangeInclusive(t *testing.T) {
	s := testSchema()
	records := testRecords()

	got := controller.Apply(s, records, controller.Filters{StartDate: "2024-01-10", EndDate: "2024-01-31"})

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].RecordID())
	assert.Equal(t, 4, got[1].RecordID())

	// Bounds are inclusive: a record exactly on the start date matches.
	got = controller.Apply(s, records, controller.Filters{StartDate: "2024-01-05", EndDate: "2024-01-05"})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].RecordID())
}

func TestApplyOpenEndedDateRange(t *testing.T) {
	s := testSchema()
	records := testRecords()

	got := controller.Apply(s, records, controller.Filters{StartDate: "2024-02-01"})
	require.Len(t, got, 1)
	assert.Equal(t, "FMD", got[0].name)

	got = controller.Apply(s, records, controller.Filters{EndDate: "2024-01-05"})
	require.Len(t, got, 1)
	assert.Equal(t, "BVD", got[0].name)
}

func TestApplySearchCaseInsensitiveSubstring(t *testing.T) {
	s := testSchema()
	records := testRecords()

	got := controller.Apply(s, records, controller.Filters{Search: "bvd"})

	require.Len(t, got, 2)
	assert.Equal(t, "BVD", got[0].name)
	assert.Equal(t, "bvd-booster", got[1].name)
}

func TestApplyEnumExactMatch(t *testing.T) {
	s := testSchema()
	records := testRecords()

	f := controller.Filters{}.WithEnum("status", "completed")
	got := controller.Apply(s, records, f)
	require.Len(t, got, 2)

	// A blank enum value is an inactive predicate, not "match empty".
	f = controller.Filters{}.WithEnum("status", "")
	got = controller.Apply(s, records, f)
	assert.Len(t, got, 4)
}

func TestApplyCombinesWithAnd(t *testing.T) {
	s := testSchema()
	records := testRecords()

	f := controller.Filters{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Search:    "bvd",
	}.WithEnum("status", "scheduled")

	got := controller.Apply(s, records, f)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].RecordID())

	// Adding a predicate can only narrow the result.
	wider := controller.Apply(s, records, controller.Filters{Search: "bvd"})
	assert.GreaterOrEqual(t, len(wider), len(got))
}

func TestApplyIsIdempotent(t *testing.T) {
	s := testSchema()
	records := testRecords()
	f := controller.Filters{StartDate: "2024-01-10", Search: "b"}

	once := controller.Apply(s, records, f)
	twice := controller.Apply(s, once, f)

	assert.Equal(t, once, twice)
}

func TestWithEnumLeavesReceiverUntouched(t *testing.T) {
	base := controller.Filters{}.WithEnum("status", "completed")
	derived := base.WithEnum("status", "overdue")

	assert.Equal(t, "completed", base.Enums["status"])
	assert.Equal(t, "overdue", derived.Enums["status"])
}

func TestFiltersIsZero(t *testing.T) {
	assert.True(t, controller.Filters{}.IsZero())
	assert.True(t, controller.Filters{Enums: map[string]string{"status": ""}}.IsZero())
	assert.False(t, controller.Filters{Search: "x"}.IsZero())
	assert.False(t, controller.Filters{}.WithEnum("status", "completed").IsZero())
}
