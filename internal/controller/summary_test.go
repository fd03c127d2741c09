package controller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/controller"
)

func TestSummarizeTotalsAndMaxima(t *testing.T) {
	s := testSchema()
	records := []entry{
		{id: 1, litres: "120.50"},
		{id: 2, litres: "0.10"},
		{id: 3, litres: "0.20"},
	}

	got := controller.Summarize(s, records)

	assert.Equal(t, 3, got.Count)
	// Decimal arithmetic stays exact, no float drift.
	assert.Equal(t, "120.8", got.Total("litres").String())
	assert.Equal(t, "120.5", got.Max("litres").String())
}

func TestSummarizeSkipsUnparseableValues(t *testing.T) {
	s := testSchema()
	records := []entry{
		{id: 1, litres: "10"},
		{id: 2, litres: "oops"},
		{id: 3, litres: ""},
	}

	got := controller.Summarize(s, records)

	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "10", got.Total("litres").String())
	assert.Equal(t, "10", got.Max("litres").String())
}

func TestSummarizeEmptyCollection(t *testing.T) {
	got := controller.Summarize(testSchema(), nil)

	assert.Equal(t, 0, got.Count)
	assert.True(t, got.Total("litres").IsZero())
	assert.True(t, got.Max("litres").IsZero())
}

func TestSummaryCoversVisibleSubsetOnly(t *testing.T) {
	l := controller.NewList(testSchema(), nil)
	gen := l.BeginFetch()
	require.True(t, l.ApplyFetch(gen, testRecords(), nil))

	l.SetFilters(controller.Filters{}.WithEnum("status", "completed"))

	got := l.Summary()
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "18.25", got.Total("litres").String())

	l.ClearFilters()
	assert.Equal(t, 4, l.Summary().Count)
}
