package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/catalog"
	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
	"github.com/mamadbah2/dairydesk/internal/session"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

func TestExportStateIsolatedPerScreen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := dairy.New(srv.URL, session.Session{
		UserID: 2, Username: "fatou", Role: session.RoleSupervisor, Token: "t",
	})
	pages := BuildPages(client, t.TempDir())

	milk, ok := pages[0].(*EntityPage[models.MilkYield])
	require.True(t, ok)
	vaccines, ok := pages[1].(*EntityPage[models.Vaccination])
	require.True(t, ok)
	assert.NotSame(t, milk.export, vaccines.export)

	_, err := milk.export.Export(context.Background(), catalog.MilkYieldEndpoint, "milk.xlsx", nil)
	require.Error(t, err)
	require.NotNil(t, milk.export.Err())
	assert.Equal(t, dairy.KindExport, milk.export.Err().Kind)

	// The failure stays on the screen that triggered it.
	assert.Nil(t, vaccines.export.Err())
	assert.False(t, vaccines.export.Busy())
}

func TestPadTruncatesOnRuneBoundaries(t *testing.T) {
	got := pad("crème brûlée", 8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 8, utf8.RuneCountInString(got))
	assert.Equal(t, "crème … ", got)

	assert.Equal(t, "brû     ", pad("brû", 8))
	assert.Equal(t, "crè", pad("crème", 3))
}

func TestSummaryFooterOrderIsStable(t *testing.T) {
	list := controller.NewList(catalog.MilkYieldSchema(), nil)
	gen := list.BeginFetch()
	list.ApplyFetch(gen, []models.MilkYield{
		{Meta: models.Meta{ID: 1}, Date: "2024-01-05", MorningLitres: "10.5", EveningLitres: "9.5", TotalLitres: "20"},
		{Meta: models.Meta{ID: 2}, Date: "2024-01-06", MorningLitres: "2", EveningLitres: "3", TotalLitres: "5"},
	}, nil)

	page := NewEntityPage(
		"milk",
		nil,
		list,
		nil,
		controller.NewExporter(nil, t.TempDir()),
		[]Column{{Key: "id", Title: "ID", Width: 5}},
		nil, "",
	)

	want := "2 records · Σ evening_litres 12.5 · Σ morning_litres 12.5 · Σ total_litres 25 · max total_litres 25"
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, page.summaryLine())
	}
}
