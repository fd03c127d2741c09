package reporting_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/devserver"
	"github.com/mamadbah2/dairydesk/internal/service/reporting"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

// captureSink records appended rows in memory.
type captureSink struct {
	rows [][]interface{}
	err  error
}

func (c *captureSink) AppendRow(_ context.Context, values []interface{}) error {
	if c.err != nil {
		return c.err
	}
	c.rows = append(c.rows, values)
	return nil
}

func newReportingFixture(t *testing.T, sink *captureSink) *reporting.Service {
	t.Helper()

	store := devserver.NewMemoryStore()
	require.NoError(t, devserver.Seed(context.Background(), store))
	_, engine := devserver.New(store, "test-secret", nil)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	sess, err := dairy.Login(context.Background(), srv.URL, "supervisor", "supervisor")
	require.NoError(t, err)

	return reporting.NewService(dairy.New(srv.URL, sess), sink, nil)
}

func TestSummarizeAggregatesOneDay(t *testing.T) {
	svc := newReportingFixture(t, &captureSink{})

	yesterday := time.Now().AddDate(0, 0, -1)
	summary, err := svc.Summarize(context.Background(), yesterday)
	require.NoError(t, err)

	assert.Equal(t, yesterday.Format("2006-01-02"), summary.Date)
	assert.Equal(t, 1, summary.MilkEntries)
	assert.True(t, summary.MilkLitres.Equal(decimal.RequireFromString("22.75")), "got %s", summary.MilkLitres)
	assert.True(t, summary.BestYield.Equal(decimal.RequireFromString("22.75")))
	assert.True(t, summary.Income.Equal(decimal.RequireFromString("150")), "got %s", summary.Income)
	assert.True(t, summary.Expenses.IsZero(), "no expenses were booked that day")
	assert.Equal(t, 0, summary.CalfFeedings)
}

func TestSummarizeSplitsIncomeAndExpenses(t *testing.T) {
	svc := newReportingFixture(t, &captureSink{})

	today := time.Now()
	summary, err := svc.Summarize(context.Background(), today)
	require.NoError(t, err)

	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Expenses.Equal(decimal.RequireFromString("42.5")), "got %s", summary.Expenses)
	assert.Equal(t, 1, summary.CalfFeedings)
	assert.Equal(t, 1, summary.HygieneChecks)
}

func TestRunPublishesOneRow(t *testing.T) {
	sink := &captureSink{}
	svc := newReportingFixture(t, sink)

	require.NoError(t, svc.Run(context.Background(), time.Now().AddDate(0, 0, -1)))

	require.Len(t, sink.rows, 1)
	row := sink.rows[0]
	require.Len(t, row, 8)
	assert.Equal(t, time.Now().AddDate(0, 0, -1).Format("2006-01-02"), row[0])
	assert.Equal(t, "22.75", row[1])
	assert.Equal(t, 1, row[3])
}

func TestRunPropagatesSinkFailure(t *testing.T) {
	boom := errors.New("sheets quota exceeded")
	svc := newReportingFixture(t, &captureSink{err: boom})

	err := svc.Run(context.Background(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
