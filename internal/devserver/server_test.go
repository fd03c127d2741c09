package devserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/dairydesk/internal/devserver"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
	"github.com/mamadbah2/dairydesk/internal/session"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

// newFixture boots a seeded server and returns its URL.
func newFixture(t *testing.T) *httptest.Server {
	t.Helper()

	store := devserver.NewMemoryStore()
	require.NoError(t, devserver.Seed(context.Background(), store))

	_, engine := devserver.New(store, "test-secret", nil)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func signIn(t *testing.T, srv *httptest.Server, username, password string) session.Session {
	t.Helper()
	sess, err := dairy.Login(context.Background(), srv.URL, username, password)
	require.NoError(t, err)
	return sess
}

func TestLoginIssuesUsableToken(t *testing.T) {
	srv := newFixture(t)

	sess := signIn(t, srv, "supervisor", "supervisor")
	assert.Equal(t, session.RoleSupervisor, sess.Role)
	assert.True(t, sess.Authenticated())

	client := dairy.New(srv.URL, sess)
	got, err := dairy.List[models.MilkYield](context.Background(), client, "/api/milk-yields/", "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newFixture(t)

	_, err := dairy.Login(context.Background(), srv.URL, "supervisor", "nope")
	require.Error(t, err)
	assert.True(t, dairy.IsKind(err, dairy.KindAuth))
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	srv := newFixture(t)

	resp, err := http.Get(srv.URL + "/api/milk-yields/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMilkYieldLifecycle(t *testing.T) {
	srv := newFixture(t)
	sess := signIn(t, srv, "supervisor", "supervisor")
	client := dairy.New(srv.URL, sess)

	created, err := dairy.Create[models.MilkYield](context.Background(), client, "/api/milk-yields/", map[string]any{
		"date":           "2024-04-01",
		"animal_id":      "COW-003",
		"morning_litres": 12.5,
		"evening_litres": 10.25,
		"notes":          "first N'Dama milking",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "22.75", created.TotalLitres, "the server derives the daily total")
	assert.Equal(t, sess.UserID, created.SupervisorID)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := dairy.Update[models.MilkYield](context.Background(), client, "/api/milk-yields/", created.ID, map[string]any{
		"date":           "2024-04-01",
		"animal_id":      "COW-003",
		"morning_litres": 13,
		"evening_litres": 10.25,
		"notes":          "corrected morning reading",
	})
	require.NoError(t, err)
	assert.Equal(t, "23.25", updated.TotalLitres)
	assert.Equal(t, created.ID, updated.ID)

	require.NoError(t, dairy.Delete(context.Background(), client, "/api/milk-yields/", created.ID))

	err = dairy.Delete(context.Background(), client, "/api/milk-yields/", created.ID)
	require.Error(t, err)
	assert.True(t, dairy.IsKind(err, dairy.KindNotFound), "a second delete finds nothing")
}

func TestCreateValidationReturnsFieldErrors(t *testing.T) {
	srv := newFixture(t)
	sess := signIn(t, srv, "supervisor", "supervisor")
	client := dairy.New(srv.URL, sess)

	_, err := dairy.Create[models.MilkYield](context.Background(), client, "/api/milk-yields/", map[string]any{
		"animal_id":      "COW-001",
		"morning_litres": "plenty",
	})
	require.Error(t, err)

	apiErr := dairy.As(err)
	assert.Equal(t, dairy.KindValidation, apiErr.Kind)
	assert.Equal(t, []string{"this field is required"}, apiErr.Fields["date"])
	assert.Equal(t, []string{"must be a number"}, apiErr.Fields["morning_litres"])
	assert.Contains(t, apiErr.Message, "date: this field is required")
}

func TestNegativeQuantityIsRejected(t *testing.T) {
	srv := newFixture(t)
	sess := signIn(t, srv, "supervisor", "supervisor")
	client := dairy.New(srv.URL, sess)

	_, err := dairy.Create[models.FinanceEntry](context.Background(), client, "/api/finance-entries/", map[string]any{
		"date":       "2024-04-01",
		"entry_type": "expense",
		"category":   "feed",
		"amount":     -5,
	})
	require.Error(t, err)
	apiErr := dairy.As(err)
	assert.Equal(t, []string{"must not be negative"}, apiErr.Fields["amount"])
}

func TestSupervisorSeesOwnRecordsOnly(t *testing.T) {
	srv := newFixture(t)
	adminSess := signIn(t, srv, "admin", "admin")
	supSess := signIn(t, srv, "supervisor", "supervisor")

	adminClient := dairy.New(srv.URL, adminSess)
	_, err := dairy.Create[models.FinanceEntry](context.Background(), adminClient, "/api/finance-entries/", map[string]any{
		"date":       "2024-04-02",
		"entry_type": "expense",
		"category":   "equipment",
		"amount":     200,
	})
	require.NoError(t, err)

	supClient := dairy.New(srv.URL, supSess)
	supRows, err := dairy.List[models.FinanceEntry](context.Background(), supClient, "/api/finance-entries/", "")
	require.NoError(t, err)
	for _, row := range supRows {
		assert.Equal(t, supSess.UserID, row.SupervisorID)
	}
	assert.Len(t, supRows, 2, "the seeded supervisor entries only")

	adminRows, err := dairy.List[models.FinanceEntry](context.Background(), adminClient, "/api/finance-entries/", "")
	require.NoError(t, err)
	assert.Len(t, adminRows, 3, "admins see every supervisor's records")

	narrowed, err := dairy.List[models.FinanceEntry](context.Background(), adminClient, "/api/finance-entries/",
		"supervisorId="+url.QueryEscape(itoa(supSess.UserID)))
	require.NoError(t, err)
	assert.Len(t, narrowed, 2, "admins can narrow to one supervisor")
}

func TestServerSideFilters(t *testing.T) {
	srv := newFixture(t)
	sess := signIn(t, srv, "supervisor", "supervisor")
	client := dairy.New(srv.URL, sess)

	rows, err := dairy.List[models.Vaccination](context.Background(), client, "/api/vaccinations/", "search=bvd")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BVD", rows[0].VaccineName)

	rows, err = dairy.List[models.Vaccination](context.Background(), client, "/api/vaccinations/", "status=scheduled")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.VaccinationScheduled, rows[0].Status)
}

func TestUsersCollectionIsAdminOnly(t *testing.T) {
	srv := newFixture(t)
	supSess := signIn(t, srv, "supervisor", "supervisor")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/users/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+supSess.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminSess := signIn(t, srv, "admin", "admin")
	adminClient := dairy.New(srv.URL, adminSess)
	users, err := dairy.List[models.UserProfile](context.Background(), adminClient, "/api/users/", "")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserListingStripsPasswordHashes(t *testing.T) {
	srv := newFixture(t)
	adminSess := signIn(t, srv, "admin", "admin")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/users/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminSess.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	require.NotEmpty(t, raw)
	for _, user := range raw {
		assert.NotContains(t, user, "password_hash")
	}
}

func TestReadOnlyCollectionRejectsWrites(t *testing.T) {
	srv := newFixture(t)
	sess := signIn(t, srv, "supervisor", "supervisor")
	client := dairy.New(srv.URL, sess)

	_, err := dairy.Create[models.Animal](context.Background(), client, "/api/animals/", map[string]any{"tag": "COW-999"})
	require.Error(t, err)
	assert.Equal(t, 405, dairy.As(err).Status)
}

func TestExportProducesSpreadsheet(t *testing.T) {
	srv := newFixture(t)
	sess := signIn(t, srv, "supervisor", "supervisor")
	client := dairy.New(srv.URL, sess)

	query := url.Values{}
	query.Set("supervisorId", itoa(sess.UserID))
	payload, err := dairy.Export(context.Background(), client, "/api/milk-yields/", query)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(book.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus the two seeded yields")
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "date", rows[0][1])
	assert.Contains(t, rows[0], "total_litres")
}

func TestExportHonorsDateFilter(t *testing.T) {
	srv := newFixture(t)
	sess := signIn(t, srv, "supervisor", "supervisor")
	client := dairy.New(srv.URL, sess)

	query := url.Values{}
	query.Set("start_date", "2099-01-01")
	payload, err := dairy.Export(context.Background(), client, "/api/milk-yields/", query)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(book.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only, nothing matches the range")
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
