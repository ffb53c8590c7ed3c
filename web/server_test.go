// ABOUTME: Tests for the web dashboard routes
// ABOUTME: Exercises pages, the xlsx download and the JSON state endpoint with httptest
package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/export"
	"github.com/harperreed/leasebook/models"
)

func newTestServer(t *testing.T) (*app.App, http.Handler) {
	t.Helper()
	a, _ := app.NewTestApp(t)
	srv, err := NewServer(a, nil)
	require.NoError(t, err)
	return a, srv.Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDashboardPage(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Portfolio Dashboard")
	assert.Contains(t, body, "14,910")
	assert.Contains(t, body, "69 records processed")
	assert.Contains(t, body, "18 Flagged")
}

func TestUnitsPageFilters(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/units")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Revolver")
	assert.Contains(t, rec.Body.String(), "Maine")
	assert.Contains(t, rec.Body.String(), "2 of 2 units")

	rec = get(t, h, "/units?q=gunpowder&asset=Opus")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Revolver")
	assert.NotContains(t, rec.Body.String(), "Maine")

	rec = get(t, h, "/units?asset=One+by+Omniyat")
	assert.Contains(t, rec.Body.String(), "No units match.")
}

func TestUnitPageTabs(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/units/u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gunpowder Restaurant LLC")

	rec = get(t, h, "/units/u1?tab=terms")
	assert.Contains(t, rec.Body.String(), "25 Feb 2031")
	assert.Contains(t, rec.Body.String(), "283,201.00")
	assert.Contains(t, rec.Body.String(), "(10.0%)")
	assert.NotContains(t, rec.Body.String(), "(0.1%)")

	rec = get(t, h, "/units/u1?tab=rent")
	assert.Contains(t, rec.Body.String(), "<td>10%</td>")

	rec = get(t, h, "/units/u2?tab=rent")
	assert.Contains(t, rec.Body.String(), "No rent schedule.")

	rec = get(t, h, "/units/u2?tab=bogus")
	assert.Contains(t, rec.Body.String(), "Water Grill Facilities Management")
}

func TestUnitPageNotFound(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(t, h, "/units/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportDownload(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Omniyat_Portfolio_2026-01-30.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestStateEndpoint(t *testing.T) {
	a, h := newTestServer(t)

	rec := get(t, h, "/api/state")
	require.Equal(t, http.StatusOK, rec.Code)

	var state models.AppState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, a.State(), state)
}

func TestEmptyPortfolioPages(t *testing.T) {
	a, h := newTestServer(t)
	require.NoError(t, a.Wipe(true))

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No activity yet.")

	rec = get(t, h, "/units")
	assert.Contains(t, rec.Body.String(), "No units match.")
}

func TestGraphEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	rec := get(t, h, "/graph.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
}
