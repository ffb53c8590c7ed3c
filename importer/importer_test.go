package importer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harperreed/leasebook/export"
	"github.com/harperreed/leasebook/models"
)

func TestNewModes(t *testing.T) {
	imp, err := New("")
	require.NoError(t, err)
	assert.IsType(t, Simulated{}, imp)

	imp, err = New("Spreadsheet")
	require.NoError(t, err)
	assert.IsType(t, Spreadsheet{}, imp)

	_, err = New("ocr")
	assert.Error(t, err)
}

func TestSimulatedImport(t *testing.T) {
	res, err := Simulated{}.Import(context.Background(), "master_lease.pdf", strings.NewReader("ignored"))
	require.NoError(t, err)

	assert.Equal(t, "master_lease.pdf processed", res.Activity)
	assert.Equal(t, models.AuditSuccess, res.Status)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Units)
}

func TestSpreadsheetRoundTripsExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, models.DefaultState().Units))

	res, err := Spreadsheet{}.Import(context.Background(), "portfolio.xlsx", &buf)
	require.NoError(t, err)

	assert.Equal(t, "portfolio.xlsx processed", res.Activity)
	assert.Equal(t, models.AuditSuccess, res.Status)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Units, 2)

	u := res.Units[0]
	assert.Equal(t, "Opus", u.AssetName)
	assert.Equal(t, "1B + 20", u.UnitNumber)
	assert.Equal(t, "Revolver", u.TradingName)
	assert.Equal(t, models.CategoryFB, u.Category)
	assert.Equal(t, models.StatusOccupied, u.Status)
	assert.Equal(t, 10185.0, u.Areas.Total)
	assert.Equal(t, 283201.0, u.CommercialTerms.SecurityDeposit)
	assert.Equal(t, "25 Feb 2031", u.CommercialTerms.RED)

	// Re-exporting the imported units yields the same rows.
	assert.Equal(t, export.Rows(models.DefaultState().Units), export.Rows(res.Units))
}

func TestSpreadsheetSkipsInvalidRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(export.Columns))
	for i, c := range export.Columns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	good := []any{"Opus", "3", "Kiosk", "Retail", 120, "Tenant Co", "Vacant", "", "", 0}
	bad := []any{"Opus", "4", "Cinema", "Cinema", 900, "", "Vacant", "", "", 0}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &good))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &bad))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	res, err := Spreadsheet{}.Import(context.Background(), "units.xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, models.AuditWarning, res.Status)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Skipped, 1)
	assert.Contains(t, res.Skipped[0], "row 3")
}

func TestSpreadsheetMissingColumns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &[]any{"Asset", "Unit #"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := Spreadsheet{}.Import(context.Background(), "units.xlsx", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestSpreadsheetRejectsOtherFiles(t *testing.T) {
	_, err := Spreadsheet{}.Import(context.Background(), "lease.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestApplyResolvesAssets(t *testing.T) {
	state := models.DefaultState()
	res := Result{Units: []models.Unit{
		{AssetName: "Opus", TradingName: "A", Category: models.CategoryRetail, Status: models.StatusVacant},
		{AssetName: "Marasi", TradingName: "B", Category: models.CategoryOther, Status: models.StatusVacant},
		{AssetName: "Marasi", TradingName: "C", Category: models.CategoryOther, Status: models.StatusVacant},
	}}

	Apply(&state, res)

	require.Len(t, state.Units, 5)
	require.Len(t, state.Assets, 3)
	assert.Equal(t, "1", state.Units[2].AssetID)
	assert.Equal(t, state.Units[3].AssetID, state.Units[4].AssetID)
	assert.Equal(t, "Marasi", state.Assets[2].Name)
	assert.NotEmpty(t, state.Units[3].ID)
	assert.NotEqual(t, state.Units[3].ID, state.Units[4].ID)
	assert.NotNil(t, state.Units[4].RentSchedule)
}
