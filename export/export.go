// ABOUTME: Spreadsheet export of the unit collection
// ABOUTME: Flattens units into rows and writes a single-sheet xlsx workbook
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/harperreed/leasebook/models"
)

// SheetName is the only worksheet in an exported workbook.
const SheetName = "Units"

// Columns is the header row, in order.
var Columns = []string{
	"Asset",
	"Unit #",
	"Trading Name",
	"Category",
	"Total Area",
	"Tenant",
	"Status",
	"RCD",
	"RED",
	"Security Deposit",
}

// Row projects one unit onto the export columns.
func Row(u models.Unit) []any {
	return []any{
		u.AssetName,
		u.UnitNumber,
		u.TradingName,
		string(u.Category),
		u.Areas.Total,
		u.CurrentTenant,
		string(u.Status),
		u.CommercialTerms.RCD,
		u.CommercialTerms.RED,
		u.CommercialTerms.SecurityDeposit,
	}
}

// Rows projects units in source order.
func Rows(units []models.Unit) [][]any {
	rows := make([][]any, 0, len(units))
	for _, u := range units {
		rows = append(rows, Row(u))
	}
	return rows
}

// FileName is the download name for an export made at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("Omniyat_Portfolio_%s.xlsx", now.UTC().Format("2006-01-02"))
}

// Workbook builds the workbook in memory. The caller must Close it.
func Workbook(units []models.Unit) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range Rows(units) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return f, nil
}

// WriteWorkbook streams the xlsx for units to w.
func WriteWorkbook(w io.Writer, units []models.Unit) error {
	f, err := Workbook(units)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ToFile writes the export into dir under FileName(now) and returns the
// full path.
func ToFile(dir string, units []models.Unit, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteWorkbook(out, units); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}
