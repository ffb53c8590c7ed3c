// ABOUTME: Spreadsheet importer reading the portfolio export layout
// ABOUTME: Maps header columns by name and skips rows with invalid values
package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/harperreed/leasebook/export"
	"github.com/harperreed/leasebook/models"
)

// Spreadsheet reads the first sheet of an xlsx workbook laid out like an
// export: one header row using export.Columns, one unit per row.
type Spreadsheet struct{}

func (Spreadsheet) Import(ctx context.Context, name string, r io.Reader) (Result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
	default:
		return Result{}, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, fmt.Errorf("%s: workbook has no sheets", name)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Result{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("%s: sheet %q is empty", name, sheets[0])
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}

	res := Result{
		Activity: processedActivity(name),
		Status:   models.AuditSuccess,
	}
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if blank(row) {
			continue
		}
		u, err := unitFromRow(index, row)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		res.Units = append(res.Units, u)
	}

	res.Count = len(res.Units)
	if len(res.Skipped) > 0 {
		res.Status = models.AuditWarning
	}
	return res, nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, c := range export.Columns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func unitFromRow(index map[string]int, row []string) (models.Unit, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	category, err := models.ParseCategory(cell("Category"))
	if err != nil {
		return models.Unit{}, err
	}
	status, err := models.ParseUnitStatus(cell("Status"))
	if err != nil {
		return models.Unit{}, err
	}
	area, err := parseNumber(cell("Total Area"))
	if err != nil {
		return models.Unit{}, fmt.Errorf("total area: %w", err)
	}
	deposit, err := parseNumber(cell("Security Deposit"))
	if err != nil {
		return models.Unit{}, fmt.Errorf("security deposit: %w", err)
	}

	return models.Unit{
		AssetName:     cell("Asset"),
		UnitNumber:    cell("Unit #"),
		TradingName:   cell("Trading Name"),
		Category:      category,
		Status:        status,
		CurrentTenant: cell("Tenant"),
		// Only the total is known; put it under indoor so the breakdown stays consistent.
		Areas: models.AreaBreakdown{Indoor: area, Total: area},
		CommercialTerms: models.CommercialTerms{
			RCD:             cell("RCD"),
			RED:             cell("RED"),
			SecurityDeposit: deposit,
		},
	}, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
