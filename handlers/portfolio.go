// ABOUTME: MCP tool handlers for the lease portfolio
// ABOUTME: Dashboard, unit search, audit log, import, export, wipe and extraction tools
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/audit"
	"github.com/harperreed/leasebook/extract"
	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/portfolio"
	"github.com/harperreed/leasebook/viz"
)

type PortfolioHandlers struct {
	app *app.App
	// exportDir is used when export_portfolio is called without a dir.
	exportDir string
}

func NewPortfolioHandlers(a *app.App, exportDir string) *PortfolioHandlers {
	return &PortfolioHandlers{app: a, exportDir: exportDir}
}

type GetDashboardInput struct{}

type GetDashboardOutput struct {
	TotalAssets    int                       `json:"total_assets"`
	TotalUnits     int                       `json:"total_units"`
	TotalGFA       float64                   `json:"total_gfa"`
	Expiring180    int                       `json:"expiring_180_days"`
	VacantUnits    int                       `json:"vacant_units"`
	DepositsHeld   string                    `json:"deposits_held"`
	Distribution   []portfolio.CategoryShare `json:"distribution"`
	RecentActivity []models.AuditLog         `json:"recent_activity"`
	Summary        string                    `json:"summary"`
}

func (h *PortfolioHandlers) GetDashboard(_ context.Context, _ *mcp.CallToolRequest, _ GetDashboardInput) (*mcp.CallToolResult, GetDashboardOutput, error) {
	stats := portfolio.Dashboard(h.app.State(), h.app.Now())
	if stats.Distribution == nil {
		stats.Distribution = []portfolio.CategoryShare{}
	}

	return nil, GetDashboardOutput{
		TotalAssets:    stats.TotalAssets,
		TotalUnits:     stats.TotalUnits,
		TotalGFA:       stats.TotalGFA,
		Expiring180:    stats.Expiring,
		VacantUnits:    stats.VacantUnits,
		DepositsHeld:   stats.DepositsHeld.StringFixed(2),
		Distribution:   stats.Distribution,
		RecentActivity: stats.RecentActivity,
		Summary:        viz.RenderDashboard(stats),
	}, nil
}

type FindUnitsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Case-insensitive match against trading name, unit number or tenant"`
	Asset string `json:"asset,omitempty" jsonschema:"Asset name to filter by (default: all assets)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results to return (default 50)"`
}

type UnitSummary struct {
	ID          string            `json:"id"`
	AssetName   string            `json:"asset_name"`
	UnitNumber  string            `json:"unit_number"`
	TradingName string            `json:"trading_name"`
	Category    models.Category   `json:"category"`
	Status      models.UnitStatus `json:"status"`
	Tenant      string            `json:"tenant"`
	TotalArea   float64           `json:"total_area"`
	RED         string            `json:"red"`
}

type FindUnitsOutput struct {
	Units []UnitSummary `json:"units"`
	Count int           `json:"count"`
	Total int           `json:"total"`
}

func (h *PortfolioHandlers) FindUnits(_ context.Context, _ *mcp.CallToolRequest, input FindUnitsInput) (*mcp.CallToolResult, FindUnitsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}
	asset := input.Asset
	if asset == "" {
		asset = portfolio.AllAssets
	}

	state := h.app.State()
	units := portfolio.FilterUnits(state.Units, input.Query, asset)
	if len(units) > input.Limit {
		units = units[:input.Limit]
	}

	out := FindUnitsOutput{Units: make([]UnitSummary, 0, len(units)), Total: len(state.Units)}
	for _, u := range units {
		out.Units = append(out.Units, summarize(u))
	}
	out.Count = len(out.Units)
	return nil, out, nil
}

func summarize(u models.Unit) UnitSummary {
	return UnitSummary{
		ID:          u.ID,
		AssetName:   u.AssetName,
		UnitNumber:  u.UnitNumber,
		TradingName: u.TradingName,
		Category:    u.Category,
		Status:      u.Status,
		Tenant:      u.CurrentTenant,
		TotalArea:   u.Areas.Total,
		RED:         u.CommercialTerms.RED,
	}
}

type GetUnitInput struct {
	ID string `json:"id" jsonschema:"Unit id"`
}

type GetUnitOutput struct {
	Unit           models.Unit `json:"unit"`
	ScheduleTotal  string      `json:"schedule_total"`
	AreaConsistent bool        `json:"area_consistent"`
}

func (h *PortfolioHandlers) GetUnit(_ context.Context, _ *mcp.CallToolRequest, input GetUnitInput) (*mcp.CallToolResult, GetUnitOutput, error) {
	if input.ID == "" {
		return nil, GetUnitOutput{}, fmt.Errorf("id is required")
	}
	u, err := h.app.Unit(input.ID)
	if err != nil {
		return nil, GetUnitOutput{}, err
	}
	return nil, GetUnitOutput{
		Unit:           u,
		ScheduleTotal:  portfolio.ScheduleTotal(u).StringFixed(2),
		AreaConsistent: u.Areas.Consistent(),
	}, nil
}

type ListAuditLogsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum entries to return, newest first (default 20)"`
}

type ListAuditLogsOutput struct {
	Logs  []models.AuditLog `json:"logs"`
	Count int               `json:"count"`
}

func (h *PortfolioHandlers) ListAuditLogs(_ context.Context, _ *mcp.CallToolRequest, input ListAuditLogsInput) (*mcp.CallToolResult, ListAuditLogsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	logs := audit.Recent(h.app.State().AuditLogs, input.Limit)
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return nil, ListAuditLogsOutput{Logs: logs, Count: len(logs)}, nil
}

type ExportPortfolioInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"Directory to write the xlsx into (default: configured export dir)"`
}

type ExportPortfolioOutput struct {
	Path  string `json:"path"`
	Units int    `json:"units"`
}

func (h *PortfolioHandlers) ExportPortfolio(_ context.Context, _ *mcp.CallToolRequest, input ExportPortfolioInput) (*mcp.CallToolResult, ExportPortfolioOutput, error) {
	dir := input.Dir
	if dir == "" {
		dir = h.exportDir
	}
	path, err := h.app.ExportTo(dir)
	if err != nil {
		return nil, ExportPortfolioOutput{}, fmt.Errorf("failed to export portfolio: %w", err)
	}
	return nil, ExportPortfolioOutput{Path: path, Units: len(h.app.State().Units)}, nil
}

type ImportFileInput struct {
	Path string `json:"path" jsonschema:"Path of the lease document or spreadsheet to import"`
}

type ImportFileOutput struct {
	Entry models.AuditLog `json:"entry"`
	Units int             `json:"units"`
}

func (h *PortfolioHandlers) ImportFile(ctx context.Context, _ *mcp.CallToolRequest, input ImportFileInput) (*mcp.CallToolResult, ImportFileOutput, error) {
	if input.Path == "" {
		return nil, ImportFileOutput{}, fmt.Errorf("path is required")
	}
	f, err := os.Open(input.Path)
	if err != nil {
		return nil, ImportFileOutput{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	entry, err := h.app.Import(ctx, filepath.Base(input.Path), f)
	if err != nil {
		return nil, ImportFileOutput{}, err
	}
	return nil, ImportFileOutput{Entry: entry, Units: len(h.app.State().Units)}, nil
}

type WipePortfolioInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true. Deletes every unit, asset and audit entry and cannot be undone"`
}

type WipePortfolioOutput struct {
	Wiped bool `json:"wiped"`
}

func (h *PortfolioHandlers) WipePortfolio(_ context.Context, _ *mcp.CallToolRequest, input WipePortfolioInput) (*mcp.CallToolResult, WipePortfolioOutput, error) {
	if err := h.app.Wipe(input.Confirm); err != nil {
		if errors.Is(err, app.ErrNotConfirmed) {
			return nil, WipePortfolioOutput{}, fmt.Errorf("wipe_portfolio requires confirm: true")
		}
		return nil, WipePortfolioOutput{}, err
	}
	return nil, WipePortfolioOutput{Wiped: true}, nil
}

type ExtractLeaseTermsInput struct {
	Text string `json:"text" jsonschema:"Text extracted from a lease document"`
}

type ExtractLeaseTermsOutput struct {
	Found      bool                `json:"found"`
	Extraction *extract.Extraction `json:"extraction,omitempty"`
	Unit       *models.Unit        `json:"unit,omitempty"`
}

func (h *PortfolioHandlers) ExtractLeaseTerms(ctx context.Context, _ *mcp.CallToolRequest, input ExtractLeaseTermsInput) (*mcp.CallToolResult, ExtractLeaseTermsOutput, error) {
	if input.Text == "" {
		return nil, ExtractLeaseTermsOutput{}, fmt.Errorf("text is required")
	}
	e, err := h.app.Extract(ctx, input.Text)
	if err != nil {
		return nil, ExtractLeaseTermsOutput{}, err
	}
	if e == nil {
		return nil, ExtractLeaseTermsOutput{Found: false}, nil
	}
	u := e.ToUnit()
	return nil, ExtractLeaseTermsOutput{Found: true, Extraction: e, Unit: &u}, nil
}
