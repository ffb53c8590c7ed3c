package viz

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/portfolio"
)

func TestRenderDashboardSeed(t *testing.T) {
	stats := portfolio.Dashboard(models.DefaultState(), time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC))
	out := RenderDashboard(stats)

	assert.Contains(t, out, "LEASEBOOK PORTFOLIO")
	assert.Contains(t, out, "1 assets  2 units  14,910 sqft GFA")
	assert.Contains(t, out, "F&B     ██████████ 100% (2)")
	assert.Contains(t, out, "69 records processed  18 Flagged")
}

func TestRenderDashboardEmpty(t *testing.T) {
	out := RenderDashboard(portfolio.Dashboard(models.EmptyState(), time.Now()))
	assert.Contains(t, out, "0 assets  0 units  0 sqft GFA")
	assert.Contains(t, out, "no activity recorded")
	assert.NotContains(t, out, "NEEDS ATTENTION")
}

func TestFormatAuditLogWithoutCount(t *testing.T) {
	log := models.AuditLog{Timestamp: "01/02/2026 10:00:00 AM", Activity: "lease.pdf processed", Status: models.AuditSuccess}
	assert.Equal(t, "01/02/2026 10:00:00 AM  lease.pdf processed  Success", FormatAuditLog(log))
}

func TestRenderUnits(t *testing.T) {
	assert.Equal(t, "No units found.\n", RenderUnits(nil))

	out := RenderUnits(models.DefaultState().Units)
	assert.Contains(t, out, "Revolver")
	assert.Contains(t, out, "10,185")
	assert.Contains(t, out, "Maine")
}

func TestRenderUnitTabs(t *testing.T) {
	u := models.DefaultState().Units[0]
	out := RenderUnit(u)

	assert.Contains(t, out, "OVERVIEW")
	assert.Contains(t, out, "Gunpowder Restaurant LLC")
	assert.Contains(t, out, "TIMELINE")
	assert.Contains(t, out, "LEASE TERMS")
	assert.Contains(t, out, "RED: 25 Feb 2031")
	assert.Contains(t, out, "RENT SCHEDULE")
}

func TestTermsShowDepositRatiosAsPercent(t *testing.T) {
	units := models.DefaultState().Units

	out := Terms(units[0])
	assert.Contains(t, out, "Security deposit: AED 283,201.00 (10.0%)")
	assert.NotContains(t, out, "(0.1%)")

	out = Terms(units[1])
	assert.Contains(t, out, "(8.0%)")
	assert.Contains(t, out, "Fitout deposit: AED")
	assert.Contains(t, out, "(2.0%)")
}

func TestDepositPercent(t *testing.T) {
	assert.Equal(t, "0.0%", DepositPercent(0))
	assert.Equal(t, "10.0%", DepositPercent(0.1))
	assert.Equal(t, "12.5%", DepositPercent(0.125))
	assert.Equal(t, "100.0%", DepositPercent(1))
}

func TestRentTableRentPerSqft(t *testing.T) {
	out := RentTable(models.DefaultState().Units[0])
	assert.Contains(t, out, "Total: AED 2,500,000.00")
	assert.Contains(t, out, "Year 1 over 10,185 sqft: AED 117.82 per sqft")
}

func TestRentTableEmpty(t *testing.T) {
	u := models.DefaultState().Units[1]
	assert.Contains(t, RentTable(u), "no rent schedule")
	assert.Contains(t, Timeline(u), "no documents")
}

func TestPortfolioGraph(t *testing.T) {
	dot, err := PortfolioGraph(context.Background(), models.DefaultState(), graphviz.XDOT)
	require.NoError(t, err)

	out := string(dot)
	assert.Contains(t, out, "asset_1")
	assert.Contains(t, out, "asset_2")
	assert.Contains(t, out, "unit_u1")
	assert.Contains(t, out, "Revolver")
	assert.Contains(t, out, "->")
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, graphviz.SVG, FormatFor("portfolio.SVG"))
	assert.Equal(t, graphviz.PNG, FormatFor("out/portfolio.png"))
	assert.Equal(t, graphviz.XDOT, FormatFor("portfolio.dot"))
	assert.Equal(t, graphviz.XDOT, FormatFor(""))
}
