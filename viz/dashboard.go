// ABOUTME: Terminal dashboard and unit table rendering
// ABOUTME: Plain text output shared by the CLI and the MCP tools
package viz

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/portfolio"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"

func RenderDashboard(stats portfolio.DashboardStats) string {
	var out strings.Builder

	out.WriteString(rule)
	out.WriteString("  LEASEBOOK PORTFOLIO\n")
	out.WriteString(rule + "\n")

	out.WriteString("STATS\n")
	fmt.Fprintf(&out, "  %d assets  %d units  %s sqft GFA\n",
		stats.TotalAssets, stats.TotalUnits, FormatArea(stats.TotalGFA))
	fmt.Fprintf(&out, "  %d expiring in 180 days  %d vacant\n", stats.Expiring, stats.VacantUnits)
	fmt.Fprintf(&out, "  AED %s security deposits held\n\n", portfolio.FormatMoney(stats.DepositsHeld))

	out.WriteString("CATEGORY MIX\n")
	renderDistribution(&out, stats.Distribution)
	out.WriteString("\n")

	out.WriteString("RECENT ACTIVITY\n")
	if len(stats.RecentActivity) == 0 {
		out.WriteString("  no activity recorded\n")
	}
	for _, log := range stats.RecentActivity {
		out.WriteString("  " + FormatAuditLog(log) + "\n")
	}

	if len(stats.InconsistentGFA) > 0 {
		out.WriteString("\nNEEDS ATTENTION\n")
		fmt.Fprintf(&out, "  ⚠️  %d units - total area differs from its parts: %s\n",
			len(stats.InconsistentGFA), strings.Join(stats.InconsistentGFA, ", "))
	}

	return out.String()
}

func renderDistribution(out *strings.Builder, shares []portfolio.CategoryShare) {
	for _, s := range shares {
		// 0-10 blocks
		barLength := s.Percentage / 10
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		fmt.Fprintf(out, "  %-7s %s %3d%% (%d)\n", s.Category, bar, s.Percentage, s.Count)
	}
}

// FormatAuditLog renders one entry as "timestamp  activity  [count] status".
func FormatAuditLog(log models.AuditLog) string {
	status := string(log.Status)
	if log.Count != nil {
		status = fmt.Sprintf("%d %s", *log.Count, log.Status)
	}
	return fmt.Sprintf("%s  %s  %s", log.Timestamp, log.Activity, status)
}

// RenderUnits prints one line per unit.
func RenderUnits(units []models.Unit) string {
	if len(units) == 0 {
		return "No units found.\n"
	}
	var out strings.Builder
	fmt.Fprintf(&out, "%-6s %-16s %-10s %-24s %-7s %10s  %s\n",
		"ID", "ASSET", "UNIT", "TRADING NAME", "CAT", "AREA", "STATUS")
	for _, u := range units {
		fmt.Fprintf(&out, "%-6s %-16s %-10s %-24s %-7s %10s  %s\n",
			truncate(u.ID, 6), truncate(u.AssetName, 16), truncate(u.UnitNumber, 10),
			truncate(u.TradingName, 24), u.Category, FormatArea(u.Areas.Total), u.Status)
	}
	return out.String()
}

// RenderUnit prints every tab of the unit detail view.
func RenderUnit(u models.Unit) string {
	var out strings.Builder
	out.WriteString(rule)
	fmt.Fprintf(&out, "  %s  (%s, unit %s)\n", u.TradingName, u.AssetName, u.UnitNumber)
	out.WriteString(rule + "\n")
	out.WriteString(Overview(u) + "\n")
	out.WriteString(Timeline(u) + "\n")
	out.WriteString(Terms(u) + "\n")
	out.WriteString(RentTable(u))
	return out.String()
}

// Overview is the overview tab: identity, areas and occupancy.
func Overview(u models.Unit) string {
	var out strings.Builder
	out.WriteString("OVERVIEW\n")
	fmt.Fprintf(&out, "  Category: %s   Status: %s\n", u.Category, u.Status)
	fmt.Fprintf(&out, "  Tenant: %s\n", orDash(u.CurrentTenant))
	fmt.Fprintf(&out, "  Landlord: %s\n", orDash(u.Landlord))
	fmt.Fprintf(&out, "  Permitted use: %s\n", orDash(u.PermittedUse))
	fmt.Fprintf(&out, "  Car parks: %d\n", u.CarParkAllocation)
	a := u.Areas
	fmt.Fprintf(&out, "  Areas (sqft): indoor %s  terrace %s  mezzanine %s  outdoor %s  other %s  total %s\n",
		FormatArea(a.Indoor), FormatArea(a.Terrace), FormatArea(a.Mezzanine),
		FormatArea(a.Outdoor), FormatArea(a.Other), FormatArea(a.Total))
	if !a.Consistent() {
		fmt.Fprintf(&out, "  ⚠️  parts add up to %s\n", FormatArea(a.Sum()))
	}
	if u.Comments != "" {
		fmt.Fprintf(&out, "  Comments: %s\n", u.Comments)
	}
	return out.String()
}

// Timeline is the document history tab.
func Timeline(u models.Unit) string {
	var out strings.Builder
	out.WriteString("TIMELINE\n")
	if len(u.Documents) == 0 {
		out.WriteString("  no documents\n")
	}
	for _, d := range u.Documents {
		fmt.Fprintf(&out, "  %-12s %-28s %-8s %s / %s\n", d.Date, d.Type, d.Status, d.Landlord, d.Tenant)
		if d.FileName != "" {
			fmt.Fprintf(&out, "               file: %s\n", d.FileName)
		}
	}
	return out.String()
}

// Terms is the lease terms tab.
func Terms(u models.Unit) string {
	t := u.CommercialTerms
	var out strings.Builder
	out.WriteString("LEASE TERMS\n")
	fmt.Fprintf(&out, "  Commencement: %s   Term: %s\n", orDash(t.CommencementDate), orDash(t.TermDuration))
	fmt.Fprintf(&out, "  RCD: %s   RED: %s\n", orDash(t.RCD), orDash(t.RED))
	fmt.Fprintf(&out, "  Fitout: %s   Rent free: %s\n", orDash(t.FitoutPeriod), orDash(t.RentFreePeriod))
	fmt.Fprintf(&out, "  Security deposit: AED %s (%s)\n",
		money(t.SecurityDeposit), DepositPercent(t.SecurityDepositPercent))
	fmt.Fprintf(&out, "  Fitout deposit: AED %s (%s)\n",
		money(t.FitoutDeposit), DepositPercent(t.FitoutDepositPercent))
	return out.String()
}

// RentTable is the rent schedule tab.
func RentTable(u models.Unit) string {
	var out strings.Builder
	out.WriteString("RENT SCHEDULE\n")
	if len(u.RentSchedule) == 0 {
		out.WriteString("  no rent schedule\n")
		return out.String()
	}
	fmt.Fprintf(&out, "  %-4s %-12s %-12s %16s %10s %6s\n", "YEAR", "START", "END", "BASE RENT", "PER SQFT", "TOR%")
	for _, r := range u.RentSchedule {
		fmt.Fprintf(&out, "  %-4d %-12s %-12s %16s %10s %6s\n",
			r.Year, r.StartDate, r.EndDate, money(r.BaseRent),
			decimal.NewFromFloat(r.SqftRate).StringFixed(2),
			decimal.NewFromFloat(r.TORPercentage).String())
	}
	fmt.Fprintf(&out, "  Total: AED %s\n", portfolio.FormatMoney(portfolio.ScheduleTotal(u)))
	if u.Areas.Total > 0 {
		fmt.Fprintf(&out, "  Year 1 over %s sqft: AED %s per sqft\n",
			FormatArea(u.Areas.Total), portfolio.RentPerSqft(u, 1).StringFixed(2))
	}
	return out.String()
}

func money(v float64) string {
	return portfolio.FormatMoney(decimal.NewFromFloat(v))
}

// DepositPercent renders a deposit ratio in [0,1] as a percentage with one
// decimal, so 0.1 reads "10.0%".
func DepositPercent(ratio float64) string {
	return decimal.NewFromFloat(ratio).Shift(2).StringFixed(1) + "%"
}

// FormatArea renders square feet with separators, dropping zero decimals.
func FormatArea(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsInteger() {
		return strings.TrimSuffix(portfolio.FormatMoney(d), ".00")
	}
	return portfolio.FormatMoney(d)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
