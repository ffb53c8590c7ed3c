// ABOUTME: Read-only portfolio CLI commands
// ABOUTME: Dashboard, unit listing, unit detail and audit log output
package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/audit"
	"github.com/harperreed/leasebook/portfolio"
	"github.com/harperreed/leasebook/viz"
)

// DashboardCommand prints the portfolio KPIs.
func DashboardCommand(a *app.App, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats := portfolio.Dashboard(a.State(), a.Now())
	fmt.Fprint(out, viz.RenderDashboard(stats))
	if ts, ok := a.LastSaved(); ok {
		fmt.Fprintf(out, "\nLast saved: %s\n", ts.Local().Format("02 Jan 2006 15:04"))
	}
	return nil
}

// UnitsCommand lists units, optionally filtered.
func UnitsCommand(a *app.App, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("units", flag.ContinueOnError)
	query := fs.String("query", "", "Search trading name, unit number or tenant")
	asset := fs.String("asset", portfolio.AllAssets, "Only units in this asset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all := a.State().Units
	units := portfolio.FilterUnits(all, *query, *asset)
	fmt.Fprint(out, viz.RenderUnits(units))
	if len(units) > 0 {
		fmt.Fprintf(out, "\n%d of %d units\n", len(units), len(all))
	}
	return nil
}

// UnitCommand prints one unit. --tab limits output to a single section.
func UnitCommand(a *app.App, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("unit", flag.ContinueOnError)
	tab := fs.String("tab", "", "Section to show: overview, timeline, terms or rent (default: all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("unit ID required")
	}

	u, err := a.Unit(fs.Arg(0))
	if err != nil {
		return err
	}

	switch *tab {
	case "":
		fmt.Fprint(out, viz.RenderUnit(u))
	case "overview":
		fmt.Fprint(out, viz.Overview(u))
	case "timeline":
		fmt.Fprint(out, viz.Timeline(u))
	case "terms":
		fmt.Fprint(out, viz.Terms(u))
	case "rent":
		fmt.Fprint(out, viz.RentTable(u))
	default:
		return fmt.Errorf("unknown tab %q", *tab)
	}
	return nil
}

// LogsCommand prints the audit trail, newest first.
func LogsCommand(a *app.App, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "Max entries (0 for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logs := a.State().AuditLogs
	if *limit > 0 {
		logs = audit.Recent(logs, *limit)
	}
	if len(logs) == 0 {
		fmt.Fprintln(out, "No activity yet.")
		return nil
	}
	for _, l := range logs {
		fmt.Fprintln(out, viz.FormatAuditLog(l))
	}
	return nil
}
