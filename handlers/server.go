// ABOUTME: MCP server assembly
// ABOUTME: Registers every portfolio tool, resource and prompt on one server
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/leasebook/app"
)

// NewServer builds an MCP server exposing the portfolio behind a.
func NewServer(a *app.App, version, exportDir string) *mcp.Server {
	portfolioHandlers := NewPortfolioHandlers(a, exportDir)
	resourceHandlers := NewResourceHandlers(a)
	promptHandlers := NewPromptHandlers(a)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "leasebook",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Portfolio KPIs: assets, units, GFA, leases expiring within 180 days, vacancies, deposits and category mix",
	}, portfolioHandlers.GetDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_units",
		Description: "Search units by trading name, unit number or tenant, optionally within one asset",
	}, portfolioHandlers.FindUnits)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_unit",
		Description: "Get a unit with its lease terms, rent schedule and documents",
	}, portfolioHandlers.GetUnit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_audit_logs",
		Description: "List import activity, newest first",
	}, portfolioHandlers.ListAuditLogs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_portfolio",
		Description: "Write every unit to an xlsx workbook and return its path",
	}, portfolioHandlers.ExportPortfolio)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_file",
		Description: "Import a lease document or spreadsheet and record the result in the audit log",
	}, portfolioHandlers.ImportFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "wipe_portfolio",
		Description: "Delete all units, assets and audit entries. Requires confirm: true",
	}, portfolioHandlers.WipePortfolio)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_lease_terms",
		Description: "Extract unit and commercial terms from lease text using the configured provider",
	}, portfolioHandlers.ExtractLeaseTerms)

	server.AddResource(&mcp.Resource{
		URI:         "leasebook://portfolio",
		Name:        "portfolio",
		Description: "The whole persisted portfolio document",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         "leasebook://audit",
		Name:        "audit",
		Description: "Audit trail, newest first",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "leasebook://units/{id}",
		Name:        "unit",
		Description: "A single unit by id",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddPrompt(&mcp.Prompt{
		Name:        "lease-review",
		Description: "Review one unit's lease for risks and missing terms",
		Arguments: []*mcp.PromptArgument{
			{Name: "unit_id", Description: "Unit id", Required: true},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "expiry-plan",
		Description: "Plan renewals for leases expiring within 180 days",
	}, promptHandlers.GetPrompt)

	return server
}
