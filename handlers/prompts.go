// ABOUTME: MCP prompt handlers for reusable lease workflows
// ABOUTME: Builds lease review and expiry planning prompts from portfolio data
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/portfolio"
	"github.com/harperreed/leasebook/viz"
)

type PromptHandlers struct {
	app *app.App
}

func NewPromptHandlers(a *app.App) *PromptHandlers {
	return &PromptHandlers{app: a}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "lease-review":
		return h.getLeaseReviewPrompt(request.Params.Arguments)
	case "expiry-plan":
		return h.getExpiryPlanPrompt()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getLeaseReviewPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["unit_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("unit_id is required")
	}
	u, err := h.app.Unit(id)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Review this retail lease and flag risks, missing terms and upcoming obligations:\n\n")
	b.WriteString(viz.RenderUnit(u))
	fmt.Fprintf(&b, "\nScheduled rent total: AED %s\n", portfolio.FormatMoney(portfolio.ScheduleTotal(u)))
	if !u.Areas.Consistent() {
		fmt.Fprintf(&b, "Note: stored total area %s differs from the component sum %s.\n",
			viz.FormatArea(u.Areas.Total), viz.FormatArea(u.Areas.Sum()))
	}

	return &mcp.GetPromptResult{
		Description: "Lease review for " + u.TradingName,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: b.String()}},
		},
	}, nil
}

func (h *PromptHandlers) getExpiryPlanPrompt() (*mcp.GetPromptResult, error) {
	now := h.app.Now()
	expiring := portfolio.ExpiringWithin(h.app.State().Units, now, portfolio.ExpiryWindow)

	var b strings.Builder
	fmt.Fprintf(&b, "As of %s these leases expire within %d days. Suggest a renewal or re-leasing plan for each:\n\n",
		now.Format("02 Jan 2006"), int(portfolio.ExpiryWindow/(24*time.Hour)))
	if len(expiring) == 0 {
		b.WriteString("(none)\n")
	}
	for _, u := range expiring {
		fmt.Fprintf(&b, "- %s, unit %s at %s: tenant %s, RED %s, year 1 rent AED %s\n",
			u.TradingName, u.UnitNumber, u.AssetName, u.CurrentTenant, u.CommercialTerms.RED,
			portfolio.FormatMoney(portfolio.AnnualRent(u, 1)))
	}

	return &mcp.GetPromptResult{
		Description: "Lease expiry plan",
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: b.String()}},
		},
	}, nil
}
