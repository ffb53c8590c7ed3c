// ABOUTME: MCP resource handlers for exposing portfolio data
// ABOUTME: Serves the whole portfolio, single units and the audit trail by URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/leasebook/app"
)

const resourceScheme = "leasebook://"

type ResourceHandlers struct {
	app *app.App
}

func NewResourceHandlers(a *app.App) *ResourceHandlers {
	return &ResourceHandlers{app: a}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	state := h.app.State()

	switch parts[0] {
	case "portfolio":
		return jsonResource(uri, state)
	case "units":
		if len(parts) == 1 || parts[1] == "" {
			return jsonResource(uri, state.Units)
		}
		u, err := h.app.Unit(parts[1])
		if err != nil {
			return nil, fmt.Errorf("unknown unit: %s", parts[1])
		}
		return jsonResource(uri, u)
	case "audit":
		return jsonResource(uri, state.AuditLogs)
	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
