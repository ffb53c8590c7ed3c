// ABOUTME: Graphviz rendering of the asset and unit hierarchy
// ABOUTME: One box per asset linked to an ellipse per unit, coloured by status
package viz

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/leasebook/models"
)

var statusColors = map[models.UnitStatus]string{
	models.StatusOccupied:   "lightgreen",
	models.StatusVacant:     "lightpink",
	models.StatusUnderOffer: "lightyellow",
}

// PortfolioGraph renders assets and their units. Units whose asset is not
// in the asset list get a node named after their asset name.
func PortfolioGraph(ctx context.Context, state models.AppState, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel("Portfolio")
	graph.SetRankDir(cgraph.LRRank)

	assetNodes := make(map[string]*cgraph.Node)
	addAsset := func(key, name string) (*cgraph.Node, error) {
		if n, ok := assetNodes[key]; ok {
			return n, nil
		}
		node, err := graph.CreateNodeByName("asset_" + key)
		if err != nil {
			return nil, fmt.Errorf("failed to create asset node: %w", err)
		}
		node.SetLabel(name)
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor("lightblue")
		assetNodes[key] = node
		return node, nil
	}

	for _, a := range state.Assets {
		if _, err := addAsset(a.ID, a.Name); err != nil {
			return nil, err
		}
	}

	for _, u := range state.Units {
		key := u.AssetID
		if key == "" {
			key = "name_" + u.AssetName
		}
		parent, err := addAsset(key, u.AssetName)
		if err != nil {
			return nil, err
		}

		node, err := graph.CreateNodeByName("unit_" + u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create unit node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s\n%s sqft", u.TradingName, u.UnitNumber, FormatArea(u.Areas.Total)))
		node.SetShape("ellipse")
		node.SetStyle("filled")
		if color, ok := statusColors[u.Status]; ok {
			node.SetFillColor(color)
		}

		edge, err := graph.CreateEdgeByName("unit_of_"+u.ID, parent, node)
		if err != nil {
			return nil, fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel(string(u.Category))
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, format, &buf); err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatFor picks the render format from an output file extension.
func FormatFor(path string) graphviz.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return graphviz.SVG
	case ".png":
		return graphviz.PNG
	}
	return graphviz.XDOT
}
