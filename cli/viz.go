// ABOUTME: Visualization CLI command
// ABOUTME: Renders the asset and unit graph as DOT, SVG or PNG
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-graphviz"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/viz"
)

// GraphCommand generates the portfolio graph. The format follows the
// --output extension; stdout gets DOT.
func GraphCommand(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format := graphviz.XDOT
	if *output != "" {
		format = viz.FormatFor(*output)
	}

	data, err := viz.PortfolioGraph(ctx, a.State(), format)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Graph written to %s\n", *output)
		return nil
	}

	_, err = out.Write(data)
	return err
}
