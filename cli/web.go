// ABOUTME: Web UI subcommand
// ABOUTME: Serves the read-only portfolio dashboard over HTTP
package cli

import (
	"flag"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/web"
)

// WebCommand starts the web server on --port (default from config).
func WebCommand(a *app.App, defaultPort int, args []string) error {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	port := fs.Int("port", defaultPort, "Port to listen on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	server, err := web.NewServer(a, a.Logger)
	if err != nil {
		return err
	}
	return server.Start(*port)
}
