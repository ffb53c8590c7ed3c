// ABOUTME: Configuration CLI commands
// ABOUTME: Shows the effective settings and writes a starter config file
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/harperreed/leasebook/config"
)

// ConfigShowCommand prints the effective configuration as YAML. Secrets are
// masked.
func ConfigShowCommand(cfg *config.Config, path string, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("config show", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	shown := *cfg
	if shown.Extract.APIKey != "" {
		shown.Extract.APIKey = "********"
	}
	data, err := yaml.Marshal(&shown)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# %s\n", path)
	_, err = out.Write(data)
	return err
}

// ConfigInitCommand writes the default configuration to path unless a file
// already exists there.
func ConfigInitCommand(path string, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Wrote %s\n", path)
	return nil
}
