// ABOUTME: Portfolio data CLI commands
// ABOUTME: Import, xlsx export, confirmed wipe and lease term extraction
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/harperreed/leasebook/app"
)

// isTerminal reports whether r is an interactive terminal.
var isTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ImportCommand imports each file named on the command line.
func ImportCommand(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("at least one file required")
	}

	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		entry, err := a.Import(ctx, filepath.Base(path), f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}

		count := 0
		if entry.Count != nil {
			count = *entry.Count
		}
		fmt.Fprintf(out, "✓ %s: %s (%d units)\n", entry.Activity, entry.Status, count)
	}
	return nil
}

// ExportCommand writes the portfolio workbook into --dir.
func ExportCommand(a *app.App, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Directory to write the xlsx into")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := a.ExportTo(*dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Exported %d units to %s\n", len(a.State().Units), path)
	return nil
}

// WipeCommand deletes all portfolio data. Without --confirm it asks on an
// interactive terminal and refuses otherwise.
func WipeCommand(a *app.App, in io.Reader, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("wipe", flag.ContinueOnError)
	confirm := fs.Bool("confirm", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	confirmed := *confirm
	if !confirmed {
		if !isTerminal(in) {
			return fmt.Errorf("refusing to wipe without --confirm")
		}
		state := a.State()
		fmt.Fprintf(out, "This deletes %d units, %d assets and %d audit entries.\n",
			len(state.Units), len(state.Assets), len(state.AuditLogs))
		fmt.Fprint(out, "Type 'yes' to delete all data: ")

		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		confirmed = strings.TrimSpace(strings.ToLower(answer)) == "yes"
	}

	if err := a.Wipe(confirmed); err != nil {
		if errors.Is(err, app.ErrNotConfirmed) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return err
	}
	fmt.Fprintln(out, "✓ Portfolio wiped")
	return nil
}

// ExtractCommand reads lease text from a file (or stdin for "-") and prints
// the extracted terms as JSON.
func ExtractCommand(ctx context.Context, a *app.App, in io.Reader, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	asUnit := fs.Bool("unit", false, "Print the unit the terms map to instead of the raw extraction")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("file required (use - for stdin)")
	}

	var text []byte
	var err error
	if fs.Arg(0) == "-" {
		text, err = io.ReadAll(in)
	} else {
		text, err = os.ReadFile(fs.Arg(0))
	}
	if err != nil {
		return fmt.Errorf("failed to read lease text: %w", err)
	}

	e, err := a.Extract(ctx, string(text))
	if err != nil {
		return err
	}
	if e == nil {
		fmt.Fprintln(out, "No terms extracted.")
		return nil
	}

	var v any = e
	if *asUnit {
		v = e.ToUnit()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
