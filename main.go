// ABOUTME: Entry point for the leasebook CLI, TUI, web UI and MCP server
// ABOUTME: Loads config, opens the configured store and routes to a command
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/audit"
	"github.com/harperreed/leasebook/charm"
	"github.com/harperreed/leasebook/cli"
	"github.com/harperreed/leasebook/config"
	"github.com/harperreed/leasebook/db"
	"github.com/harperreed/leasebook/extract"
	"github.com/harperreed/leasebook/importer"
	"github.com/harperreed/leasebook/logging"
	"github.com/harperreed/leasebook/store"
	"github.com/harperreed/leasebook/tui"
)

const version = "0.2.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	// A missing .env is fine; it only supplies API keys.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("leasebook", flag.ContinueOnError)
	fs.Usage = printUsage
	showVersion := fs.Bool("version", false, "Show version and exit")
	configPath := fs.String("config", "", "Config file (default: ~/.config/leasebook/config.yaml)")
	backend := fs.String("store", "", "Storage backend: charm, badger or sqlite")
	dataDir := fs.String("data-dir", "", "Data directory (default: ~/.local/share/leasebook)")
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("leasebook version %s\n", version)
		return nil
	}

	command := "tui"
	args := fs.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Store.Backend = *backend
	}
	if *dataDir != "" {
		cfg.Store.DataDir = *dataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := os.Stdout

	// Commands that never touch the portfolio.
	switch command {
	case "version":
		fmt.Fprintf(out, "leasebook version %s\n", version)
		return nil
	case "help":
		printUsage()
		return nil
	case "config":
		path := *configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if len(args) > 0 && args[0] == "init" {
			return cli.ConfigInitCommand(path, out, args[1:])
		}
		if len(args) > 0 && args[0] == "show" {
			args = args[1:]
		}
		return cli.ConfigShowCommand(cfg, path, out, args)
	}

	logger, flush, err := logging.New(cfg.Log, cfg.Store.DataDir, command == "tui")
	if err != nil {
		return err
	}
	defer flush()

	if command == "sync" {
		return runSync(cfg, logger, args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if command == "auth" {
		return cli.AuthCommand(ctx, cfg.Store.DataDir, out, args)
	}

	kv, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Debug("store opened", zap.String("backend", cfg.Store.Backend), zap.String("data_dir", cfg.Store.DataDir))

	a, err := newApp(ctx, cfg, kv, logger)
	if err != nil {
		return err
	}

	switch command {
	case "tui":
		return tui.Run(a, cfg.Export.Dir)
	case "dashboard":
		return cli.DashboardCommand(a, out, args)
	case "units":
		return cli.UnitsCommand(a, out, args)
	case "unit":
		return cli.UnitCommand(a, out, args)
	case "logs":
		return cli.LogsCommand(a, out, args)
	case "import":
		return cli.ImportCommand(ctx, a, out, args)
	case "export":
		return cli.ExportCommand(a, out, args)
	case "wipe":
		return cli.WipeCommand(a, os.Stdin, out, args)
	case "extract":
		return cli.ExtractCommand(ctx, a, os.Stdin, out, args)
	case "graph":
		return cli.GraphCommand(ctx, a, out, args)
	case "web":
		return cli.WebCommand(a, cfg.Web.Port, args)
	case "mcp":
		return cli.MCPCommand(ctx, a, version, cfg.Export.Dir)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// openStore opens the configured backend. The returned func releases it.
func openStore(cfg *config.Config) (store.KV, func(), error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case config.BackendBadger:
		kv, err := store.OpenBadger(filepath.Join(cfg.Store.DataDir, "badger"))
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { _ = kv.Close() }, nil
	case config.BackendSQLite:
		kv, err := db.OpenStateStore(filepath.Join(cfg.Store.DataDir, "leasebook.db"))
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { _ = kv.Close() }, nil
	default:
		client, err := openCharm(cfg)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}
}

func openCharm(cfg *config.Config) (*charm.Client, error) {
	charmCfg, err := charm.LoadConfig(cfg.Store.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load charm config: %w", err)
	}
	return charm.Open(charmCfg)
}

// newApp assembles the App with the configured importer, extractor and
// audit cap over kv.
func newApp(ctx context.Context, cfg *config.Config, kv store.KV, logger *zap.Logger) (*app.App, error) {
	imp, err := importer.New(cfg.Import.Mode)
	if err != nil {
		return nil, err
	}
	gemini := extract.GeminiConfig{
		APIKey:     cfg.Extract.APIKey,
		OAuthToken: cfg.Extract.OAuthToken,
		Model:      cfg.Extract.Model,
	}
	if strings.EqualFold(cfg.Extract.Provider, extract.ModeGemini) && gemini.APIKey == "" && gemini.OAuthToken == "" {
		gemini.TokenSource = extract.SavedTokenSource(ctx, cfg.Store.DataDir)
	}
	ext, err := extract.New(ctx, cfg.Extract.Provider, gemini, logger)
	if err != nil {
		return nil, err
	}

	g := store.NewGateway(kv, logger)
	a := app.New(store.Open(g), logger)
	a.Gateway = g
	a.Importer = imp
	a.Extractor = ext
	a.Recorder = audit.NewRecorder(cfg.Audit.MaxEntries)
	return a, nil
}

func runSync(cfg *config.Config, logger *zap.Logger, args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("sync requires a subcommand")
	}

	client, err := openCharm(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	var out io.Writer = os.Stdout
	sub, subArgs := args[0], args[1:]
	logger.Debug("sync command", zap.String("subcommand", sub))

	switch sub {
	case "status":
		return charm.SyncStatusCommand(client, out, subArgs)
	case "now":
		return charm.SyncNowCommand(client, out, subArgs)
	case "auto":
		return charm.SetAutoSyncCommand(client, out, subArgs)
	case "link":
		return charm.SyncLinkCommand(client, out, subArgs)
	case "wipe":
		return charm.SyncWipeCommand(client, out, subArgs)
	default:
		printUsage()
		return fmt.Errorf("unknown sync command: %s", sub)
	}
}

func printUsage() {
	fmt.Printf(`leasebook v%s - retail lease portfolio manager

USAGE:
  leasebook [global flags] [command] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --config <path>        Config file (default: ~/.config/leasebook/config.yaml)
  --store <backend>      charm (default), badger or sqlite
  --data-dir <path>      Data directory (default: ~/.local/share/leasebook)

COMMANDS:
  (none)                 Open the terminal UI
  dashboard              Print portfolio KPIs
  units                  List units
    --query <text>         Search trading name, unit number or tenant
    --asset <name>         Only units in this asset
  unit <id>              Show one unit
    --tab <name>           overview, timeline, terms or rent
  logs                   Show import activity
    --limit <n>            Max entries (default: 20, 0 for all)
  import <file>...       Import lease documents or xlsx spreadsheets
  export                 Write the portfolio to an xlsx workbook
    --dir <path>           Output directory (default: .)
  wipe                   Delete all portfolio data
    --confirm              Skip the confirmation prompt
  extract <file|->       Extract lease terms from text
    --unit                 Print the mapped unit
  graph                  Render the asset/unit graph
    --output <file>        .svg, .png or .dot (default: DOT on stdout)
  web                    Start the web UI
    --port <n>             Port (default from config)
  mcp                    Start the MCP server on stdio
  auth                   Log in to Google for the gemini extractor
  sync status|now|auto|link  Charm cloud sync
  sync wipe --confirm    Clear the local charm database
  config [show|init]     Show or create the config file
  version                Show version

EXAMPLES:
  leasebook import ~/Downloads/portfolio.xlsx
  leasebook units --asset Opus
  leasebook export --dir ~/Desktop
  leasebook --store sqlite dashboard
`, version)
}
