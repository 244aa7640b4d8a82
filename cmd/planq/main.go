package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hpungsan/planq/internal/config"
	"github.com/hpungsan/planq/internal/draft"
	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/logging"
	"github.com/hpungsan/planq/internal/mcp"
	"github.com/hpungsan/planq/internal/queue"
	"github.com/hpungsan/planq/internal/storage"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add": true, "list": true, "today": true, "ready": true,
	"show": true, "generate": true, "post": true, "unpost": true,
	"remove": true, "export": true, "import": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___ | |__ _ _ _  __ _
  | . \| |// ' | \|/ . |
  |  _/|_|\_._|_|_|\_. |
  |_|                |_|

  Content queue and draft planner

  Usage: planq <command> [options]
         planq --help

  MCP server mode requires piped input.`)
}

// missingKeyService fails every generation request with a setup hint.
type missingKeyService struct{}

func (missingKeyService) Generate(context.Context, draft.Request) (string, error) {
	return "", errors.NewGenerationFailed("OPENAI_API_KEY is not set")
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before store init (no store needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logging.Init(slog.LevelInfo)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".planq")

	config.LoadEnv(baseDir)

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := storage.Open(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := queue.Open(context.Background(), db, cfg.Fallbacks())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load queue: %v\n", err)
		os.Exit(1)
	}
	if warn := store.CorruptWarning(); warn != nil {
		slog.Warn("persisted queue was unreadable, starting empty", "error", warn.Message)
	}

	var svc draft.Service = missingKeyService{}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		svc, err = draft.NewOpenAIService(key, cfg.Model, cfg.RequestTimeout())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to configure generation service: %v\n", err)
			os.Exit(1)
		}
	}
	gen := draft.NewClient(store, svc)
	gen.BrandVoice = cfg.BrandVoice

	a := &appState{
		store:   store,
		gen:     gen,
		cfg:     cfg,
		baseDir: baseDir,
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(a)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'planq --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(store, gen, cfg, baseDir, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
