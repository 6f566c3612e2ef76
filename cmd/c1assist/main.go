package main

import (
	"fmt"
	"os"

	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/log"
	"github.com/hpungsan/c1assist/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"create": true, "patch": true, "inspect": true, "plan": true,
	"serve": true, "mcp": true, "config": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	if len(args) < 2 {
		return false // No args → MCP server
	}
	arg := args[1]
	if cliCommands[arg] {
		return true
	}
	// Global flags come before the subcommand.
	if len(arg) > 1 && arg[0] == '-' {
		return true
	}
	return false
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
    ___  _    _           _     _
   / __|/ |  /_\  ______ (_)___| |_
  | (__ | | / _ \(_-<_-< | (_-<|  _|
   \___||_|/_/ \_\/__/__/|_/__/ \__|

  Photography project scaffolder

  Usage: c1assist <command> [options]
         c1assist --help

  MCP server mode requires piped input.`)
}

// loadConfig merges the global config with the nearest repo config above cwd.
func loadConfig() (*config.Config, error) {
	baseDir, err := config.DefaultBaseDir()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return config.LoadWithRepo(baseDir, cwd)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	log.SetLevel(cfg.LogLevel)

	if isCLIMode(os.Args) {
		app := newCLIApp(cfg)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'c1assist --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
