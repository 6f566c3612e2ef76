package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/c1assist/internal/config"
	"github.com/hpungsan/c1assist/internal/errors"
	"github.com/hpungsan/c1assist/internal/log"
	"github.com/hpungsan/c1assist/internal/mcp"
	"github.com/hpungsan/c1assist/internal/ops"
	"github.com/hpungsan/c1assist/internal/web"
)

// stdout receives command output; tests swap it.
var stdout io.Writer = os.Stdout

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "c1assist",
		Usage:   "Photography project scaffolder and session database patcher",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "Override log level: debug|info|warn|error|off"},
		},
		Before: func(c *cli.Context) error {
			if level := c.String("log-level"); level != "" {
				cfg.LogLevel = level
				log.SetLevel(level)
			}
			return nil
		},
		Commands: []*cli.Command{
			createCmd(cfg),
			patchCmd(cfg),
			inspectCmd(cfg),
			planCmd(cfg),
			serveCmd(cfg),
			mcpCmd(cfg),
			configCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// projectFlags returns the flags shared by create and plan.
func projectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "folders", Aliases: []string{"n"}, Value: 1, Usage: "Number of numbered capture folders"},
		&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Existing parent directory (defaults to the current directory)"},
	}
}

// projectInput builds a create request from a command's argument and flags.
func projectInput(c *cli.Context) (ops.CreateInput, error) {
	if c.NArg() != 1 {
		return ops.CreateInput{}, errors.NewInvalidInput("exactly one project name is required")
	}
	location := c.String("location")
	if location == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ops.CreateInput{}, errors.NewInternal(err)
		}
		location = cwd
	}
	return ops.CreateInput{
		Name:        c.Args().First(),
		FolderCount: c.Int("folders"),
		Location:    location,
	}, nil
}

// createCmd creates the create command.
func createCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a project with numbered capture folders and a patched session database",
		ArgsUsage: "<name>",
		Flags:     projectFlags(),
		Action: func(c *cli.Context) error {
			input, err := projectInput(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Create(cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// planCmd creates the plan command.
func planCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Show what create would do without writing anything",
		ArgsUsage: "<name>",
		Flags:     projectFlags(),
		Action: func(c *cli.Context) error {
			input, err := projectInput(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Plan(cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// patchCmd creates the patch command.
func patchCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "patch",
		Usage:     "Register numbered capture folders in an existing session database",
		ArgsUsage: "<session file or project directory>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "folders", Aliases: []string{"n"}, Value: 1, Usage: "Number of numbered capture folders"},
			&cli.BoolFlag{Name: "skip-existing", Usage: "Skip folders that are already registered"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidInput("exactly one database path is required"))
			}

			output, err := ops.Patch(cfg, ops.PatchInput{
				DatabasePath: c.Args().First(),
				FolderCount:  c.Int("folders"),
				SkipExisting: c.Bool("skip-existing"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// inspectCmd creates the inspect command.
func inspectCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "List the path locations registered in a session database",
		ArgsUsage: "<session file or project directory>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidInput("exactly one database path is required"))
			}

			output, err := ops.Inspect(cfg, ops.InspectInput{DatabasePath: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the read-only session browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8321, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			port := c.Int("port")
			if port < 1 || port > 65535 {
				return outputError(errors.NewInvalidInput(fmt.Sprintf("port must be between 1 and 65535, got %d", port)))
			}

			srv, err := web.NewServer(cfg, Version, c.String("bind"), port)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if err := web.Run(srv); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server on stdio",
		Action: func(c *cli.Context) error {
			if err := mcp.Run(cfg, Version); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// configCmd creates the config command.
func configCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration and resolved template search path",
		Action: func(c *cli.Context) error {
			return outputJSON(struct {
				*config.Config
				ResolvedSearchPath []string `json:"resolved_template_search_paths"`
			}{
				Config:             cfg,
				ResolvedSearchPath: config.ResolveSearchPaths(cfg.TemplateSearchPaths, config.CurrentSearchEnv()),
			})
		},
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if cErr, ok := err.(*errors.C1Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
