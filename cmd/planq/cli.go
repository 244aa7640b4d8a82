package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/planq/internal/config"
	"github.com/hpungsan/planq/internal/draft"
	"github.com/hpungsan/planq/internal/errors"
	"github.com/hpungsan/planq/internal/queue"
	"github.com/hpungsan/planq/internal/topic"
	"github.com/hpungsan/planq/internal/web"
)

// appState holds the shared dependencies behind every CLI command.
type appState struct {
	store   *queue.Store
	gen     *draft.Client
	cfg     *config.Config
	baseDir string
}

// listOutput is the JSON shape shared by list, today, and ready.
type listOutput struct {
	Topics      []topic.Topic `json:"topics"`
	Count       int           `json:"count"`
	DraftsReady int           `json:"drafts_ready"`
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(a *appState) *cli.App {
	app := &cli.App{
		Name:    "planq",
		Usage:   "Content queue and draft planner",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(a),
			listCmd(a),
			todayCmd(a),
			readyCmd(a),
			showCmd(a),
			generateCmd(a),
			postCmd(a),
			unpostCmd(a),
			removeCmd(a),
			exportCmd(a),
			importCmd(a),
			serveCmd(a),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a topic to the queue",
		ArgsUsage: "<topic text>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "audience", Aliases: []string{"a"}, Usage: "Who the post is for (defaults to preset)"},
			&cli.StringFlag{Name: "tone", Aliases: []string{"t"}, Usage: "Writing tone (defaults to preset)"},
			&cli.StringFlag{Name: "cta", Usage: "Closing call to action"},
			&cli.StringFlag{Name: "hook", Usage: "Style of the opening hook (defaults to preset)"},
			&cli.StringFlag{Name: "brand-voice", Usage: "Brand voice override for this topic"},
			&cli.StringFlag{Name: "hashtags", Usage: "Comma-separated hashtags"},
			&cli.StringFlag{Name: "key-points", Usage: "Newline-separated points the draft must cover"},
			&cli.StringFlag{Name: "length", Aliases: []string{"l"}, Usage: "Draft length: short|medium|long (default medium)"},
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Target day as YYYY-MM-DD (default today)"},
		},
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(text) == "" {
				return outputError(errors.NewInvalidRequest("topic text is required"))
			}

			created, err := a.store.Add(c.Context, topic.Input{
				Text:         text,
				Audience:     c.String("audience"),
				Tone:         c.String("tone"),
				CallToAction: c.String("cta"),
				HookStyle:    c.String("hook"),
				BrandVoice:   c.String("brand-voice"),
				Hashtags:     c.String("hashtags"),
				KeyPoints:    c.String("key-points"),
				Length:       c.String("length"),
				ScheduledFor: c.String("date"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(created)
		},
	}
}

// listCmd creates the list command.
func listCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the whole queue in order",
		Action: func(c *cli.Context) error {
			topics := a.store.All()
			return outputJSON(listOutput{
				Topics:      topics,
				Count:       len(topics),
				DraftsReady: a.store.DraftsReady(),
			})
		},
	}
}

// todayCmd creates the today command.
func todayCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:  "today",
		Usage: "List topics scheduled for today that are not yet posted",
		Action: func(c *cli.Context) error {
			topics := a.store.Today()
			return outputJSON(listOutput{
				Topics:      topics,
				Count:       len(topics),
				DraftsReady: a.store.DraftsReady(),
			})
		},
	}
}

// readyCmd creates the ready command.
func readyCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:  "ready",
		Usage: "List unposted topics that already have a draft",
		Action: func(c *cli.Context) error {
			all := a.store.All()
			topics := make([]topic.Topic, 0, len(all))
			for _, t := range all {
				if t.Status != topic.StatusPosted && t.HasDraft() {
					topics = append(topics, t)
				}
			}
			return outputJSON(listOutput{
				Topics:      topics,
				Count:       len(topics),
				DraftsReady: a.store.DraftsReady(),
			})
		},
	}
}

// showCmd creates the show command.
func showCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one topic, including its draft if generated",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return outputError(errors.NewInvalidRequest("topic id is required"))
			}

			t, err := a.store.Get(id)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(t)
		},
	}
}

// generateCmd creates the generate command.
func generateCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate (or regenerate) the draft for a topic",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return outputError(errors.NewInvalidRequest("topic id is required"))
			}

			text, err := a.gen.Generate(c.Context, id)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"id":    id,
				"draft": text,
			})
		},
	}
}

// postCmd creates the post command.
func postCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:      "post",
		Usage:     "Mark a generated topic as posted",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			return togglePosted(a, c, true)
		},
	}
}

// unpostCmd creates the unpost command.
func unpostCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:      "unpost",
		Usage:     "Move a posted topic back to generated",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			return togglePosted(a, c, false)
		},
	}
}

func togglePosted(a *appState, c *cli.Context, posted bool) error {
	id := c.Args().First()
	if id == "" {
		return outputError(errors.NewInvalidRequest("topic id is required"))
	}

	t, err := a.store.TogglePosted(c.Context, id, posted)
	if err != nil {
		return outputError(err)
	}
	return outputJSON(t)
}

// removeCmd creates the remove command.
func removeCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove a topic from the queue",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return outputError(errors.NewInvalidRequest("topic id is required"))
			}

			removed, err := a.store.Remove(c.Context, id)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"removed": removed,
				"id":      id,
			})
		},
	}
}

// exportCmd creates the export command.
func exportCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the queue to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.planq/exports/queue-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			path := c.String("path")
			if path == "" {
				path = filepath.Join(a.baseDir, "exports",
					fmt.Sprintf("queue-%s.jsonl", a.store.Now().Format("20060102-150405")))
			}

			f, err := os.Create(path)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer f.Close()

			count, err := a.store.Export(f)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"path":     path,
				"exported": count,
			})
		},
	}
}

// importCmd creates the import command.
func importCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import topics from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
		},
		Action: func(c *cli.Context) error {
			f, err := os.Open(c.String("path"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("cannot open %s: %v", c.String("path"), err)))
			}
			defer f.Close()

			result, err := a.store.Import(c.Context, f)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(a *appState) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the read-only queue viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			bind := c.String("bind")
			if bind == "" {
				bind = a.cfg.WebBind
			}
			port := c.Int("port")
			if port == 0 {
				port = a.cfg.WebPort
			}

			srv := web.NewServer(a.store, Version, bind, port)
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if pErr, ok := err.(*errors.PlanqError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", pErr.Code, pErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
