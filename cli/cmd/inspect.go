package cmd

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/parlog/cli/reader"
	"github.com/justapithecus/parlog/cli/render"
)

// InspectCommand returns the inspect command.
// Inspect reads a snapshot written with --snapshot and never touches the
// original commands file or joblog.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect a reconcile snapshot (summary, one bucket, or one command)",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "snapshot",
				Usage:    "Path to a snapshot written by parlog --snapshot",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "List the commands of one bucket (state name, summary label, or failed_any)",
			},
			&cli.StringFlag{
				Name:  "command",
				Usage: "Show the record of one command",
			},
		}, OutputFlags()...),
		Action: inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	if c.IsSet("state") && c.IsSet("command") {
		return cli.Exit("--state and --command are mutually exclusive", exitUsage)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	rd, err := reader.Open(c.String("snapshot"))
	if err != nil {
		return cli.Exit(err.Error(), exitIO)
	}

	switch {
	case c.IsSet("command"):
		return inspectCommandRecord(c, r, rd)
	case c.IsSet("state"):
		return inspectBucket(c, r, rd)
	default:
		return inspectSummary(c, r, rd)
	}
}

func inspectSummary(c *cli.Context, r *render.Renderer, rd reader.Reader) error {
	if c.Bool("tui") {
		return r.RenderTUI("inspect_summary", rd.Result())
	}

	resp := rd.Summary()
	switch r.Format() {
	case render.FormatText, render.FormatTable:
		return r.Render(resp.Summary)
	default:
		return r.Render(resp)
	}
}

func inspectBucket(c *cli.Context, r *render.Renderer, rd reader.Reader) error {
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported with --state; use --tui alone to browse buckets", exitUsage)
	}

	sel, err := reader.ParseSelector(c.String("state"))
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	resp := rd.Bucket(sel)
	switch r.Format() {
	case render.FormatText, render.FormatTable:
		return r.Render(resp.Commands)
	default:
		return r.Render(resp)
	}
}

func inspectCommandRecord(c *cli.Context, r *render.Renderer, rd reader.Reader) error {
	rec, err := rd.Command(c.String("command"))
	if err != nil {
		if errors.Is(err, reader.ErrCommandNotFound) {
			return cli.Exit(err.Error(), exitIntegrity)
		}
		return cli.Exit(err.Error(), exitIO)
	}

	if c.Bool("tui") {
		return r.RenderTUI("inspect_command", rec)
	}
	return r.Render(rec)
}
