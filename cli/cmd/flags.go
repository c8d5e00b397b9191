// Package cmd provides CLI commands for the parlog binary.
package cmd

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Exit codes shared by every command.
const (
	exitIntegrity = 1
	exitIO        = 2
	exitUsage     = 3
)

// Shared output flags.
var (
	// FormatFlag selects output format: text, json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, json, table, yaml",
		Value:   "text",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Browse the result interactively",
	}
)

// OutputFlags returns the shared flags for commands that render output.
// Includes --tui so that unsupported views can provide explicit error
// messages instead of generic "flag not defined" errors.
func OutputFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// stdout returns the app's output writer, falling back to os.Stdout.
func stdout(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// stderr returns the app's error writer, falling back to os.Stderr.
func stderr(c *cli.Context) io.Writer {
	if c.App != nil && c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}
