// Package main provides the parlog CLI entrypoint.
//
// parlog compares the commands file fed to GNU parallel (`cat FILE |
// parallel '{}'`) with the joblog written by `parallel --joblog` and
// reports how many commands fall into each outcome bucket.
//
// Usage:
//
//	parlog --cmds CMDS.txt --log JOBLOG.txt [--cmds_to_run NEW.txt] [--failed_cmds FAILED.txt]
//	parlog inspect --snapshot PASS.msgpack [--state STATE | --command CMD]
//
// Exit codes:
//   - 0: success
//   - 1: inconsistent inputs (duplicate command, unknown joblog command, missing header)
//   - 2: I/O error
//   - 3: usage error
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/parlog/cli/cmd"
	"github.com/justapithecus/parlog/types"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

const description = `Compare the commands file passed to GNU parallel with the joblog it wrote
(--joblog). One command per line. Every command is put into exactly one bucket:

    successful_unique            finished successfully, present once in the log
    failed_unique                failed, present once in the log
    jobs_not_run                 never found in the log
    successful_jobs_redundant    present several times, successful every time
    failed_jobs_repeated         present several times, failed every time
    successful_jobs_after_fail   successful on its last run after an earlier failure
    failed_jobs_after_success    failed on its last run after an earlier success
                                 (a successful job may have been partially overwritten)

A joblog command that is not in the commands file is an error. Empty commands
in either file are ignored and reported on stderr.

Commands never run (--cmds_to_run) and commands that failed at least once
(--failed_cmds) can be written to new command files.

Usage example:

    parlog --cmds CMDS_FILE.txt --log JOBLOG.txt --cmds_to_run NEW_CMDS_FILE.txt --failed_cmds FAILED_CMDS.txt`

func newApp() *cli.App {
	return &cli.App{
		Name:           "parlog",
		Usage:          "Reconcile a GNU parallel commands file against its joblog",
		Description:    description,
		Version:        fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		ExitErrHandler: exitErrHandler,
		Flags:          cmd.ReconcileFlags(),
		Action:         cmd.ReconcileAction,
		Commands: []*cli.Command{
			cmd.InspectCommand(),
			cmd.VersionCommand(commit),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		// ExitErrHandler already handled the exit for cli.ExitCoder errors.
		// This branch handles flag parsing errors that weren't wrapped.
		os.Exit(3)
	}
}

// exitErrHandler handles errors from the CLI, preserving exit codes from cli.Exit().
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N", so skip those
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(3)
}
