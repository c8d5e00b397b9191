package tui

import "github.com/justapithecus/parlog/types"

func joblogEntry(cmd, exitval string) types.JoblogEntry {
	return types.JoblogEntry{Command: cmd, Exitval: exitval, Signal: "0"}
}
