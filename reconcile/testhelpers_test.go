package reconcile

import (
	"fmt"
	"strings"
)

const joblogHeader = "Seq\tHost\tStarttime\tJobRuntime\tSend\tReceive\tExitval\tSignal\tCommand"

// row formats a joblog data row the way parallel --joblog writes it.
func row(seq int, exitval, signal, cmd string) string {
	return fmt.Sprintf("%d\t:\t1700000000.%03d\t0.012\t0\t0\t%s\t%s\t%s", seq, seq, exitval, signal, cmd)
}

func ok(seq int, cmd string) string   { return row(seq, "0", "0", cmd) }
func fail(seq int, cmd string) string { return row(seq, "1", "0", cmd) }

func joblog(rows ...string) string {
	return strings.Join(append([]string{joblogHeader}, rows...), "\n") + "\n"
}

func cmdsFile(cmds ...string) string {
	return strings.Join(cmds, "\n") + "\n"
}
