package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/justapithecus/parlog/metrics"
	"github.com/justapithecus/parlog/types"
)

// ParseJoblogLine splits a joblog row into its columns. The command is
// everything from column 8 on, rejoined with tabs. Missing metadata
// columns are left empty; a row with fewer than nine columns has an empty
// command.
func ParseJoblogLine(line string) types.JoblogEntry {
	fields := strings.Split(trimLine(line), "\t")

	col := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	entry := types.JoblogEntry{
		Seq:        col(types.JoblogColSeq),
		Host:       col(types.JoblogColHost),
		Starttime:  col(types.JoblogColStarttime),
		JobRuntime: col(types.JoblogColJobRuntime),
		Send:       col(types.JoblogColSend),
		Receive:    col(types.JoblogColReceive),
		Exitval:    col(types.JoblogColExitval),
		Signal:     col(types.JoblogColSignal),
	}
	if len(fields) > types.JoblogColCommand {
		entry.Command = strings.Join(fields[types.JoblogColCommand:], "\t")
	}
	return entry
}

// JoblogReader yields the non-blank rows of a joblog in file order.
type JoblogReader struct {
	sc      *bufio.Scanner
	line    int
	rows    int
	blank   int
	metrics *metrics.Collector
}

// NewJoblogReader consumes the header line and returns a reader
// positioned at the first data row. m may be nil.
func NewJoblogReader(r io.Reader, m *metrics.Collector) (*JoblogReader, error) {
	sc := newLineScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading joblog header: %w", err)
		}
		return nil, ErrMissingHeader
	}
	return &JoblogReader{sc: sc, line: 1, metrics: m}, nil
}

// Next returns the next row whose command is non-empty. Rows with an
// empty command are skipped and counted. Returns io.EOF when the log is
// exhausted.
func (j *JoblogReader) Next() (types.JoblogEntry, error) {
	for j.sc.Scan() {
		j.line++
		j.rows++
		j.metrics.IncJoblogRow()

		entry := ParseJoblogLine(j.sc.Text())
		if entry.Command == "" {
			j.blank++
			j.metrics.IncBlankLogCommand()
			continue
		}
		entry.Line = j.line
		return entry, nil
	}
	if err := j.sc.Err(); err != nil {
		return types.JoblogEntry{}, fmt.Errorf("reading joblog line %d: %w", j.line+1, err)
	}
	return types.JoblogEntry{}, io.EOF
}

// Blank returns the number of rows skipped for having an empty command.
func (j *JoblogReader) Blank() int { return j.blank }
