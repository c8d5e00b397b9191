package reconcile

import (
	"errors"
	"fmt"
	"io"

	"github.com/justapithecus/parlog/metrics"
	"github.com/justapithecus/parlog/types"
)

// CommandRecord is the per-command state kept while folding the joblog.
type CommandRecord struct {
	Command string `json:"command" yaml:"command" msgpack:"command"`
	State   State  `json:"state" yaml:"state" msgpack:"state"`
	// Attempts is the number of joblog rows seen for the command.
	Attempts int `json:"attempts" yaml:"attempts" msgpack:"attempts"`
	// Failures is the number of those rows that failed.
	Failures int `json:"failures" yaml:"failures" msgpack:"failures"`
}

// Reconciler folds joblog rows into per-command states.
// A Reconciler serves exactly one pass and is not safe for concurrent use.
type Reconciler struct {
	set       *CommandSet
	records   map[string]*CommandRecord
	failedAny map[string]struct{}
	blankLog  int
	metrics   *metrics.Collector
}

type options struct {
	metrics *metrics.Collector
}

// Option configures a Reconciler.
type Option func(*options)

// WithMetrics attaches a counters collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) { o.metrics = m }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a Reconciler with every command of set in StateNotRun.
func New(set *CommandSet, opts ...Option) *Reconciler {
	o := buildOptions(opts)
	r := &Reconciler{
		set:       set,
		records:   make(map[string]*CommandRecord, set.Len()),
		failedAny: make(map[string]struct{}),
		metrics:   o.metrics,
	}
	for _, cmd := range set.commands {
		r.records[cmd] = &CommandRecord{Command: cmd, State: StateNotRun}
	}
	return r
}

// Apply folds a single joblog row. A row with an empty command is counted
// and ignored. A command outside the set yields *UnknownLogCommandError and
// leaves the Reconciler unchanged.
func (r *Reconciler) Apply(entry types.JoblogEntry) error {
	if entry.Command == "" {
		r.blankLog++
		r.metrics.IncBlankLogCommand()
		return nil
	}

	rec, ok := r.records[entry.Command]
	if !ok {
		return &UnknownLogCommandError{Command: entry.Command, Line: entry.Line}
	}

	failed := entry.Failed()
	rec.State = Next(rec.State, OutcomeOf(failed))
	rec.Attempts++
	if failed {
		rec.Failures++
		r.failedAny[entry.Command] = struct{}{}
	}
	r.metrics.IncEvent(failed)
	return nil
}

// Fold drains jr, applying every row in log order.
func (r *Reconciler) Fold(jr *JoblogReader) error {
	for {
		entry, err := jr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := r.Apply(entry); err != nil {
			return err
		}
	}
	r.blankLog += jr.Blank()
	return nil
}

// State returns the current state of cmd and whether cmd is known.
func (r *Reconciler) State(cmd string) (State, bool) {
	rec, ok := r.records[cmd]
	if !ok {
		return "", false
	}
	return rec.State, true
}

// Result groups the commands by their current state.
func (r *Reconciler) Result() *Result {
	records := make([]CommandRecord, 0, len(r.set.commands))
	var failedAny []string
	for _, cmd := range r.set.commands {
		records = append(records, *r.records[cmd])
		if _, ok := r.failedAny[cmd]; ok {
			failedAny = append(failedAny, cmd)
		}
	}
	return newResult(records, failedAny, r.set.Blank(), r.blankLog, r.metrics.Snapshot())
}

// Run performs a whole pass: every command is loaded before the joblog is
// read, and the joblog is folded to the end before a Result exists.
func Run(cmds, joblog io.Reader, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	set, err := LoadCommands(cmds, o.metrics)
	if err != nil {
		return nil, err
	}

	jr, err := NewJoblogReader(joblog, o.metrics)
	if err != nil {
		return nil, err
	}

	r := New(set, opts...)
	if err := r.Fold(jr); err != nil {
		return nil, err
	}
	return r.Result(), nil
}

// String renders a record for debugging.
func (c CommandRecord) String() string {
	return fmt.Sprintf("%s [%s attempts=%d failures=%d]", c.Command, c.State, c.Attempts, c.Failures)
}
