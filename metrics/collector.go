// Package metrics provides per-pass counters for a reconciliation.
//
// The Collector accumulates counters while the command list is loaded and
// the joblog is folded. It is a leaf package with no internal dependencies.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all pass counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Commands file
	CommandsLoaded    int64 `json:"commands_loaded" yaml:"commands_loaded" msgpack:"commands_loaded"`
	BlankCommandLines int64 `json:"blank_command_lines" yaml:"blank_command_lines" msgpack:"blank_command_lines"`

	// Joblog
	JoblogRows       int64 `json:"joblog_rows" yaml:"joblog_rows" msgpack:"joblog_rows"`
	BlankLogCommands int64 `json:"blank_log_commands" yaml:"blank_log_commands" msgpack:"blank_log_commands"`
	EventsFolded     int64 `json:"events_folded" yaml:"events_folded" msgpack:"events_folded"`
	SuccessEvents    int64 `json:"success_events" yaml:"success_events" msgpack:"success_events"`
	FailureEvents    int64 `json:"failure_events" yaml:"failure_events" msgpack:"failure_events"`

	// Outputs
	LinesWritten int64 `json:"lines_written" yaml:"lines_written" msgpack:"lines_written"`

	// Dimensions (informational, set at construction)
	ReconcileID string `json:"reconcile_id" yaml:"reconcile_id" msgpack:"reconcile_id"`
}

// Collector accumulates counters during a single pass.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe,
// so callers that do not care about counters can pass a nil *Collector.
type Collector struct {
	mu sync.Mutex

	commandsLoaded    int64
	blankCommandLines int64

	joblogRows       int64
	blankLogCommands int64
	successEvents    int64
	failureEvents    int64

	linesWritten int64

	reconcileID string
}

// NewCollector creates a Collector labelled with the pass identifier.
func NewCollector(reconcileID string) *Collector {
	return &Collector{reconcileID: reconcileID}
}

// --- Commands file ---

// IncCommandLoaded records a distinct, non-blank command.
func (c *Collector) IncCommandLoaded() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.commandsLoaded++
	c.mu.Unlock()
}

// IncBlankCommandLine records a skipped blank line in the commands file.
func (c *Collector) IncBlankCommandLine() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.blankCommandLines++
	c.mu.Unlock()
}

// --- Joblog ---

// IncJoblogRow records a joblog data row (header excluded), blank or not.
func (c *Collector) IncJoblogRow() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.joblogRows++
	c.mu.Unlock()
}

// IncBlankLogCommand records a joblog row whose command was empty.
func (c *Collector) IncBlankLogCommand() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.blankLogCommands++
	c.mu.Unlock()
}

// IncEvent records a folded event with its outcome.
func (c *Collector) IncEvent(failed bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	if failed {
		c.failureEvents++
	} else {
		c.successEvents++
	}
	c.mu.Unlock()
}

// --- Outputs ---

// AddLinesWritten records n command lines written to an output file.
func (c *Collector) AddLinesWritten(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.linesWritten += int64(n)
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		CommandsLoaded:    c.commandsLoaded,
		BlankCommandLines: c.blankCommandLines,

		JoblogRows:       c.joblogRows,
		BlankLogCommands: c.blankLogCommands,
		EventsFolded:     c.successEvents + c.failureEvents,
		SuccessEvents:    c.successEvents,
		FailureEvents:    c.failureEvents,

		LinesWritten: c.linesWritten,

		ReconcileID: c.reconcileID,
	}
}

// Fields returns the snapshot as a flat map for structured logging.
func (s Snapshot) Fields() map[string]any {
	return map[string]any{
		"commands_loaded":     s.CommandsLoaded,
		"blank_command_lines": s.BlankCommandLines,
		"joblog_rows":         s.JoblogRows,
		"blank_log_commands":  s.BlankLogCommands,
		"events_folded":       s.EventsFolded,
		"success_events":      s.SuccessEvents,
		"failure_events":      s.FailureEvents,
		"lines_written":       s.LinesWritten,
	}
}
