package reconcile

import "github.com/justapithecus/parlog/metrics"

// Summary is the seven-line report, in print order.
type Summary struct {
	SuccessfulUnique        int `json:"successful_unique" yaml:"successful_unique"`
	FailedUnique            int `json:"failed_unique" yaml:"failed_unique"`
	JobsNotRun              int `json:"jobs_not_run" yaml:"jobs_not_run"`
	SuccessfulJobsRedundant int `json:"successful_jobs_redundant" yaml:"successful_jobs_redundant"`
	FailedJobsRepeated      int `json:"failed_jobs_repeated" yaml:"failed_jobs_repeated"`
	SuccessfulJobsAfterFail int `json:"successful_jobs_after_fail" yaml:"successful_jobs_after_fail"`
	FailedJobsAfterSuccess  int `json:"failed_jobs_after_success" yaml:"failed_jobs_after_success"`
}

// SummaryLine is one `<name> <count>` row of the report.
type SummaryLine struct {
	Name  string `json:"name" yaml:"name"`
	State State  `json:"state" yaml:"state"`
	Count int    `json:"count" yaml:"count"`
}

// Lines returns the summary rows in print order.
func (s Summary) Lines() []SummaryLine {
	counts := []int{
		s.SuccessfulUnique,
		s.FailedUnique,
		s.JobsNotRun,
		s.SuccessfulJobsRedundant,
		s.FailedJobsRepeated,
		s.SuccessfulJobsAfterFail,
		s.FailedJobsAfterSuccess,
	}
	lines := make([]SummaryLine, 0, len(counts))
	for i, st := range States() {
		lines = append(lines, SummaryLine{Name: st.Label(), State: st, Count: counts[i]})
	}
	return lines
}

// Total returns the number of commands across all buckets.
func (s Summary) Total() int {
	total := 0
	for _, l := range s.Lines() {
		total += l.Count
	}
	return total
}

// Result is the outcome of a pass.
type Result struct {
	// Records holds every command in commands-file order.
	Records []CommandRecord
	// Buckets groups commands by final state, in commands-file order.
	// Every state has an entry, possibly empty.
	Buckets map[State][]string
	// BlankCommands is the number of blank lines in the commands file.
	BlankCommands int
	// BlankLogCommands is the number of joblog rows with an empty command.
	BlankLogCommands int
	// Metrics are the pass counters (zero if no collector was attached).
	Metrics metrics.Snapshot

	failedAny []string
}

func newResult(records []CommandRecord, failedAny []string, blankCmds, blankLog int, m metrics.Snapshot) *Result {
	buckets := make(map[State][]string, len(States()))
	for _, st := range States() {
		buckets[st] = []string{}
	}
	for _, rec := range records {
		buckets[rec.State] = append(buckets[rec.State], rec.Command)
	}
	if failedAny == nil {
		failedAny = []string{}
	}
	return &Result{
		Records:          records,
		Buckets:          buckets,
		BlankCommands:    blankCmds,
		BlankLogCommands: blankLog,
		Metrics:          m,
		failedAny:        failedAny,
	}
}

// NotRun returns the commands that never appeared in the joblog.
func (r *Result) NotRun() []string {
	return r.Buckets[StateNotRun]
}

// FailedAny returns every command that failed at least once, whatever its
// final state. A command that failed and was later retried successfully
// is included.
func (r *Result) FailedAny() []string {
	return r.failedAny
}

// Commands returns the commands of a bucket. The pseudo-bucket "failed_any"
// is not a State; use FailedAny for it.
func (r *Result) Commands(st State) []string {
	return r.Buckets[st]
}

// Record returns the record for cmd.
func (r *Result) Record(cmd string) (CommandRecord, bool) {
	for _, rec := range r.Records {
		if rec.Command == cmd {
			return rec, true
		}
	}
	return CommandRecord{}, false
}

// Summary counts the buckets.
func (r *Result) Summary() Summary {
	return Summary{
		SuccessfulUnique:        len(r.Buckets[StateSuccessfulUnique]),
		FailedUnique:            len(r.Buckets[StateFailedUnique]),
		JobsNotRun:              len(r.Buckets[StateNotRun]),
		SuccessfulJobsRedundant: len(r.Buckets[StateSuccessfulRedundant]),
		FailedJobsRepeated:      len(r.Buckets[StateFailedRepeated]),
		SuccessfulJobsAfterFail: len(r.Buckets[StateSuccessfulAfterFail]),
		FailedJobsAfterSuccess:  len(r.Buckets[StateFailedAfterSuccess]),
	}
}

// HasBlankLines reports whether either input contained blank commands.
func (r *Result) HasBlankLines() bool {
	return r.BlankCommands > 0 || r.BlankLogCommands > 0
}
