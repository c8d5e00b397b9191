package types

// Joblog column layout as written by `parallel --joblog`.
// Columns 0-7 are fixed runner metadata; everything from column 8 onward
// is the command itself, which may contain tabs.
const (
	JoblogColSeq = iota
	JoblogColHost
	JoblogColStarttime
	JoblogColJobRuntime
	JoblogColSend
	JoblogColReceive
	JoblogColExitval
	JoblogColSignal
	JoblogColCommand
)

// JoblogEntry is one row of a GNU parallel joblog.
// Fields are kept as the literal strings from the log; status comparison
// is done against the literal "0".
type JoblogEntry struct {
	Seq        string `json:"seq" msgpack:"seq"`
	Host       string `json:"host" msgpack:"host"`
	Starttime  string `json:"starttime" msgpack:"starttime"`
	JobRuntime string `json:"jobruntime" msgpack:"jobruntime"`
	Send       string `json:"send" msgpack:"send"`
	Receive    string `json:"receive" msgpack:"receive"`
	Exitval    string `json:"exitval" msgpack:"exitval"`
	Signal     string `json:"signal" msgpack:"signal"`
	Command    string `json:"command" msgpack:"command"`
	// Line is the 1-based line number in the joblog (header is line 1).
	Line int `json:"line" msgpack:"line"`
}

// Failed reports whether the job attempt failed: either the exit value
// or the signal column is anything other than the literal "0".
func (e JoblogEntry) Failed() bool {
	return e.Exitval != "0" || e.Signal != "0"
}
