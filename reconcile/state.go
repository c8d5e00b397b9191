// Package reconcile classifies the commands submitted to GNU parallel
// against the joblog it wrote.
//
// Each distinct command carries a State. Joblog rows are folded in log
// order through the pure transition function Next; the final State of a
// command is its classification. Commands that failed at least once are
// tracked separately in an additive set that is never pruned.
package reconcile

import (
	"fmt"
	"strings"
)

// State is the current classification of a single command.
type State string

// State values. StateNotRun is the initial state of every command.
const (
	StateNotRun              State = "not_run"
	StateSuccessfulUnique    State = "successful_unique"
	StateSuccessfulRedundant State = "successful_redundant"
	StateSuccessfulAfterFail State = "successful_after_fail"
	StateFailedUnique        State = "failed_unique"
	StateFailedRepeated      State = "failed_repeated"
	StateFailedAfterSuccess  State = "failed_after_success"
)

// States returns every state in report order.
func States() []State {
	return []State{
		StateSuccessfulUnique,
		StateFailedUnique,
		StateNotRun,
		StateSuccessfulRedundant,
		StateFailedRepeated,
		StateSuccessfulAfterFail,
		StateFailedAfterSuccess,
	}
}

// IsSuccess reports whether the most recent attempt in this state succeeded.
func (s State) IsSuccess() bool {
	switch s {
	case StateSuccessfulUnique, StateSuccessfulRedundant, StateSuccessfulAfterFail:
		return true
	default:
		return false
	}
}

// IsFailure reports whether the most recent attempt in this state failed.
func (s State) IsFailure() bool {
	switch s {
	case StateFailedUnique, StateFailedRepeated, StateFailedAfterSuccess:
		return true
	default:
		return false
	}
}

// IsAnomaly reports whether the state indicates something other than a
// single attempt: a duplicate run, a retry, or an overwritten success.
func (s State) IsAnomaly() bool {
	switch s {
	case StateSuccessfulRedundant, StateFailedRepeated, StateSuccessfulAfterFail, StateFailedAfterSuccess:
		return true
	default:
		return false
	}
}

// ParseState parses a state name. Report labels (e.g. "jobs_not_run",
// "failed_jobs_repeated") are accepted as aliases.
func ParseState(s string) (State, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, st := range States() {
		if name == string(st) || name == st.Label() {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown state: %q", s)
}

// Label is the name printed for the state in the summary table.
func (s State) Label() string {
	switch s {
	case StateNotRun:
		return "jobs_not_run"
	case StateSuccessfulRedundant:
		return "successful_jobs_redundant"
	case StateFailedRepeated:
		return "failed_jobs_repeated"
	case StateSuccessfulAfterFail:
		return "successful_jobs_after_fail"
	case StateFailedAfterSuccess:
		return "failed_jobs_after_success"
	default:
		return string(s)
	}
}

// Outcome is the result of a single job attempt.
type Outcome int

const (
	// OutcomeSuccess means both status columns were "0".
	OutcomeSuccess Outcome = iota
	// OutcomeFailure means the exit value or signal column was not "0".
	OutcomeFailure
)

// OutcomeOf maps a failed flag to an Outcome.
func OutcomeOf(failed bool) Outcome {
	if failed {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

func (o Outcome) String() string {
	if o == OutcomeFailure {
		return "failure"
	}
	return "success"
}

// transitions is the classification table: current state -> outcome -> next.
// Pairs absent from a row leave the state unchanged.
var transitions = map[State]map[Outcome]State{
	StateNotRun: {
		OutcomeSuccess: StateSuccessfulUnique,
		OutcomeFailure: StateFailedUnique,
	},
	StateSuccessfulUnique: {
		OutcomeSuccess: StateSuccessfulRedundant,
		OutcomeFailure: StateFailedAfterSuccess,
	},
	StateSuccessfulRedundant: {
		OutcomeFailure: StateFailedAfterSuccess,
	},
	StateSuccessfulAfterFail: {
		OutcomeFailure: StateFailedAfterSuccess,
	},
	StateFailedUnique: {
		OutcomeSuccess: StateSuccessfulAfterFail,
		OutcomeFailure: StateFailedRepeated,
	},
	StateFailedRepeated: {
		OutcomeSuccess: StateSuccessfulAfterFail,
	},
	StateFailedAfterSuccess: {
		OutcomeSuccess: StateSuccessfulAfterFail,
	},
}

// Next returns the state a command moves to when an attempt with the given
// outcome is observed. Next is pure; unknown states are returned unchanged.
func Next(current State, outcome Outcome) State {
	if next, ok := transitions[current][outcome]; ok {
		return next
	}
	return current
}

// Classify folds a sequence of outcomes from StateNotRun.
func Classify(outcomes ...Outcome) State {
	s := StateNotRun
	for _, o := range outcomes {
		s = Next(s, o)
	}
	return s
}
