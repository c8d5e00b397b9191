package reader

import (
	"fmt"
	"strings"

	"github.com/justapithecus/parlog/reconcile"
)

// FailedAnyBucket names the pseudo-bucket of commands that failed at least
// once. It is not a reconcile.State.
const FailedAnyBucket = "failed_any"

// Selector picks a bucket: either a reconcile state or failed_any.
type Selector struct {
	State     reconcile.State
	FailedAny bool
}

// String returns the bucket label.
func (s Selector) String() string {
	if s.FailedAny {
		return FailedAnyBucket
	}
	return s.State.Label()
}

// ParseSelector accepts a state name, a summary label (jobs_not_run,
// failed_jobs_repeated, ...) or failed_any.
func ParseSelector(s string) (Selector, error) {
	if strings.EqualFold(strings.TrimSpace(s), FailedAnyBucket) {
		return Selector{FailedAny: true}, nil
	}
	st, err := reconcile.ParseState(s)
	if err != nil {
		return Selector{}, fmt.Errorf("unknown bucket %q (want a state name or %s)", s, FailedAnyBucket)
	}
	return Selector{State: st}, nil
}
