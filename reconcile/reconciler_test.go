package reconcile

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/justapithecus/parlog/metrics"
	"github.com/justapithecus/parlog/types"
)

func runPass(t *testing.T, cmds, log string) *Result {
	t.Helper()
	res, err := Run(strings.NewReader(cmds), strings.NewReader(log))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}

func TestRun_FinalStates(t *testing.T) {
	cmds := cmdsFile("once-ok", "once-fail", "ok-ok", "fail-fail", "ok-fail", "fail-ok", "never")
	log := joblog(
		ok(1, "once-ok"),
		fail(2, "once-fail"),
		ok(3, "ok-ok"),
		fail(4, "fail-fail"),
		ok(5, "ok-fail"),
		fail(6, "fail-ok"),
		ok(7, "ok-ok"),
		fail(8, "fail-fail"),
		fail(9, "ok-fail"),
		ok(10, "fail-ok"),
	)

	res := runPass(t, cmds, log)

	want := map[string]State{
		"once-ok":   StateSuccessfulUnique,
		"once-fail": StateFailedUnique,
		"ok-ok":     StateSuccessfulRedundant,
		"fail-fail": StateFailedRepeated,
		"ok-fail":   StateFailedAfterSuccess,
		"fail-ok":   StateSuccessfulAfterFail,
		"never":     StateNotRun,
	}
	for cmd, st := range want {
		rec, ok := res.Record(cmd)
		if !ok {
			t.Fatalf("no record for %q", cmd)
		}
		if rec.State != st {
			t.Errorf("%q state = %s, want %s", cmd, rec.State, st)
		}
	}

	if diff := cmp.Diff([]string{"never"}, res.NotRun()); diff != "" {
		t.Errorf("NotRun mismatch (-want +got):\n%s", diff)
	}

	// failed_any keeps commands that later succeeded.
	wantFailed := []string{"once-fail", "fail-fail", "ok-fail", "fail-ok"}
	if diff := cmp.Diff(wantFailed, res.FailedAny()); diff != "" {
		t.Errorf("FailedAny mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_BucketsPartitionCommandSet(t *testing.T) {
	cmds := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	log := joblog(
		ok(1, "a"), fail(2, "b"), ok(3, "c"), ok(4, "c"),
		fail(5, "d"), fail(6, "d"), ok(7, "e"), fail(8, "e"),
		fail(9, "f"), ok(10, "f"), fail(11, "e"), ok(12, "a"),
	)

	res := runPass(t, cmdsFile(cmds...), log)

	seen := map[string]State{}
	for st, bucket := range res.Buckets {
		for _, cmd := range bucket {
			if prev, dup := seen[cmd]; dup {
				t.Errorf("%q in both %s and %s", cmd, prev, st)
			}
			seen[cmd] = st
		}
	}

	var union []string
	for cmd := range seen {
		union = append(union, cmd)
	}
	sort.Strings(union)
	if diff := cmp.Diff(cmds, union); diff != "" {
		t.Errorf("union of buckets != command set (-want +got):\n%s", diff)
	}
	if res.Summary().Total() != len(cmds) {
		t.Errorf("Summary().Total() = %d, want %d", res.Summary().Total(), len(cmds))
	}
	if len(res.Buckets) != len(States()) {
		t.Errorf("Buckets has %d keys, want %d", len(res.Buckets), len(States()))
	}
}

func TestRun_SummaryWithBlankCommand(t *testing.T) {
	res := runPass(t, cmdsFile("a", "", "b"), joblog(ok(1, "a"), fail(2, "b")))

	want := Summary{SuccessfulUnique: 1, FailedUnique: 1}
	if diff := cmp.Diff(want, res.Summary()); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
	if res.BlankCommands != 1 {
		t.Errorf("BlankCommands = %d, want 1", res.BlankCommands)
	}
	if res.BlankLogCommands != 0 {
		t.Errorf("BlankLogCommands = %d, want 0", res.BlankLogCommands)
	}
	if !res.HasBlankLines() {
		t.Error("HasBlankLines() = false, want true")
	}
}

func TestRun_UnknownLogCommand(t *testing.T) {
	res, err := Run(strings.NewReader(cmdsFile("a")), strings.NewReader(joblog(ok(1, "a"), ok(2, "zzz"))))
	if res != nil {
		t.Errorf("Run returned a result alongside an unknown command: %+v", res)
	}

	var unknown *UnknownLogCommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *UnknownLogCommandError", err)
	}
	if unknown.Command != "zzz" || unknown.Line != 3 {
		t.Errorf("got command=%q line=%d, want zzz/3", unknown.Command, unknown.Line)
	}
	if !strings.Contains(err.Error(), "zzz") {
		t.Errorf("error message should name the command: %v", err)
	}
	if !IsIntegrityError(err) {
		t.Error("IsIntegrityError = false, want true")
	}
}

// failingReader fails the test if it is ever read.
type failingReader struct{ t *testing.T }

func (f failingReader) Read([]byte) (int, error) {
	f.t.Error("joblog must not be read after a duplicate command")
	return 0, errors.New("unexpected read")
}

func TestRun_DuplicateAbortsBeforeJoblog(t *testing.T) {
	_, err := Run(strings.NewReader(cmdsFile("a", "b", "a")), failingReader{t})

	var dup *DuplicateCommandError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want *DuplicateCommandError", err)
	}
	if !IsIntegrityError(err) {
		t.Error("IsIntegrityError = false, want true")
	}
}

func TestRun_EmptyJoblog(t *testing.T) {
	_, err := Run(strings.NewReader(cmdsFile("a")), strings.NewReader(""))
	if !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("error = %v, want ErrMissingHeader", err)
	}
}

func TestRun_BlankLogRowsCounted(t *testing.T) {
	res := runPass(t, cmdsFile("a"), joblog(row(1, "0", "0", ""), ok(2, "a"), ""))

	if res.BlankLogCommands != 2 {
		t.Errorf("BlankLogCommands = %d, want 2", res.BlankLogCommands)
	}
	if res.Summary().SuccessfulUnique != 1 {
		t.Errorf("SuccessfulUnique = %d, want 1", res.Summary().SuccessfulUnique)
	}
}

func TestRun_BlankLogRowNeverChecksStatus(t *testing.T) {
	// Non-zero status on a blank row must not fail or count as an event.
	res := runPass(t, cmdsFile("a"), joblog(row(1, "1", "9", "")))

	if res.BlankLogCommands != 1 {
		t.Errorf("BlankLogCommands = %d, want 1", res.BlankLogCommands)
	}
	if len(res.FailedAny()) != 0 {
		t.Errorf("FailedAny = %v, want empty", res.FailedAny())
	}
}

func TestRun_SignalCountsAsFailure(t *testing.T) {
	res := runPass(t, cmdsFile("sleep 100"), joblog(row(1, "0", "15", "sleep 100")))

	rec, _ := res.Record("sleep 100")
	if rec.State != StateFailedUnique {
		t.Errorf("state = %s, want failed_unique", rec.State)
	}
}

func TestRun_CommandWithTabs(t *testing.T) {
	cmd := "printf '%s\\t%s' a b\t# tabbed"
	res := runPass(t, cmdsFile(cmd), joblog(ok(1, cmd)))

	rec, _ := res.Record(cmd)
	if rec.State != StateSuccessfulUnique {
		t.Errorf("state = %s, want successful_unique", rec.State)
	}
}

func TestRun_Metrics(t *testing.T) {
	m := metrics.NewCollector("rec-1")
	res, err := Run(
		strings.NewReader(cmdsFile("a", "", "b", "c")),
		strings.NewReader(joblog(ok(1, "a"), fail(2, "b"), ok(3, "b"), row(4, "0", "0", ""))),
		WithMetrics(m),
	)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := metrics.Snapshot{
		CommandsLoaded:    3,
		BlankCommandLines: 1,
		JoblogRows:        4,
		BlankLogCommands:  1,
		EventsFolded:      3,
		SuccessEvents:     2,
		FailureEvents:     1,
		ReconcileID:       "rec-1",
	}
	if diff := cmp.Diff(want, res.Metrics); diff != "" {
		t.Errorf("Metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestReconciler_AttemptsAndFailures(t *testing.T) {
	set, _ := NewCommandSet([]string{"x"})
	r := New(set)

	for _, failed := range []bool{true, true, false} {
		e := types.JoblogEntry{Command: "x", Exitval: "0", Signal: "0"}
		if failed {
			e.Exitval = "1"
		}
		if err := r.Apply(e); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
	}

	rec, _ := r.Result().Record("x")
	want := CommandRecord{Command: "x", State: StateSuccessfulAfterFail, Attempts: 3, Failures: 2}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestReconciler_UnknownLeavesStateUntouched(t *testing.T) {
	set, _ := NewCommandSet([]string{"x"})
	r := New(set)

	err := r.Apply(types.JoblogEntry{Command: "y", Exitval: "1", Signal: "0", Line: 7})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}

	st, known := r.State("x")
	if !known || st != StateNotRun {
		t.Errorf("State(x) = %s/%v, want not_run/true", st, known)
	}
	if _, known := r.State("y"); known {
		t.Error("State(y) reported known")
	}
	if len(r.Result().FailedAny()) != 0 {
		t.Error("unknown command must not enter failed_any")
	}
}

func TestReconciler_ApplyBlankEntry(t *testing.T) {
	set, _ := NewCommandSet([]string{"x"})
	r := New(set)

	if err := r.Apply(types.JoblogEntry{}); err != nil {
		t.Fatalf("Apply(blank) failed: %v", err)
	}
	if r.Result().BlankLogCommands != 1 {
		t.Errorf("BlankLogCommands = %d, want 1", r.Result().BlankLogCommands)
	}
}

func TestResult_EmptyBucketsAreNonNil(t *testing.T) {
	res := runPass(t, cmdsFile("a"), joblog())

	for _, st := range States() {
		if res.Commands(st) == nil {
			t.Errorf("bucket %s is nil", st)
		}
	}
	if res.FailedAny() == nil {
		t.Error("FailedAny() is nil")
	}
}

func TestSummary_Lines(t *testing.T) {
	s := Summary{
		SuccessfulUnique:        1,
		FailedUnique:            2,
		JobsNotRun:              3,
		SuccessfulJobsRedundant: 4,
		FailedJobsRepeated:      5,
		SuccessfulJobsAfterFail: 6,
		FailedJobsAfterSuccess:  7,
	}

	var got []string
	for _, l := range s.Lines() {
		got = append(got, l.Name)
		if l.Count != len(got) {
			t.Errorf("%s count = %d, want %d", l.Name, l.Count, len(got))
		}
	}

	want := []string{
		"successful_unique",
		"failed_unique",
		"jobs_not_run",
		"successful_jobs_redundant",
		"failed_jobs_repeated",
		"successful_jobs_after_fail",
		"failed_jobs_after_success",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("line order mismatch (-want +got):\n%s", diff)
	}
	if s.Total() != 28 {
		t.Errorf("Total() = %d, want 28", s.Total())
	}
}
