package reader

import (
	"errors"
	"fmt"
	"os"

	"github.com/justapithecus/parlog/iox"
	"github.com/justapithecus/parlog/reconcile"
)

// ErrCommandNotFound is returned by Command for a command the snapshot
// does not know.
var ErrCommandNotFound = errors.New("command not found in snapshot")

// SnapshotReader answers queries from a decoded snapshot.
type SnapshotReader struct {
	snap *reconcile.Snapshot
	res  *reconcile.Result
}

// New wraps an already decoded snapshot.
func New(snap *reconcile.Snapshot) *SnapshotReader {
	return &SnapshotReader{snap: snap, res: snap.Result()}
}

// Open reads and decodes the snapshot file at path.
func Open(path string) (*SnapshotReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot %q: %w", path, err)
	}
	defer iox.DiscardClose(f)

	snap, err := reconcile.ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(snap), nil
}

// Result returns the Result rebuilt from the snapshot.
func (r *SnapshotReader) Result() *reconcile.Result {
	return r.res
}

// Summary describes the whole snapshot.
func (r *SnapshotReader) Summary() *SummaryResponse {
	return &SummaryResponse{
		ID:               r.snap.ID,
		Version:          r.snap.Version,
		CreatedAt:        r.snap.CreatedAt,
		CmdsPath:         r.snap.CmdsPath,
		LogPath:          r.snap.LogPath,
		Summary:          r.res.Summary(),
		FailedAny:        len(r.res.FailedAny()),
		BlankCommands:    r.res.BlankCommands,
		BlankLogCommands: r.res.BlankLogCommands,
		Metrics:          r.snap.Metrics,
	}
}

// Bucket lists the commands selected by sel, in commands-file order.
func (r *SnapshotReader) Bucket(sel Selector) *BucketResponse {
	var cmds []string
	if sel.FailedAny {
		cmds = r.res.FailedAny()
	} else {
		cmds = r.res.Commands(sel.State)
	}
	return &BucketResponse{
		Bucket:   sel.String(),
		Count:    len(cmds),
		Commands: cmds,
	}
}

// Command returns the record of a single command.
func (r *SnapshotReader) Command(cmd string) (*reconcile.CommandRecord, error) {
	rec, ok := r.res.Record(cmd)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCommandNotFound, cmd)
	}
	return &rec, nil
}
