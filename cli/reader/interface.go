package reader

import "github.com/justapithecus/parlog/reconcile"

// Reader abstracts read-only access to a finished pass.
// All methods are read-only.
type Reader interface {
	Summary() *SummaryResponse
	Bucket(sel Selector) *BucketResponse
	Command(cmd string) (*reconcile.CommandRecord, error)
	Result() *reconcile.Result
}

var _ Reader = (*SnapshotReader)(nil)
