package reconcile

import (
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/justapithecus/parlog/metrics"
	"github.com/justapithecus/parlog/types"
)

// Snapshot is the persisted form of a pass, read back by `parlog inspect`.
type Snapshot struct {
	Format           int              `msgpack:"format"`
	ID               string           `msgpack:"id"`
	Version          string           `msgpack:"version"`
	CmdsPath         string           `msgpack:"cmds_path"`
	LogPath          string           `msgpack:"log_path"`
	CreatedAt        time.Time        `msgpack:"created_at"`
	BlankCommands    int              `msgpack:"blank_commands"`
	BlankLogCommands int              `msgpack:"blank_log_commands"`
	FailedAny        []string         `msgpack:"failed_any"`
	Records          []CommandRecord  `msgpack:"records"`
	Metrics          metrics.Snapshot `msgpack:"metrics"`
}

// NewSnapshot captures res for the pass identified by meta.
func NewSnapshot(meta *types.ReconcileMeta, res *Result, createdAt time.Time) *Snapshot {
	return &Snapshot{
		Format:           types.SnapshotFormat,
		ID:               meta.ReconcileID,
		Version:          types.Version,
		CmdsPath:         meta.CmdsPath,
		LogPath:          meta.LogPath,
		CreatedAt:        createdAt.UTC(),
		BlankCommands:    res.BlankCommands,
		BlankLogCommands: res.BlankLogCommands,
		FailedAny:        res.FailedAny(),
		Records:          res.Records,
		Metrics:          res.Metrics,
	}
}

// WriteSnapshot encodes s as msgpack.
func WriteSnapshot(w io.Writer, s *Snapshot) error {
	if err := msgpack.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot and rejects unknown formats.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if s.Format != types.SnapshotFormat {
		return nil, fmt.Errorf("unsupported snapshot format %d (this build reads format %d)", s.Format, types.SnapshotFormat)
	}
	return &s, nil
}

// Result rebuilds the Result the snapshot was taken from.
func (s *Snapshot) Result() *Result {
	records := make([]CommandRecord, len(s.Records))
	copy(records, s.Records)
	failedAny := make([]string, len(s.FailedAny))
	copy(failedAny, s.FailedAny)
	return newResult(records, failedAny, s.BlankCommands, s.BlankLogCommands, s.Metrics)
}
