package types

// Version is the canonical parlog version.
// The snapshot format carries this value so `inspect` can reject
// snapshots written by an incompatible release.
const Version = "0.2.0"

// SnapshotFormat is the snapshot schema revision. Bumped only when the
// msgpack layout of reconcile.Snapshot changes incompatibly.
const SnapshotFormat = 1
