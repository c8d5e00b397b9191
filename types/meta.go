// Package types defines core domain types shared across parlog packages.
//
//nolint:revive // types is a common Go package naming convention
package types

import (
	"errors"

	"github.com/google/uuid"
)

// ReconcileMeta identifies a single reconciliation pass.
// Every log entry and snapshot produced by the pass carries these fields.
type ReconcileMeta struct {
	// ReconcileID is a random identifier for the pass.
	ReconcileID string
	// CmdsPath is the commands file that was fed to parallel.
	CmdsPath string
	// LogPath is the joblog written by parallel --joblog.
	LogPath string
}

// NewReconcileMeta creates meta for a pass with a fresh ReconcileID.
func NewReconcileMeta(cmdsPath, logPath string) *ReconcileMeta {
	return &ReconcileMeta{
		ReconcileID: uuid.NewString(),
		CmdsPath:    cmdsPath,
		LogPath:     logPath,
	}
}

// Validate checks that both input paths are present.
func (m *ReconcileMeta) Validate() error {
	if m.ReconcileID == "" {
		return errors.New("reconcile_id must be non-empty")
	}
	if m.CmdsPath == "" {
		return errors.New("commands file path must be non-empty")
	}
	if m.LogPath == "" {
		return errors.New("joblog path must be non-empty")
	}
	return nil
}
