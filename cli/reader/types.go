// Package reader provides the read side of the parlog CLI: it loads a
// snapshot written by a reconcile pass and answers inspect queries
// against it without touching the original inputs.
package reader

import (
	"time"

	"github.com/justapithecus/parlog/metrics"
	"github.com/justapithecus/parlog/reconcile"
)

// SummaryResponse describes a snapshot as a whole.
type SummaryResponse struct {
	ID               string            `json:"id" yaml:"id"`
	Version          string            `json:"version" yaml:"version"`
	CreatedAt        time.Time         `json:"created_at" yaml:"created_at"`
	CmdsPath         string            `json:"cmds_path" yaml:"cmds_path"`
	LogPath          string            `json:"log_path" yaml:"log_path"`
	Summary          reconcile.Summary `json:"summary" yaml:"summary"`
	FailedAny        int               `json:"failed_any" yaml:"failed_any"`
	BlankCommands    int               `json:"blank_commands" yaml:"blank_commands"`
	BlankLogCommands int               `json:"blank_log_commands" yaml:"blank_log_commands"`
	Metrics          metrics.Snapshot  `json:"metrics" yaml:"metrics"`
}

// BucketResponse lists the commands of one bucket.
type BucketResponse struct {
	Bucket   string   `json:"bucket" yaml:"bucket"`
	Count    int      `json:"count" yaml:"count"`
	Commands []string `json:"commands" yaml:"commands"`
}
