package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/justapithecus/parlog/cli/config"
	"github.com/justapithecus/parlog/cli/render"
	"github.com/justapithecus/parlog/iox"
	"github.com/justapithecus/parlog/log"
	"github.com/justapithecus/parlog/metrics"
	"github.com/justapithecus/parlog/reconcile"
	"github.com/justapithecus/parlog/types"
)

// ReconcileFlags returns the flags of the root reconcile action.
// The path flag names match GNU parallel tooling conventions and are kept
// with underscores.
func ReconcileFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:  "cmds",
			Usage: "Path to the commands file fed to parallel (required)",
		},
		&cli.StringFlag{
			Name:  "log",
			Usage: "Path to the joblog written by parallel --joblog (required)",
		},
		&cli.StringFlag{
			Name:  "cmds_to_run",
			Usage: "Write commands that never ran to this file",
		},
		&cli.StringFlag{
			Name:  "failed_cmds",
			Usage: "Write commands that failed at least once to this file",
		},
		&cli.StringFlag{
			Name:  "snapshot",
			Usage: "Write a snapshot of the pass for `parlog inspect`",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a parlog.yaml with default settings",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Diagnostic log level: debug, info, warn, error",
			Value: log.DefaultLevel,
		},
	}, OutputFlags()...)
}

// reconcileOptions holds the merged flag, environment and config settings.
type reconcileOptions struct {
	cmds       string
	log        string
	cmdsToRun  string
	failedCmds string
	snapshot   string
	format     render.Format
	noColor    bool
	tui        bool
	logLevel   string
}

// resolveOptions merges settings. An explicitly set flag wins, then
// PARLOG_* environment, then the config file, then the flag default.
func resolveOptions(c *cli.Context) (reconcileOptions, error) {
	cfg, err := config.Resolve(c.String("config"))
	if err != nil {
		return reconcileOptions{}, err
	}

	pick := func(flag, fromConfig string) string {
		if c.IsSet(flag) || fromConfig == "" {
			return c.String(flag)
		}
		return fromConfig
	}

	opts := reconcileOptions{
		cmds:       pick("cmds", cfg.Cmds),
		log:        pick("log", cfg.Log),
		cmdsToRun:  pick("cmds_to_run", cfg.CmdsToRun),
		failedCmds: pick("failed_cmds", cfg.FailedCmds),
		snapshot:   pick("snapshot", cfg.Snapshot),
		noColor:    c.Bool("no-color") || (!c.IsSet("no-color") && cfg.NoColor),
		tui:        c.Bool("tui"),
		logLevel:   pick("log-level", cfg.LogLevel),
	}

	format, err := render.ParseFormat(pick("format", cfg.Format))
	if err != nil {
		return reconcileOptions{}, err
	}
	opts.format = format

	switch {
	case opts.cmds == "":
		return reconcileOptions{}, errors.New("--cmds is required")
	case opts.log == "":
		return reconcileOptions{}, errors.New("--log is required")
	}
	return opts, nil
}

// ReconcileAction classifies every command of --cmds against --log.
//
// Effects happen in a fixed order: the summary is printed, then the
// cmds_to_run and failed_cmds files are written, then the snapshot, and
// last the blank-line warning goes to stderr.
func ReconcileAction(c *cli.Context) error {
	opts, err := resolveOptions(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	meta := types.NewReconcileMeta(opts.cmds, opts.log)
	logger := log.NewLogger(meta, level).WithOutput(stderr(c))
	defer func() { _ = logger.Sync() }()

	collector := metrics.NewCollector(meta.ReconcileID)

	set, err := loadCommandSet(opts.cmds, collector)
	if err != nil {
		return exitFor(err)
	}
	logger.Debug("commands loaded", map[string]any{
		"commands":       set.Len(),
		"blank_commands": set.Blank(),
	})

	res, err := foldJoblog(opts.log, set, collector)
	if err != nil {
		return exitFor(err)
	}
	logger.Info("joblog folded", res.Metrics.Fields())

	r := render.NewRendererWithWriter(opts.format, opts.noColor, stdout(c))
	if opts.tui {
		err = r.RenderTUI("reconcile_summary", res)
	} else {
		err = r.Render(res.Summary())
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("rendering summary: %v", err), exitIO)
	}

	if err := writeCommands(logger, collector, opts.cmdsToRun, res.NotRun()); err != nil {
		return exitFor(err)
	}
	if err := writeCommands(logger, collector, opts.failedCmds, res.FailedAny()); err != nil {
		return exitFor(err)
	}

	if opts.snapshot != "" {
		res.Metrics = collector.Snapshot()
		if err := writeSnapshotFile(opts.snapshot, reconcile.NewSnapshot(meta, res, time.Now())); err != nil {
			return exitFor(err)
		}
		logger.Info("snapshot written", map[string]any{"path": opts.snapshot})
	}

	if res.HasBlankLines() {
		fmt.Fprintf(stderr(c),
			"There were %d empty lines in the input command file, and %d empty commands in the logfile.\n",
			res.BlankCommands, res.BlankLogCommands)
	}
	return nil
}

func loadCommandSet(path string, m *metrics.Collector) (*reconcile.CommandSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open commands file: %w", err)
	}
	defer iox.DiscardClose(f)

	set, err := reconcile.LoadCommands(f, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

func foldJoblog(path string, set *reconcile.CommandSet, m *metrics.Collector) (*reconcile.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open joblog: %w", err)
	}
	defer iox.DiscardClose(f)

	jr, err := reconcile.NewJoblogReader(f, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rec := reconcile.New(set, reconcile.WithMetrics(m))
	if err := rec.Fold(jr); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec.Result(), nil
}

// writeCommands writes cmds one per line to path. An empty path is a no-op.
func writeCommands(logger *log.Logger, m *metrics.Collector, path string, cmds []string) error {
	if path == "" {
		return nil
	}
	n, err := iox.WriteLinesFile(path, cmds)
	m.AddLinesWritten(n)
	if err != nil {
		return err
	}
	logger.Sugar().With("path", path).Infof("wrote %d commands", n)
	return nil
}

func writeSnapshotFile(path string, snap *reconcile.Snapshot) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing snapshot: %w", cerr)
		}
	}()
	return reconcile.WriteSnapshot(f, snap)
}

// exitFor maps a pass error to its exit code. Inconsistent inputs exit 1,
// everything else is an I/O failure.
func exitFor(err error) error {
	if reconcile.IsIntegrityError(err) {
		return cli.Exit(err.Error(), exitIntegrity)
	}
	return cli.Exit(err.Error(), exitIO)
}
