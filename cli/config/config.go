package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultFileName is the config file picked up from the working directory
// when --config is not given.
const DefaultFileName = "parlog.yaml"

// Config represents a parlog.yaml configuration file.
// All values are optional and act as defaults for the root command flags.
// Precedence: CLI flags > PARLOG_* environment > config file.
type Config struct {
	Cmds       string `yaml:"cmds" env:"PARLOG_CMDS"`
	Log        string `yaml:"log" env:"PARLOG_LOG"`
	CmdsToRun  string `yaml:"cmds_to_run" env:"PARLOG_CMDS_TO_RUN"`
	FailedCmds string `yaml:"failed_cmds" env:"PARLOG_FAILED_CMDS"`
	Snapshot   string `yaml:"snapshot" env:"PARLOG_SNAPSHOT"`
	Format     string `yaml:"format" env:"PARLOG_FORMAT"`
	NoColor    bool   `yaml:"no_color" env:"PARLOG_NO_COLOR"`
	LogLevel   string `yaml:"log_level" env:"PARLOG_LOG_LEVEL"`
}

// ApplyEnv overlays PARLOG_* environment variables onto c. Unset
// variables leave the existing value alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("invalid PARLOG_* environment: %w", err)
	}
	return nil
}

// resolvePaths makes relative file paths relative to dir, so a config
// file can sit next to the commands file it describes.
func (c *Config) resolvePaths(dir string) {
	for _, p := range []*string{&c.Cmds, &c.Log, &c.CmdsToRun, &c.FailedCmds, &c.Snapshot} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}
