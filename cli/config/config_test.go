package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_FullConfig(t *testing.T) {
	yaml := `cmds: /data/cmds.txt
log: /data/joblog.tsv
cmds_to_run: /data/remaining.txt
failed_cmds: /data/failed.txt
snapshot: /data/pass.msgpack
format: json
no_color: true
log_level: debug
`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assertEqual(t, "cmds", cfg.Cmds, "/data/cmds.txt")
	assertEqual(t, "log", cfg.Log, "/data/joblog.tsv")
	assertEqual(t, "cmds_to_run", cfg.CmdsToRun, "/data/remaining.txt")
	assertEqual(t, "failed_cmds", cfg.FailedCmds, "/data/failed.txt")
	assertEqual(t, "snapshot", cfg.Snapshot, "/data/pass.msgpack")
	assertEqual(t, "format", cfg.Format, "json")
	assertEqual(t, "log_level", cfg.LogLevel, "debug")
	if !cfg.NoColor {
		t.Error("expected no_color=true")
	}
}

func TestLoad_RelativePathsResolvedAgainstConfigDir(t *testing.T) {
	path := writeTemp(t, "cmds: cmds.txt\nlog: logs/joblog.tsv\n")
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	assertEqual(t, "cmds", cfg.Cmds, filepath.Join(dir, "cmds.txt"))
	assertEqual(t, "log", cfg.Log, filepath.Join(dir, "logs", "joblog.tsv"))
	assertEqual(t, "cmds_to_run", cfg.CmdsToRun, "")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("PARLOG_TEST_DIR", "/scratch")
	path := writeTemp(t, "log: ${PARLOG_TEST_DIR}/joblog.tsv\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "log", cfg.Log, "/scratch/joblog.tsv")
}

func TestLoad_EmptyConfig(t *testing.T) {
	for name, content := range map[string]string{
		"empty":         "",
		"whitespace":    "   \n  \n",
		"comments only": "# parlog defaults\n# none yet\n",
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeTemp(t, content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if *cfg != (Config{}) {
				t.Errorf("expected zero config, got %+v", cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/parlog.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "{{invalid yaml"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "invalid YAML") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	_, err := Load(writeTemp(t, "cmds: a.txt\nbogus_key: should_fail\n"))
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
	if !strings.Contains(err.Error(), "bogus_key") {
		t.Errorf("error should mention the unknown key, got: %v", err)
	}
}

func TestApplyEnv_OverridesFile(t *testing.T) {
	t.Setenv("PARLOG_LOG", "/env/joblog.tsv")
	t.Setenv("PARLOG_NO_COLOR", "true")

	cfg, err := Load(writeTemp(t, "cmds: /file/cmds.txt\nlog: /file/joblog.tsv\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	assertEqual(t, "cmds", cfg.Cmds, "/file/cmds.txt")
	assertEqual(t, "log", cfg.Log, "/env/joblog.tsv")
	if !cfg.NoColor {
		t.Error("expected PARLOG_NO_COLOR to set NoColor")
	}
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	t.Setenv("PARLOG_NO_COLOR", "maybe")

	cfg := &Config{}
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for invalid bool")
	}
}

func TestResolve_ExplicitPath(t *testing.T) {
	t.Setenv("PARLOG_FORMAT", "yaml")
	path := writeTemp(t, "cmds: /file/cmds.txt\nformat: table\n")

	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertEqual(t, "cmds", cfg.Cmds, "/file/cmds.txt")
	assertEqual(t, "format", cfg.Format, "yaml")
}

func TestResolve_ExplicitPathMissing(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestResolve_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("log: joblog.tsv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertEqual(t, "log", cfg.Log, "joblog.tsv")
}

func TestResolve_NoFileEnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PARLOG_CMDS", "/env/cmds.txt")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	assertEqual(t, "cmds", cfg.Cmds, "/env/cmds.txt")
}

// writeTemp writes content to a temp file and returns the path.
func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "parlog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func assertEqual(t *testing.T, field, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
