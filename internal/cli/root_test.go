package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// isolate points config and cache lookups at temp dirs and runs the test
// from an empty working directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

// execute runs the root command with args on a fresh CLI.
func execute(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	var stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	t.Cleanup(func() { _ = c.Close() })

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&stderr)
	return c, root.ExecuteContext(context.Background())
}

func TestRootCommandTree(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()

	want := []string{"render", "layout", "visualize", "inspect", "explore", "serve", "quote", "cache", "sample", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}

	for _, name := range []string{"config", "verbose", "log-file", "cache", "quotes"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag --%s missing", name)
		}
	}
}

func TestConfigFlagsExist(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()

	// every mapped flag is defined somewhere in the tree
	defined := map[string]bool{}
	root.PersistentFlags().VisitAll(func(f *pflag.Flag) { defined[f.Name] = true })
	for _, cmd := range root.Commands() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) { defined[f.Name] = true })
	}
	for name := range configFlags {
		if !defined[name] {
			t.Errorf("config flag --%s is not defined by any command", name)
		}
	}
}

func TestPreRunProjectConfig(t *testing.T) {
	dir := isolate(t)
	cfg := "[render]\nwidth = 800\n\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".influencegraph.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if c.cfg.Render.Width != 800 {
		t.Errorf("Render.Width = %v, want 800 from project config", c.cfg.Render.Width)
	}
	if c.cfg.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q, want none", c.cfg.Cache.Backend)
	}
}

func TestPreRunFlagsOverrideConfig(t *testing.T) {
	dir := isolate(t)
	cfg := "[render]\nwidth = 800\nformats = [\"html\"]\n"
	if err := os.WriteFile(filepath.Join(dir, ".influencegraph.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := writeSamples(dir); err != nil {
		t.Fatal(err)
	}

	c, err := execute(t, "render", sampleReportFile, "--cache", "none", "--width", "640", "-f", "svg,json")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if c.cfg.Render.Width != 640 {
		t.Errorf("Render.Width = %v, want 640 from flag", c.cfg.Render.Width)
	}
	if strings.Join(c.cfg.Render.Formats, ",") != "svg,json" {
		t.Errorf("Render.Formats = %v", c.cfg.Render.Formats)
	}

	for _, name := range []string{"sample-report.svg", "sample-report.layout.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "sample-report.html")); err == nil {
		t.Error("config formats used despite --format")
	}
}

func TestPreRunInvalidConfig(t *testing.T) {
	isolate(t)

	_, err := execute(t, "cache", "path", "--cache", "memcached")
	if err == nil {
		t.Fatal("execute() with unknown cache backend should fail")
	}
}

func TestPreRunLogFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "run.log")

	c, err := execute(t, "cache", "path", "--log-file", logPath, "-v")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if c.logFile == nil {
		t.Fatal("log file not opened")
	}
	c.Logger.Debug("debug line")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "debug line") {
		t.Errorf("log file = %q, want the verbose debug line", data)
	}
}
