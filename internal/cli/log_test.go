package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/influencegraph/internal/config"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info passes info", log.InfoLevel, func(l *log.Logger) { l.Info("loaded graph", "nodes", 11) }, true},
		{"info drops debug", log.InfoLevel, func(l *log.Logger) { l.Debug("cache key", "key", "layout:abc") }, false},
		{"debug passes debug", log.DebugLevel, func(l *log.Logger) { l.Debug("cache key", "key", "layout:abc") }, true},
		{"warn drops info", log.WarnLevel, func(l *log.Logger) { l.Info("loaded graph") }, false},
		{"warn passes warn", log.WarnLevel, func(l *log.Logger) { l.Warn("graph issue", "kind", "dangling_edge") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v (%q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.start = p.start.Add(-1500 * time.Millisecond)

	p.done("Re-rendered report.yaml")

	out := buf.String()
	if !strings.Contains(out, "Re-rendered report.yaml") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "(1.5") {
		t.Errorf("output missing elapsed time: %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("empty context should yield the default logger")
	}

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Fatal("loggerFromContext did not return the attached logger")
	}
	loggerFromContext(ctx).Info("watching", "files", 2)
	if !strings.Contains(buf.String(), "watching") {
		t.Errorf("attached logger output = %q", buf.String())
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "influencegraph.log")
	f := openLogFile(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 3})
	defer f.Close()

	if f.Filename != path || f.MaxSize != 1 || f.MaxBackups != 2 || f.MaxAge != 3 {
		t.Errorf("openLogFile() = %+v", f)
	}

	logger := newLogger(f, log.InfoLevel)
	logger.Info("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !bytes.Contains(data, []byte("written to file")) {
		t.Errorf("log file = %q", data)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTeeWriter(t *testing.T) {
	var term, file bytes.Buffer
	w := teeWriter(&term, &file)

	n, err := w.Write([]byte("line\n"))
	if err != nil || n != 5 {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if term.String() != "line\n" || file.String() != "line\n" {
		t.Errorf("term = %q, file = %q", term.String(), file.String())
	}

	// a failing file keeps the terminal going
	term.Reset()
	w = teeWriter(&term, failWriter{})
	if _, err := w.Write([]byte("still here\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if term.String() != "still here\n" {
		t.Errorf("term = %q", term.String())
	}
}
