package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matzehuels/influencegraph/internal/config"
)

// newLogger returns a logger on w that drops messages below level. Lines
// carry a time of day with hundredths, e.g. "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// openLogFile returns the log file configured under [log], rotated by size
// and age.
func openLogFile(cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

// teeWriter writes log lines to the terminal and the log file. Write errors
// of the file do not suppress terminal output.
func teeWriter(term io.Writer, file io.Writer) io.Writer {
	return &tee{term: term, file: file}
}

type tee struct {
	term io.Writer
	file io.Writer
}

func (t *tee) Write(p []byte) (int, error) {
	_, _ = t.file.Write(p)
	return t.term.Write(p)
}

// progress logs how long an operation took, such as a re-render in watch
// mode. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the time since newProgress, e.g.
// "Re-rendered report.yaml (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx. PersistentPreRunE installs the CLI logger
// this way for the commands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
