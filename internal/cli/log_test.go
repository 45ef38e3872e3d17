package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"cache hit at info", log.InfoLevel, func(l *log.Logger) { l.Info("config cache hit", "spec", "revenue") }, true},
		{"sizing detail at info", log.InfoLevel, func(l *log.Logger) { l.Debug("sized", "extent", 336) }, false},
		{"sizing detail at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("sized", "extent", 336) }, true},
		{"warning at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("profile reload failed") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("logged = %v, want %v (%q)", gotLog, tt.wantLog, buf.String())
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("serving", "addr", ":8080")
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).Match(buf.Bytes()) {
		t.Errorf("log line %q should start with an HH:MM:SS.ms timestamp", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Built 3 charts")

	if !regexp.MustCompile(`Built 3 charts \(\d+(\.\d+)?[µnm]?s\)`).Match(buf.Bytes()) {
		t.Errorf("progress output = %q, want the message with its elapsed time", buf.String())
	}
}

func TestProgressSilentAboveInfo(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.WarnLevel)).done("Wrote 3 configs")
	if buf.Len() != 0 {
		t.Errorf("progress logged %q at warn level", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}
