package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "warn")

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug should be suppressed at warn level")
	}
	if strings.Contains(out, "info message") {
		t.Error("info should be suppressed at warn level")
	}
	if !strings.Contains(out, "WARN: warn message") {
		t.Errorf("expected warn line, got %q", out)
	}
	if !strings.Contains(out, "ERROR: error message error=boom") {
		t.Errorf("expected error line with error field, got %q", out)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "info")

	l.Info("upload received", "filename", "cp.pdf", "size", 2048)

	out := buf.String()
	if !strings.Contains(out, "INFO: upload received filename=cp.pdf size=2048") {
		t.Errorf("expected formatted fields, got %q", out)
	}
}

func TestLoggerOddFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "info")

	l.Info("dangling key", "orphan")

	out := buf.String()
	if !strings.Contains(out, "INFO: dangling key") {
		t.Errorf("expected message to be logged, got %q", out)
	}
	if strings.Contains(out, "orphan") {
		t.Errorf("unpaired field should be dropped, got %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"ERROR", ERROR},
		{"unknown", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
