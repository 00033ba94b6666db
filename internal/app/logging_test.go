package app

import (
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var sb strings.Builder
	log := NewLogger(LogLevelWarn, &sb)

	log.Debug("quiet")
	log.Info("quiet")
	log.Warn("loud")
	log.Error("loud")

	out := sb.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("below-level messages leaked: %q", out)
	}
	if strings.Count(out, "loud") != 2 {
		t.Errorf("expected two messages, got %q", out)
	}
}

func TestLoggerFields(t *testing.T) {
	var sb strings.Builder
	log := NewLogger(LogLevelInfo, &sb).WithComponent("chord").WithField("session", "abc")

	log.Info("analyzed")
	out := sb.String()
	if !strings.Contains(out, "component=chord") || !strings.Contains(out, "session=abc") {
		t.Errorf("fields missing: %q", out)
	}
}

func TestLoggerNilOutput(t *testing.T) {
	log := NewLogger(LogLevelDebug, nil)
	log.Info("should not panic")
}
