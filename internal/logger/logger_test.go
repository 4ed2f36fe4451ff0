package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_DefaultsToInfo(t *testing.T) {
	log := New()
	if log.GetLevel() != slog.LevelInfo {
		t.Errorf("GetLevel() = %v, want info", log.GetLevel())
	}
	if log.IsHTTPLoggingEnabled() {
		t.Error("HTTP logging should start disabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSlogLogger_ImplementsInterface(t *testing.T) {
	var _ Logger = (*SlogLogger)(nil)
}

func TestSlogLogger_WritesAttrsAtEachLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, slog.LevelDebug)

	tests := []struct {
		fn    func(string, ...any)
		level string
	}{
		{log.Debug, "DEBUG"},
		{log.Info, "INFO"},
		{log.Warn, "WARN"},
		{log.Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.fn("Race archived", "race_id", 7)

			out := buf.String()
			if !strings.Contains(out, tt.level) {
				t.Errorf("output missing level %s: %s", tt.level, out)
			}
			if !strings.Contains(out, "Race archived") || !strings.Contains(out, "race_id=7") {
				t.Errorf("output missing message or attrs: %s", out)
			}
		})
	}
}

func TestSlogLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, slog.LevelWarn)

	log.Debug("dropped")
	log.Info("dropped")
	if buf.Len() > 0 {
		t.Fatalf("debug/info leaked at warn level: %s", buf.String())
	}

	log.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn message was filtered")
	}
}

func TestSlogLogger_SetLevelTakesEffect(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, slog.LevelInfo)

	log.Debug("before")
	if buf.Len() > 0 {
		t.Fatal("debug leaked at info level")
	}

	log.SetLevel(slog.LevelDebug)
	if log.GetLevel() != slog.LevelDebug {
		t.Errorf("GetLevel() = %v, want debug", log.GetLevel())
	}
	log.Debug("after")
	if !strings.Contains(buf.String(), "after") {
		t.Error("debug still filtered after SetLevel")
	}
}

func TestSlogLogger_HTTPLoggingToggle(t *testing.T) {
	log := New()

	log.EnableHTTPLogging()
	if !log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging enabled")
	}

	log.DisableHTTPLogging()
	if log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging disabled")
	}
}
