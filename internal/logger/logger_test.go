package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", false)
	l.Debug("hidden")
	l.Info("Generated points", "count", 9)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, `msg="Generated points" count=9`) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", true).Debug("generation started", "width", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not a JSON record: %v: %q", err, buf.String())
	}
	if rec["msg"] != "generation started" || rec["width"] != float64(3) {
		t.Errorf("record = %v", rec)
	}
}

func TestNewOff(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelOff, false)
	l.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("off logger wrote %q", buf.String())
	}
}
