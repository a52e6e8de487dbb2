package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerNotNil(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLoggerUsesTextHandlerWithInfoLevel(t *testing.T) {
	logger := NewLogger(Config{Format: "text", Level: "info"})

	if enabled := logger.Enabled(context.Background(), slog.LevelInfo); !enabled {
		t.Fatal("expected info level to be enabled")
	}

	if enabled := logger.Enabled(context.Background(), slog.LevelDebug); enabled {
		t.Fatal("expected debug level to be disabled")
	}
}

func TestNewLoggerJSONIncludesServiceAndVersion(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: "JSON", Level: "debug", Service: "tracker", Version: "v1", Output: &buf})
	logger.Debug("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q (%v)", buf.String(), err)
	}
	if entry[FieldService] != "tracker" || entry[FieldVersion] != "v1" {
		t.Fatalf("expected common fields, got %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", raw, want, got)
		}
	}
}

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "ignored")
	Info(nil, "ignored")
	Warn(nil, "ignored", errTest("x"))
	Error(nil, "ignored", nil)
	if ForRun(nil, "abc") != nil {
		t.Fatalf("expected nil logger to stay nil")
	}

	var buf bytes.Buffer
	logger := NewLogger(Config{Output: &buf})
	Error(logger, "failed", errTest("boom"), FieldRunID, "abc")
	if !strings.Contains(buf.String(), "error=boom") || !strings.Contains(buf.String(), "run_id=abc") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestForRunTagsEveryLine(t *testing.T) {
	var buf bytes.Buffer
	logger := ForRun(NewLogger(Config{Output: &buf, Level: "debug"}), "run-1")
	Debug(logger, "step")
	Warn(logger, "print failed", errTest("closed pipe"))
	Warn(logger, "no error attached", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected three lines, got %q", buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "run_id=run-1") {
			t.Fatalf("expected run id on %q", line)
		}
	}
	if !strings.Contains(lines[1], "error=\"closed pipe\"") {
		t.Fatalf("expected error field, got %q", lines[1])
	}
	if strings.Contains(lines[2], "error=") {
		t.Fatalf("expected no error field, got %q", lines[2])
	}
	if same := ForRun(logger, ""); same != logger {
		t.Fatalf("expected empty run id to keep logger")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
