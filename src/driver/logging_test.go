package driver

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"Error", LogLevelError},
		{"none", LogLevelOff},
		{"bogus", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestConsoleLogger_LogLevels(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := NewConsoleLoggerWithOutput(LogLevelInfo, &stdout, &stderr)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	if strings.Contains(stdout.String(), "debug message") {
		t.Error("Debug message should be filtered out at INFO level")
	}
	if !strings.Contains(stdout.String(), "info message") {
		t.Error("Info message should go to stdout")
	}
	if !strings.Contains(stderr.String(), "warn message") || !strings.Contains(stderr.String(), "error message") {
		t.Error("Warn and error messages should go to stderr")
	}
	if logger.IsDebugEnabled() || !logger.IsInfoEnabled() {
		t.Error("level predicates disagree with INFO level")
	}

	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(stdout.String(), "now visible") {
		t.Error("SetLevel should enable debug output")
	}
}

func TestConsoleLogger_KeyValuePairs(t *testing.T) {
	var stdout bytes.Buffer
	logger := NewConsoleLoggerWithOutput(LogLevelDebug, &stdout, &stdout)
	logger.SetTimeFormat("T")

	logger.Info("Executing query", "query", "RETURN 1;", "records", 1, "dangling")

	line := strings.TrimSpace(stdout.String())
	want := "[T] INFO [gopher-graph] Executing query | query=RETURN 1; records=1"
	if line != want {
		t.Errorf("got  %q\nwant %q", line, want)
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(LogLevelWarn, &buf)

	logger.Info("skipped")
	logger.Warn("slow query", "duration_ms", 1200, "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry.Level != "WARN" || entry.Message != "slow query" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Fields["error"] != "boom" {
		t.Errorf("errors should be logged by message, got %v", entry.Fields["error"])
	}
	if entry.Fields["duration_ms"] != float64(1200) {
		t.Errorf("unexpected duration field: %v", entry.Fields["duration_ms"])
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := &NoOpLogger{}
	logger.Error("ignored", "k", "v")
	if logger.IsDebugEnabled() || logger.IsInfoEnabled() {
		t.Error("NoOpLogger should report everything disabled")
	}
}

func TestNeo4jLogBridge(t *testing.T) {
	var buf bytes.Buffer
	bridge := &neo4jLogBridge{logger: NewConsoleLoggerWithOutput(LogLevelInfo, &buf, &buf)}

	bridge.Infof("pool", "1", "opened %d connections", 3)
	bridge.Debugf("pool", "1", "hidden")
	bridge.Error("router", "2", errors.New("no servers"))

	out := buf.String()
	if !strings.Contains(out, "opened 3 connections | component=pool id=1") {
		t.Errorf("info line missing: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug lines should respect the logger level")
	}
	if !strings.Contains(out, "error=no servers") {
		t.Errorf("error line missing: %q", out)
	}
}

func TestLoggingConfigPresets(t *testing.T) {
	console := NewConsoleLoggingConfig(LogLevelDebug)
	if !console.LogQueryTiming || !console.LogDriverInternals {
		t.Error("debug console config should enable query timing and driver internals")
	}

	var buf bytes.Buffer
	jsonCfg := NewJSONLoggingConfig(LogLevelWarn, &buf)
	if jsonCfg.LogQueryTiming {
		t.Error("query timing is logged at INFO, WARN config should not enable it")
	}
	if _, ok := jsonCfg.Logger.(*JSONLogger); !ok {
		t.Errorf("expected JSONLogger, got %T", jsonCfg.Logger)
	}
}
