package internallogger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

func TestNewLoggerDefaults(t *testing.T) {
	logger := NewLogger()
	if got := logger.GetLevel(); got != types.InfoLevel {
		t.Fatalf("expected default level info, got %v", got)
	}
	if logger.IsLevelEnabled(types.DebugLevel) {
		t.Fatalf("debug should be disabled at the default level")
	}
	if !logger.IsLevelEnabled(types.WarnLevel) {
		t.Fatalf("warn should be enabled at the default level")
	}
}

func TestSetLevelRoundTrip(t *testing.T) {
	logger := NewLogger()
	logger.SetLevel(types.DebugLevel)
	if got := logger.GetLevel(); got != types.DebugLevel {
		t.Fatalf("expected debug after SetLevel, got %v", got)
	}
	if !logger.IsLevelEnabled(types.DebugLevel) {
		t.Fatalf("debug should be enabled after SetLevel(DebugLevel)")
	}
	logger.SetLevel(types.ErrorLevel)
	if logger.IsLevelEnabled(types.InfoLevel) {
		t.Fatalf("info should be disabled after SetLevel(ErrorLevel)")
	}
}

func TestLoggerWithLevelOption(t *testing.T) {
	logger := NewLogger(LoggerWithLevel("warn"))
	if got := logger.GetLevel(); got != types.WarnLevel {
		t.Fatalf("expected warn, got %v", got)
	}
	fallback := NewLogger(LoggerWithLevel("nonsense"))
	if got := fallback.GetLevel(); got != types.InfoLevel {
		t.Fatalf("unknown level string should fall back to info, got %v", got)
	}
}

func TestFileSinkReceivesEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "out.log")

	logger := NewLogger()
	err := logger.AddSink("file1", types.SinkConfig{
		Type:   string(types.FileSink),
		Config: map[string]interface{}{"path": path},
	})
	if err != nil {
		t.Fatalf("AddSink failed: %v", err)
	}

	meta := types.ComponentMetadata{ID: "abc123", Type: "DECODER", Name: "test"}
	logger.Info("decode complete",
		"component", meta,
		"event", "Decode",
		"result", "SUCCESS",
		"error", errors.New("boom"),
	)
	if err := logger.RemoveSink("file1"); err != nil {
		t.Fatalf("RemoveSink failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sink file: %v", err)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("sink output is not valid JSON: %v\n%s", err, raw)
	}
	if entry["msg"] != "decode complete" {
		t.Fatalf("unexpected msg field: %v", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Fatalf("unexpected level field: %v", entry["level"])
	}
	component, ok := entry["component"].(map[string]interface{})
	if !ok {
		t.Fatalf("component field missing or wrong shape: %v", entry["component"])
	}
	if component["type"] != "DECODER" {
		t.Fatalf("unexpected component type: %v", component["type"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestFileSinkRespectsLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger := NewLogger(LoggerWithLevel("error"))
	err := logger.AddSink("file1", types.SinkConfig{
		Type:   string(types.FileSink),
		Config: map[string]interface{}{"path": path},
	})
	if err != nil {
		t.Fatalf("AddSink failed: %v", err)
	}
	logger.Info("should be filtered")
	if err := logger.RemoveSink("file1"); err != nil {
		t.Fatalf("RemoveSink failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sink file: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty sink file, got %q", raw)
	}
}

func TestAddSinkValidation(t *testing.T) {
	logger := NewLogger()
	if err := logger.AddSink("", types.SinkConfig{Type: string(types.StdoutSink)}); err == nil {
		t.Fatalf("expected error for empty identifier")
	}
	if err := logger.AddSink("s1", types.SinkConfig{Type: "udp"}); err == nil {
		t.Fatalf("expected error for unsupported sink type")
	}
	if err := logger.AddSink("f1", types.SinkConfig{Type: string(types.FileSink)}); err == nil {
		t.Fatalf("expected error for file sink without path")
	}
	if err := logger.AddSink("s2", types.SinkConfig{Type: string(types.StdoutSink)}); err != nil {
		t.Fatalf("stdout sink should register: %v", err)
	}
	if err := logger.AddSink("s2", types.SinkConfig{Type: string(types.StdoutSink)}); err == nil {
		t.Fatalf("expected error for duplicate identifier")
	}
}

func TestRemoveSinkUnknown(t *testing.T) {
	logger := NewLogger()
	if err := logger.RemoveSink("ghost"); err == nil {
		t.Fatalf("expected error removing unregistered sink")
	}
}

func TestListSinksSorted(t *testing.T) {
	logger := NewLogger()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := logger.AddSink(name, types.SinkConfig{Type: string(types.StdoutSink)}); err != nil {
			t.Fatalf("AddSink(%q) failed: %v", name, err)
		}
	}
	names, err := logger.ListSinks()
	if err != nil {
		t.Fatalf("ListSinks failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("expected %d sinks, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected sorted sinks %v, got %v", want, names)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]types.LogLevel{
		"debug":   types.DebugLevel,
		"info":    types.InfoLevel,
		"warn":    types.WarnLevel,
		"error":   types.ErrorLevel,
		"dpanic":  types.DPanicLevel,
		"panic":   types.PanicLevel,
		"fatal":   types.FatalLevel,
		"unknown": types.InfoLevel,
		"":        types.InfoLevel,
	}
	for input, want := range cases {
		if got := parseLogLevel(input); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestFlushDoesNotFailOnStdout(t *testing.T) {
	logger := NewLogger()
	logger.Info("flush me")
	if err := logger.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
}
