package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jrazmi/zentask/sdk/logger"
	"github.com/jrazmi/zentask/sdk/telemetry"
)

func TestNewFromEnv(t *testing.T) {
	t.Setenv("SVC_LOG_LEVEL", "WARN")
	t.Setenv("SVC_LOG_FORMAT", "json")

	var buf bytes.Buffer
	log, err := logger.NewFromEnv("SVC", logger.WithOutput(&buf), logger.WithService("zentask"))
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}

	log.Info("dropped")
	log.WarnContext(context.Background(), "kept 1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec["msg"] != "kept 1" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["service"] != "zentask" {
		t.Errorf("service = %v", rec["service"])
	}
	if _, ok := rec["time"].(string); !ok {
		t.Errorf("time should be formatted as a string, got %T", rec["time"])
	}
}

func TestTextFormatUnixTime(t *testing.T) {
	t.Setenv("TXT_LOG_FORMAT", "text")
	t.Setenv("TXT_LOG_TIME_FORMAT", "Unix")

	var buf bytes.Buffer
	log, err := logger.NewFromEnv("TXT", logger.WithOutput(&buf))
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("unexpected text output %q", buf.String())
	}
}

func TestTraceIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: "debug"}, logger.WithOutput(&buf))

	ctx := telemetry.NewTelemetry().SetTraceID(context.Background(), "req-42")
	log.With("component", "test").DebugContext(ctx, "traced")
	log.InfoContext(context.Background(), "untraced")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"trace_id":"req-42"`) || !strings.Contains(lines[0], `"component":"test"`) {
		t.Errorf("traced line = %s", lines[0])
	}
	if strings.Contains(lines[1], "trace_id") {
		t.Errorf("untraced line has a trace id: %s", lines[1])
	}
}
