package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(" WARN ")
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	if level != LevelWarn {
		t.Fatalf("expected warn, got %v", level)
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLogger_WritesKeyValuesAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf}).Named("session")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.Debug("hidden")
	logger.InfoContext(ctx, "swap applied", "session_id", "s1", "minute", 12)
	logger.Warn("sink failed", "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}

	var first map[string]any
	if err := sonic.UnmarshalString(lines[0], &first); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if first["msg"] != "swap applied" || first["session_id"] != "s1" || first["component"] != "session" {
		t.Fatalf("unexpected log line: %v", first)
	}
	if first["trace_id"] != traceID.String() {
		t.Fatalf("expected trace id, got %v", first["trace_id"])
	}

	var second map[string]any
	if err := sonic.UnmarshalString(lines[1], &second); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if second["error"] != "boom" {
		t.Fatalf("expected error field, got %v", second["error"])
	}
}

func TestDefault_FallsBackToNop(t *testing.T) {
	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected non-nil default logger")
	}
}
