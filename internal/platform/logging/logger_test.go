package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := jsoniter.UnmarshalFromString(line, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLogger_JSONFieldsAndLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Format: FormatJSON, Writer: &buf}).Named("supabase")

	logger.Debug("dropped", "table", "player_stats")
	logger.Warn("request failed", "status", 500, "error", errors.New("boom"), "dangling")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d: %s", len(entries), buf.String())
	}
	entry := entries[0]
	if entry["msg"] != "request failed" || entry["level"] != "WARN" || entry["logger"] != "supabase" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["status"] != float64(500) || entry["error"] != "boom" {
		t.Fatalf("unexpected fields: %v", entry)
	}
	if _, ok := entry["dangling"]; !ok {
		t.Fatalf("expected key without value to be kept: %v", entry)
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Writer: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "with span")
	logger.InfoContext(context.Background(), "without span")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(entries))
	}
	if entries[0]["trace_id"] != traceID.String() || entries[0]["span_id"] != spanID.String() {
		t.Fatalf("expected trace ids, got %v", entries[0])
	}
	if _, ok := entries[1]["trace_id"]; ok {
		t.Fatalf("unexpected trace id without span: %v", entries[1])
	}
}

func TestLogger_NilAndNopAreSafe(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	nilLogger.Info("ignored")
	if nilLogger.Enabled(LevelError) {
		t.Fatalf("nil logger must report disabled")
	}
	if err := NewNop().Sync(); err != nil {
		t.Fatalf("sync nop: %v", err)
	}
}
