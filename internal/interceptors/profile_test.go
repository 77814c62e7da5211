package interceptors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/profiles/metaes/internal/interp"
)

func TestProfilerAccumulatesPerNodeKind(t *testing.T) {
	profiler, interceptor := NewProfiler()
	cfg := interp.EvaluationConfig{Interceptor: interceptor}

	var result interp.Value
	interp.NewContext(nil, cfg).Evaluate("function f(x){ return x*2 } f(21)", func(v interp.Value) { result = v }, func(*interp.ExceptionPacket) {
		t.Fatalf("unexpected failure")
	}, nil, interp.EvaluationConfig{})

	if result.AsNumber() != 42 {
		t.Fatalf("got %v, want 42", result)
	}

	var buf bytes.Buffer
	profiler.Report(&buf)
	report := buf.String()
	if !strings.Contains(report, "CallExpression") {
		t.Fatalf("expected a CallExpression row in the report, got:\n%s", report)
	}
	if len(profiler.started) != 0 {
		t.Fatalf("expected every enter to be matched by an exit, %d visits left open", len(profiler.started))
	}
}
