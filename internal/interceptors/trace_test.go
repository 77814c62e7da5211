package interceptors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/profiles/metaes/internal/interp"
)

func TestTraceInterceptorLogsEnterAndExit(t *testing.T) {
	var buf bytes.Buffer
	cfg := interp.EvaluationConfig{Interceptor: TraceInterceptor(&buf)}

	var result interp.Value
	interp.NewContext(nil, cfg).Evaluate("2+2", func(v interp.Value) { result = v }, func(*interp.ExceptionPacket) {
		t.Fatalf("unexpected failure")
	}, nil, interp.EvaluationConfig{})

	if result.AsNumber() != 4 {
		t.Fatalf("got %v, want 4", result)
	}
	out := buf.String()
	if !strings.Contains(out, "enter") || !strings.Contains(out, "exit") {
		t.Fatalf("expected both enter and exit lines, got:\n%s", out)
	}
	if !strings.Contains(out, "BinaryExpression") {
		t.Fatalf("expected a BinaryExpression trace line, got:\n%s", out)
	}
}
