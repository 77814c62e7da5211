package remote

import (
	"net/http/httptest"
	"testing"

	"github.com/profiles/metaes/internal/interp"
)

func TestEvalHandlerRunsSourceAgainstScope(t *testing.T) {
	ctx := interp.NewContext(nil, interp.EvaluationConfig{})
	srv := httptest.NewServer(NewServer(ctx).Handler())
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Eval("a", map[string]string{"a": "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected remote error: %s", resp.Error)
	}
	if resp.Result != "hello" {
		t.Fatalf("got %q, want \"hello\"", resp.Result)
	}
}

func TestEvalHandlerReportsThrows(t *testing.T) {
	ctx := interp.NewContext(nil, interp.EvaluationConfig{})
	srv := httptest.NewServer(NewServer(ctx).Handler())
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Eval("throw 'boom'", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Error == "" {
		t.Fatalf("expected a remote error for a thrown value")
	}
}
