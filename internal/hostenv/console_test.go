package hostenv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/profiles/metaes/internal/interp"
)

func TestConsoleLogWritesArgsSpaceSeparated(t *testing.T) {
	var buf bytes.Buffer
	root := interp.NewEnvironment()
	Install(root, &buf)

	console, _ := root.Get("console")
	logFn, _ := console.AsHost().GetProperty(interp.String("log"))
	call := logFn.AsHost().(interp.Callable)

	if _, err := call.Call(interp.Undefined(), []interp.Value{interp.String("hi"), interp.Number(42)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "hi 42" {
		t.Fatalf("got %q, want \"hi 42\"", got)
	}
}

func TestMathObjectExposesConstantsAndFunctions(t *testing.T) {
	root := interp.NewEnvironment()
	Install(root, &bytes.Buffer{})

	mathVal, ok := root.Get("Math")
	if !ok {
		t.Fatalf("Math was not installed")
	}
	pi, _ := mathVal.AsHost().GetProperty(interp.String("PI"))
	if pi.AsNumber() < 3.14 || pi.AsNumber() > 3.15 {
		t.Fatalf("got Math.PI=%v", pi.AsNumber())
	}

	absFn, _ := mathVal.AsHost().GetProperty(interp.String("abs"))
	result, err := absFn.AsHost().(interp.Callable).Call(interp.Undefined(), []interp.Value{interp.Number(-5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AsNumber() != 5 {
		t.Fatalf("got Math.abs(-5)=%v, want 5", result.AsNumber())
	}
}

func TestJSONRoundTripsArraysAndRecords(t *testing.T) {
	root := interp.NewEnvironment()
	Install(root, &bytes.Buffer{})

	jsonVal, _ := root.Get("JSON")
	stringify, _ := jsonVal.AsHost().GetProperty(interp.String("stringify"))
	parse, _ := jsonVal.AsHost().GetProperty(interp.String("parse"))

	rec := interp.NewRecord()
	rec.SetProperty(interp.String("name"), interp.String("ok"))
	rec.SetProperty(interp.String("items"), interp.NewArray([]interp.Value{interp.Number(1), interp.Number(2)}))

	encoded, err := stringify.AsHost().(interp.Callable).Call(interp.Undefined(), []interp.Value{interp.FromHost(rec)})
	if err != nil {
		t.Fatalf("unexpected stringify error: %v", err)
	}

	decoded, err := parse.AsHost().(interp.Callable).Call(interp.Undefined(), []interp.Value{encoded})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	name, _ := decoded.AsHost().GetProperty(interp.String("name"))
	if name.AsString() != "ok" {
		t.Fatalf("got name=%v, want \"ok\"", name)
	}
	items, _ := decoded.AsHost().GetProperty(interp.String("items"))
	arr, ok := items.AsHost().(*interp.Array)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("expected a 2-element array, got %v", items)
	}
}
