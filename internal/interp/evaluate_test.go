package interp

import (
	"testing"

	"github.com/profiles/metaes/internal/token"
)

type unknownNode struct{}

func (unknownNode) Kind() string             { return "SwitchStatement" }
func (unknownNode) Location() token.Location { return token.Location{} }

func run(t *testing.T, ctx *Context, source string, env *Environment) (Value, *ExceptionPacket) {
	t.Helper()
	var result Value
	var failure *ExceptionPacket
	settled := false
	ctx.Evaluate(source, func(v Value) {
		result = v
		settled = true
	}, func(pkt *ExceptionPacket) {
		failure = pkt
		settled = true
	}, env, EvaluationConfig{})
	if !settled {
		t.Fatalf("evaluate(%q) never settled", source)
	}
	return result, failure
}

func TestEndToEndScenarios(t *testing.T) {
	t.Run("arithmetic literal", func(t *testing.T) {
		ctx := NewContext(nil, EvaluationConfig{})
		v, err := run(t, ctx, "2+2", nil)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if v.Kind() != KindNumber || v.AsNumber() != 4 {
			t.Fatalf("got %v, want 4", v)
		}
	})

	t.Run("identifiers from environment", func(t *testing.T) {
		ctx := NewContext(nil, EvaluationConfig{})
		env := ctx.NewScope(map[string]Value{"a": Number(1), "b": Number(3)})
		v, err := run(t, ctx, "a+b", env)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if v.AsNumber() != 4 {
			t.Fatalf("got %v, want 4", v)
		}
	})

	t.Run("update expression mutates the declaring frame", func(t *testing.T) {
		ctx := NewContext(nil, EvaluationConfig{})
		env := ctx.NewScope(nil)
		v, err := run(t, ctx, "let c=0; c++; c", env)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if v.AsNumber() != 1 {
			t.Fatalf("got %v, want 1", v)
		}
		stored, ok := env.Get("c")
		if !ok || stored.AsNumber() != 1 {
			t.Fatalf("environment does not retain c==1: %v %v", stored, ok)
		}
	})

	t.Run("throw inside for-of caught by try/catch", func(t *testing.T) {
		ctx := NewContext(nil, EvaluationConfig{})
		v, err := run(t, ctx, `try { for (let o of [1,2,3]) { throw 'e' } } catch (e) { e }`, nil)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if v.Kind() != KindString || v.AsString() != "e" {
			t.Fatalf("got %v, want \"e\"", v)
		}
	})

	t.Run("function call doubles its argument", func(t *testing.T) {
		ctx := NewContext(nil, EvaluationConfig{})
		v, err := run(t, ctx, "function f(x){ return x*2 } f(21)", nil)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if v.AsNumber() != 42 {
			t.Fatalf("got %v, want 42", v)
		}
	})

	t.Run("rest parameters collect trailing arguments", func(t *testing.T) {
		ctx := NewContext(nil, EvaluationConfig{})
		v, err := run(t, ctx, "function r(...xs){ return xs.length } r(1,2,3,4)", nil)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if v.AsNumber() != 4 {
			t.Fatalf("got %v, want 4", v)
		}
	})

	t.Run("unbound identifier never calls c", func(t *testing.T) {
		ctx := NewContext(nil, EvaluationConfig{})
		v, err := run(t, ctx, "window", nil)
		if err == nil {
			t.Fatalf("expected a reference error, got success value %v", v)
		}
		if err.Type != HostErrorException {
			t.Fatalf("got exception type %v, want HostErrorException", err.Type)
		}
		rec, ok := err.Value.AsHost().(*Record)
		if !ok {
			t.Fatalf("expected the packet value to be a Record, got %T", err.Value.AsHost())
		}
		name, _ := rec.GetProperty(String("name"))
		if name.AsString() != "ReferenceError" {
			t.Fatalf("got error name %q, want ReferenceError", name.AsString())
		}
	})
}

func TestRestArgsEmptyWhenNoExtraArgs(t *testing.T) {
	ctx := NewContext(nil, EvaluationConfig{})
	v, err := run(t, ctx, "function r(...xs){ return xs.length } r()", nil)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if v.AsNumber() != 0 {
		t.Fatalf("got %v, want 0", v)
	}
}

func TestTryThrowCatchIdentityLaw(t *testing.T) {
	ctx := NewContext(nil, EvaluationConfig{})
	v, err := run(t, ctx, `try { throw 7 } catch (e) { e }`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if v.AsNumber() != 7 {
		t.Fatalf("got %v, want 7", v)
	}
}

func TestReturnEqualsTrailingExpressionLaw(t *testing.T) {
	ctx := NewContext(nil, EvaluationConfig{})
	a, errA := run(t, ctx, "function f(x){ return x+1 } f(1)", nil)
	b, errB := run(t, ctx, "function g(x){ x+1 } g(1)", nil)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %+v %+v", errA, errB)
	}
	if a.AsNumber() != b.AsNumber() {
		t.Fatalf("return x+1 (%v) should equal trailing expression x+1 (%v)", a, b)
	}
}

func TestFinallyAlwaysRuns(t *testing.T) {
	ctx := NewContext(nil, EvaluationConfig{})
	env := ctx.NewScope(map[string]Value{"ran": Bool(false)})
	_, err := run(t, ctx, `try { throw 1 } finally { ran = true }`, env)
	if err == nil {
		t.Fatalf("expected the throw to still propagate past finally")
	}
	ran, _ := env.Get("ran")
	if !ran.AsBool() {
		t.Fatalf("finally block did not run")
	}
}

func TestFinallyExceptionSupersedes(t *testing.T) {
	ctx := NewContext(nil, EvaluationConfig{})
	_, err := run(t, ctx, `try { throw 1 } finally { throw 2 }`, nil)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Value.AsNumber() != 2 {
		t.Fatalf("got %v, want the finally block's throw (2) to supersede", err.Value)
	}
}

func TestBreakAndContinueWithLabels(t *testing.T) {
	ctx := NewContext(nil, EvaluationConfig{})
	env := ctx.NewScope(map[string]Value{"total": Number(0)})
	_, err := run(t, ctx, `
		outer: for (let i=0; i<3; i++) {
			for (let j=0; j<3; j++) {
				if (j == 1) { continue outer }
				total = total + 1
			}
		}
	`, env)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	total, _ := env.Get("total")
	if total.AsNumber() != 3 {
		t.Fatalf("got total=%v, want 3", total)
	}
}

func TestInterceptorEntersAndExitsBalance(t *testing.T) {
	enters, exits := 0, 0
	cfg := EvaluationConfig{Interceptor: func(ev Evaluation) error {
		if ev.Phase == PhaseEnter {
			enters++
		} else {
			exits++
		}
		return nil
	}}
	ctx := NewContext(nil, cfg)
	_, err := run(t, ctx, "function f(x){ return x*2 } f(21)", nil)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if enters != exits {
		t.Fatalf("unbalanced interceptor events: %d enters, %d exits", enters, exits)
	}
	if enters == 0 {
		t.Fatalf("interceptor was never called")
	}
}

func TestMetaFunctionWrapperMatchesEvaluate(t *testing.T) {
	ctx := NewContext(nil, EvaluationConfig{})
	fnVal, err := run(t, ctx, "function f(x){ return x*2 }", ctx.NewScope(nil))
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	wrapper := CreateMetaFunctionWrapper(fnVal.AsMetaFunction())
	result, callErr := wrapper.AsHost().(Callable).Call(Undefined(), []Value{Number(21)})
	if callErr != nil {
		t.Fatalf("unexpected call error: %v", callErr)
	}
	if result.AsNumber() != 42 {
		t.Fatalf("got %v, want 42", result)
	}
}

func TestNotImplementedForUnknownNode(t *testing.T) {
	var gotErr *ExceptionPacket
	Evaluate(unknownNode{}, NewEnvironment(), DefaultConfig(), func(Value) {
		t.Fatalf("c should not be called for an unknown node kind")
	}, func(pkt *ExceptionPacket) { gotErr = pkt })
	if gotErr == nil || gotErr.Type != NotImplementedKind {
		t.Fatalf("got %+v, want a NotImplementedException", gotErr)
	}
}
