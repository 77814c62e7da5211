package interp

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/profiles/metaes/internal/ast"
)

// Phase marks which half of a node visit an Evaluation describes.
type Phase string

const (
	PhaseEnter Phase = "enter"
	PhaseExit  Phase = "exit"
)

// Evaluation is the payload delivered to an Interceptor. Receivers
// must not mutate it.
type Evaluation struct {
	ScriptID string
	Node     ast.Node
	Env      *Environment
	Value    Value
	Phase    Phase
}

// Interceptor observes every node visit. Returning a non-nil error
// aborts the current dispatch: the error is captured and routed
// through that dispatch's cerr rather than propagating as a Go panic.
type Interceptor func(Evaluation) error

// NoopInterceptor is the required do-nothing default.
func NoopInterceptor(Evaluation) error { return nil }

// ScriptIDStrategy produces a fresh scriptId for an EvaluationContext
// call that didn't pin one explicitly.
type ScriptIDStrategy func() string

var monotonicCounter int64

// MonotonicScriptIDs returns a ScriptIDStrategy yielding successive
// decimal strings "1", "2", "3", ... shared across the process. This
// is the default.
func MonotonicScriptIDs() ScriptIDStrategy {
	return func() string {
		return strconv.FormatInt(atomic.AddInt64(&monotonicCounter, 1), 10)
	}
}

// UUIDScriptIDs swaps in uuid.NewString()-backed ids, useful when
// correlating interceptor events across processes (e.g. a remote
// evaluation layer fanning out to several interpreter instances).
func UUIDScriptIDs() ScriptIDStrategy {
	return func() string { return uuid.NewString() }
}

// EvaluationConfig bundles the options every dispatch consults.
type EvaluationConfig struct {
	// Interceptor observes enter/exit events. Never nil once
	// resolved by DefaultConfig or Merge.
	Interceptor Interceptor

	// ScriptID is stable across one evaluate call. Left empty, the
	// façade assigns one from ScriptIDStrategy.
	ScriptID string

	// OnError is notified of internal interpreter errors that are
	// also delivered via cerr (unsupported parameter patterns,
	// unsupported assignment operators). Never nil once resolved.
	OnError func(error)

	// StrictAssignment makes assignment to an unbound identifier raise
	// a ReferenceError instead of creating a binding at the root frame
	// (the assignment evaluator checks Environment.Bound before calling
	// Environment.Set). Off by default, matching the base sloppy
	// semantics.
	StrictAssignment bool
}

// DefaultConfig returns the zero-value-safe EvaluationConfig: no-op
// interceptor, no-op error hook, sloppy assignment.
func DefaultConfig() EvaluationConfig {
	return EvaluationConfig{
		Interceptor: NoopInterceptor,
		OnError:     func(error) {},
	}
}

// Merge shallow-merges override onto c: any non-zero field of
// override wins.
func (c EvaluationConfig) Merge(override EvaluationConfig) EvaluationConfig {
	out := c
	if override.Interceptor != nil {
		out.Interceptor = override.Interceptor
	}
	if override.ScriptID != "" {
		out.ScriptID = override.ScriptID
	}
	if override.OnError != nil {
		out.OnError = override.OnError
	}
	if override.StrictAssignment {
		out.StrictAssignment = true
	}
	return out
}
