package interp

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/profiles/metaes/internal/ast"
	"github.com/profiles/metaes/internal/lexer"
	"github.com/profiles/metaes/internal/parser"
)

// Context is the evaluation context façade (C7): a thin surface
// binding a root environment and a default config, with Evaluate as
// its primary entrypoint. Construct one with NewContext and
// install host globals into Root before first use.
type Context struct {
	Root      *Environment
	Config    EvaluationConfig
	scriptIDs ScriptIDStrategy

	parseOnce singleflight.Group
}

// NewContext builds a façade over root (created fresh if nil), with
// cfg's gaps filled by DefaultConfig and the monotonic scriptId
// strategy.
func NewContext(root *Environment, cfg EvaluationConfig) *Context {
	if root == nil {
		root = NewEnvironment()
	}
	resolved := DefaultConfig().Merge(cfg)
	return &Context{Root: root, Config: resolved, scriptIDs: MonotonicScriptIDs()}
}

// WithScriptIDStrategy swaps the id generator, e.g. interp.UUIDScriptIDs()
// for cross-process correlation.
func (ctx *Context) WithScriptIDStrategy(s ScriptIDStrategy) *Context {
	ctx.scriptIDs = s
	return ctx
}

// NewScope returns a fresh frame rooted at ctx.Root, seeded with
// extras: the normal way to hand evaluate() a caller-supplied
// environment that still sees the context's globals.
func (ctx *Context) NewScope(extras map[string]Value) *Environment {
	return NewChildEnvironment(ctx.Root, extras)
}

// Source is anything evaluate() accepts: a string of program text, an
// already-parsed ast.Node, or a Value wrapping a HostFunc whose
// Source field holds reflectable text.
type Source interface{}

// Evaluate is the façade's public entrypoint. It resolves source to
// an AST, layers env as the execution frame (ctx.Root if env is nil),
// shallow-merges config onto the context default, assigns a scriptId
// if absent, and dispatches via Evaluate (C3).
func (ctx *Context) Evaluate(source Source, c SuccessFunc, cerr ErrorFunc, env *Environment, config EvaluationConfig) {
	node, err := resolveSource(source)
	if err != nil {
		cerr(NewThrow(String(err.Error())))
		return
	}

	execEnv := env
	if execEnv == nil {
		execEnv = ctx.Root
	}

	resolved := ctx.Config.Merge(config)
	if resolved.ScriptID == "" {
		resolved.ScriptID = ctx.scriptIDs()
	}

	Evaluate(node, execEnv, resolved, c, cerr)
}

func resolveSource(source Source) (ast.Node, error) {
	switch s := source.(type) {
	case string:
		return parseProgram(s)
	case ast.Node:
		return s, nil
	case Value:
		if s.Kind() != KindHostObject {
			return nil, fmt.Errorf("value of kind %s has no reflectable source", s.Kind())
		}
		hf, ok := s.AsHost().(*HostFunc)
		if !ok || hf.Source == "" {
			return nil, fmt.Errorf("host object has no reflectable source")
		}
		return parseProgram(hf.Source)
	default:
		return nil, fmt.Errorf("unsupported evaluate() source type %T", source)
	}
}

func parseProgram(src string) (*ast.Program, error) {
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse error: %v", errs)
	}
	return prog, nil
}

// EvalToPromise adapts Evaluate into a host-level Future: it resolves
// on c, rejects (with a *ThrownValue) on cerr.
func (ctx *Context) EvalToPromise(source Source, env *Environment) *Future {
	fut := newFuture()
	ctx.Evaluate(source, fut.resolve, func(pkt *ExceptionPacket) {
		fut.reject(&ThrownValue{Packet: pkt})
	}, env, EvaluationConfig{})
	return fut
}

// EvalFunctionBody parses fnSource as a single function literal,
// extracts its body, and evaluates that body directly in env (or
// ctx.Root) — the mechanism host code uses to write lexically-checked
// "interpreter literals" without wrapping them in a call. Repeated
// calls with identical fnSource within one in-flight burst share a
// single parse via singleflight.
func (ctx *Context) EvalFunctionBody(fnSource string, env *Environment, c SuccessFunc, cerr ErrorFunc) {
	parsed, err, _ := ctx.parseOnce.Do(fnSource, func() (interface{}, error) {
		return parseFunctionLiteral(fnSource)
	})
	if err != nil {
		cerr(NewThrow(String(err.Error())))
		return
	}
	fnNode := parsed.(*ast.FunctionNode)

	execEnv := env
	if execEnv == nil {
		execEnv = ctx.Root
	}

	if fnNode.Body != nil {
		Evaluate(fnNode.Body, NewChildEnvironment(execEnv, nil), ctx.Config, c, cerr)
		return
	}
	Evaluate(fnNode.ExprBody, execEnv, ctx.Config, c, cerr)
}

func parseFunctionLiteral(src string) (*ast.FunctionNode, error) {
	prog, err := parseProgram(src)
	if err != nil {
		return nil, err
	}
	if len(prog.Body) != 1 {
		return nil, fmt.Errorf("evalFunctionBody expects exactly one function literal, got %d statements", len(prog.Body))
	}
	switch stmt := prog.Body[0].(type) {
	case *ast.FunctionNode:
		return stmt, nil
	case *ast.ExpressionStatement:
		if fn, ok := stmt.Expression.(*ast.FunctionNode); ok {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("evalFunctionBody source is not a function literal")
}
