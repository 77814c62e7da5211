package interp

import (
	"sync/atomic"

	"github.com/profiles/metaes/internal/ast"
)

// SuccessFunc is the success continuation every evaluator calls
// exactly once on its successful path.
type SuccessFunc func(Value)

// ErrorFunc is the error continuation carrying an ExceptionPacket:
// a user throw/return/break/continue or a wrapped host error.
type ErrorFunc func(*ExceptionPacket)

// Evaluate is the node dispatcher (C3): it looks up the evaluator for
// node's kind, emits the interceptor's enter event, wraps c and cerr
// so exit fires exactly once no matter how the evaluator below
// behaves, and delegates. Unknown kinds call cerr with a
// NotImplementedException located at node.
func Evaluate(node ast.Node, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	if node == nil {
		c(Undefined())
		return
	}

	if interceptErr := notify(cfg, Evaluation{ScriptID: cfg.ScriptID, Node: node, Env: env, Phase: PhaseEnter}); interceptErr != nil {
		cerr(NewThrow(String(interceptErr.Error())).WithLocation(node))
		return
	}

	var exited int32
	wrappedC := func(v Value) {
		if !atomic.CompareAndSwapInt32(&exited, 0, 1) {
			return
		}
		if interceptErr := notify(cfg, Evaluation{ScriptID: cfg.ScriptID, Node: node, Env: env, Value: v, Phase: PhaseExit}); interceptErr != nil {
			cerr(NewThrow(String(interceptErr.Error())).WithLocation(node))
			return
		}
		c(v)
	}
	wrappedCerr := func(pkt *ExceptionPacket) {
		if !atomic.CompareAndSwapInt32(&exited, 0, 1) {
			return
		}
		pkt = pkt.WithLocation(node)
		notify(cfg, Evaluation{ScriptID: cfg.ScriptID, Node: node, Env: env, Value: pkt.Value, Phase: PhaseExit})
		cerr(pkt)
	}

	dispatch(node, env, cfg, wrappedC, wrappedCerr)
}

func notify(cfg EvaluationConfig, ev Evaluation) error {
	if cfg.Interceptor == nil {
		return nil
	}
	return cfg.Interceptor(ev)
}

// dispatch is the exhaustive type switch over the closed AST variant
// set. Every kind named in internal/ast has exactly one case here.
func dispatch(node ast.Node, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	switch n := node.(type) {
	case *ast.Program:
		evalProgram(n, env, cfg, c, cerr)
	case *ast.Literal:
		evalLiteral(n, env, cfg, c, cerr)
	case *ast.Identifier:
		evalIdentifier(n, env, cfg, c, cerr)
	case *ast.ThisExpression:
		evalThisExpression(n, env, cfg, c, cerr)
	case *ast.BinaryExpression:
		evalBinaryExpression(n, env, cfg, c, cerr)
	case *ast.LogicalExpression:
		evalLogicalExpression(n, env, cfg, c, cerr)
	case *ast.UnaryExpression:
		evalUnaryExpression(n, env, cfg, c, cerr)
	case *ast.UpdateExpression:
		evalUpdateExpression(n, env, cfg, c, cerr)
	case *ast.AssignmentExpression:
		evalAssignmentExpression(n, env, cfg, c, cerr)
	case *ast.MemberExpression:
		evalMemberExpression(n, env, cfg, c, cerr)
	case *ast.CallExpression:
		evalCallExpression(n, env, cfg, c, cerr)
	case *ast.NewExpression:
		evalNewExpression(n, env, cfg, c, cerr)
	case *ast.ArrayExpression:
		evalArrayExpression(n, env, cfg, c, cerr)
	case *ast.ObjectExpression:
		evalObjectExpression(n, env, cfg, c, cerr)
	case *ast.FunctionNode:
		evalFunctionNode(n, env, cfg, c, cerr)
	case *ast.ConditionalExpression:
		evalConditionalExpression(n, env, cfg, c, cerr)
	case *ast.ExpressionStatement:
		Evaluate(n.Expression, env, cfg, c, cerr)
	case *ast.BlockStatement:
		evalBlockStatement(n, env, cfg, c, cerr)
	case *ast.VariableDeclaration:
		evalVariableDeclaration(n, env, cfg, c, cerr)
	case *ast.IfStatement:
		evalIfStatement(n, env, cfg, c, cerr)
	case *ast.WhileStatement:
		evalWhileStatement(n, env, cfg, c, cerr)
	case *ast.DoWhileStatement:
		evalDoWhileStatement(n, env, cfg, c, cerr)
	case *ast.ForStatement:
		evalForStatement(n, env, cfg, c, cerr)
	case *ast.ForOfStatement:
		evalForOfStatement(n, env, cfg, c, cerr)
	case *ast.ForInStatement:
		evalForInStatement(n, env, cfg, c, cerr)
	case *ast.BreakStatement:
		cerr(NewBreak(n.Label))
	case *ast.ContinueStatement:
		cerr(NewContinue(n.Label))
	case *ast.ReturnStatement:
		evalReturnStatement(n, env, cfg, c, cerr)
	case *ast.ThrowStatement:
		evalThrowStatement(n, env, cfg, c, cerr)
	case *ast.TryStatement:
		evalTryStatement(n, env, cfg, c, cerr)
	case *ast.LabeledStatement:
		evalLabeledStatement(n, env, cfg, c, cerr)
	default:
		cerr(NewNotImplemented("node kind " + node.Kind()))
	}
}
