package interp

import "github.com/profiles/metaes/internal/ast"

func evalProgram(n *ast.Program, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	evalStatementList(n.Body, env, cfg, c, cerr)
}

func evalBlockStatement(n *ast.BlockStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	child := NewChildEnvironment(env, nil)
	evalStatementList(n.Body, child, cfg, c, cerr)
}

// evalStatementList threads the last statement's value through as the
// block/program result; an exception from any statement short-circuits
// the rest and propagates straight to cerr.
func evalStatementList(stmts []ast.Statement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	var step func(i int, last Value)
	step = func(i int, last Value) {
		if i == len(stmts) {
			c(last)
			return
		}
		if stmts[i] == nil {
			step(i+1, last)
			return
		}
		Evaluate(stmts[i], env, cfg, func(v Value) {
			step(i+1, v)
		}, cerr)
	}
	step(0, Undefined())
}

func evalVariableDeclaration(n *ast.VariableDeclaration, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	var step func(i int)
	step = func(i int) {
		if i == len(n.Declarations) {
			c(Undefined())
			return
		}
		d := n.Declarations[i]
		if d.Init == nil {
			env.Define(d.ID.Name, Undefined())
			step(i + 1)
			return
		}
		Evaluate(d.Init, env, cfg, func(v Value) {
			env.Define(d.ID.Name, v)
			step(i + 1)
		}, cerr)
	}
	step(0)
}

func evalIfStatement(n *ast.IfStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Test, env, cfg, func(test Value) {
		if Truthy(test) {
			Evaluate(n.Consequent, env, cfg, c, cerr)
			return
		}
		if n.Alternate == nil {
			c(Undefined())
			return
		}
		Evaluate(n.Alternate, env, cfg, c, cerr)
	}, cerr)
}

func labelMatches(pktLabel, nodeLabel string) bool {
	return pktLabel == "" || pktLabel == nodeLabel
}

// runLoop is the shared trampoline behind while/do-while: a native Go
// for loop drives iteration so loop bodies don't grow the Go call
// stack per iteration, with break/continue/error state captured by
// the synchronous continuations below and inspected once Evaluate
// returns.
func runLoop(env *Environment, cfg EvaluationConfig, label string, preTest bool, test ast.Expression, body ast.Statement, c SuccessFunc, cerr ErrorFunc) {
	for {
		if preTest {
			proceed := true
			var failed *ExceptionPacket
			Evaluate(test, env, cfg, func(tv Value) {
				proceed = Truthy(tv)
			}, func(pkt *ExceptionPacket) { failed = pkt })
			if failed != nil {
				cerr(failed)
				return
			}
			if !proceed {
				break
			}
		}

		var brokeLoop, skipToNext bool
		var bodyErr *ExceptionPacket
		Evaluate(body, env, cfg, func(Value) {}, func(pkt *ExceptionPacket) {
			switch {
			case pkt.Type == BreakException && labelMatches(pkt.Label, label):
				brokeLoop = true
			case pkt.Type == ContinueException && labelMatches(pkt.Label, label):
				skipToNext = true
			default:
				bodyErr = pkt
			}
		})
		if bodyErr != nil {
			cerr(bodyErr)
			return
		}
		if brokeLoop {
			break
		}
		_ = skipToNext

		if !preTest {
			proceed := true
			var failed *ExceptionPacket
			Evaluate(test, env, cfg, func(tv Value) {
				proceed = Truthy(tv)
			}, func(pkt *ExceptionPacket) { failed = pkt })
			if failed != nil {
				cerr(failed)
				return
			}
			if !proceed {
				break
			}
		}
	}
	c(Undefined())
}

func evalWhileStatement(n *ast.WhileStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	runLoop(env, cfg, n.Label, true, n.Test, n.Body, c, cerr)
}

func evalDoWhileStatement(n *ast.DoWhileStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	runLoop(env, cfg, n.Label, false, n.Test, n.Body, c, cerr)
}

func evalForStatement(n *ast.ForStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	loopEnv := NewChildEnvironment(env, nil)

	start := func(after func()) {
		if n.Init == nil {
			after()
			return
		}
		switch init := n.Init.(type) {
		case *ast.VariableDeclaration:
			Evaluate(init, loopEnv, cfg, func(Value) { after() }, cerr)
		case ast.Expression:
			Evaluate(init, loopEnv, cfg, func(Value) { after() }, cerr)
		default:
			cerr(NewNotImplemented("for-loop init"))
		}
	}

	alwaysTrue := &ast.Literal{Value: true}
	test := n.Test
	if test == nil {
		test = alwaysTrue
	}

	start(func() {
		for {
			proceed := true
			var failed *ExceptionPacket
			Evaluate(test, loopEnv, cfg, func(tv Value) { proceed = Truthy(tv) }, func(pkt *ExceptionPacket) { failed = pkt })
			if failed != nil {
				cerr(failed)
				return
			}
			if !proceed {
				break
			}

			var brokeLoop, skipToNext bool
			var bodyErr *ExceptionPacket
			Evaluate(n.Body, loopEnv, cfg, func(Value) {}, func(pkt *ExceptionPacket) {
				switch {
				case pkt.Type == BreakException && labelMatches(pkt.Label, n.Label):
					brokeLoop = true
				case pkt.Type == ContinueException && labelMatches(pkt.Label, n.Label):
					skipToNext = true
				default:
					bodyErr = pkt
				}
			})
			if bodyErr != nil {
				cerr(bodyErr)
				return
			}
			if brokeLoop {
				break
			}
			_ = skipToNext

			if n.Update != nil {
				var updateErr *ExceptionPacket
				Evaluate(n.Update, loopEnv, cfg, func(Value) {}, func(pkt *ExceptionPacket) { updateErr = pkt })
				if updateErr != nil {
					cerr(updateErr)
					return
				}
			}
		}
		c(Undefined())
	})
}

// runForEachLoop backs both ForOfStatement and ForInStatement: it
// iterates a precomputed slice, binding Left in a fresh per-iteration
// frame.
func runForEachLoop(values []Value, left *ast.Identifier, declKind string, body ast.Statement, label string, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	for _, v := range values {
		iterEnv := NewChildEnvironment(env, nil)
		iterEnv.Define(left.Name, v)

		var brokeLoop, skipToNext bool
		var bodyErr *ExceptionPacket
		Evaluate(body, iterEnv, cfg, func(Value) {}, func(pkt *ExceptionPacket) {
			switch {
			case pkt.Type == BreakException && labelMatches(pkt.Label, label):
				brokeLoop = true
			case pkt.Type == ContinueException && labelMatches(pkt.Label, label):
				skipToNext = true
			default:
				bodyErr = pkt
			}
		})
		if bodyErr != nil {
			cerr(bodyErr)
			return
		}
		if brokeLoop {
			break
		}
		_ = skipToNext
	}
	c(Undefined())
}

func evalForOfStatement(n *ast.ForOfStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Right, env, cfg, func(iterable Value) {
		if iterable.Kind() != KindHostObject {
			cerr(NewTypeError(ToDisplayString(iterable) + " is not iterable"))
			return
		}
		it, ok := iterable.AsHost().(Iterable)
		if !ok {
			cerr(NewTypeError(ToDisplayString(iterable) + " is not iterable"))
			return
		}
		runForEachLoop(it.Iterate(), n.Left, n.DeclKind, n.Body, n.Label, env, cfg, c, cerr)
	}, cerr)
}

func evalForInStatement(n *ast.ForInStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Right, env, cfg, func(obj Value) {
		if obj.Kind() != KindHostObject {
			cerr(NewTypeError(ToDisplayString(obj) + " has no enumerable keys"))
			return
		}
		keyed, ok := obj.AsHost().(Keyed)
		if !ok {
			cerr(NewTypeError(ToDisplayString(obj) + " has no enumerable keys"))
			return
		}
		keys := keyed.Keys()
		values := make([]Value, len(keys))
		for i, k := range keys {
			values[i] = String(k)
		}
		runForEachLoop(values, n.Left, n.DeclKind, n.Body, n.Label, env, cfg, c, cerr)
	}, cerr)
}

func evalReturnStatement(n *ast.ReturnStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	if n.Argument == nil {
		cerr(NewReturn(Undefined()))
		return
	}
	Evaluate(n.Argument, env, cfg, func(v Value) {
		cerr(NewReturn(v))
	}, cerr)
}

func evalThrowStatement(n *ast.ThrowStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Argument, env, cfg, func(v Value) {
		cerr(NewThrow(v))
	}, cerr)
}

func evalTryStatement(n *ast.TryStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	runFinally := func(after func()) {
		if n.Finalizer == nil {
			after()
			return
		}
		Evaluate(n.Finalizer, NewChildEnvironment(env, nil), cfg, func(Value) {
			after()
		}, func(finPkt *ExceptionPacket) {
			cerr(finPkt)
		})
	}

	Evaluate(n.Block, NewChildEnvironment(env, nil), cfg, func(v Value) {
		runFinally(func() { c(v) })
	}, func(pkt *ExceptionPacket) {
		if pkt.Type == ThrowException && n.Handler != nil {
			catchEnv := NewChildEnvironment(env, nil)
			if n.Handler.Param != nil {
				catchEnv.Define(n.Handler.Param.Name, pkt.Value)
			}
			Evaluate(n.Handler.Body, catchEnv, cfg, func(v Value) {
				runFinally(func() { c(v) })
			}, func(pkt2 *ExceptionPacket) {
				runFinally(func() { cerr(pkt2) })
			})
			return
		}
		runFinally(func() { cerr(pkt) })
	})
}

func evalLabeledStatement(n *ast.LabeledStatement, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	switch body := n.Body.(type) {
	case *ast.WhileStatement:
		runLoop(env, cfg, n.Label, true, body.Test, body.Body, c, cerr)
	case *ast.DoWhileStatement:
		runLoop(env, cfg, n.Label, false, body.Test, body.Body, c, cerr)
	case *ast.ForStatement:
		labeled := *body
		labeled.Label = n.Label
		evalForStatement(&labeled, env, cfg, c, cerr)
	case *ast.ForOfStatement:
		labeled := *body
		labeled.Label = n.Label
		evalForOfStatement(&labeled, env, cfg, c, cerr)
	case *ast.ForInStatement:
		labeled := *body
		labeled.Label = n.Label
		evalForInStatement(&labeled, env, cfg, c, cerr)
	default:
		Evaluate(n.Body, env, cfg, c, func(pkt *ExceptionPacket) {
			if (pkt.Type == BreakException) && labelMatches(pkt.Label, n.Label) {
				c(Undefined())
				return
			}
			cerr(pkt)
		})
	}
}
