package interp

import (
	"fmt"
	"math"

	"github.com/profiles/metaes/internal/ast"
)

func evalLiteral(n *ast.Literal, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	c(literalValue(n))
}

func literalValue(n *ast.Literal) Value {
	if n.Value == nil {
		if n.Raw == "null" {
			return Null()
		}
		return Undefined()
	}
	switch v := n.Value.(type) {
	case float64:
		return Number(v)
	case string:
		return String(v)
	case bool:
		return Bool(v)
	default:
		return Undefined()
	}
}

func evalIdentifier(n *ast.Identifier, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	v, ok := env.Get(n.Name)
	if !ok {
		cerr(NewReferenceError(n.Name))
		return
	}
	c(v)
}

func evalThisExpression(n *ast.ThisExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	v, ok := env.Get("this")
	if !ok {
		c(Undefined())
		return
	}
	c(v)
}

func evalBinaryExpression(n *ast.BinaryExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Left, env, cfg, func(left Value) {
		Evaluate(n.Right, env, cfg, func(right Value) {
			v, err := applyBinaryOp(n.Operator, left, right)
			if err != nil {
				cerr(NewTypeError(err.Error()))
				return
			}
			c(v)
		}, cerr)
	}, cerr)
}

func evalLogicalExpression(n *ast.LogicalExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Left, env, cfg, func(left Value) {
		switch n.Operator {
		case "&&":
			if !Truthy(left) {
				c(left)
				return
			}
		case "||":
			if Truthy(left) {
				c(left)
				return
			}
		case "??":
			if !left.IsNullish() {
				c(left)
				return
			}
		}
		Evaluate(n.Right, env, cfg, c, cerr)
	}, cerr)
}

func evalUnaryExpression(n *ast.UnaryExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Argument, env, cfg, func(v Value) {
		result, err := applyUnaryOp(n.Operator, v)
		if err != nil {
			cerr(NewTypeError(err.Error()))
			return
		}
		c(result)
	}, cerr)
}

func evalUpdateExpression(n *ast.UpdateExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	readTarget(n.Argument, env, cfg, func(old Value) {
		oldNum := ToNumber(old)
		var newNum float64
		switch n.Operator {
		case "++":
			newNum = oldNum + 1
		case "--":
			newNum = oldNum - 1
		default:
			cerr(NewNotImplemented("update operator " + n.Operator))
			return
		}
		writeTarget(n.Argument, Number(newNum), env, cfg, func() {
			if n.Prefix {
				c(Number(newNum))
			} else {
				c(Number(oldNum))
			}
		}, cerr)
	}, cerr)
}

func evalAssignmentExpression(n *ast.AssignmentExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	assign := func(rhs Value) {
		if n.Operator == "=" {
			writeTarget(n.Target, rhs, env, cfg, func() { c(rhs) }, cerr)
			return
		}
		baseOp, ok := compoundOps[n.Operator]
		if !ok {
			pkt := NewNotImplemented("assignment operator " + n.Operator)
			if cfg.OnError != nil {
				cfg.OnError(&ThrownValue{Packet: pkt})
			}
			cerr(pkt)
			return
		}
		readTarget(n.Target, env, cfg, func(cur Value) {
			result, err := applyBinaryOp(baseOp, cur, rhs)
			if err != nil {
				cerr(NewTypeError(err.Error()))
				return
			}
			writeTarget(n.Target, result, env, cfg, func() { c(result) }, cerr)
		}, cerr)
	}
	Evaluate(n.Value, env, cfg, assign, cerr)
}

var compoundOps = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%",
	"<<=": "<<", ">>=": ">>", ">>>=": ">>>",
	"&=": "&", "|=": "|", "^=": "^",
}

// readTarget reads an Identifier or MemberExpression used as an
// assignment/update target. Unbound identifiers surface as a
// ReferenceError the same way a plain read would.
func readTarget(target ast.Expression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(target, env, cfg, c, cerr)
}

// writeTarget assigns v into an Identifier or MemberExpression target
// and invokes done on success.
func writeTarget(target ast.Expression, v Value, env *Environment, cfg EvaluationConfig, done func(), cerr ErrorFunc) {
	switch t := target.(type) {
	case *ast.Identifier:
		if cfg.StrictAssignment && !env.Bound(t.Name) {
			cerr(NewReferenceError(t.Name))
			return
		}
		env.Set(t.Name, v)
		done()
	case *ast.MemberExpression:
		Evaluate(t.Object, env, cfg, func(obj Value) {
			memberKey(t, env, cfg, func(key Value) {
				if err := setProperty(obj, key, v); err != nil {
					cerr(NewTypeError(err.Error()))
					return
				}
				done()
			}, cerr)
		}, cerr)
	default:
		cerr(NewNotImplemented("assignment target"))
	}
}

func memberKey(n *ast.MemberExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	if n.Computed {
		Evaluate(n.Property, env, cfg, c, cerr)
		return
	}
	ident, ok := n.Property.(*ast.Identifier)
	if !ok {
		cerr(NewNotImplemented("non-identifier property name"))
		return
	}
	c(String(ident.Name))
}

func getProperty(obj Value, key Value) (Value, error) {
	if obj.Kind() != KindHostObject {
		return Undefined(), fmt.Errorf("cannot read property %q of %s", ToDisplayString(key), obj.Kind())
	}
	v, _ := obj.AsHost().GetProperty(key)
	return v, nil
}

func setProperty(obj Value, key Value, v Value) error {
	if obj.Kind() != KindHostObject {
		return fmt.Errorf("cannot set property %q of %s", ToDisplayString(key), obj.Kind())
	}
	return obj.AsHost().SetProperty(key, v)
}

func evalMemberExpression(n *ast.MemberExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Object, env, cfg, func(obj Value) {
		memberKey(n, env, cfg, func(key Value) {
			v, err := getProperty(obj, key)
			if err != nil {
				cerr(NewTypeError(err.Error()))
				return
			}
			c(v)
		}, cerr)
	}, cerr)
}

func evalCallExpression(n *ast.CallExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	if mem, ok := n.Callee.(*ast.MemberExpression); ok {
		Evaluate(mem.Object, env, cfg, func(thisVal Value) {
			memberKey(mem, env, cfg, func(key Value) {
				fnVal, err := getProperty(thisVal, key)
				if err != nil {
					cerr(NewTypeError(err.Error()))
					return
				}
				evalArgsThenCall(n.Arguments, env, cfg, thisVal, fnVal, c, cerr)
			}, cerr)
		}, cerr)
		return
	}
	Evaluate(n.Callee, env, cfg, func(fnVal Value) {
		evalArgsThenCall(n.Arguments, env, cfg, Undefined(), fnVal, c, cerr)
	}, cerr)
}

func evalArgsThenCall(argNodes []ast.Expression, env *Environment, cfg EvaluationConfig, thisVal Value, fnVal Value, c SuccessFunc, cerr ErrorFunc) {
	evalExpressionList(argNodes, env, cfg, func(args []Value) {
		callValue(fnVal, thisVal, args, c, cerr)
	}, cerr)
}

func callValue(fnVal Value, thisVal Value, args []Value, c SuccessFunc, cerr ErrorFunc) {
	switch fnVal.Kind() {
	case KindMetaFunction:
		EvaluateMetaFunction(fnVal.AsMetaFunction(), thisVal, args, c, cerr)
	case KindHostObject:
		callable, ok := fnVal.AsHost().(Callable)
		if !ok {
			cerr(NewTypeError(ToDisplayString(fnVal) + " is not a function"))
			return
		}
		result, err := callable.Call(thisVal, args)
		if err != nil {
			if thrown, ok := err.(*ThrownValue); ok {
				cerr(thrown.Packet)
				return
			}
			cerr(NewThrow(errorRecordFromGoError(err)))
			return
		}
		c(result)
	default:
		cerr(NewTypeError(ToDisplayString(fnVal) + " is not a function"))
	}
}

func errorRecordFromGoError(err error) Value {
	return errorRecord("Error", err.Error())
}

func evalNewExpression(n *ast.NewExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Callee, env, cfg, func(fnVal Value) {
		evalExpressionList(n.Arguments, env, cfg, func(args []Value) {
			instance := NewRecordValue()
			callValue(fnVal, instance, args, func(result Value) {
				if result.Kind() == KindHostObject {
					c(result)
					return
				}
				c(instance)
			}, cerr)
		}, cerr)
	}, cerr)
}

// evalExpressionList evaluates nodes left-to-right, threading each
// result into an accumulator, so an error anywhere short-circuits the
// rest exactly the way sequential statement evaluation does.
func evalExpressionList(nodes []ast.Expression, env *Environment, cfg EvaluationConfig, c func([]Value), cerr ErrorFunc) {
	results := make([]Value, len(nodes))
	var step func(i int)
	step = func(i int) {
		if i == len(nodes) {
			c(results)
			return
		}
		Evaluate(nodes[i], env, cfg, func(v Value) {
			results[i] = v
			step(i + 1)
		}, cerr)
	}
	step(0)
}

func evalArrayExpression(n *ast.ArrayExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	evalExpressionList(n.Elements, env, cfg, func(values []Value) {
		c(NewArray(values))
	}, cerr)
}

func evalObjectExpression(n *ast.ObjectExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	rec := NewRecord()
	var step func(i int)
	step = func(i int) {
		if i == len(n.Properties) {
			c(FromHost(rec))
			return
		}
		prop := n.Properties[i]
		resolveKey := func(k SuccessFunc) {
			if prop.Computed {
				Evaluate(prop.Key, env, cfg, k, cerr)
				return
			}
			if ident, ok := prop.Key.(*ast.Identifier); ok {
				k(String(ident.Name))
				return
			}
			if lit, ok := prop.Key.(*ast.Literal); ok {
				k(String(ToDisplayString(literalValue(lit))))
				return
			}
			cerr(NewNotImplemented("object property key"))
		}
		resolveKey(func(key Value) {
			Evaluate(prop.Value, env, cfg, func(val Value) {
				rec.SetProperty(key, val)
				step(i + 1)
			}, cerr)
		})
	}
	step(0)
}

func evalFunctionNode(n *ast.FunctionNode, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	mf := &MetaFunction{Node: n, Closure: env, Config: cfg}
	v := FromMetaFunction(mf)
	if n.NodeKind == "FunctionDeclaration" && n.Name != nil {
		env.Define(n.Name.Name, v)
	}
	c(v)
}

func evalConditionalExpression(n *ast.ConditionalExpression, env *Environment, cfg EvaluationConfig, c SuccessFunc, cerr ErrorFunc) {
	Evaluate(n.Test, env, cfg, func(test Value) {
		if Truthy(test) {
			Evaluate(n.Consequent, env, cfg, c, cerr)
			return
		}
		Evaluate(n.Alternate, env, cfg, c, cerr)
	}, cerr)
}

// applyBinaryOp is the host operator table for BinaryExpression and
// the desugared form of compound assignment.
func applyBinaryOp(op string, left, right Value) (Value, error) {
	switch op {
	case "+":
		if left.Kind() == KindString || right.Kind() == KindString {
			return String(ToDisplayString(left) + ToDisplayString(right)), nil
		}
		return Number(ToNumber(left) + ToNumber(right)), nil
	case "-":
		return Number(ToNumber(left) - ToNumber(right)), nil
	case "*":
		return Number(ToNumber(left) * ToNumber(right)), nil
	case "/":
		return Number(ToNumber(left) / ToNumber(right)), nil
	case "%":
		return Number(math.Mod(ToNumber(left), ToNumber(right))), nil
	case "**":
		return Number(math.Pow(ToNumber(left), ToNumber(right))), nil
	case "==":
		return Bool(LooseEquals(left, right)), nil
	case "!=":
		return Bool(!LooseEquals(left, right)), nil
	case "===":
		return Bool(StrictEquals(left, right)), nil
	case "!==":
		return Bool(!StrictEquals(left, right)), nil
	case "<":
		return compareValues(left, right, func(c int) bool { return c < 0 }), nil
	case ">":
		return compareValues(left, right, func(c int) bool { return c > 0 }), nil
	case "<=":
		return compareValues(left, right, func(c int) bool { return c <= 0 }), nil
	case ">=":
		return compareValues(left, right, func(c int) bool { return c >= 0 }), nil
	case "&":
		return Number(float64(int64(ToNumber(left)) & int64(ToNumber(right)))), nil
	case "|":
		return Number(float64(int64(ToNumber(left)) | int64(ToNumber(right)))), nil
	case "^":
		return Number(float64(int64(ToNumber(left)) ^ int64(ToNumber(right)))), nil
	case "<<":
		return Number(float64(int64(ToNumber(left)) << uint(int64(ToNumber(right))&31))), nil
	case ">>":
		return Number(float64(int64(ToNumber(left)) >> uint(int64(ToNumber(right))&31))), nil
	case ">>>":
		return Number(float64(uint32(int64(ToNumber(left))) >> uint(int64(ToNumber(right))&31))), nil
	default:
		return Undefined(), fmt.Errorf("unsupported operator %q", op)
	}
}

func compareValues(left, right Value, pred func(int) bool) Value {
	if left.Kind() == KindString && right.Kind() == KindString {
		return Bool(pred(stringCompare(left.AsString(), right.AsString())))
	}
	l, r := ToNumber(left), ToNumber(right)
	switch {
	case l < r:
		return Bool(pred(-1))
	case l > r:
		return Bool(pred(1))
	default:
		return Bool(pred(0))
	}
}

func stringCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func applyUnaryOp(op string, v Value) (Value, error) {
	switch op {
	case "-":
		return Number(-ToNumber(v)), nil
	case "+":
		return Number(ToNumber(v)), nil
	case "!":
		return Bool(!Truthy(v)), nil
	case "~":
		return Number(float64(^int64(ToNumber(v)))), nil
	default:
		return Undefined(), fmt.Errorf("unsupported unary operator %q", op)
	}
}
