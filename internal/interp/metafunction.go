package interp

import (
	"sync/atomic"

	"github.com/profiles/metaes/internal/ast"
)

// MetaFunction is an interpreted function value: the FunctionNode
// being closed over, the environment captured at definition time, and
// the EvaluationConfig snapshot in effect then. It is itself a Value
// (see FromMetaFunction) and is also exposed to host code through
// CreateMetaFunctionWrapper.
type MetaFunction struct {
	Node    *ast.FunctionNode
	Closure *Environment
	Config  EvaluationConfig
}

// EvaluateMetaFunction is the bridge from interpreted call sites (and
// from CreateMetaFunctionWrapper) into a function body. It binds
// this/arguments/params into a fresh frame, runs the body, and
// resolves ReturnStatement packets into ordinary success values.
func EvaluateMetaFunction(mf *MetaFunction, thisValue Value, args []Value, c SuccessFunc, cerr ErrorFunc) {
	frame := NewChildEnvironment(mf.Closure, nil)
	frame.Define("this", thisValue)
	frame.Define("arguments", NewArray(append([]Value{}, args...)))

	i := 0
	for _, p := range mf.Node.Params {
		switch pat := p.(type) {
		case *ast.Identifier:
			var v Value
			if i < len(args) {
				v = args[i]
			} else {
				v = Undefined()
			}
			frame.Define(pat.Name, v)
			i++
		case *ast.RestElement:
			rest := []Value{}
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			frame.Define(pat.Argument.Name, NewArray(rest))
			i = len(args)
		default:
			pkt := NewNotImplemented("parameter pattern")
			if mf.Config.OnError != nil {
				mf.Config.OnError(&ThrownValue{Packet: pkt})
			}
			cerr(pkt)
			return
		}
	}

	var exited int32
	emit := func(phase Phase, v Value) {
		if mf.Config.Interceptor == nil {
			return
		}
		mf.Config.Interceptor(Evaluation{ScriptID: mf.Config.ScriptID, Node: mf.Node, Env: frame, Value: v, Phase: phase})
	}
	finishOK := func(v Value) {
		if atomic.CompareAndSwapInt32(&exited, 0, 1) {
			emit(PhaseExit, v)
			c(v)
		}
	}
	finishErr := func(pkt *ExceptionPacket) {
		if atomic.CompareAndSwapInt32(&exited, 0, 1) {
			emit(PhaseExit, pkt.Value)
			cerr(pkt)
		}
	}

	emit(PhaseEnter, Undefined())

	if mf.Node.Body != nil {
		Evaluate(mf.Node.Body, frame, mf.Config, finishOK, func(pkt *ExceptionPacket) {
			if pkt.Type == ReturnException {
				finishOK(pkt.Value)
				return
			}
			finishErr(pkt.WithLocation(mf.Node))
		})
		return
	}

	Evaluate(mf.Node.ExprBody, frame, mf.Config, finishOK, func(pkt *ExceptionPacket) {
		finishErr(pkt.WithLocation(mf.Node))
	})
}

// CreateMetaFunctionWrapper yields a host-callable HostFunc that
// drives EvaluateMetaFunction to completion and synchronously returns
// the result, or returns a *ThrownValue error wrapping the packet.
// This requires the body to complete synchronously: if neither
// continuation has run when EvaluateMetaFunction returns, the wrapper
// returns a TypeError.
func CreateMetaFunctionWrapper(mf *MetaFunction) Value {
	name := ""
	if mf.Node.Name != nil {
		name = mf.Node.Name.Name
	}
	return NewHostFunc(name, func(this Value, args []Value) (Value, error) {
		var result Value
		var callErr error
		settled := false
		EvaluateMetaFunction(mf, this, args, func(v Value) {
			result = v
			settled = true
		}, func(pkt *ExceptionPacket) {
			callErr = &ThrownValue{Packet: pkt}
			settled = true
		})
		if !settled {
			pkt := NewTypeError("meta-function suspended; the synchronous wrapper requires the body to complete without genuine asynchrony")
			return Undefined(), &ThrownValue{Packet: pkt}
		}
		return result, callErr
	})
}
