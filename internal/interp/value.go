// Package interp implements the evaluator: a continuation-passing
// dispatcher over the AST node kinds in internal/ast, a lexical
// environment model, meta-function construction and invocation, and
// the interceptor protocol observing every node visit.
package interp

import (
	"fmt"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindHostObject
	KindMetaFunction
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindHostObject:
		return "object"
	case KindMetaFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the uniform tagged value every evaluator produces and
// consumes: Undefined, Null, Boolean, Number, String, an opaque
// HostObject, or a MetaFunction.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	host HostObject
	fn   *MetaFunction
}

func Undefined() Value                 { return Value{kind: KindUndefined} }
func Null() Value                      { return Value{kind: KindNull} }
func Bool(b bool) Value                { return Value{kind: KindBoolean, b: b} }
func Number(n float64) Value           { return Value{kind: KindNumber, n: n} }
func String(s string) Value            { return Value{kind: KindString, s: s} }
func FromHost(h HostObject) Value      { return Value{kind: KindHostObject, host: h} }
func FromMetaFunction(m *MetaFunction) Value { return Value{kind: KindMetaFunction, fn: m} }

func (v Value) Kind() Kind               { return v.kind }
func (v Value) IsUndefined() bool        { return v.kind == KindUndefined }
func (v Value) IsNull() bool             { return v.kind == KindNull }
func (v Value) IsNullish() bool          { return v.kind == KindUndefined || v.kind == KindNull }
func (v Value) AsBool() bool             { return v.b }
func (v Value) AsNumber() float64        { return v.n }
func (v Value) AsString() string         { return v.s }
func (v Value) AsHost() HostObject       { return v.host }
func (v Value) AsMetaFunction() *MetaFunction { return v.fn }

// HostObject is an opaque reference to a host-side value: an array, a
// record, or a host function. Interpreted code only ever touches one
// through property get/set; additional capabilities (call, iterate,
// key enumeration) are discovered with type assertions on the
// interfaces below.
type HostObject interface {
	TypeName() string
	GetProperty(key Value) (Value, bool)
	SetProperty(key Value, val Value) error
}

// Callable is implemented by host objects invocable from a
// CallExpression or NewExpression (host functions, bound wrappers).
type Callable interface {
	Call(this Value, args []Value) (Value, error)
}

// Iterable backs ForOfStatement.
type Iterable interface {
	Iterate() []Value
}

// Keyed backs ForInStatement.
type Keyed interface {
	Keys() []string
}

// Truthy applies host boolean coercion: false, 0, NaN, "", null, and
// undefined are falsy; everything else (including empty arrays and
// records) is truthy.
func Truthy(v Value) bool {
	switch v.kind {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.n != 0 && !isNaN(v.n)
	case KindString:
		return v.s != ""
	default:
		return true
	}
}

func isNaN(f float64) bool { return f != f }

// ToNumber coerces a value the way a numeric operator context would.
func ToNumber(v Value) float64 {
	switch v.kind {
	case KindNumber:
		return v.n
	case KindBoolean:
		if v.b {
			return 1
		}
		return 0
	case KindNull:
		return 0
	case KindString:
		if v.s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return nan()
		}
		return f
	default:
		return nan()
	}
}

func nan() float64 {
	var z float64
	return z / z
}

// ToDisplayString renders a value the way string concatenation and
// console output do. It never fails.
func ToDisplayString(v Value) string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return v.s
	case KindHostObject:
		return v.host.TypeName()
	case KindMetaFunction:
		return "function"
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	if isNaN(n) {
		return "NaN"
	}
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func (v Value) String() string {
	return fmt.Sprintf("Value(%s:%s)", v.kind, ToDisplayString(v))
}

// StrictEquals implements `===`: same kind and same payload, with
// HostObject compared by reference identity.
func StrictEquals(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindHostObject:
		return a.host == b.host
	case KindMetaFunction:
		return a.fn == b.fn
	default:
		return false
	}
}

// LooseEquals implements `==`: nullish values equal each other;
// otherwise falls back to numeric coercion across differing kinds.
func LooseEquals(a, b Value) bool {
	if a.kind == b.kind {
		return StrictEquals(a, b)
	}
	if a.IsNullish() && b.IsNullish() {
		return true
	}
	if a.IsNullish() || b.IsNullish() {
		return false
	}
	return ToNumber(a) == ToNumber(b)
}
