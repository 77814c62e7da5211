package interp

import "github.com/profiles/metaes/internal/ast"

// ExceptionKind tags the four non-local control transfers plus two
// interpreter-error tags (the host-error catch-all and
// NotImplementedException). All six travel through the same cerr
// channel; dispatchers and bridges pattern-match on Type to decide
// whether a packet is theirs to absorb or to forward.
type ExceptionKind string

const (
	ThrowException      ExceptionKind = "ThrowStatement"
	ReturnException      ExceptionKind = "ReturnStatement"
	BreakException       ExceptionKind = "BreakStatement"
	ContinueException    ExceptionKind = "ContinueStatement"
	HostErrorException   ExceptionKind = "HostError"
	NotImplementedKind   ExceptionKind = "NotImplementedException"
)

// ExceptionPacket is the sole mechanism for non-local control
// transfer: user throws, return/break/continue, and wrapped host
// errors all arrive at cerr as one of these.
type ExceptionPacket struct {
	Type     ExceptionKind
	Value    Value
	Location ast.Node
	Label    string
}

func NewThrow(value Value) *ExceptionPacket {
	return &ExceptionPacket{Type: ThrowException, Value: value}
}

func NewReturn(value Value) *ExceptionPacket {
	return &ExceptionPacket{Type: ReturnException, Value: value}
}

func NewBreak(label string) *ExceptionPacket {
	return &ExceptionPacket{Type: BreakException, Label: label}
}

func NewContinue(label string) *ExceptionPacket {
	return &ExceptionPacket{Type: ContinueException, Label: label}
}

// errorRecord builds the {name, message} shaped Value that backs
// reference errors, type errors, and NotImplementedException so
// catch(e) in interpreted code sees something inspectable.
func errorRecord(name, message string) Value {
	rec := NewRecord()
	rec.SetProperty(String("name"), String(name))
	rec.SetProperty(String("message"), String(message))
	return FromHost(rec)
}

func NewReferenceError(name string) *ExceptionPacket {
	return &ExceptionPacket{
		Type:  HostErrorException,
		Value: errorRecord("ReferenceError", name+" is not defined"),
	}
}

func NewTypeError(message string) *ExceptionPacket {
	return &ExceptionPacket{
		Type:  HostErrorException,
		Value: errorRecord("TypeError", message),
	}
}

func NewNotImplemented(what string) *ExceptionPacket {
	return &ExceptionPacket{
		Type:  NotImplementedKind,
		Value: errorRecord("NotImplementedException", what+" is not implemented"),
	}
}

// WithLocation attaches loc if the packet does not already carry one,
// the way packets gain a location as they traverse dispatch wrappers.
func (p *ExceptionPacket) WithLocation(loc ast.Node) *ExceptionPacket {
	if p.Location != nil {
		return p
	}
	cp := *p
	cp.Location = loc
	return &cp
}

// ThrownValue adapts an ExceptionPacket to the error interface so
// createMetaFunctionWrapper can re-throw it the way a host callable
// is expected to.
type ThrownValue struct {
	Packet *ExceptionPacket
}

func (t *ThrownValue) Error() string {
	return ToDisplayString(t.Packet.Value)
}
