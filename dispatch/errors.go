package dispatch

import (
	"fmt"

	"github.com/erer1243/rpcquickly/value"
)

// CallError is a pre- or post-invoke type-check failure. Exactly one of
// Domain/Range is set.
type CallError struct {
	Domain *value.TypeMismatch `json:"domain,omitempty"`
	Range  *value.TypeMismatch `json:"range,omitempty"`
}

func (e *CallError) Error() string {
	switch {
	case e.Domain != nil:
		return fmt.Sprintf("domain type mismatch: %s", e.Domain.Error())
	case e.Range != nil:
		// A range mismatch means the handler returned a value its own
		// declared Range type rejects -- a bug in the handler, not the
		// caller, so it's labelled as such in logs/messages.
		return fmt.Sprintf("(bug in rpc function) range type mismatch: %s", e.Range.Error())
	default:
		return "call error"
	}
}

// DispatchError is the result of a failed Registry.Call: either the named
// function doesn't exist, or it exists but a CallError occurred invoking
// it.
type DispatchError struct {
	NoSuchFunction bool       `json:"no_such_function,omitempty"`
	Call           *CallError `json:"call,omitempty"`
}

func (e *DispatchError) Error() string {
	switch {
	case e.NoSuchFunction:
		return "no function with given name"
	case e.Call != nil:
		return fmt.Sprintf("calling function: %s", e.Call.Error())
	default:
		return "dispatch error"
	}
}

func noSuchFunction() *DispatchError { return &DispatchError{NoSuchFunction: true} }

func callError(err *CallError) *DispatchError { return &DispatchError{Call: err} }
