// Package dispatch implements the name -> handler registry and the
// decode -> invoke -> encode call pipeline every rpc call traverses.
package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/erer1243/rpcquickly/codec"
	"github.com/erer1243/rpcquickly/handler"
	"github.com/erer1243/rpcquickly/value"
)

// entry is the type-erased registry value: an interface exposing name,
// signature and an erased call, implemented once per concrete (D, R) pair
// by typedEntry below. Entries are stored behind an interface value
// (itself a pointer under the hood) so the same entry services every
// concurrent call to that name.
type entry interface {
	Name() string
	Signature() value.Signature
	CallErased(ctx context.Context, args value.Value) (value.Value, *CallError)
}

type typedEntry[D, R any] struct {
	h         handler.Handler[D, R]
	domain    codec.Codec[D]
	rng       codec.Codec[R]
	signature value.Signature
}

func (e *typedEntry[D, R]) Name() string { return e.h.Name() }

func (e *typedEntry[D, R]) Signature() value.Signature { return e.signature }

// CallErased decodes and type-checks the domain, invokes the handler, then
// encodes and type-checks the range.
func (e *typedEntry[D, R]) CallErased(ctx context.Context, args value.Value) (value.Value, *CallError) {
	domainArgs, mismatch := codec.DecodeChecked(e.domain, e.signature.Domain, args)
	if mismatch != nil {
		return value.Value{}, &CallError{Domain: mismatch}
	}
	result := e.h.Call(ctx, domainArgs)
	encoded, mismatch := codec.EncodeChecked(e.rng, e.signature.Range, result)
	if mismatch != nil {
		return value.Value{}, &CallError{Range: mismatch}
	}
	return encoded, nil
}

// Registry is a lexicographically-ordered name -> handler-entry mapping.
// Registration (Add/AddInfer) is expected to happen entirely before Call
// is ever invoked; the registry is then treated as read-only for the rest
// of its life. The mutex guards the map: registration, the name lookup in
// Call and the listing in RpcFunctions each hold it briefly. Call releases
// it before invoking the handler, so handler invocations are not
// serialized by it.
type Registry struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

func (r *Registry) insert(e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Last-write-wins: a plain map assignment already gives this for free,
	// so that's what this registry documents and keeps for duplicate names.
	r.entries[e.Name()] = e
}

// Add registers h under an explicit signature. h must also implement
// handler.SignatureProvider; if it doesn't, Add panics -- a bad
// registration is a configuration error, not something callers should
// have to check for at runtime.
func Add[D, R any](reg *Registry, h handler.Handler[D, R], dc codec.Codec[D], rc codec.Codec[R]) {
	sp, ok := any(h).(handler.SignatureProvider)
	if !ok {
		panic(fmt.Sprintf("dispatch: handler %q registered with Add must implement handler.SignatureProvider", h.Name()))
	}
	reg.insert(&typedEntry[D, R]{h: h, domain: dc, rng: rc, signature: sp.Signature()})
}

// AddInfer registers h with a signature derived from dc/rc's InferType.
func AddInfer[D, R any](reg *Registry, h handler.Handler[D, R], dc codec.Codec[D], rc codec.Codec[R]) {
	sig := value.Signature{Domain: dc.InferType(), Range: rc.InferType()}
	reg.insert(&typedEntry[D, R]{h: h, domain: dc, rng: rc, signature: sig})
}

// Call looks up name, then decodes, invokes, and encodes through the
// matching entry.
func (r *Registry) Call(ctx context.Context, name string, args value.Value) (value.Value, *DispatchError) {
	r.mu.Lock()
	e, ok := r.entries[name]
	r.mu.Unlock()
	if !ok {
		return value.Value{}, noSuchFunction()
	}
	result, callErr := e.CallErased(ctx, args)
	if callErr != nil {
		return value.Value{}, callError(callErr)
	}
	return result, nil
}

// RpcFunctions returns the registered functions' name+signature, sorted
// lexicographically by name for a deterministic directory listing.
func (r *Registry) RpcFunctions() []value.RpcFunctionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]value.RpcFunctionInfo, len(names))
	for i, name := range names {
		e := r.entries[name]
		infos[i] = value.RpcFunctionInfo{Name: name, Signature: e.Signature()}
	}
	return infos
}
