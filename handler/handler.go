// Package handler defines the contract a user-supplied rpc function must
// satisfy before it can be registered with a dispatch.Registry.
package handler

import (
	"context"

	"github.com/erer1243/rpcquickly/value"
)

// Handler is one user-registered rpc function, statically typed in its own
// Domain and Range. Call may suspend (block) and must be safe to invoke
// concurrently with other calls to the same Handler -- the dispatcher
// shares a single Handler value across every in-flight invocation, so any
// internal mutable state is the Handler's own responsibility (e.g. behind
// a mutex).
type Handler[D, R any] interface {
	// Name is the stable over-the-wire identifier this Handler is
	// registered and invoked under.
	Name() string
	// Call invokes the handler. Unlike the Rust source this spec was
	// distilled from, Call returns R directly rather than Result<R, _>:
	// handler-level application errors are out of scope (see spec
	// §4.C/§7) -- only the dispatcher's own domain/range type checks
	// produce errors visible to callers.
	Call(ctx context.Context, domain D) R
}

// SignatureProvider is implemented by handlers that supply an explicit
// signature rather than having one derived from their Domain/Range
// codecs' InferType. dispatch.Add requires it; dispatch.AddInfer does not.
type SignatureProvider interface {
	Signature() value.Signature
}
