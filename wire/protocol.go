// Package wire implements the request/response protocol layered on a
// length-prefixed, self-describing frame stream. The codec is fixed to
// JSON, framed with an explicit length prefix so both ends can recover
// frame boundaries on a plain TCP stream.
package wire

import (
	"github.com/erer1243/rpcquickly/dispatch"
	"github.com/erer1243/rpcquickly/value"
)

// RequestKind tags which variant a Request holds.
type RequestKind string

const (
	RequestKindPing         RequestKind = "ping"
	RequestKindRpcFunctions RequestKind = "rpc_functions"
	RequestKindCall         RequestKind = "call"
)

// CallRequest carries a Call request's payload: which function to invoke
// and the encoded arguments.
type CallRequest struct {
	Name string      `json:"name"`
	Args value.Value `json:"args"`
}

// Request is the tagged union a client sends: Ping | RpcFunctions |
// Call{name, args}. The Call payload is set only when Kind is call; Ping
// and RpcFunctions carry no payload -- a kind tag plus optional payload
// fields emulating a tagged union over encoding/json.
type Request struct {
	Kind RequestKind  `json:"kind"`
	Call *CallRequest `json:"call,omitempty"`
}

// PingRequest constructs a Ping request.
func PingRequest() Request { return Request{Kind: RequestKindPing} }

// RpcFunctionsRequest constructs an RpcFunctions directory-query request.
func RpcFunctionsRequest() Request { return Request{Kind: RequestKindRpcFunctions} }

// NewCallRequest constructs a Call request.
func NewCallRequest(name string, args value.Value) Request {
	return Request{Kind: RequestKindCall, Call: &CallRequest{Name: name, Args: args}}
}

// ResponseKind tags which variant a Response holds.
type ResponseKind string

const (
	ResponseKindPing         ResponseKind = "ping"
	ResponseKindRpcFunctions ResponseKind = "rpc_functions"
	ResponseKindCall         ResponseKind = "call"
)

// CallResponse carries a Call response's payload: the encoded result, or
// the dispatch error, exactly one of which is set.
type CallResponse struct {
	Value *value.Value            `json:"value,omitempty"`
	Error *dispatch.DispatchError `json:"error,omitempty"`
}

// Response is the tagged union a server sends: Ping | RpcFunctions(list) |
// Call(result).
type Response struct {
	Kind         ResponseKind            `json:"kind"`
	RpcFunctions []value.RpcFunctionInfo `json:"rpc_functions,omitempty"`
	Call         *CallResponse           `json:"call,omitempty"`
}

// PingResponse constructs a Ping response.
func PingResponse() Response { return Response{Kind: ResponseKindPing} }

// NewRpcFunctionsResponse constructs an RpcFunctions directory response.
func NewRpcFunctionsResponse(infos []value.RpcFunctionInfo) Response {
	return Response{Kind: ResponseKindRpcFunctions, RpcFunctions: infos}
}

// NewCallResultResponse constructs a successful Call response.
func NewCallResultResponse(v value.Value) Response {
	return Response{Kind: ResponseKindCall, Call: &CallResponse{Value: &v}}
}

// NewCallErrorResponse constructs a failed Call response.
func NewCallErrorResponse(err *dispatch.DispatchError) Response {
	return Response{Kind: ResponseKindCall, Call: &CallResponse{Error: err}}
}
