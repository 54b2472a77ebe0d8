package value

// Signature records a handler's domain and range Types. Immutable after
// construction -- nothing in this module ever mutates a Signature's
// fields after Add/AddInfer builds one.
type Signature struct {
	Domain Type `json:"domain"`
	Range  Type `json:"range"`
}

// RpcFunctionInfo is the directory-query record returned by
// dispatch.Registry.RpcFunctions: a registered function's name alongside
// its signature.
type RpcFunctionInfo struct {
	Name      string    `json:"name"`
	Signature Signature `json:"signature"`
}
