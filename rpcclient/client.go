// Package rpcclient implements a single-connection, typed rpc client:
// connect, ping, list registered functions, and a generic call.
package rpcclient

import (
	"fmt"
	"net"

	"github.com/erer1243/rpcquickly/codec"
	"github.com/erer1243/rpcquickly/value"
	"github.com/erer1243/rpcquickly/wire"
)

// Client owns a single TCP connection. One in-flight request at a time is
// the supported model -- nothing here synchronizes concurrent calls from
// multiple goroutines, by design; a Client is not meant to be shared that
// way.
type Client struct {
	conn net.Conn
	enc  *wire.Encoder
	dec  *wire.Decoder
}

// Connect establishes a TCP connection to addr and wraps it in the framed
// request/response stream.
func Connect(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("rpcclient: connect: %w", err)
	}
	return &Client{
		conn: conn,
		enc:  wire.NewEncoder(conn),
		dec:  wire.NewDecoder(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error { return c.conn.Close() }

func (c *Client) roundTrip(req wire.Request) (wire.Response, error) {
	if err := c.enc.EncodeRequest(req); err != nil {
		return wire.Response{}, fmt.Errorf("rpcclient: send: %w", err)
	}
	resp, err := c.dec.DecodeResponse()
	if err != nil {
		return wire.Response{}, fmt.Errorf("rpcclient: receive: %w", err)
	}
	return resp, nil
}

// Ping sends a liveness probe; any response other than Ping is a protocol
// error.
func (c *Client) Ping() error {
	resp, err := c.roundTrip(wire.PingRequest())
	if err != nil {
		return err
	}
	if resp.Kind != wire.ResponseKindPing {
		return fmt.Errorf("rpcclient: unexpected response to ping: %v", resp.Kind)
	}
	return nil
}

// RpcFunctions queries the server's registered function directory.
func (c *Client) RpcFunctions() ([]value.RpcFunctionInfo, error) {
	resp, err := c.roundTrip(wire.RpcFunctionsRequest())
	if err != nil {
		return nil, err
	}
	if resp.Kind != wire.ResponseKindRpcFunctions {
		return nil, fmt.Errorf("rpcclient: unexpected response to rpc_functions: %v", resp.Kind)
	}
	return resp.RpcFunctions, nil
}

// Call invokes the named remote function: it encodes args with dc, sends
// a Call request, and on success decodes (and type-checks) the result
// against rc's inferred Range type. A server-side error or a range
// mismatch is surfaced as a plain error.
//
// Call is a free function, not a method, because Go forbids generic
// methods.
func Call[D, R any](c *Client, name string, args D, dc codec.Codec[D], rc codec.Codec[R]) (R, error) {
	var zero R
	encoded := dc.Encode(args)
	resp, err := c.roundTrip(wire.NewCallRequest(name, encoded))
	if err != nil {
		return zero, err
	}
	if resp.Kind != wire.ResponseKindCall || resp.Call == nil {
		return zero, fmt.Errorf("rpcclient: unexpected response to call: %v", resp.Kind)
	}
	if resp.Call.Error != nil {
		return zero, fmt.Errorf("rpcclient: %s", resp.Call.Error.Error())
	}
	if resp.Call.Value == nil {
		return zero, fmt.Errorf("rpcclient: call response missing both value and error")
	}
	decoded, mismatch := codec.DecodeChecked(rc, rc.InferType(), *resp.Call.Value)
	if mismatch != nil {
		return zero, fmt.Errorf("rpcclient: %s", mismatch.Error())
	}
	return decoded, nil
}
