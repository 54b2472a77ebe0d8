package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/erer1243/rpcquickly/dispatch"
	"github.com/erer1243/rpcquickly/value"
)

func TestRequestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	dec := NewDecoder(&buf)

	reqs := []Request{
		PingRequest(),
		RpcFunctionsRequest(),
		NewCallRequest("Hello", value.String("world")),
	}
	for _, req := range reqs {
		if err := enc.EncodeRequest(req); err != nil {
			t.Fatalf("encode %+v: %v", req, err)
		}
	}
	for _, want := range reqs {
		got, err := dec.DecodeRequest()
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestResponseFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	dec := NewDecoder(&buf)

	resps := []Response{
		PingResponse(),
		NewRpcFunctionsResponse([]value.RpcFunctionInfo{
			{Name: "Hello", Signature: value.Signature{Domain: value.StringType(), Range: value.StringType()}},
		}),
		NewCallResultResponse(value.Int64(42)),
		NewCallErrorResponse(&dispatch.DispatchError{NoSuchFunction: true}),
	}
	for _, resp := range resps {
		if err := enc.EncodeResponse(resp); err != nil {
			t.Fatalf("encode %+v: %v", resp, err)
		}
	}
	for _, want := range resps {
		got, err := dec.DecodeResponse()
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDecodeOnEOFBetweenFrames(t *testing.T) {
	var buf bytes.Buffer
	dec := NewDecoder(&buf)
	if _, err := dec.DecodeRequest(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}
