package codec

import (
	"testing"

	"github.com/erer1243/rpcquickly/value"
)

func TestBuiltinRoundTrip(t *testing.T) {
	if got, ok := Int64Codec.Decode(Int64Codec.Encode(7)); !ok || got != 7 {
		t.Fatalf("int64 round trip: got %v, ok %v", got, ok)
	}
	if got, ok := StringCodec.Decode(StringCodec.Encode("hi")); !ok || got != "hi" {
		t.Fatalf("string round trip: got %v, ok %v", got, ok)
	}
	if _, ok := NilCodec.Decode(NilCodec.Encode(Unit{})); !ok {
		t.Fatal("nil round trip failed")
	}
	v := value.String("anything")
	if got, ok := ValueCodec.Decode(ValueCodec.Encode(v)); !ok || got != v {
		t.Fatalf("value round trip: got %v, ok %v", got, ok)
	}
}

func TestEncodeCheckedCommutesWithInferType(t *testing.T) {
	// EncodeChecked(c, c.InferType(), x) must succeed for every x, because
	// the inferred type is defined to admit everything c.Encode produces.
	if _, mismatch := EncodeChecked(Int64Codec, Int64Codec.InferType(), int64(123)); mismatch != nil {
		t.Fatalf("unexpected mismatch: %v", mismatch)
	}
	if _, mismatch := EncodeChecked(StringCodec, StringCodec.InferType(), "x"); mismatch != nil {
		t.Fatalf("unexpected mismatch: %v", mismatch)
	}
	if _, mismatch := EncodeChecked(NilCodec, NilCodec.InferType(), Unit{}); mismatch != nil {
		t.Fatalf("unexpected mismatch: %v", mismatch)
	}
}

func TestDecodeCheckedRejectsWrongVariant(t *testing.T) {
	_, mismatch := DecodeChecked(StringCodec, value.StringType(), value.Int64(5))
	if mismatch == nil {
		t.Fatal("expected a type mismatch decoding an Int against StringType")
	}
}

func TestDecodeCheckedRespectsOneOf(t *testing.T) {
	oneOf := value.StringOneOfType("a", "b", "c")
	if _, mismatch := DecodeChecked(StringCodec, oneOf, value.String("b")); mismatch != nil {
		t.Fatalf("unexpected mismatch for member: %v", mismatch)
	}
	if _, mismatch := DecodeChecked(StringCodec, oneOf, value.String("z")); mismatch == nil {
		t.Fatal("expected mismatch for non-member")
	}
}
