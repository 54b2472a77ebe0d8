package codec

import "github.com/erer1243/rpcquickly/value"

// Unit stands in for the Nil native type's Go-side domain/range -- Go has
// no built-in unit type, so the empty struct is the idiomatic analogue.
type Unit = struct{}

type nilCodec struct{}

func (nilCodec) Encode(Unit) value.Value { return value.Nil() }

func (nilCodec) Decode(v value.Value) (Unit, bool) {
	if v.Kind != value.KindNil {
		return Unit{}, false
	}
	return Unit{}, true
}

func (nilCodec) InferType() value.Type { return value.NilType() }

// NilCodec is the built-in Codec for Unit <-> Nil.
var NilCodec Codec[Unit] = nilCodec{}

type int64Codec struct{}

func (int64Codec) Encode(n int64) value.Value { return value.Int64(n) }

func (int64Codec) Decode(v value.Value) (int64, bool) {
	if v.Kind != value.KindInt {
		return 0, false
	}
	return v.Int, true
}

func (int64Codec) InferType() value.Type { return value.IntType() }

// Int64Codec is the built-in Codec for int64 <-> Int.
var Int64Codec Codec[int64] = int64Codec{}

type stringCodec struct{}

func (stringCodec) Encode(s string) value.Value { return value.String(s) }

func (stringCodec) Decode(v value.Value) (string, bool) {
	if v.Kind != value.KindString {
		return "", false
	}
	return v.Str, true
}

func (stringCodec) InferType() value.Type { return value.StringType() }

// StringCodec is the built-in Codec for string <-> String. Go has a single
// string type (no owned/borrowed distinction), so this one Codec covers
// every case a separate borrowed-string codec would otherwise need.
var StringCodec Codec[string] = stringCodec{}

type valueCodec struct{}

func (valueCodec) Encode(v value.Value) value.Value { return v }

func (valueCodec) Decode(v value.Value) (value.Value, bool) { return v, true }

func (valueCodec) InferType() value.Type { return value.AnyType() }

// ValueCodec is the identity Codec, useful when a handler wants to accept
// or return any Value unchanged. Its InferType is Any.
var ValueCodec Codec[value.Value] = valueCodec{}
