// Package codec bridges Go's static types and the dynamic value.Value the
// wire protocol carries. Go has no implicit trait/typeclass resolution, so
// each native type gets an explicit Codec value passed at call sites
// rather than a compiler-synthesized instance.
package codec

import "github.com/erer1243/rpcquickly/value"

// Codec is total in Encode, partial in Decode, and supplies the Type an
// automatic (inferred) signature should use for T.
type Codec[T any] interface {
	// Encode converts a native T into a Value. Must be total.
	Encode(v T) value.Value
	// Decode attempts to recover a native T from a Value. Returns false if
	// the Value's variant doesn't fit T.
	Decode(v value.Value) (T, bool)
	// InferType returns the Type an automatic registration should use for T.
	InferType() value.Type
}

// DecodeChecked first checks v against typ, then decodes. A Decode failure
// despite the Check passing is signalled as a mismatch against T's
// inferred type rather than a panic -- unreachable for the built-ins in
// this package, but a defined error for user-supplied codecs.
func DecodeChecked[T any](c Codec[T], typ value.Type, v value.Value) (T, *value.TypeMismatch) {
	var zero T
	if mismatch := value.Check(typ, v); mismatch != nil {
		return zero, mismatch
	}
	decoded, ok := c.Decode(v)
	if !ok {
		return zero, &value.TypeMismatch{Value: v, Expected: c.InferType().String()}
	}
	return decoded, nil
}

// EncodeChecked encodes v, then checks the result against typ.
func EncodeChecked[T any](c Codec[T], typ value.Type, v T) (value.Value, *value.TypeMismatch) {
	encoded := c.Encode(v)
	if mismatch := value.Check(typ, encoded); mismatch != nil {
		return value.Value{}, mismatch
	}
	return encoded, nil
}
