package value

import (
	"encoding/json"
	"fmt"
)

// wireValue is the self-describing JSON form of a Value: a string kind tag
// plus whichever payload field applies. This is the wire form the spec
// requires (§4.A: "the wire form is the binary frame codec's encoding of
// the tagged value") -- Display() in value.go is for error messages only.
type wireValue struct {
	Kind Kind    `json:"kind"`
	Int  *int64  `json:"int,omitempty"`
	Str  *string `json:"str,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	w := wireValue{Kind: v.Kind}
	switch v.Kind {
	case KindInt:
		w.Int = &v.Int
	case KindString:
		w.Str = &v.Str
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case KindNil:
		*v = Nil()
	case KindInt:
		if w.Int == nil {
			return fmt.Errorf("value: Int value missing int payload")
		}
		*v = Int64(*w.Int)
	case KindString:
		if w.Str == nil {
			return fmt.Errorf("value: String value missing str payload")
		}
		*v = String(*w.Str)
	default:
		return fmt.Errorf("value: unknown Value kind %d", w.Kind)
	}
	return nil
}

// wireType is the self-describing JSON form of a Type.
type wireType struct {
	Kind  TypeKind `json:"kind"`
	OneOf []Value  `json:"one_of,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t Type) MarshalJSON() ([]byte, error) {
	w := wireType{Kind: t.Kind}
	if t.Kind == TypeKindOneOf {
		w.OneOf = t.OneOf
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Type) UnmarshalJSON(data []byte) error {
	var w wireType
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case TypeKindNil, TypeKindInt, TypeKindString, TypeKindAny:
		*t = Type{Kind: w.Kind}
	case TypeKindOneOf:
		if len(w.OneOf) == 0 {
			return fmt.Errorf("value: OneOf type missing members")
		}
		*t = OneOfType(w.OneOf...)
	default:
		return fmt.Errorf("value: unknown Type kind %d", w.Kind)
	}
	return nil
}
