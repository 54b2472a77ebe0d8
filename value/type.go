package value

import (
	"fmt"
	"strings"
)

// TypeKind tags the variant a Type holds.
type TypeKind uint8

const (
	TypeKindNil TypeKind = iota
	TypeKindInt
	TypeKindString
	TypeKindOneOf
	TypeKindAny
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindNil:
		return "Nil"
	case TypeKindInt:
		return "Int"
	case TypeKindString:
		return "String"
	case TypeKindOneOf:
		return "OneOf"
	case TypeKindAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// Type is a tagged constraint describing the admissible shape of a Value.
// OneOf carries its set as a sorted, deduplicated slice so that two
// independently-constructed Types with the same members compare and
// serialize identically on both ends of the wire.
type Type struct {
	Kind  TypeKind
	OneOf []Value
}

// NilType admits only Value{Kind: KindNil}.
func NilType() Type { return Type{Kind: TypeKindNil} }

// IntType admits only Int(n) values, any n.
func IntType() Type { return Type{Kind: TypeKindInt} }

// StringType admits only String(s) values, any s.
func StringType() Type { return Type{Kind: TypeKindString} }

// AnyType admits every Value.
func AnyType() Type { return Type{Kind: TypeKindAny} }

// OneOfType constructs a OneOf Type from a non-empty set of Values.
// Duplicates collapse and the resulting set is sorted, so OneOfType panics
// if given zero values (an empty enumeration admits nothing and is never
// a useful domain or range).
func OneOfType(values ...Value) Type {
	if len(values) == 0 {
		panic("value: OneOfType requires at least one value")
	}
	seen := make(map[Value]struct{}, len(values))
	deduped := make([]Value, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		deduped = append(deduped, v)
	}
	SortValues(deduped)
	return Type{Kind: TypeKindOneOf, OneOf: deduped}
}

// StringOneOfType is a convenience constructor for the common case of an
// enumerated set of string Values, e.g. StringOneOfType("a", "b", "c").
func StringOneOfType(strs ...string) Type {
	values := make([]Value, len(strs))
	for i, s := range strs {
		values[i] = String(s)
	}
	return OneOfType(values...)
}

func (t Type) String() string {
	if t.Kind != TypeKindOneOf {
		return t.Kind.String()
	}
	parts := make([]string, len(t.OneOf))
	for i, v := range t.OneOf {
		parts[i] = v.Display()
	}
	return fmt.Sprintf("OneOf(%s)", strings.Join(parts, ", "))
}

// TypeMismatch describes why a Value failed to conform to a Type. It
// implements error and is itself serializable (see wire) so it can cross
// the socket inside a Response.
type TypeMismatch struct {
	Value    Value  `json:"value"`
	Expected string `json:"expected"`
}

func newTypeMismatch(v Value, expected fmt.Stringer) *TypeMismatch {
	return &TypeMismatch{Value: v, Expected: expected.String()}
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type error: %s :/: %s", e.Value.Display(), e.Expected)
}

// Check is the single arbiter of conformance between a Type and a Value:
// Any admits everything; OneOf(S) admits v iff v is a member of S; a
// primitive Type admits only the matching variant, without inspecting its
// payload.
func Check(t Type, v Value) *TypeMismatch {
	switch t.Kind {
	case TypeKindAny:
		return nil
	case TypeKindOneOf:
		for _, member := range t.OneOf {
			if member == v {
				return nil
			}
		}
		return newTypeMismatch(v, t)
	case TypeKindNil:
		if v.Kind == KindNil {
			return nil
		}
		return newTypeMismatch(v, t)
	case TypeKindInt:
		if v.Kind == KindInt {
			return nil
		}
		return newTypeMismatch(v, t)
	case TypeKindString:
		if v.Kind == KindString {
			return nil
		}
		return newTypeMismatch(v, t)
	default:
		return newTypeMismatch(v, t)
	}
}
