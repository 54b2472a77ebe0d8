// Package value implements the dynamic, wire-representable value and type
// system every rpc call traverses: a small tagged union (Value), a tagged
// constraint describing admissible values (Type), and the validator that
// arbitrates between them.
package value

import (
	"fmt"
	"sort"
)

// Kind tags the variant a Value holds.
type Kind uint8

const (
	KindNil Kind = iota
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Value is a tagged union over Nil, Int(i64) and String(utf8). It is a
// plain comparable struct on purpose: two Values are == iff they are the
// same variant with the same payload, which is exactly the equality OneOf
// membership and deterministic ordering need, and makes Value usable
// directly as a Go map key.
type Value struct {
	Kind Kind
	Int  int64
	Str  string
}

// Nil is the unit value.
func Nil() Value { return Value{Kind: KindNil} }

// Int64 wraps a signed 64-bit integer.
func Int64(n int64) Value { return Value{Kind: KindInt, Int: n} }

// String wraps a UTF-8 string.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// IsNil reports whether v is the Nil variant.
func (v Value) IsNil() bool { return v.Kind == KindNil }

// Display renders a Value unambiguously for error messages. This is never
// used as the wire form; JSON marshaling (see json.go) is.
func (v Value) Display() string {
	switch v.Kind {
	case KindNil:
		return "<Nil>"
	case KindInt:
		return fmt.Sprintf("<%d>", v.Int)
	case KindString:
		return fmt.Sprintf("<%q>", v.Str)
	default:
		return "<?>"
	}
}

func (v Value) String() string { return v.Display() }

// Compare totally orders Values: variant tag first, then payload.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case KindNil:
		return 0
	case KindInt:
		switch {
		case a.Int < b.Int:
			return -1
		case a.Int > b.Int:
			return 1
		default:
			return 0
		}
	case KindString:
		switch {
		case a.Str < b.Str:
			return -1
		case a.Str > b.Str:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// SortValues sorts vs in place per Compare, used to build deterministic
// OneOf sets.
func SortValues(vs []Value) {
	sort.Slice(vs, func(i, j int) bool { return Compare(vs[i], vs[j]) < 0 })
}
