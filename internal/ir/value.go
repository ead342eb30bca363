// Package ir implements the compile-time intermediate representation: a
// small tree language used to evaluate const expressions and string
// templates during compilation, before any bytecode is emitted. Values are
// a single tagged struct rather than an interface hierarchy — spec.md §9
// calls for a tagged variant over runtime dispatch here, since these values
// only ever exist inside one compile pass, never cross a goroutine
// boundary, and benefit from exhaustive switch-based evaluation.
package ir

import (
	"math/big"
	"strconv"
)

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindByte
	KindChar
	KindInteger
	KindFloat
	KindString
	KindBytes
	KindVec
	KindTuple
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindVec:
		return "vec"
	case KindTuple:
		return "tuple"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a dynamic IR value. Exactly one field is meaningful for a given
// Kind; Int holds arbitrary precision until the value is finalized to a
// 64-bit unit function signature, per spec.md §9.
type Value struct {
	Kind   Kind
	Bool   bool
	Byte   byte
	Char   rune
	Int    *big.Int
	Float  float64
	Str    string
	Bytes  []byte
	Vec    []Value
	Tuple  []Value
	Object map[string]Value
}

func Unit() Value                 { return Value{Kind: KindUnit} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func Byte(b byte) Value           { return Value{Kind: KindByte, Byte: b} }
func Char(c rune) Value           { return Value{Kind: KindChar, Char: c} }
func Integer(i *big.Int) Value    { return Value{Kind: KindInteger, Int: i} }
func IntegerFromInt64(i int64) Value {
	return Value{Kind: KindInteger, Int: big.NewInt(i)}
}
// IntegerFromString parses an integer literal in arbitrary precision,
// stripping a leading negative sign before parsing the magnitude and
// re-applying it afterward — mirroring the reference lexer's number
// literal handling, which makes negating the 64-bit minimum well-defined
// and gives a uniform diagnostic ("out of range") at the narrowing step
// instead of during parsing (spec.md §9).
func IntegerFromString(s string) Value {
	negative := false
	if len(s) > 0 && s[0] == '-' {
		negative = true
		s = s[1:]
	}
	mag := new(big.Int)
	if _, ok := mag.SetString(s, 0); !ok {
		mag.SetInt64(0)
	}
	if negative {
		mag.Neg(mag)
	}
	return Value{Kind: KindInteger, Int: mag}
}

func Float(f float64) Value       { return Value{Kind: KindFloat, Float: f} }
func String(s string) Value       { return Value{Kind: KindString, Str: s} }
func Bytes(b []byte) Value        { return Value{Kind: KindBytes, Bytes: b} }
func Vec(v []Value) Value         { return Value{Kind: KindVec, Vec: v} }
func Tuple(v []Value) Value       { return Value{Kind: KindTuple, Tuple: v} }
func Object(m map[string]Value) Value { return Value{Kind: KindObject, Object: m} }

// IsTruthy reports whether v is considered true in a condition context.
// Only a true Bool is truthy; every other kind reports false. The
// evaluator's If and Loop conditions use this directly and do not reject
// a non-Bool condition.
func (v Value) IsTruthy() bool { return v.Kind == KindBool && v.Bool }

// Int64 narrows an arbitrary-precision Integer value to a signed 64-bit
// int, per spec.md §9. ok is false if v is not an Integer or does not fit.
func (v Value) Int64() (int64, bool) {
	if v.Kind != KindInteger || v.Int == nil {
		return 0, false
	}
	if !v.Int.IsInt64() {
		return 0, false
	}
	return v.Int.Int64(), true
}

// Stringify renders v using the canonical template rule of spec.md §4.6:
// Integer and Float format without locale dependence, String copies
// through, Bool renders as true/false. ok is false for any other kind.
func (v Value) Stringify() (string, bool) {
	switch v.Kind {
	case KindInteger:
		if v.Int == nil {
			return "0", true
		}
		return v.Int.String(), true
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), true
	case KindString:
		return v.Str, true
	case KindBool:
		if v.Bool {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}
