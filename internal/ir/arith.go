package ir

import "math/big"

func opName(op BinaryOp) string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	case BinLt:
		return "<"
	case BinLte:
		return "<="
	case BinEq:
		return "=="
	case BinGt:
		return ">"
	case BinGte:
		return ">="
	default:
		return "?"
	}
}

// arithInt applies an arithmetic BinaryOp over arbitrary-precision
// integers, per spec.md §9's retained arbitrary-precision policy: the
// result stays a big.Int and is only narrowed to 64-bit by the caller
// (Assign) or by unit finalization further downstream.
func arithInt(op BinaryOp, lhs, rhs *big.Int, span any) (Value, error) {
	result := new(big.Int)
	switch op {
	case BinAdd:
		result.Add(lhs, rhs)
	case BinSub:
		result.Sub(lhs, rhs)
	case BinMul:
		result.Mul(lhs, rhs)
	case BinDiv:
		if rhs.Sign() == 0 {
			return Value{}, &DivisionByZeroError{Span: span}
		}
		result.Quo(lhs, rhs)
	case BinShl:
		result.Lsh(lhs, uint(rhs.Uint64()))
	case BinShr:
		result.Rsh(lhs, uint(rhs.Uint64()))
	default:
		return Value{}, &BadOperandsError{Op: opName(op), Lhs: KindInteger, Rhs: KindInteger, Span: span}
	}
	return Integer(result), nil
}

func arithFloat(op BinaryOp, lhs, rhs float64, span any) (Value, error) {
	switch op {
	case BinAdd:
		return Float(lhs + rhs), nil
	case BinSub:
		return Float(lhs - rhs), nil
	case BinMul:
		return Float(lhs * rhs), nil
	case BinDiv:
		return Float(lhs / rhs), nil
	default:
		return Value{}, &BadOperandsError{Op: opName(op), Lhs: KindFloat, Rhs: KindFloat, Span: span}
	}
}

func compare(op BinaryOp, lhs, rhs Value, span any) (Value, error) {
	if lhs.Kind != rhs.Kind {
		if op == BinEq {
			return Bool(false), nil
		}
		return Value{}, &BadOperandsError{Op: opName(op), Lhs: lhs.Kind, Rhs: rhs.Kind, Span: span}
	}

	var cmp int
	switch lhs.Kind {
	case KindInteger:
		cmp = lhs.Int.Cmp(rhs.Int)
	case KindFloat:
		switch {
		case lhs.Float < rhs.Float:
			cmp = -1
		case lhs.Float > rhs.Float:
			cmp = 1
		default:
			cmp = 0
		}
	case KindString:
		switch {
		case lhs.Str < rhs.Str:
			cmp = -1
		case lhs.Str > rhs.Str:
			cmp = 1
		default:
			cmp = 0
		}
	case KindBool:
		if op != BinEq {
			return Value{}, &BadOperandsError{Op: opName(op), Lhs: lhs.Kind, Rhs: rhs.Kind, Span: span}
		}
		return Bool(lhs.Bool == rhs.Bool), nil
	default:
		return Value{}, &BadOperandsError{Op: opName(op), Lhs: lhs.Kind, Rhs: rhs.Kind, Span: span}
	}

	switch op {
	case BinLt:
		return Bool(cmp < 0), nil
	case BinLte:
		return Bool(cmp <= 0), nil
	case BinEq:
		return Bool(cmp == 0), nil
	case BinGt:
		return Bool(cmp > 0), nil
	case BinGte:
		return Bool(cmp >= 0), nil
	default:
		return Value{}, &BadOperandsError{Op: opName(op), Lhs: lhs.Kind, Rhs: rhs.Kind, Span: span}
	}
}
