package diag

import (
	"github.com/jbdutton/rune-go/internal/ir"
	"github.com/jbdutton/rune-go/internal/unit"
)

// FromIRError maps a typed ir package error to its diagnostic code and
// message, recording it at sourceID. Unrecognized error types fall back to
// IRNotSupportedYet with the error's own text, so a future ir error kind
// degrades gracefully instead of being silently dropped.
func FromIRError(sourceID int, err error) *Report {
	span := spanOf(err)
	switch e := err.(type) {
	case *ir.UnsupportedTargetError:
		return New(sourceID, span, IRUnsupportedTarget, e.Error())
	case *ir.BadOperandsError:
		return New(sourceID, span, IRBadOperands, e.Error())
	case *ir.IntegerOverflowError:
		return New(sourceID, span, IRIntegerOverflow, e.Error())
	case *ir.DivisionByZeroError:
		return New(sourceID, span, IRDivisionByZero, e.Error())
	case *ir.UnknownConstFnError:
		return New(sourceID, span, IRUnknownConstFn, e.Error())
	case *ir.MissingVariableError:
		return New(sourceID, span, IRMissingVariable, e.Error())
	case *ir.UnsupportedBuiltinMacroError:
		return New(sourceID, span, IRUnsupportedBuiltinMacro, e.Error())
	case *ir.BudgetExceededError:
		return New(sourceID, span, IRBudgetExceeded, e.Error())
	default:
		return New(sourceID, span, IRNotSupportedYet, err.Error())
	}
}

// FromUnitError maps a typed unit package error to its diagnostic code and
// message.
func FromUnitError(sourceID int, err error) *Report {
	switch e := err.(type) {
	case *unit.FunctionConflictError:
		return New(sourceID, nil, UnitFunctionConflict, e.Error())
	case *unit.ConstantConflictError:
		return New(sourceID, nil, UnitConstantConflict, e.Error())
	case *unit.UnsupportedMetaError:
		return New(sourceID, nil, UnitUnsupportedMeta, e.Error())
	case *unit.StaticStringMissingError:
		return New(sourceID, nil, UnitStaticStringMissing, e.Error())
	case *unit.StaticBytesMissingError:
		return New(sourceID, nil, UnitStaticBytesMissing, e.Error())
	case *unit.StaticStringHashConflictError:
		return New(sourceID, nil, UnitStaticStringHashConflict, e.Error())
	case *unit.StaticBytesHashConflictError:
		return New(sourceID, nil, UnitStaticBytesHashConflict, e.Error())
	case *unit.StaticObjectKeysMissingError:
		return New(sourceID, nil, UnitStaticObjectKeysMissing, e.Error())
	case *unit.StaticObjectKeysHashConflictError:
		return New(sourceID, nil, UnitStaticObjectKeysHashConflict, e.Error())
	case *unit.DuplicateLabelError:
		return New(sourceID, nil, UnitDuplicateLabel, e.Error())
	case *unit.MissingLabelError:
		return New(sourceID, nil, UnitMissingLabel, e.Error())
	case *unit.BaseOverflowError:
		return New(sourceID, nil, UnitBaseOverflow, e.Error())
	case *unit.OffsetOverflowError:
		return New(sourceID, nil, UnitOffsetOverflow, e.Error())
	case *unit.VariantRttiConflictError:
		return New(sourceID, nil, MetaVariantRttiConflict, e.Error())
	case *unit.TypeRttiConflictError:
		return New(sourceID, nil, MetaTypeRttiConflict, e.Error())
	case *unit.TypeConflictError:
		return New(sourceID, nil, MetaTypeConflict, e.Error())
	case *unit.MetaConflictError:
		return New(sourceID, nil, MetaConflict, e.Error())
	case *unit.MissingFunctionError:
		return New(sourceID, nil, LinkMissingFunction, e.Error()).WithData("spans", e.Spans)
	default:
		return New(sourceID, nil, UnitFunctionConflict, e.Error())
	}
}

// spanOf extracts the Span field carried by most ir error types via a
// narrow set of type assertions, falling back to nil (no span available).
func spanOf(err error) any {
	switch e := err.(type) {
	case *ir.UnsupportedTargetError:
		return e.Span
	case *ir.BadOperandsError:
		return e.Span
	case *ir.IntegerOverflowError:
		return e.Span
	case *ir.DivisionByZeroError:
		return e.Span
	case *ir.UnknownConstFnError:
		return e.Span
	case *ir.MissingVariableError:
		return e.Span
	case *ir.UnsupportedBuiltinMacroError:
		return e.Span
	case *ir.BudgetExceededError:
		return e.Span
	default:
		return nil
	}
}
