package block

import "math"

// ---------------------------------------------------------------------------
// Value: discriminated union filling block input slots
// ---------------------------------------------------------------------------

type valueKind int

const (
	valueNone valueKind = iota
	valueNumber
	valueBool
	valueVariable
	valueOperator
	valueBlock
)

// Value is one input slot of a block: a numeric literal, a boolean literal,
// a variable-name reference, a comparison-operator token, or a nested block.
// The zero Value is "none" and is what statement execution yields.
//
// Accessors panic when used against the wrong variant; callers that are not
// sure of the variant check the Is* predicates first. Runtime type mismatches
// during interpretation never reach these panics — the interpreter resolves
// through typed lookups that default instead (see interp).
type Value struct {
	kind valueKind
	num  float64
	b    bool
	str  string // variable name or operator token
	blk  *Block
}

// NumberValue returns a numeric-literal value.
func NumberValue(f float64) Value {
	return Value{kind: valueNumber, num: f}
}

// BoolValue returns a boolean-literal value.
func BoolValue(b bool) Value {
	return Value{kind: valueBool, b: b}
}

// VariableValue returns a variable-name reference.
func VariableValue(name string) Value {
	return Value{kind: valueVariable, str: name}
}

// OperatorValue returns a comparison-operator token.
func OperatorValue(tok string) Value {
	return Value{kind: valueOperator, str: tok}
}

// BlockValue returns a nested-block value.
func BlockValue(b *Block) Value {
	return Value{kind: valueBlock, blk: b}
}

// IsNone reports whether v is the zero value.
func (v Value) IsNone() bool { return v.kind == valueNone }

// IsNumber reports whether v is a numeric literal.
func (v Value) IsNumber() bool { return v.kind == valueNumber }

// IsBool reports whether v is a boolean literal.
func (v Value) IsBool() bool { return v.kind == valueBool }

// IsVariable reports whether v is a variable-name reference.
func (v Value) IsVariable() bool { return v.kind == valueVariable }

// IsOperator reports whether v is an operator token.
func (v Value) IsOperator() bool { return v.kind == valueOperator }

// IsBlock reports whether v is a nested block.
func (v Value) IsBlock() bool { return v.kind == valueBlock }

// Number returns the numeric literal.
// Panics if v is not a number.
func (v Value) Number() float64 {
	if v.kind != valueNumber {
		panic("block: Value.Number on non-number value")
	}
	return v.num
}

// Bool returns the boolean literal.
// Panics if v is not a boolean.
func (v Value) Bool() bool {
	if v.kind != valueBool {
		panic("block: Value.Bool on non-boolean value")
	}
	return v.b
}

// Variable returns the referenced variable name.
// Panics if v is not a variable reference.
func (v Value) Variable() string {
	if v.kind != valueVariable {
		panic("block: Value.Variable on non-variable value")
	}
	return v.str
}

// Operator returns the operator token.
// Panics if v is not an operator.
func (v Value) Operator() string {
	if v.kind != valueOperator {
		panic("block: Value.Operator on non-operator value")
	}
	return v.str
}

// Block returns the nested block.
// Panics if v is not a block.
func (v Value) Block() *Block {
	if v.kind != valueBlock {
		panic("block: Value.Block on non-block value")
	}
	return v.blk
}

// Clone returns a deep copy of v. Literal, variable, and operator variants
// share no mutable state and copy by value; nested blocks are cloned
// recursively so no sub-tree is ever aliased between programs.
func (v Value) Clone() Value {
	if v.kind == valueBlock {
		return Value{kind: valueBlock, blk: v.blk.Clone()}
	}
	return v
}

// Equal reports structural equality. Numeric literals compare bitwise-exact
// except that two NaNs are considered equal, so round-trip comparisons hold
// for every encodable value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case valueNumber:
		if math.IsNaN(v.num) && math.IsNaN(o.num) {
			return true
		}
		return v.num == o.num
	case valueBool:
		return v.b == o.b
	case valueVariable, valueOperator:
		return v.str == o.str
	case valueBlock:
		return v.blk.Equal(o.blk)
	default:
		return true
	}
}
