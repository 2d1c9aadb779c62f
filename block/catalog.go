package block

import "math"

// ---------------------------------------------------------------------------
// Catalog: static per-kind signatures and evaluation semantics
// ---------------------------------------------------------------------------

// Signature describes one block kind: its ordered input-slot types, output
// type, and evaluation function. The catalog is lookup data — the single
// source of truth consulted by the validator, the interpreter, the generator,
// and the codec.
type Signature struct {
	// Name is the canonical kind name (mirrors Kind.String).
	Name string

	// Inputs is the ordered slot-type signature. Nil for Set, whose single
	// slot's type depends on the target variable's naming convention and is
	// resolved by the validator.
	Inputs []Type

	// Output is TypeNumber or TypeBoolean for reporters, TypeNone for
	// statement-only kinds.
	Output Type

	// Statement marks kinds executed for effect (Set, Return, If, IfElse).
	Statement bool

	// Eval computes the kind's value from fully resolved inputs. It is a
	// pure function; the interpreter resolves slots first and applies it.
	// Nil for statements and for Get, which needs the environment.
	Eval func(args []Value) Value

	// Rules are the kind's optional local simplifications, applied by the
	// rewrite mutation when a guard matches.
	Rules []Rule
}

// Arithmetic follows IEEE-754 with no special guards: divide by zero yields
// ±Inf, 0/0 and Mod(x, 0) yield NaN, and non-finite values flow through to
// fitness scoring untouched.
var catalog = [kindCount]Signature{
	KindSet: {
		Name:      "set",
		Output:    TypeNone,
		Statement: true,
	},
	KindReturn: {
		Name:      "return",
		Inputs:    []Type{TypeNumber},
		Output:    TypeNone,
		Statement: true,
	},
	KindIf: {
		Name:      "if",
		Inputs:    []Type{TypeBoolean},
		Output:    TypeNone,
		Statement: true,
	},
	KindIfElse: {
		Name:      "if_else",
		Inputs:    []Type{TypeBoolean},
		Output:    TypeNone,
		Statement: true,
	},
	KindAdd: {
		Name:   "add",
		Inputs: []Type{TypeNumber, TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(args[0].Number() + args[1].Number())
		},
		Rules: addRules,
	},
	KindSubtract: {
		Name:   "subtract",
		Inputs: []Type{TypeNumber, TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(args[0].Number() - args[1].Number())
		},
		Rules: subtractRules,
	},
	KindMultiply: {
		Name:   "multiply",
		Inputs: []Type{TypeNumber, TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(args[0].Number() * args[1].Number())
		},
		Rules: multiplyRules,
	},
	KindDivide: {
		Name:   "divide",
		Inputs: []Type{TypeNumber, TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(args[0].Number() / args[1].Number())
		},
		Rules: divideRules,
	},
	KindPower: {
		Name:   "power",
		Inputs: []Type{TypeNumber, TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(math.Pow(args[0].Number(), args[1].Number()))
		},
		Rules: powerRules,
	},
	KindModulo: {
		Name:   "modulo",
		Inputs: []Type{TypeNumber, TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(math.Mod(args[0].Number(), args[1].Number()))
		},
	},
	KindAbsolute: {
		Name:   "absolute",
		Inputs: []Type{TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(math.Abs(args[0].Number()))
		},
	},
	KindNegate: {
		Name:   "negate",
		Inputs: []Type{TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(-args[0].Number())
		},
		Rules: negateRules,
	},
	KindCompare: {
		Name:   "compare",
		Inputs: []Type{TypeNumber, TypeOperator, TypeNumber},
		Output: TypeBoolean,
		Eval: func(args []Value) Value {
			a, b := args[0].Number(), args[2].Number()
			switch args[1].Operator() {
			case OpEqual:
				return BoolValue(a == b)
			case OpNotEqual:
				return BoolValue(a != b)
			case OpLess:
				return BoolValue(a < b)
			case OpGreater:
				return BoolValue(a > b)
			case OpLessEqual:
				return BoolValue(a <= b)
			case OpGreaterEqual:
				return BoolValue(a >= b)
			}
			return BoolValue(false)
		},
	},
	KindAnd: {
		Name:   "and",
		Inputs: []Type{TypeBoolean, TypeBoolean},
		Output: TypeBoolean,
		Eval: func(args []Value) Value {
			return BoolValue(args[0].Bool() && args[1].Bool())
		},
	},
	KindOr: {
		Name:   "or",
		Inputs: []Type{TypeBoolean, TypeBoolean},
		Output: TypeBoolean,
		Eval: func(args []Value) Value {
			return BoolValue(args[0].Bool() || args[1].Bool())
		},
	},
	KindNot: {
		Name:   "not",
		Inputs: []Type{TypeBoolean},
		Output: TypeBoolean,
		Eval: func(args []Value) Value {
			return BoolValue(!args[0].Bool())
		},
		Rules: notRules,
	},
	KindGet: {
		Name:   "get",
		Inputs: []Type{TypeVariable},
		Output: TypeNumber,
		// Resolution needs the environment; the interpreter handles Get.
	},
	KindPi: {
		Name:   "pi",
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(math.Pi)
		},
	},
	KindE: {
		Name:   "e",
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return NumberValue(math.E)
		},
	},
	KindNumber: {
		Name:   "number",
		Inputs: []Type{TypeNumber},
		Output: TypeNumber,
		Eval: func(args []Value) Value {
			return args[0]
		},
	},
	KindBoolean: {
		Name:   "boolean",
		Inputs: []Type{TypeBoolean},
		Output: TypeBoolean,
		Eval: func(args []Value) Value {
			return args[0]
		},
	},
}

// Lookup returns the signature for k. ok is false for kinds outside the
// enumeration; such blocks never validate and never execute.
func Lookup(k Kind) (Signature, bool) {
	if !k.Known() {
		return Signature{}, false
	}
	return catalog[k], true
}

// KindsWithOutput returns every kind whose catalog output type is t, in
// enumeration order.
func KindsWithOutput(t Type) []Kind {
	var kinds []Kind
	for k := Kind(0); k < kindCount; k++ {
		if catalog[k].Output == t {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// StatementKinds returns the kinds executed for effect.
func StatementKinds() []Kind {
	var kinds []Kind
	for k := Kind(0); k < kindCount; k++ {
		if catalog[k].Statement {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
