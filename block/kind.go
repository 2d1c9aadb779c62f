package block

// ---------------------------------------------------------------------------
// Kind: the fixed enumeration of block kinds
// ---------------------------------------------------------------------------

// Kind identifies the shape and semantics of a block. The set is closed:
// the catalog, the validator, the interpreter, and the codec all dispatch on
// it, so adding a kind means extending each of those tables.
type Kind int

const (
	// Statement kinds.
	KindSet Kind = iota
	KindReturn
	KindIf
	KindIfElse

	// Binary arithmetic reporters.
	KindAdd
	KindSubtract
	KindMultiply
	KindDivide
	KindPower
	KindModulo

	// Unary arithmetic reporters.
	KindAbsolute
	KindNegate

	// Boolean reporters.
	KindCompare
	KindAnd
	KindOr
	KindNot

	// Variable access.
	KindGet

	// Constants and literals.
	KindPi
	KindE
	KindNumber
	KindBoolean

	kindCount // sentinel, keep last
)

// kindNames is the canonical wire/debug spelling for each kind.
var kindNames = [kindCount]string{
	KindSet:      "set",
	KindReturn:   "return",
	KindIf:       "if",
	KindIfElse:   "if_else",
	KindAdd:      "add",
	KindSubtract: "subtract",
	KindMultiply: "multiply",
	KindDivide:   "divide",
	KindPower:    "power",
	KindModulo:   "modulo",
	KindAbsolute: "absolute",
	KindNegate:   "negate",
	KindCompare:  "compare",
	KindAnd:      "and",
	KindOr:       "or",
	KindNot:      "not",
	KindGet:      "get",
	KindPi:       "pi",
	KindE:        "e",
	KindNumber:   "number",
	KindBoolean:  "boolean",
}

// String returns the canonical name of the kind, or "unknown" for values
// outside the enumeration.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Known reports whether k is inside the enumeration.
func (k Kind) Known() bool {
	return k >= 0 && k < kindCount
}

// KindByName resolves a canonical kind name back to its Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return Kind(-1), false
}

// ---------------------------------------------------------------------------
// Type: slot and output types
// ---------------------------------------------------------------------------

// Type classifies what a block input slot accepts, or what a block produces.
type Type int

const (
	// TypeNone marks statement-only kinds that produce no value.
	TypeNone Type = iota
	// TypeNumber is an IEEE-754 double.
	TypeNumber
	// TypeBoolean is true/false.
	TypeBoolean
	// TypeVariable is a variable-name slot (Get's operand).
	TypeVariable
	// TypeOperator is a comparison-operator token slot (Compare's middle input).
	TypeOperator
)

var typeNames = map[Type]string{
	TypeNone:     "none",
	TypeNumber:   "number",
	TypeBoolean:  "boolean",
	TypeVariable: "variable",
	TypeOperator: "operator",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// ---------------------------------------------------------------------------
// Comparison operator tokens
// ---------------------------------------------------------------------------

// Operator tokens accepted by Compare's TypeOperator slot.
const (
	OpEqual        = "="
	OpNotEqual     = "!="
	OpLess         = "<"
	OpGreater      = ">"
	OpLessEqual    = "<="
	OpGreaterEqual = ">="
)

// OperatorTokens lists every valid comparison token, in a fixed order the
// generator can index into.
var OperatorTokens = []string{
	OpEqual, OpNotEqual, OpLess, OpGreater, OpLessEqual, OpGreaterEqual,
}

// ValidOperator reports whether tok is one of the comparison tokens.
func ValidOperator(tok string) bool {
	for _, t := range OperatorTokens {
		if t == tok {
			return true
		}
	}
	return false
}
