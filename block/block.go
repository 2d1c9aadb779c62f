package block

import (
	"regexp"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Block: one node of a program tree
// ---------------------------------------------------------------------------

// Block is a tagged node in an expression/statement tree. Operator kinds use
// Inputs only; Set additionally names a target variable; If and IfElse carry
// ordered action lists instead of producing a value.
type Block struct {
	Kind   Kind
	Inputs []Value

	// Target is the assigned variable name. Set only.
	Target string

	// Actions is the then-branch statement list. If and IfElse only.
	Actions []*Block

	// Else is the else-branch statement list. IfElse only.
	Else []*Block
}

// NewBlock builds an operator/reporter block from its input values.
func NewBlock(kind Kind, inputs ...Value) *Block {
	return &Block{Kind: kind, Inputs: inputs}
}

// NewSet builds a Set statement assigning value to target.
func NewSet(target string, value Value) *Block {
	return &Block{Kind: KindSet, Target: target, Inputs: []Value{value}}
}

// NewReturn builds a Return statement for the given numeric value.
func NewReturn(value Value) *Block {
	return &Block{Kind: KindReturn, Inputs: []Value{value}}
}

// NewIf builds an If statement.
func NewIf(cond Value, actions []*Block) *Block {
	return &Block{Kind: KindIf, Inputs: []Value{cond}, Actions: actions}
}

// NewIfElse builds an IfElse statement.
func NewIfElse(cond Value, actions, elseActions []*Block) *Block {
	return &Block{Kind: KindIfElse, Inputs: []Value{cond}, Actions: actions, Else: elseActions}
}

// Clone returns a deep copy of b: inputs and action lists are copied
// recursively so structural mutation of the copy can never reach b.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := &Block{Kind: b.Kind, Target: b.Target}
	if len(b.Inputs) > 0 {
		c.Inputs = make([]Value, len(b.Inputs))
		for i, in := range b.Inputs {
			c.Inputs[i] = in.Clone()
		}
	}
	c.Actions = CloneBlocks(b.Actions)
	c.Else = CloneBlocks(b.Else)
	return c
}

// Equal reports structural equality of two trees.
func (b *Block) Equal(o *Block) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Kind != o.Kind || b.Target != o.Target || len(b.Inputs) != len(o.Inputs) {
		return false
	}
	for i := range b.Inputs {
		if !b.Inputs[i].Equal(o.Inputs[i]) {
			return false
		}
	}
	return equalBlockLists(b.Actions, o.Actions) && equalBlockLists(b.Else, o.Else)
}

// CloneBlocks deep-copies a statement list.
func CloneBlocks(blocks []*Block) []*Block {
	if blocks == nil {
		return nil
	}
	out := make([]*Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

func equalBlockLists(a, b []*Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Variable naming convention
// ---------------------------------------------------------------------------

// OutVar is the well-known output variable: it always exists in the
// environment and holds the program's return value.
const OutVar = "out"

// SlotVars are the fixed scratch variables pre-seeded into every execution
// environment alongside the problem's input variables.
var SlotVars = []string{"v0", "v1", "v2"}

var namePattern = regexp.MustCompile(`^(out|v\d+|b\d+)$`)

// KnownName reports whether name is a legal variable name for a program
// built against inputVars: either one of the input variables or a name
// matching the out/v<n>/b<n> convention.
func KnownName(name string, inputVars []string) bool {
	for _, v := range inputVars {
		if v == name {
			return true
		}
	}
	return namePattern.MatchString(name)
}

// BooleanName reports whether the naming convention marks name as holding a
// boolean: a "b" prefix means boolean intent, anything else numeric.
func BooleanName(name string) bool {
	return len(name) > 0 && name[0] == 'b'
}

// ---------------------------------------------------------------------------
// Program: an ordered statement list plus its input schema
// ---------------------------------------------------------------------------

// Program is an ordered sequence of top-level statement blocks together with
// the input-variable names it was built against. A well-formed Program ends
// in exactly one Return; Compose enforces that. Programs are only modified
// wholesale: operators produce fresh block lists, never in-place edits.
type Program struct {
	ID        string
	Blocks    []*Block
	InputVars []string
}

// Compose assembles a Program from candidate statement blocks. Invalid blocks
// are dropped; a trailing Return(out) is appended when absent; composing zero
// valid blocks degrades to the canonical trivial program. The result always
// executes.
func Compose(blocks []*Block, inputVars []string) *Program {
	valid := blocks[:0:0]
	for _, b := range blocks {
		if Valid(b, inputVars) {
			valid = append(valid, b)
		}
	}
	if len(valid) == 0 {
		return Trivial(inputVars)
	}
	if valid[len(valid)-1].Kind != KindReturn {
		valid = append(valid, CanonicalReturn())
	}
	return &Program{ID: uuid.NewString(), Blocks: valid, InputVars: inputVars}
}

// Trivial returns the canonical fallback program: it assigns the first
// numeric input variable (or zero when none exists) to out and returns it.
func Trivial(inputVars []string) *Program {
	value := NumberValue(0)
	for _, name := range inputVars {
		if !BooleanName(name) {
			value = VariableValue(name)
			break
		}
	}
	return &Program{
		ID:        uuid.NewString(),
		Blocks:    []*Block{NewSet(OutVar, value), CanonicalReturn()},
		InputVars: inputVars,
	}
}

// CanonicalReturn is the Return(out) statement appended to every program.
func CanonicalReturn() *Block {
	return NewReturn(VariableValue(OutVar))
}

// Clone returns a deep copy with a fresh identity. The copy is a distinct
// individual: population operators clone before any structural change so
// sub-trees are never shared across programs.
func (p *Program) Clone() *Program {
	inputs := make([]string, len(p.InputVars))
	copy(inputs, p.InputVars)
	return &Program{
		ID:        uuid.NewString(),
		Blocks:    CloneBlocks(p.Blocks),
		InputVars: inputs,
	}
}

// Equal reports structural equality of the block lists (identity and input
// schema aside).
func (p *Program) Equal(o *Program) bool {
	if p == nil || o == nil {
		return p == o
	}
	return equalBlockLists(p.Blocks, o.Blocks)
}

// Valid reports whether every statement validates against the catalog and
// the program ends in a Return.
func (p *Program) Valid() bool {
	if len(p.Blocks) == 0 || p.Blocks[len(p.Blocks)-1].Kind != KindReturn {
		return false
	}
	for _, b := range p.Blocks {
		if !Valid(b, p.InputVars) {
			return false
		}
	}
	return true
}
