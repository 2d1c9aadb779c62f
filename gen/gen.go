package gen

import (
	"math/rand"

	"github.com/Hoffee-Toffee/Progeny/block"
)

// Generation shape knobs. Depth is expression-tree nesting, not statement
// count; the shallow default keeps random trees legible and cheap to run.
const (
	MaxDepth      = 3
	MinStatements = 5
	MaxStatements = 25

	// sumBias is the probability that InitialValue emits the nested
	// add-of-inputs shape when at least two numeric inputs exist. A
	// convergence accelerant for sum-like targets, not a requirement.
	sumBias = 0.7
)

// boolScratchVars are the boolean counterparts of block.SlotVars, usable as
// Set targets and condition sources.
var boolScratchVars = []string{"b0", "b1", "b2"}

// Generator produces random blocks, values, and whole programs. All
// randomness flows through the injected rng, so a seeded source makes
// generation reproducible. Not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// ---------------------------------------------------------------------------
// Blocks
// ---------------------------------------------------------------------------

// Block generates a random block. With statement set it produces a Set, If,
// or IfElse; otherwise a numeric reporter. Return is never generated — the
// program constructor appends the canonical one. depth counts expression
// nesting so far; at or beyond maxDepth only terminals are produced below
// this block.
func (g *Generator) Block(depth, maxDepth int, statement bool, inputVars []string) *block.Block {
	if !statement {
		return g.reporter(block.TypeNumber, depth, maxDepth, inputVars)
	}

	roll := g.rng.Float64()
	switch {
	case roll < 0.8 || depth >= maxDepth:
		return g.set(depth, maxDepth, inputVars)
	case roll < 0.9:
		return block.NewIf(
			g.Input(block.TypeBoolean, depth+1, maxDepth, inputVars),
			g.actions(depth+1, maxDepth, inputVars),
		)
	default:
		return block.NewIfElse(
			g.Input(block.TypeBoolean, depth+1, maxDepth, inputVars),
			g.actions(depth+1, maxDepth, inputVars),
			g.actions(depth+1, maxDepth, inputVars),
		)
	}
}

func (g *Generator) set(depth, maxDepth int, inputVars []string) *block.Block {
	targets := make([]string, 0, 1+len(block.SlotVars)+len(boolScratchVars))
	targets = append(targets, block.OutVar)
	targets = append(targets, block.SlotVars...)
	targets = append(targets, boolScratchVars...)

	target := targets[g.rng.Intn(len(targets))]
	want := block.TypeNumber
	if block.BooleanName(target) {
		want = block.TypeBoolean
	}
	return block.NewSet(target, g.Input(want, depth+1, maxDepth, inputVars))
}

func (g *Generator) actions(depth, maxDepth int, inputVars []string) []*block.Block {
	n := 1 + g.rng.Intn(3)
	actions := make([]*block.Block, n)
	for i := range actions {
		actions[i] = g.Block(depth, maxDepth, true, inputVars)
	}
	return actions
}

// reporter generates a random reporter block with the requested output type.
// Get and the literal wrapper kinds are excluded: variable reads and
// constants are emitted directly as slot values instead.
func (g *Generator) reporter(out block.Type, depth, maxDepth int, inputVars []string) *block.Block {
	var pool []block.Kind
	for _, k := range block.KindsWithOutput(out) {
		switch k {
		case block.KindGet, block.KindNumber, block.KindBoolean:
			continue
		}
		pool = append(pool, k)
	}

	kind := pool[g.rng.Intn(len(pool))]
	sig, _ := block.Lookup(kind)
	inputs := make([]block.Value, len(sig.Inputs))
	for i, t := range sig.Inputs {
		inputs[i] = g.Input(t, depth+1, maxDepth, inputVars)
	}
	return block.NewBlock(kind, inputs...)
}

// ---------------------------------------------------------------------------
// Values
// ---------------------------------------------------------------------------

// Input fills one slot of the given type. Before maxDepth it weighs variable
// references (~60%) over nested blocks (~30%) over constants; at maxDepth it
// returns a terminal. A candidate that fails validation degrades to a safe
// terminal, so the result always validates.
func (g *Generator) Input(t block.Type, depth, maxDepth int, inputVars []string) block.Value {
	switch t {
	case block.TypeOperator:
		return block.OperatorValue(block.OperatorTokens[g.rng.Intn(len(block.OperatorTokens))])

	case block.TypeVariable:
		pool := g.numericVars(inputVars)
		return block.VariableValue(pool[g.rng.Intn(len(pool))])

	case block.TypeBoolean:
		if depth < maxDepth {
			switch roll := g.rng.Float64(); {
			case roll < 0.6:
				if name, ok := g.booleanVar(inputVars); ok {
					return block.VariableValue(name)
				}
			case roll < 0.9:
				v := block.BlockValue(g.reporter(block.TypeBoolean, depth, maxDepth, inputVars))
				if block.ValidValue(v, block.TypeBoolean, inputVars) {
					return v
				}
			}
		}
		return g.booleanTerminal(inputVars)

	default:
		if depth < maxDepth {
			switch roll := g.rng.Float64(); {
			case roll < 0.6:
				return block.VariableValue(g.numericVar(inputVars))
			case roll < 0.9:
				v := block.BlockValue(g.reporter(block.TypeNumber, depth, maxDepth, inputVars))
				if block.ValidValue(v, block.TypeNumber, inputVars) {
					return v
				}
			}
		}
		return g.numberTerminal(inputVars)
	}
}

func (g *Generator) numberTerminal(inputVars []string) block.Value {
	if g.rng.Float64() < 0.6 {
		return block.VariableValue(g.numericVar(inputVars))
	}
	return block.NumberValue(float64(g.rng.Intn(10)))
}

func (g *Generator) booleanTerminal(inputVars []string) block.Value {
	if g.rng.Float64() < 0.5 {
		if name, ok := g.booleanVar(inputVars); ok {
			return block.VariableValue(name)
		}
	}
	return block.BoolValue(g.rng.Intn(2) == 0)
}

// numericVars is the readable numeric name pool: numeric input variables,
// out, and the slot variables.
func (g *Generator) numericVars(inputVars []string) []string {
	pool := make([]string, 0, len(inputVars)+1+len(block.SlotVars))
	for _, name := range inputVars {
		if !block.BooleanName(name) {
			pool = append(pool, name)
		}
	}
	pool = append(pool, block.OutVar)
	pool = append(pool, block.SlotVars...)
	return pool
}

func (g *Generator) numericVar(inputVars []string) string {
	// Weight problem inputs over scratch names: inputs carry the signal.
	var inputs []string
	for _, name := range inputVars {
		if !block.BooleanName(name) {
			inputs = append(inputs, name)
		}
	}
	if len(inputs) > 0 && g.rng.Float64() < 0.7 {
		return inputs[g.rng.Intn(len(inputs))]
	}
	pool := g.numericVars(inputVars)
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) booleanVar(inputVars []string) (string, bool) {
	pool := make([]string, 0, len(inputVars)+len(boolScratchVars))
	for _, name := range inputVars {
		if block.BooleanName(name) {
			pool = append(pool, name)
		}
	}
	pool = append(pool, boolScratchVars...)
	if len(pool) == 0 {
		return "", false
	}
	return pool[g.rng.Intn(len(pool))], true
}

// ---------------------------------------------------------------------------
// Programs
// ---------------------------------------------------------------------------

// InitialValue produces the expression assigned to out when a program is
// seeded. With at least two numeric inputs it usually emits the nested
// Add(Add(var, var), var) shape over random inputs; otherwise a plain
// random numeric value.
func (g *Generator) InitialValue(inputVars []string) block.Value {
	var numeric []string
	for _, name := range inputVars {
		if !block.BooleanName(name) {
			numeric = append(numeric, name)
		}
	}
	if len(numeric) >= 2 && g.rng.Float64() < sumBias {
		pick := func() block.Value {
			return block.VariableValue(numeric[g.rng.Intn(len(numeric))])
		}
		inner := block.NewBlock(block.KindAdd, pick(), pick())
		return block.BlockValue(block.NewBlock(block.KindAdd, block.BlockValue(inner), pick()))
	}
	return g.Input(block.TypeNumber, 0, MaxDepth, inputVars)
}

// Program generates a random program: MinStatements to MaxStatements random
// statements with one Set(out, InitialValue) spliced in at a random
// position, composed with the canonical trailing Return. The result always
// validates; composition degrades to the trivial program if everything is
// filtered.
func (g *Generator) Program(inputVars []string) *block.Program {
	n := MinStatements + g.rng.Intn(MaxStatements-MinStatements+1)
	stmts := make([]*block.Block, n)
	for i := range stmts {
		stmts[i] = g.Block(0, MaxDepth, true, inputVars)
	}

	at := g.rng.Intn(n + 1)
	seed := block.NewSet(block.OutVar, g.InitialValue(inputVars))
	blocks := make([]*block.Block, 0, n+1)
	blocks = append(blocks, stmts[:at]...)
	blocks = append(blocks, seed)
	blocks = append(blocks, stmts[at:]...)

	return block.Compose(blocks, inputVars)
}
