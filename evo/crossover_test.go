package evo

import (
	"testing"

	"github.com/Hoffee-Toffee/Progeny/block"
)

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// requireWellFormed checks the closure properties every bred program must
// hold: valid, a single Return in last position, within the block cap.
func requireWellFormed(t *testing.T, p *block.Program, maxBlocks int) {
	t.Helper()
	if !p.Valid() {
		t.Fatalf("program invalid:\n%s", block.Render(p))
	}
	var returns int
	for _, b := range p.Blocks {
		if b.Kind == block.KindReturn {
			returns++
		}
	}
	if returns != 1 {
		t.Fatalf("program has %d returns, want 1:\n%s", returns, block.Render(p))
	}
	if p.Blocks[len(p.Blocks)-1].Kind != block.KindReturn {
		t.Fatalf("program does not end in return:\n%s", block.Render(p))
	}
	if len(p.Blocks) > maxBlocks {
		t.Fatalf("program has %d blocks, cap %d", len(p.Blocks), maxBlocks)
	}
}

func TestCrossoverClosure(t *testing.T) {
	inputs := []string{"x", "y", "z"}
	e := newTestEngine(t, 21)

	for i := 0; i < 300; i++ {
		p1 := e.gen.Program(inputs)
		p2 := e.gen.Program(inputs)
		child := e.Crossover(p1, p2)
		requireWellFormed(t, child, e.cfg.MaxProgramBlocks)
	}
}

func TestCrossoverDoesNotAliasParents(t *testing.T) {
	inputs := []string{"x", "y"}
	e := newTestEngine(t, 22)

	p1 := e.gen.Program(inputs)
	p2 := e.gen.Program(inputs)
	before1 := p1.Clone()
	before2 := p2.Clone()

	child := e.Crossover(p1, p2)
	// Mutating the child must never reach into a parent's tree.
	for _, b := range child.Blocks {
		if b.Kind == block.KindSet {
			b.Target = "v0"
			b.Inputs = []block.Value{block.NumberValue(99)}
		}
	}
	if !p1.Equal(before1) || !p2.Equal(before2) {
		t.Error("crossover child shares structure with a parent")
	}
}

func TestCrossoverEmptyParents(t *testing.T) {
	inputs := []string{"x", "y"}
	e := newTestEngine(t, 23)

	full := e.gen.Program(inputs)
	empty := &block.Program{InputVars: inputs}

	child := e.Crossover(full, empty)
	if !child.Equal(full) {
		t.Error("crossover with one empty parent should clone the other")
	}
	child = e.Crossover(empty, full)
	if !child.Equal(full) {
		t.Error("crossover with one empty parent should clone the other")
	}

	child = e.Crossover(empty, &block.Program{InputVars: inputs})
	requireWellFormed(t, child, e.cfg.MaxProgramBlocks)
}

func TestCrossoverRespectsBlockCap(t *testing.T) {
	inputs := []string{"x"}
	e := newTestEngine(t, 24)
	e.cfg.MaxProgramBlocks = 5

	// Long parents force truncation.
	long := make([]*block.Block, 40)
	for i := range long {
		long[i] = block.NewSet(block.OutVar, block.VariableValue("x"))
	}
	p := block.Compose(long, inputs)

	for i := 0; i < 50; i++ {
		child := e.Crossover(p, p)
		requireWellFormed(t, child, 5)
	}
}
