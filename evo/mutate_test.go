package evo

import (
	"testing"

	"github.com/Hoffee-Toffee/Progeny/block"
)

func TestMutateClosure(t *testing.T) {
	inputs := []string{"x", "y", "z"}
	e := newTestEngine(t, 31)

	for i := 0; i < 300; i++ {
		p := e.gen.Program(inputs)
		m := e.Mutate(p)
		requireWellFormed(t, m, e.cfg.MaxProgramBlocks+1)
	}
}

func TestMutateLeavesOriginalUntouched(t *testing.T) {
	inputs := []string{"x", "y"}
	e := newTestEngine(t, 32)

	p := e.gen.Program(inputs)
	before := p.Clone()
	for i := 0; i < 50; i++ {
		_ = e.Mutate(p)
	}
	if !p.Equal(before) {
		t.Error("Mutate modified its input program")
	}
}

func TestMutateTrivialProgram(t *testing.T) {
	inputs := []string{"x"}
	e := newTestEngine(t, 33)

	for i := 0; i < 100; i++ {
		m := e.Mutate(block.Trivial(inputs))
		requireWellFormed(t, m, e.cfg.MaxProgramBlocks+1)
	}
}

func TestDeletableIndexGuardsLiveWrites(t *testing.T) {
	e := newTestEngine(t, 34)

	// v0's write feeds out, out's write feeds the Return: both live. Only
	// the dead v1 write may be deleted.
	blocks := []*block.Block{
		block.NewSet("v0", block.VariableValue("x")),
		block.NewSet("v1", block.VariableValue("y")),
		block.NewSet(block.OutVar, block.VariableValue("v0")),
		block.CanonicalReturn(),
	}

	for i := 0; i < 50; i++ {
		at, ok := e.deletableIndex(blocks, len(blocks)-1)
		if !ok {
			t.Fatal("expected a deletable statement")
		}
		if at != 1 {
			t.Fatalf("deletableIndex = %d, want 1 (the dead v1 write)", at)
		}
	}
}

func TestDeletableIndexAllLive(t *testing.T) {
	e := newTestEngine(t, 35)

	blocks := []*block.Block{
		block.NewSet("v0", block.VariableValue("x")),
		block.NewSet(block.OutVar, block.VariableValue("v0")),
		block.CanonicalReturn(),
	}
	if _, ok := e.deletableIndex(blocks, len(blocks)-1); ok {
		t.Error("no statement should be deletable when every write is live")
	}
}

func TestApplyRewriteSimplifies(t *testing.T) {
	e := newTestEngine(t, 36)

	// out = (x - x): the x-x=0 rule must collapse the whole expression.
	sub := block.NewBlock(block.KindSubtract,
		block.VariableValue("x"), block.VariableValue("x"))
	body := []*block.Block{
		block.NewSet(block.OutVar, block.BlockValue(sub)),
	}

	e.applyRewrite(body)
	got := body[0].Inputs[0]
	if !got.IsNumber() || got.Number() != 0 {
		t.Errorf("rewrite of x-x yielded %v, want literal 0", got)
	}
}

func TestApplyRewriteNoSites(t *testing.T) {
	e := newTestEngine(t, 37)

	body := []*block.Block{
		block.NewSet(block.OutVar, block.VariableValue("x")),
	}
	before := body[0].Clone()
	e.applyRewrite(body)
	if !body[0].Equal(before) {
		t.Error("applyRewrite with no matching sites should change nothing")
	}
}
