package evo

import (
	"testing"

	"github.com/Hoffee-Toffee/Progeny/block"
)

func TestLiveOutSeedsFromReturn(t *testing.T) {
	blocks := []*block.Block{
		block.NewSet(block.OutVar, block.NumberValue(1)),
		block.CanonicalReturn(),
	}
	out := LiveOut(blocks)
	if len(out) != 2 {
		t.Fatalf("LiveOut returned %d sets, want 2", len(out))
	}
	if !out[0][block.OutVar] {
		t.Error("out should be live after its write, the Return reads it")
	}
	if len(out[1]) != 0 {
		t.Errorf("nothing is live after the final Return, got %v", out[1])
	}
}

func TestLiveOutReadBeforeWrite(t *testing.T) {
	// v0 = x; out = v0 + v0; v0 = y; return out
	add := block.NewBlock(block.KindAdd,
		block.VariableValue("v0"), block.VariableValue("v0"))
	blocks := []*block.Block{
		block.NewSet("v0", block.VariableValue("x")),
		block.NewSet(block.OutVar, block.BlockValue(add)),
		block.NewSet("v0", block.VariableValue("y")),
		block.CanonicalReturn(),
	}
	out := LiveOut(blocks)

	if !out[0]["v0"] {
		t.Error("v0 is read at statement 1, so it is live after statement 0")
	}
	if out[1]["v0"] {
		t.Error("v0 is rewritten before any further read, so it is dead after statement 1")
	}
	if out[2]["v0"] {
		t.Error("v0's second write is never read")
	}
	if !out[2][block.OutVar] {
		t.Error("out stays live until the Return")
	}
}

func TestLiveOutKillThenRead(t *testing.T) {
	// A write kills liveness even when the same name is read further down:
	// the earlier value cannot reach past the write.
	blocks := []*block.Block{
		block.NewSet("v0", block.VariableValue("x")),
		block.NewSet("v0", block.VariableValue("y")),
		block.NewSet(block.OutVar, block.VariableValue("v0")),
		block.CanonicalReturn(),
	}
	out := LiveOut(blocks)
	if out[0]["v0"] {
		t.Error("v0's first write is shadowed by the second before any read")
	}
	if !out[1]["v0"] {
		t.Error("v0's second write is read at statement 2")
	}
}

func TestLiveOutBranchesAreConservative(t *testing.T) {
	// if b0 { v0 = x }; out = v0: the branch read of x and the later read of
	// v0 both count; the conditional write of v0 kills nothing.
	cond := block.NewIf(block.VariableValue("b0"), []*block.Block{
		block.NewSet("v0", block.VariableValue("x")),
	})
	blocks := []*block.Block{
		block.NewSet("v0", block.VariableValue("y")),
		cond,
		block.NewSet(block.OutVar, block.VariableValue("v0")),
		block.CanonicalReturn(),
	}
	out := LiveOut(blocks)

	if !out[0]["v0"] {
		t.Error("the unconditional v0 write must stay live past a conditional rewrite")
	}
	if !out[0]["b0"] || !out[0]["x"] {
		t.Errorf("branch reads should propagate, got %v", out[0])
	}
}

func TestLiveOutEmpty(t *testing.T) {
	if out := LiveOut(nil); len(out) != 0 {
		t.Errorf("LiveOut(nil) = %v, want empty", out)
	}
}
