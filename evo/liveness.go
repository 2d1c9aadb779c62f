package evo

import (
	"github.com/Hoffee-Toffee/Progeny/block"
)

// ---------------------------------------------------------------------------
// Liveness: backward dataflow over a statement list
// ---------------------------------------------------------------------------

// LiveSet is the set of variable names whose current value may still be read.
type LiveSet map[string]bool

// LiveOut performs a single-pass backward liveness scan over a top-level
// statement list and returns, per statement index, the set of variables live
// at its exit: names whose value at that point may be read before being
// overwritten. The scan starts from the empty set past the end; the final
// Return(out) seeds "out" by reading it.
//
// For each statement, live-in = (live-out − kill) ∪ reads. Set kills its
// target and reads its value expression; Return reads its value; If/IfElse
// reads its condition and, conservatively, everything its branches read,
// killing nothing (a branch may not execute).
func LiveOut(blocks []*block.Block) []LiveSet {
	out := make([]LiveSet, len(blocks))
	live := LiveSet{}
	for i := len(blocks) - 1; i >= 0; i-- {
		out[i] = live
		live = liveIn(blocks[i], live)
	}
	return out
}

func liveIn(b *block.Block, liveOut LiveSet) LiveSet {
	in := make(LiveSet, len(liveOut)+2)
	for name := range liveOut {
		in[name] = true
	}
	if b.Kind == block.KindSet && b.Target != "" {
		delete(in, b.Target)
	}
	collectReads(b, in)
	return in
}

// collectReads adds every variable name b reads to live, recursing through
// value expressions, conditions, and branch statement lists. Branch bodies
// contribute reads without killing writes: whether a branch runs depends on
// runtime state, so its writes cannot be counted on.
func collectReads(b *block.Block, live LiveSet) {
	for _, in := range b.Inputs {
		collectValueReads(in, live)
	}
	for _, a := range b.Actions {
		collectReads(a, live)
	}
	for _, a := range b.Else {
		collectReads(a, live)
	}
}

func collectValueReads(v block.Value, live LiveSet) {
	switch {
	case v.IsVariable():
		live[v.Variable()] = true
	case v.IsBlock():
		collectReads(v.Block(), live)
	}
}
