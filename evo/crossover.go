package evo

import (
	"github.com/Hoffee-Toffee/Progeny/block"
)

// ---------------------------------------------------------------------------
// Crossover: one-point statement-list recombination
// ---------------------------------------------------------------------------

// Crossover produces a child by splicing the parents' top-level statement
// lists at one point each: the child's raw blocks are p1[:cp1] ++ p2[cp2:]
// with independent random cut points. The splice is deep-copied, stripped of
// Return statements, and truncated to MaxProgramBlocks before composition
// appends the canonical trailing Return — so a valid-parents input always
// yields a valid child.
//
// Recombination granularity is the statement list, not expression sub-trees:
// programs here are sequential Set/If statements, and splicing preserves the
// read-after-write chains that make them work.
func (e *Engine) Crossover(p1, p2 *block.Program) *block.Program {
	inputVars := p1.InputVars
	if len(inputVars) == 0 {
		inputVars = p2.InputVars
	}

	// Degenerate parents: clone whichever still has statements, or start over.
	switch {
	case len(p1.Blocks) == 0 && len(p2.Blocks) == 0:
		log.Warning("crossover over two empty parents, generating fresh program")
		return e.gen.Program(inputVars)
	case len(p1.Blocks) == 0:
		return p2.Clone()
	case len(p2.Blocks) == 0:
		return p1.Clone()
	}

	cp1 := e.rng.Intn(len(p1.Blocks) + 1)
	cp2 := e.rng.Intn(len(p2.Blocks) + 1)

	raw := make([]*block.Block, 0, cp1+len(p2.Blocks)-cp2)
	raw = append(raw, block.CloneBlocks(p1.Blocks[:cp1])...)
	raw = append(raw, block.CloneBlocks(p2.Blocks[cp2:])...)

	spliced := raw[:0]
	for _, b := range raw {
		if b.Kind != block.KindReturn {
			spliced = append(spliced, b)
		}
	}
	if limit := e.cfg.MaxProgramBlocks - 1; len(spliced) > limit {
		spliced = spliced[:limit]
	}
	return block.Compose(spliced, inputVars)
}
