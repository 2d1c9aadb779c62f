package evo

import (
	"github.com/Hoffee-Toffee/Progeny/block"
	"github.com/Hoffee-Toffee/Progeny/gen"
)

// ---------------------------------------------------------------------------
// Mutation: one random transform over a deep-copied statement list
// ---------------------------------------------------------------------------

// mutation kinds, drawn uniformly.
const (
	mutateReplaceValue = iota
	mutateReplaceBlock
	mutateInsertBlock
	mutateDeleteBlock
	mutateSwapBlocks
	mutateRewrite
	mutationKinds
)

// Mutate returns a mutated copy of p: one transform chosen at random over a
// deep-copied block list — replace a Set's value, replace a whole statement,
// insert a statement, delete a statement (liveness-guarded), swap two
// statements, or apply a catalog rewrite rule at a matching expression site.
// The result is recomposed, so it always validates, ends in the canonical
// Return, and falls back to the trivial program if nothing survives. An
// inapplicable transform (no matching site) leaves the copy unchanged.
func (e *Engine) Mutate(p *block.Program) *block.Program {
	blocks := block.CloneBlocks(p.Blocks)

	// The trailing Return is canonical and never a mutation target; body is
	// everything before it.
	body := blocks
	if n := len(blocks); n > 0 && blocks[n-1].Kind == block.KindReturn {
		body = blocks[:n-1]
	}

	switch e.rng.Intn(mutationKinds) {
	case mutateReplaceValue:
		e.replaceSetValue(body, p.InputVars)
	case mutateReplaceBlock:
		if len(body) > 0 {
			body[e.rng.Intn(len(body))] = e.gen.Block(0, gen.MaxDepth, true, p.InputVars)
		}
	case mutateInsertBlock:
		at := 0
		if len(body) > 0 {
			at = e.rng.Intn(len(body) + 1)
		}
		fresh := e.gen.Block(0, gen.MaxDepth, true, p.InputVars)
		body = append(body[:at:at], append([]*block.Block{fresh}, body[at:]...)...)
		blocks = append(body, block.CanonicalReturn())
	case mutateDeleteBlock:
		if at, ok := e.deletableIndex(blocks, len(body)); ok {
			blocks = append(blocks[:at:at], blocks[at+1:]...)
		}
	case mutateSwapBlocks:
		if len(body) >= 2 {
			i, j := e.rng.Intn(len(body)), e.rng.Intn(len(body))
			body[i], body[j] = body[j], body[i]
		}
	case mutateRewrite:
		e.applyRewrite(body)
	}

	return block.Compose(blocks, p.InputVars)
}

// replaceSetValue regenerates the value expression of one randomly chosen
// Set statement, typed by its target's naming convention.
func (e *Engine) replaceSetValue(body []*block.Block, inputVars []string) {
	var sets []*block.Block
	for _, b := range body {
		if b.Kind == block.KindSet {
			sets = append(sets, b)
		}
	}
	if len(sets) == 0 {
		return
	}
	target := sets[e.rng.Intn(len(sets))]
	want := block.TypeNumber
	if block.BooleanName(target.Target) {
		want = block.TypeBoolean
	}
	target.Inputs = []block.Value{e.gen.Input(want, 0, gen.MaxDepth, inputVars)}
}

// deletableIndex picks a random body statement whose removal cannot break a
// later read: none of the variables it writes may be live at its exit. The
// liveness scan runs over the full list so the trailing Return keeps "out"
// live through the body.
func (e *Engine) deletableIndex(blocks []*block.Block, bodyLen int) (int, bool) {
	if bodyLen == 0 {
		return 0, false
	}
	liveOut := LiveOut(blocks)
	var deletable []int
	for i := 0; i < bodyLen; i++ {
		if !writesLiveVar(blocks[i], liveOut[i]) {
			deletable = append(deletable, i)
		}
	}
	if len(deletable) == 0 {
		return 0, false
	}
	return deletable[e.rng.Intn(len(deletable))], true
}

// writesLiveVar reports whether any variable b assigns (directly or inside a
// branch) is in live.
func writesLiveVar(b *block.Block, live LiveSet) bool {
	if b.Kind == block.KindSet {
		return live[b.Target]
	}
	for _, a := range b.Actions {
		if writesLiveVar(a, live) {
			return true
		}
	}
	for _, a := range b.Else {
		if writesLiveVar(a, live) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Rewrite-rule application
// ---------------------------------------------------------------------------

// rewriteSite is one applicable simplification: a value slot holding a block
// whose kind carries a rule with a matching guard.
type rewriteSite struct {
	slot *block.Value
	rule block.Rule
}

// applyRewrite applies one randomly chosen matching catalog rule in place.
// The body is already a private deep copy, so editing the slot directly is
// safe.
func (e *Engine) applyRewrite(body []*block.Block) {
	var sites []rewriteSite
	for _, b := range body {
		collectRewriteSites(b, &sites)
	}
	if len(sites) == 0 {
		return
	}
	site := sites[e.rng.Intn(len(sites))]
	nested := site.slot.Block()
	log.Debugf("rewrite %s at %s", site.rule.Name, nested.Kind)
	*site.slot = site.rule.Rewrite(nested)
}

func collectRewriteSites(b *block.Block, sites *[]rewriteSite) {
	for i := range b.Inputs {
		v := b.Inputs[i]
		if !v.IsBlock() {
			continue
		}
		nested := v.Block()
		if sig, ok := block.Lookup(nested.Kind); ok {
			for _, rule := range sig.Rules {
				if rule.Guard(nested) {
					*sites = append(*sites, rewriteSite{slot: &b.Inputs[i], rule: rule})
				}
			}
		}
		collectRewriteSites(nested, sites)
	}
	for _, a := range b.Actions {
		collectRewriteSites(a, sites)
	}
	for _, a := range b.Else {
		collectRewriteSites(a, sites)
	}
}
