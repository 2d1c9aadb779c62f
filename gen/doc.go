// Package gen produces random, structurally valid block programs.
//
// Generation is biased toward shallow, input-driven expressions: variable
// references outweigh nested blocks, nesting is depth-capped, and the
// initial output value prefers a sum-of-inputs shape. Every public entry
// point falls back to a safe terminal or the trivial program rather than
// emitting an invalid structure.
package gen
