// Package block defines the program representation evolved by the engine.
//
// This package contains:
//   - Tagged value representation for block input slots
//   - Block tree and Program types with deep clone and structural equality
//   - Kind-indexed catalog of block signatures, evaluators, and rewrite rules
//   - Structural validator for candidate blocks
//   - JSON tree codec and a human-readable renderer
package block
