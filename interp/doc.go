// Package interp executes block programs against a mutable variable
// environment.
//
// Execution never fails: type mismatches and undefined variables resolve to
// type-appropriate defaults with a logged warning, and arithmetic follows
// IEEE-754 with NaN/Inf passing through to the caller. The only contract is
// that Run returns the same output for the same program and inputs.
package interp
