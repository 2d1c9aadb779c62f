package interp

import (
	"github.com/tliron/commonlog"

	"github.com/Hoffee-Toffee/Progeny/block"
)

var log = commonlog.GetLogger("progeny.interp")

// ---------------------------------------------------------------------------
// Env: per-execution variable state
// ---------------------------------------------------------------------------

// Env is the variable environment for one program execution. It is created
// fresh per run and never shared: concurrent evaluations each build their
// own Env.
//
// The output slot is distinct from the "out" variable. Return statements
// write the slot; the canonical trailing Return(out) copies the variable
// into it.
type Env struct {
	vars   map[string]block.Value
	output float64
}

// NewEnv seeds the environment: out and the fixed slot variables start at
// zero, then each input variable is bound from inputs. A missing input
// defaults to zero with a warning; a b-prefixed input is bound as the
// boolean "non-zero".
func NewEnv(inputVars []string, inputs map[string]float64) *Env {
	e := &Env{vars: make(map[string]block.Value, len(inputVars)+len(block.SlotVars)+1)}
	e.vars[block.OutVar] = block.NumberValue(0)
	for _, name := range block.SlotVars {
		e.vars[name] = block.NumberValue(0)
	}
	for _, name := range inputVars {
		f, ok := inputs[name]
		if !ok {
			log.Warningf("input variable %q missing at run time, defaulting to 0", name)
		}
		if block.BooleanName(name) {
			e.vars[name] = block.BoolValue(f != 0)
		} else {
			e.vars[name] = block.NumberValue(f)
		}
	}
	return e
}

// Bind assigns v to name.
func (e *Env) Bind(name string, v block.Value) {
	e.vars[name] = v
}

// Number returns the numeric value bound to name. ok is false when the name
// is unbound or holds a boolean.
func (e *Env) Number(name string) (float64, bool) {
	v, bound := e.vars[name]
	if !bound || !v.IsNumber() {
		return 0, false
	}
	return v.Number(), true
}

// Bool returns the boolean value bound to name. ok is false when the name is
// unbound or holds a number.
func (e *Env) Bool(name string) (bool, bool) {
	v, bound := e.vars[name]
	if !bound || !v.IsBool() {
		return false, false
	}
	return v.Bool(), true
}

// Output returns the value last written by a Return statement, zero when no
// Return has executed.
func (e *Env) Output() float64 {
	return e.output
}
