package interp

import (
	"github.com/Hoffee-Toffee/Progeny/block"
)

// ---------------------------------------------------------------------------
// Interpreter: sequential statement execution with resolve-and-default
// ---------------------------------------------------------------------------

// Run executes every top-level statement of p in order against a fresh
// environment seeded from inputs, and returns the output slot. Return
// statements write the slot without halting, so later statements still
// execute; well-formed programs end in Return(out), which makes the final
// output the value of out.
func Run(p *block.Program, inputs map[string]float64) float64 {
	env := NewEnv(p.InputVars, inputs)
	for _, b := range p.Blocks {
		Execute(b, env)
	}
	return env.Output()
}

// Execute runs one block against env. Statements act on the environment and
// return the none value; reporters return their computed value. Malformed
// blocks reaching execution degrade to a zero default with a warning —
// validation should have filtered them, but execution never fails.
func Execute(b *block.Block, env *Env) block.Value {
	sig, known := block.Lookup(b.Kind)
	if !known {
		log.Warningf("unknown block kind %d at execution, defaulting to zero", int(b.Kind))
		return block.NumberValue(0)
	}

	switch b.Kind {
	case block.KindSet:
		if len(b.Inputs) != 1 {
			log.Warningf("set %q with %d values, skipping", b.Target, len(b.Inputs))
			return block.Value{}
		}
		want := block.TypeNumber
		if block.BooleanName(b.Target) {
			want = block.TypeBoolean
		}
		env.Bind(b.Target, Resolve(b.Inputs[0], want, env))
		return block.Value{}

	case block.KindReturn:
		if len(b.Inputs) != 1 {
			log.Warning("return without value, skipping")
			return block.Value{}
		}
		env.output = Resolve(b.Inputs[0], block.TypeNumber, env).Number()
		return block.Value{}

	case block.KindIf, block.KindIfElse:
		if len(b.Inputs) != 1 {
			log.Warningf("%s without condition, skipping", b.Kind)
			return block.Value{}
		}
		actions := b.Actions
		if !Resolve(b.Inputs[0], block.TypeBoolean, env).Bool() {
			actions = b.Else
		}
		for _, a := range actions {
			Execute(a, env)
		}
		return block.Value{}

	case block.KindGet:
		if len(b.Inputs) != 1 || !b.Inputs[0].IsVariable() {
			log.Warning("get without variable operand, defaulting to 0")
			return block.NumberValue(0)
		}
		name := b.Inputs[0].Variable()
		f, ok := env.Number(name)
		if !ok {
			log.Warningf("variable %q undefined or non-numeric, defaulting to 0", name)
		}
		return block.NumberValue(f)

	default:
		if len(b.Inputs) != len(sig.Inputs) {
			log.Warningf("%s with %d inputs, want %d, defaulting", b.Kind, len(b.Inputs), len(sig.Inputs))
			return defaultFor(sig.Output)
		}
		args := make([]block.Value, len(b.Inputs))
		for i, in := range b.Inputs {
			args[i] = Resolve(in, sig.Inputs[i], env)
		}
		return sig.Eval(args)
	}
}

// Resolve reduces a value slot to a concrete literal of the expected type.
// Literals pass through, variables are looked up with a type check, nested
// blocks execute; any mismatch yields the type's default with a warning.
// Variable and operator slots are tokens and pass through unresolved.
func Resolve(v block.Value, want block.Type, env *Env) block.Value {
	switch want {
	case block.TypeNumber:
		switch {
		case v.IsNumber():
			return v
		case v.IsVariable():
			f, ok := env.Number(v.Variable())
			if !ok {
				log.Warningf("variable %q undefined or non-numeric, defaulting to 0", v.Variable())
			}
			return block.NumberValue(f)
		case v.IsBlock():
			r := Execute(v.Block(), env)
			if r.IsNumber() {
				return r
			}
			log.Warningf("nested %s yielded no number, defaulting to 0", v.Block().Kind)
			return block.NumberValue(0)
		default:
			log.Warning("non-numeric value in numeric slot, defaulting to 0")
			return block.NumberValue(0)
		}

	case block.TypeBoolean:
		switch {
		case v.IsBool():
			return v
		case v.IsVariable():
			b, ok := env.Bool(v.Variable())
			if !ok {
				log.Warningf("variable %q undefined or non-boolean, defaulting to false", v.Variable())
			}
			return block.BoolValue(b)
		case v.IsBlock():
			r := Execute(v.Block(), env)
			if r.IsBool() {
				return r
			}
			log.Warningf("nested %s yielded no boolean, defaulting to false", v.Block().Kind)
			return block.BoolValue(false)
		default:
			log.Warning("non-boolean value in boolean slot, defaulting to false")
			return block.BoolValue(false)
		}

	default:
		return v
	}
}

func defaultFor(t block.Type) block.Value {
	if t == block.TypeBoolean {
		return block.BoolValue(false)
	}
	return block.NumberValue(0)
}
