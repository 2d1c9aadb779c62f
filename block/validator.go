package block

// ---------------------------------------------------------------------------
// Validator: structural conformance against the catalog
// ---------------------------------------------------------------------------

// Valid reports whether b conforms to the catalog's signature for its kind
// and to the program-level naming/type conventions, recursively. Invalid
// blocks are filtered out before execution — they are a normal byproduct of
// random generation and recombination, not an error condition.
func Valid(b *Block, inputVars []string) bool {
	if b == nil || !b.Kind.Known() {
		return false
	}
	sig := catalog[b.Kind]

	switch b.Kind {
	case KindSet:
		if !KnownName(b.Target, inputVars) || len(b.Inputs) != 1 {
			return false
		}
		want := TypeNumber
		if BooleanName(b.Target) {
			want = TypeBoolean
		}
		return ValidValue(b.Inputs[0], want, inputVars)

	case KindReturn:
		return len(b.Inputs) == 1 && ValidValue(b.Inputs[0], TypeNumber, inputVars)

	case KindIf, KindIfElse:
		if len(b.Inputs) != 1 || !ValidValue(b.Inputs[0], TypeBoolean, inputVars) {
			return false
		}
		for _, a := range b.Actions {
			if !Valid(a, inputVars) {
				return false
			}
		}
		if b.Kind == KindIf {
			return len(b.Else) == 0
		}
		for _, a := range b.Else {
			if !Valid(a, inputVars) {
				return false
			}
		}
		return true

	default:
		if len(b.Inputs) != len(sig.Inputs) {
			return false
		}
		for i, in := range b.Inputs {
			if !ValidValue(in, sig.Inputs[i], inputVars) {
				return false
			}
		}
		return true
	}
}

// ValidValue reports whether v can fill a slot of type want in a program
// built against inputVars.
//
// A value is valid for number if it is a numeric literal, a known
// numeric-intent variable name, or a nested block whose catalog output is
// number (Get included). The boolean rule is symmetric.
func ValidValue(v Value, want Type, inputVars []string) bool {
	switch want {
	case TypeNumber:
		switch {
		case v.IsNumber():
			return true
		case v.IsVariable():
			return KnownName(v.Variable(), inputVars) && !BooleanName(v.Variable())
		case v.IsBlock():
			nested := v.Block()
			sig, ok := Lookup(nested.Kind)
			return ok && sig.Output == TypeNumber && Valid(nested, inputVars)
		}
		return false

	case TypeBoolean:
		switch {
		case v.IsBool():
			return true
		case v.IsVariable():
			return KnownName(v.Variable(), inputVars) && BooleanName(v.Variable())
		case v.IsBlock():
			nested := v.Block()
			sig, ok := Lookup(nested.Kind)
			return ok && sig.Output == TypeBoolean && Valid(nested, inputVars)
		}
		return false

	case TypeVariable:
		return v.IsVariable() &&
			KnownName(v.Variable(), inputVars) &&
			!BooleanName(v.Variable())

	case TypeOperator:
		return v.IsOperator() && ValidOperator(v.Operator())
	}
	return false
}
