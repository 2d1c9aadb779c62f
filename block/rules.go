package block

// ---------------------------------------------------------------------------
// Rules: per-kind local simplifications
// ---------------------------------------------------------------------------

// Rule is a guarded rewrite applied by the simplification mutation: when
// Guard matches a block of the owning kind, Rewrite produces the value that
// replaces it. Rules are declarative data — application always builds a new
// value and never edits the matched block.
type Rule struct {
	Name    string
	Guard   func(*Block) bool
	Rewrite func(*Block) Value
}

func literalNumber(v Value, f float64) bool {
	return v.IsNumber() && v.Number() == f
}

var addRules = []Rule{
	{
		Name:  "x+0=x",
		Guard: func(b *Block) bool { return literalNumber(b.Inputs[1], 0) },
		Rewrite: func(b *Block) Value {
			return b.Inputs[0].Clone()
		},
	},
	{
		Name:  "0+x=x",
		Guard: func(b *Block) bool { return literalNumber(b.Inputs[0], 0) },
		Rewrite: func(b *Block) Value {
			return b.Inputs[1].Clone()
		},
	},
}

var subtractRules = []Rule{
	{
		Name:  "x-x=0",
		Guard: func(b *Block) bool { return b.Inputs[0].Equal(b.Inputs[1]) },
		Rewrite: func(b *Block) Value {
			return NumberValue(0)
		},
	},
	{
		Name:  "x-0=x",
		Guard: func(b *Block) bool { return literalNumber(b.Inputs[1], 0) },
		Rewrite: func(b *Block) Value {
			return b.Inputs[0].Clone()
		},
	},
}

var multiplyRules = []Rule{
	{
		Name: "x*1=x",
		Guard: func(b *Block) bool {
			return literalNumber(b.Inputs[0], 1) || literalNumber(b.Inputs[1], 1)
		},
		Rewrite: func(b *Block) Value {
			if literalNumber(b.Inputs[1], 1) {
				return b.Inputs[0].Clone()
			}
			return b.Inputs[1].Clone()
		},
	},
	{
		Name: "x*0=0",
		Guard: func(b *Block) bool {
			return literalNumber(b.Inputs[0], 0) || literalNumber(b.Inputs[1], 0)
		},
		Rewrite: func(b *Block) Value {
			return NumberValue(0)
		},
	},
}

var divideRules = []Rule{
	{
		Name:  "x/1=x",
		Guard: func(b *Block) bool { return literalNumber(b.Inputs[1], 1) },
		Rewrite: func(b *Block) Value {
			return b.Inputs[0].Clone()
		},
	},
}

var powerRules = []Rule{
	{
		Name:  "x^1=x",
		Guard: func(b *Block) bool { return literalNumber(b.Inputs[1], 1) },
		Rewrite: func(b *Block) Value {
			return b.Inputs[0].Clone()
		},
	},
}

var negateRules = []Rule{
	{
		Name: "neg(neg(x))=x",
		Guard: func(b *Block) bool {
			in := b.Inputs[0]
			return in.IsBlock() && in.Block().Kind == KindNegate
		},
		Rewrite: func(b *Block) Value {
			return b.Inputs[0].Block().Inputs[0].Clone()
		},
	},
}

var notRules = []Rule{
	{
		Name: "not(not(b))=b",
		Guard: func(b *Block) bool {
			in := b.Inputs[0]
			return in.IsBlock() && in.Block().Kind == KindNot
		},
		Rewrite: func(b *Block) Value {
			return b.Inputs[0].Block().Inputs[0].Clone()
		},
	},
}
