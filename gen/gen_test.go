package gen

import (
	"math/rand"
	"testing"

	"github.com/Hoffee-Toffee/Progeny/block"
	"github.com/Hoffee-Toffee/Progeny/interp"
)

// ---------------------------------------------------------------------------
// Validity tests
// ---------------------------------------------------------------------------

func TestBlockAlwaysValid(t *testing.T) {
	inputs := []string{"x", "y", "bflag"}
	g := New(rand.New(rand.NewSource(1)))

	for i := 0; i < 500; i++ {
		stmt := g.Block(0, MaxDepth, true, inputs)
		if !block.Valid(stmt, inputs) {
			t.Fatalf("iteration %d: generated invalid statement:\n%s",
				i, block.Render(block.Compose([]*block.Block{stmt}, inputs)))
		}

		rep := g.Block(0, MaxDepth, false, inputs)
		sig, ok := block.Lookup(rep.Kind)
		if !ok || sig.Output != block.TypeNumber {
			t.Fatalf("iteration %d: reporter kind %s is not numeric", i, rep.Kind)
		}
		if !block.Valid(rep, inputs) {
			t.Fatalf("iteration %d: generated invalid reporter %s", i, rep.Kind)
		}
	}
}

func TestInputAlwaysValid(t *testing.T) {
	inputs := []string{"x", "bflag"}
	g := New(rand.New(rand.NewSource(2)))

	types := []block.Type{block.TypeNumber, block.TypeBoolean, block.TypeVariable, block.TypeOperator}
	for i := 0; i < 500; i++ {
		for _, want := range types {
			v := g.Input(want, 0, MaxDepth, inputs)
			if !block.ValidValue(v, want, inputs) {
				t.Fatalf("iteration %d: invalid %s input %v", i, want, v)
			}
		}
	}
}

func TestInputTerminalAtMaxDepth(t *testing.T) {
	g := New(rand.New(rand.NewSource(3)))

	for i := 0; i < 200; i++ {
		v := g.Input(block.TypeNumber, MaxDepth, MaxDepth, []string{"x"})
		if v.IsBlock() {
			t.Fatalf("iteration %d: nested block at max depth", i)
		}
	}
}

func TestProgramAlwaysValidAndRunnable(t *testing.T) {
	inputs := []string{"x", "y", "z"}
	g := New(rand.New(rand.NewSource(4)))

	for i := 0; i < 200; i++ {
		p := g.Program(inputs)
		if !p.Valid() {
			t.Fatalf("iteration %d: invalid program:\n%s", i, block.Render(p))
		}
		n := len(p.Blocks)
		if n < 2 || n > MaxStatements+2 {
			t.Fatalf("iteration %d: program has %d blocks", i, n)
		}
		if p.Blocks[n-1].Kind != block.KindReturn {
			t.Fatalf("iteration %d: program does not end in return", i)
		}

		// Generated programs must execute without panicking.
		_ = interp.Run(p, map[string]float64{"x": 1, "y": 2, "z": 3})
	}
}

func TestProgramSetsOut(t *testing.T) {
	g := New(rand.New(rand.NewSource(5)))

	for i := 0; i < 100; i++ {
		p := g.Program([]string{"x", "y"})
		var found bool
		for _, b := range p.Blocks {
			if b.Kind == block.KindSet && b.Target == block.OutVar {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("iteration %d: program never assigns out:\n%s", i, block.Render(p))
		}
	}
}

// ---------------------------------------------------------------------------
// Bias tests
// ---------------------------------------------------------------------------

func TestInitialValueSumBias(t *testing.T) {
	inputs := []string{"x", "y", "z"}
	g := New(rand.New(rand.NewSource(6)))

	const n = 1000
	var nestedAdds int
	for i := 0; i < n; i++ {
		v := g.InitialValue(inputs)
		if !block.ValidValue(v, block.TypeNumber, inputs) {
			t.Fatalf("iteration %d: invalid initial value %v", i, v)
		}
		if v.IsBlock() && v.Block().Kind == block.KindAdd &&
			v.Block().Inputs[0].IsBlock() && v.Block().Inputs[0].Block().Kind == block.KindAdd {
			nestedAdds++
		}
	}

	// The add-of-inputs shape should dominate with three numeric inputs.
	if ratio := float64(nestedAdds) / n; ratio < 0.5 || ratio > 0.9 {
		t.Errorf("nested add ratio = %v, want around %v", ratio, sumBias)
	}
}

func TestInitialValueWithoutEnoughInputs(t *testing.T) {
	g := New(rand.New(rand.NewSource(7)))

	for i := 0; i < 200; i++ {
		v := g.InitialValue([]string{"x"})
		if !block.ValidValue(v, block.TypeNumber, []string{"x"}) {
			t.Fatalf("iteration %d: invalid initial value %v", i, v)
		}
	}
}

// ---------------------------------------------------------------------------
// Reproducibility tests
// ---------------------------------------------------------------------------

func TestProgramSeededReproducibility(t *testing.T) {
	inputs := []string{"x", "y"}

	a := New(rand.New(rand.NewSource(42))).Program(inputs)
	b := New(rand.New(rand.NewSource(42))).Program(inputs)
	if !a.Equal(b) {
		t.Error("same seed should generate structurally equal programs")
	}

	c := New(rand.New(rand.NewSource(43))).Program(inputs)
	if a.Equal(c) {
		t.Error("different seeds should generate different programs")
	}
}
