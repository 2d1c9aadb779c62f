package interp

import (
	"math"
	"testing"

	"github.com/Hoffee-Toffee/Progeny/block"
)

// ---------------------------------------------------------------------------
// Environment tests
// ---------------------------------------------------------------------------

func TestEnvSeeding(t *testing.T) {
	env := NewEnv([]string{"x", "bflag"}, map[string]float64{"x": 3.5, "bflag": 2})

	if got, ok := env.Number(block.OutVar); !ok || got != 0 {
		t.Errorf("out = %v/%v, want 0/true", got, ok)
	}
	for _, name := range block.SlotVars {
		if got, ok := env.Number(name); !ok || got != 0 {
			t.Errorf("%s = %v/%v, want 0/true", name, got, ok)
		}
	}
	if got, ok := env.Number("x"); !ok || got != 3.5 {
		t.Errorf("x = %v/%v, want 3.5/true", got, ok)
	}
	if got, ok := env.Bool("bflag"); !ok || got != true {
		t.Errorf("bflag = %v/%v, want true/true", got, ok)
	}
}

func TestEnvMissingInputDefaults(t *testing.T) {
	env := NewEnv([]string{"x", "bflag"}, nil)

	if got, ok := env.Number("x"); !ok || got != 0 {
		t.Errorf("missing x = %v/%v, want 0/true", got, ok)
	}
	if got, ok := env.Bool("bflag"); !ok || got != false {
		t.Errorf("missing bflag = %v/%v, want false/true", got, ok)
	}
}

func TestEnvTypeMismatch(t *testing.T) {
	env := NewEnv([]string{"x"}, map[string]float64{"x": 1})

	if _, ok := env.Bool("x"); ok {
		t.Error("Bool on a numeric binding should report !ok")
	}
	if _, ok := env.Number("nope"); ok {
		t.Error("Number on an unbound name should report !ok")
	}

	env.Bind("b0", block.BoolValue(true))
	if _, ok := env.Number("b0"); ok {
		t.Error("Number on a boolean binding should report !ok")
	}
}

// ---------------------------------------------------------------------------
// Run tests
// ---------------------------------------------------------------------------

func TestRunTrivial(t *testing.T) {
	p := block.Trivial([]string{"x"})
	if got := Run(p, map[string]float64{"x": 7}); got != 7 {
		t.Errorf("Run = %v, want 7", got)
	}
}

func TestRunSequentialSets(t *testing.T) {
	// v0 = x; v0 = v0 + 1; out = v0 * 2 — later statements see earlier writes.
	p := block.Compose([]*block.Block{
		block.NewSet("v0", block.VariableValue("x")),
		block.NewSet("v0", block.BlockValue(block.NewBlock(block.KindAdd,
			block.VariableValue("v0"), block.NumberValue(1)))),
		block.NewSet(block.OutVar, block.BlockValue(block.NewBlock(block.KindMultiply,
			block.VariableValue("v0"), block.NumberValue(2)))),
	}, []string{"x"})

	if got := Run(p, map[string]float64{"x": 4}); got != 10 {
		t.Errorf("Run = %v, want 10", got)
	}
}

func TestRunReturnDoesNotHalt(t *testing.T) {
	// An early Return records its value but execution continues; the final
	// Return wins.
	p := &block.Program{
		Blocks: []*block.Block{
			block.NewReturn(block.NumberValue(5)),
			block.NewSet(block.OutVar, block.NumberValue(7)),
			block.CanonicalReturn(),
		},
		InputVars: nil,
	}
	if got := Run(p, nil); got != 7 {
		t.Errorf("Run = %v, want 7", got)
	}
}

func TestRunLaterSetInvisibleWithoutReturn(t *testing.T) {
	// A Set after the last Return changes the variable, not the output slot.
	p := &block.Program{
		Blocks: []*block.Block{
			block.NewSet(block.OutVar, block.NumberValue(1)),
			block.CanonicalReturn(),
			block.NewSet(block.OutVar, block.NumberValue(2)),
		},
		InputVars: nil,
	}
	if got := Run(p, nil); got != 1 {
		t.Errorf("Run = %v, want 1", got)
	}
}

func TestRunBranching(t *testing.T) {
	// if x > 10 { out = 1 } else { out = 2 }
	cond := block.NewBlock(block.KindCompare,
		block.VariableValue("x"), block.OperatorValue(block.OpGreater), block.NumberValue(10))
	p := block.Compose([]*block.Block{
		block.NewIfElse(block.BlockValue(cond),
			[]*block.Block{block.NewSet(block.OutVar, block.NumberValue(1))},
			[]*block.Block{block.NewSet(block.OutVar, block.NumberValue(2))},
		),
	}, []string{"x"})

	if got := Run(p, map[string]float64{"x": 11}); got != 1 {
		t.Errorf("Run(x=11) = %v, want 1", got)
	}
	if got := Run(p, map[string]float64{"x": 10}); got != 2 {
		t.Errorf("Run(x=10) = %v, want 2", got)
	}
}

func TestRunBooleanInput(t *testing.T) {
	p := block.Compose([]*block.Block{
		block.NewIfElse(block.VariableValue("bflag"),
			[]*block.Block{block.NewSet(block.OutVar, block.VariableValue("x"))},
			[]*block.Block{block.NewSet(block.OutVar, block.BlockValue(
				block.NewBlock(block.KindNegate, block.VariableValue("x"))))},
		),
	}, []string{"x", "bflag"})

	if got := Run(p, map[string]float64{"x": 3, "bflag": 1}); got != 3 {
		t.Errorf("Run(bflag=1) = %v, want 3", got)
	}
	if got := Run(p, map[string]float64{"x": 3, "bflag": 0}); got != -3 {
		t.Errorf("Run(bflag=0) = %v, want -3", got)
	}
}

func TestRunDivideByZero(t *testing.T) {
	p := block.Compose([]*block.Block{
		block.NewSet(block.OutVar, block.BlockValue(block.NewBlock(block.KindDivide,
			block.NumberValue(5), block.NumberValue(0)))),
	}, nil)

	if got := Run(p, nil); !math.IsInf(got, 1) {
		t.Errorf("Run = %v, want +Inf", got)
	}
}

func TestRunDeterminism(t *testing.T) {
	p := block.Compose([]*block.Block{
		block.NewSet("v0", block.BlockValue(block.NewBlock(block.KindPower,
			block.VariableValue("x"), block.NumberValue(2)))),
		block.NewSet("b0", block.BlockValue(block.NewBlock(block.KindCompare,
			block.VariableValue("v0"), block.OperatorValue(block.OpGreaterEqual), block.VariableValue("y")))),
		block.NewIf(block.VariableValue("b0"),
			[]*block.Block{block.NewSet("v0", block.BlockValue(block.NewBlock(block.KindSubtract,
				block.VariableValue("v0"), block.VariableValue("y"))))}),
		block.NewSet(block.OutVar, block.VariableValue("v0")),
	}, []string{"x", "y"})
	inputs := map[string]float64{"x": 3, "y": 4}

	first := Run(p, inputs)
	if first != 5 { // 3^2 = 9, 9 >= 4, 9-4 = 5
		t.Fatalf("Run = %v, want 5", first)
	}
	for i := 0; i < 100; i++ {
		if got := Run(p, inputs); got != first {
			t.Fatalf("run %d: Run = %v, want %v", i, got, first)
		}
	}
}

// ---------------------------------------------------------------------------
// Resolve tests
// ---------------------------------------------------------------------------

func TestResolveDefaults(t *testing.T) {
	env := NewEnv([]string{"x"}, map[string]float64{"x": 2})

	tests := []struct {
		name string
		v    block.Value
		want block.Type
		out  block.Value
	}{
		{"number literal", block.NumberValue(4), block.TypeNumber, block.NumberValue(4)},
		{"numeric variable", block.VariableValue("x"), block.TypeNumber, block.NumberValue(2)},
		{"undefined variable", block.VariableValue("v9"), block.TypeNumber, block.NumberValue(0)},
		{"bool in numeric slot", block.BoolValue(true), block.TypeNumber, block.NumberValue(0)},
		{"numeric var in boolean slot", block.VariableValue("x"), block.TypeBoolean, block.BoolValue(false)},
		{"undefined boolean variable", block.VariableValue("b9"), block.TypeBoolean, block.BoolValue(false)},
		{"number in boolean slot", block.NumberValue(1), block.TypeBoolean, block.BoolValue(false)},
		{"operator passes through", block.OperatorValue(block.OpLess), block.TypeOperator, block.OperatorValue(block.OpLess)},
		{"variable token passes through", block.VariableValue("x"), block.TypeVariable, block.VariableValue("x")},
	}

	for _, tt := range tests {
		if got := Resolve(tt.v, tt.want, env); !got.Equal(tt.out) {
			t.Errorf("%s: Resolve = %v, want %v", tt.name, got, tt.out)
		}
	}
}

func TestResolveNestedBlock(t *testing.T) {
	env := NewEnv(nil, nil)

	sum := block.BlockValue(block.NewBlock(block.KindAdd,
		block.NumberValue(2), block.NumberValue(3)))
	if got := Resolve(sum, block.TypeNumber, env); got.Number() != 5 {
		t.Errorf("Resolve nested add = %v, want 5", got)
	}

	// A numeric nested block in a boolean slot degrades to false.
	if got := Resolve(sum, block.TypeBoolean, env); got.Bool() != false {
		t.Errorf("Resolve nested add as boolean = %v, want false", got)
	}
}

// ---------------------------------------------------------------------------
// Execute tests
// ---------------------------------------------------------------------------

func TestExecuteGet(t *testing.T) {
	env := NewEnv(nil, nil)
	env.Bind("v1", block.NumberValue(9))

	got := Execute(block.NewBlock(block.KindGet, block.VariableValue("v1")), env)
	if got.Number() != 9 {
		t.Errorf("get v1 = %v, want 9", got)
	}

	got = Execute(block.NewBlock(block.KindGet, block.VariableValue("v8")), env)
	if got.Number() != 0 {
		t.Errorf("get of unbound variable = %v, want 0", got)
	}
}

func TestExecuteUnknownKindDefaults(t *testing.T) {
	env := NewEnv(nil, nil)
	got := Execute(&block.Block{Kind: block.Kind(999)}, env)
	if !got.IsNumber() || got.Number() != 0 {
		t.Errorf("unknown kind = %v, want 0", got)
	}
}

func TestExecuteMalformedArityDefaults(t *testing.T) {
	env := NewEnv(nil, nil)

	got := Execute(block.NewBlock(block.KindAdd, block.NumberValue(1)), env)
	if !got.IsNumber() || got.Number() != 0 {
		t.Errorf("malformed add = %v, want 0", got)
	}

	got = Execute(block.NewBlock(block.KindAnd, block.BoolValue(true)), env)
	if !got.IsBool() || got.Bool() != false {
		t.Errorf("malformed and = %v, want false", got)
	}
}

func TestExecuteSetBindsByNamingConvention(t *testing.T) {
	env := NewEnv(nil, nil)

	Execute(block.NewSet("v0", block.NumberValue(3)), env)
	if got, ok := env.Number("v0"); !ok || got != 3 {
		t.Errorf("v0 = %v/%v, want 3/true", got, ok)
	}

	Execute(block.NewSet("b0", block.BoolValue(true)), env)
	if got, ok := env.Bool("b0"); !ok || got != true {
		t.Errorf("b0 = %v/%v, want true/true", got, ok)
	}

	// A numeric value assigned to a boolean-named target defaults to false.
	Execute(block.NewSet("b1", block.NumberValue(5)), env)
	if got, ok := env.Bool("b1"); !ok || got != false {
		t.Errorf("b1 = %v/%v, want false/true", got, ok)
	}
}
