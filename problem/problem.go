// Package problem supplies named target functions for the engine to evolve
// against: an input schema plus a case generator producing fresh
// (inputs, expected) pairs from a problem-owned random source.
package problem

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Input is one entry of a problem's input schema. Boolean inputs carry a
// b-prefixed name so the block naming convention types them correctly.
type Input struct {
	Name    string
	Boolean bool
}

// Case is one generated test case: concrete input values and the target
// output. Boolean inputs are encoded as 0/1.
type Case struct {
	Inputs   map[string]float64
	Expected float64
}

// Problem is a named target function. The case generator draws from a
// problem-owned random source, independent of the engine's; Reseed pins it
// for reproducible tests. Not safe for concurrent use — the engine generates
// cases on its coordinating goroutine only.
type Problem struct {
	Name   string
	Inputs []Input

	target func(inputs map[string]float64) float64
	rng    *rand.Rand
}

// InputNames returns the schema's variable names in order.
func (p *Problem) InputNames() []string {
	names := make([]string, len(p.Inputs))
	for i, in := range p.Inputs {
		names[i] = in.Name
	}
	return names
}

// GenerateCases draws count fresh cases: each input uniform over small
// integers (0–9, or 0/1 for booleans), expected computed by the target
// function.
func (p *Problem) GenerateCases(count int) []Case {
	cases := make([]Case, count)
	for i := range cases {
		inputs := make(map[string]float64, len(p.Inputs))
		for _, in := range p.Inputs {
			if in.Boolean {
				inputs[in.Name] = float64(p.rng.Intn(2))
			} else {
				inputs[in.Name] = float64(p.rng.Intn(10))
			}
		}
		cases[i] = Case{Inputs: inputs, Expected: p.target(inputs)}
	}
	return cases
}

// Reseed pins the problem's case stream to a fixed seed.
func (p *Problem) Reseed(seed int64) {
	p.rng = rand.New(rand.NewSource(seed))
}

// ---------------------------------------------------------------------------
// Bundled problems
// ---------------------------------------------------------------------------

var builders = map[string]func() *Problem{
	"sum3": func() *Problem {
		return newProblem("sum3",
			[]Input{{Name: "x"}, {Name: "y"}, {Name: "z"}},
			func(in map[string]float64) float64 { return in["x"] + in["y"] + in["z"] })
	},
	"diff2": func() *Problem {
		return newProblem("diff2",
			[]Input{{Name: "x"}, {Name: "y"}},
			func(in map[string]float64) float64 { return in["x"] - in["y"] })
	},
	"prod2": func() *Problem {
		return newProblem("prod2",
			[]Input{{Name: "x"}, {Name: "y"}},
			func(in map[string]float64) float64 { return in["x"] * in["y"] })
	},
	"absdiff": func() *Problem {
		return newProblem("absdiff",
			[]Input{{Name: "x"}, {Name: "y"}},
			func(in map[string]float64) float64 { return math.Abs(in["x"] - in["y"]) })
	},
	"max2": func() *Problem {
		return newProblem("max2",
			[]Input{{Name: "x"}, {Name: "y"}},
			func(in map[string]float64) float64 { return math.Max(in["x"], in["y"]) })
	},
	"pick2": func() *Problem {
		return newProblem("pick2",
			[]Input{{Name: "x"}, {Name: "y"}, {Name: "bfirst", Boolean: true}},
			func(in map[string]float64) float64 {
				if in["bfirst"] != 0 {
					return in["x"]
				}
				return in["y"]
			})
	},
}

func newProblem(name string, inputs []Input, target func(map[string]float64) float64) *Problem {
	return &Problem{
		Name:   name,
		Inputs: inputs,
		target: target,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Lookup returns a fresh instance of the named problem — each caller gets
// its own case stream.
func Lookup(name string) (*Problem, bool) {
	build, ok := builders[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names lists the bundled problem names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
