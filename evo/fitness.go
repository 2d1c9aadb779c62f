package evo

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/Hoffee-Toffee/Progeny/block"
	"github.com/Hoffee-Toffee/Progeny/interp"
	"github.com/Hoffee-Toffee/Progeny/problem"
)

// ---------------------------------------------------------------------------
// Fitness: scoring programs against generated case batches
// ---------------------------------------------------------------------------

// scoredProgram pairs a population member with its batched fitness.
type scoredProgram struct {
	program *block.Program
	fitness float64
}

// Fitness scores p over the given case batches and returns the mean of the
// per-batch scores. A batch's score is 1/(1+error) with
// error = Σ|result−expected| over its cases, bounded in (0,1] and strictly
// decreasing in error; an infinite error drives it to 0 naturally. A NaN
// result short-circuits the batch to exactly 0 — an evaluation failure, not
// a distance.
func Fitness(p *block.Program, batches [][]problem.Case) float64 {
	if len(batches) == 0 {
		return 0
	}
	var sum float64
	for _, cases := range batches {
		sum += batchFitness(p, cases)
	}
	return sum / float64(len(batches))
}

func batchFitness(p *block.Program, cases []problem.Case) float64 {
	var total float64
	for _, c := range cases {
		result := interp.Run(p, c.Inputs)
		if math.IsNaN(result) {
			return 0
		}
		total += math.Abs(result - c.Expected)
	}
	return 1 / (1 + total)
}

// evaluate scores the whole population. Case batches are drawn up front on
// the coordinating goroutine (the problem owns its RNG and is not safe for
// concurrent use); every program is scored on the same batches, fanned out
// over a bounded worker pool. Scoring order never affects results — the
// results slice is indexed by position.
func (e *Engine) evaluate(ctx context.Context, population []*block.Program, prob *problem.Problem) ([]scoredProgram, error) {
	batches := make([][]problem.Case, e.cfg.EvaluationBatches)
	for i := range batches {
		batches[i] = prob.GenerateCases(e.cfg.EvaluationCases)
	}

	scored := make([]scoredProgram, len(population))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.workers())
	for i, p := range population {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scored[i] = scoredProgram{program: p, fitness: Fitness(p, batches)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}
