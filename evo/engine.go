package evo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/Hoffee-Toffee/Progeny/block"
	"github.com/Hoffee-Toffee/Progeny/gen"
	"github.com/Hoffee-Toffee/Progeny/problem"
)

var log = commonlog.GetLogger("progeny.evo")

// ErrConfig marks an invalid engine configuration.
var ErrConfig = errors.New("invalid engine configuration")

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// Config parameterizes one engine. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// PopulationSize is the number of programs per generation.
	PopulationSize int

	// MaxGenerations bounds the evaluate/select/breed cycles per trial.
	MaxGenerations int

	// Trials is the number of independent restarts; the best program across
	// all trials is returned.
	Trials int

	// EvaluationCases is the number of test cases drawn per batch.
	EvaluationCases int

	// EvaluationBatches is the number of independent case batches a
	// program's fitness is averaged over. Variance reduction, not
	// correctness.
	EvaluationBatches int

	// MutationRate is the probability a bred child is mutated.
	MutationRate float64

	// MaxProgramBlocks caps a program's total statement count, trailing
	// Return included.
	MaxProgramBlocks int

	// Elites is the number of top survivors cloned unchanged into the next
	// generation.
	Elites int

	// Workers bounds concurrent fitness evaluation. Zero means GOMAXPROCS.
	Workers int

	// Seed fixes the engine's random stream. Zero draws from the clock.
	Seed int64

	// TargetFitness stops the run early once the best fitness reaches it.
	// Zero disables early stopping.
	TargetFitness float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		PopulationSize:    100,
		MaxGenerations:    50,
		Trials:            3,
		EvaluationCases:   20,
		EvaluationBatches: 1,
		MutationRate:      0.3,
		MaxProgramBlocks:  30,
		Elites:            1,
	}
}

// Validate reports the first configuration problem found, wrapped around
// ErrConfig.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize < 2:
		return fmt.Errorf("%w: population size %d, need at least 2", ErrConfig, c.PopulationSize)
	case c.MaxGenerations < 1:
		return fmt.Errorf("%w: max generations %d, need at least 1", ErrConfig, c.MaxGenerations)
	case c.Trials < 1:
		return fmt.Errorf("%w: trials %d, need at least 1", ErrConfig, c.Trials)
	case c.EvaluationCases < 1:
		return fmt.Errorf("%w: evaluation cases %d, need at least 1", ErrConfig, c.EvaluationCases)
	case c.EvaluationBatches < 1:
		return fmt.Errorf("%w: evaluation batches %d, need at least 1", ErrConfig, c.EvaluationBatches)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate %v outside [0,1]", ErrConfig, c.MutationRate)
	case c.MaxProgramBlocks < 2:
		return fmt.Errorf("%w: max program blocks %d, need at least 2", ErrConfig, c.MaxProgramBlocks)
	case c.Elites < 0 || c.Elites > c.PopulationSize/2:
		return fmt.Errorf("%w: elites %d outside [0, population/2]", ErrConfig, c.Elites)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d negative", ErrConfig, c.Workers)
	case c.TargetFitness < 0 || c.TargetFitness > 1:
		return fmt.Errorf("%w: target fitness %v outside [0,1]", ErrConfig, c.TargetFitness)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// ---------------------------------------------------------------------------
// Sink: append-only run observer
// ---------------------------------------------------------------------------

// RunInfo identifies a run at its start.
type RunInfo struct {
	RunID     string
	Problem   string
	Config    Config
	StartedAt time.Time
}

// GenerationStats summarizes one evaluated generation.
type GenerationStats struct {
	RunID       string
	Trial       int
	Generation  int
	BestFitness float64
	MeanFitness float64

	// Best points at the generation's fittest program. Programs are never
	// structurally modified after creation, so holding the pointer is safe.
	Best *block.Program

	// Population is the evaluated generation, fittest first.
	Population []*block.Program

	// Lineage traces each population member to the survivors it was bred
	// from. Empty for a trial's first, freshly randomized generation.
	Lineage []LineageRecord
}

// LineageRecord traces one bred program to its parents.
type LineageRecord struct {
	Child   string
	Parents []string
	Elite   bool
	Mutated bool
}

// TrialStats summarizes one completed (or abandoned) trial.
type TrialStats struct {
	Trial       int
	BestFitness float64
	Generations int

	// BestByGeneration is the best fitness observed per generation, in
	// order — the trial's convergence curve.
	BestByGeneration []float64
}

// Result is the outcome of a whole run.
type Result struct {
	RunID       string
	Problem     string
	Best        *block.Program
	BestFitness float64
	BestTrial   int
	Generations int
	Trials      []TrialStats
	Elapsed     time.Duration
}

// Sink receives run progress. Implementations must tolerate being called
// once per generation; the engine never reads anything back.
type Sink interface {
	Started(run RunInfo)
	Generation(stats GenerationStats)
	Finished(result *Result)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Started(RunInfo)            {}
func (NopSink) Generation(GenerationStats) {}
func (NopSink) Finished(*Result)           {}

// MultiSink fans out to several sinks in order.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Started(run RunInfo) {
	for _, s := range m {
		s.Started(run)
	}
}

func (m multiSink) Generation(stats GenerationStats) {
	for _, s := range m {
		s.Generation(stats)
	}
}

func (m multiSink) Finished(result *Result) {
	for _, s := range m {
		s.Finished(result)
	}
}

// ---------------------------------------------------------------------------
// Engine
// ---------------------------------------------------------------------------

// Engine runs the evolutionary loop. Construct with New; an Engine is bound
// to one random stream and must not be shared across goroutines.
type Engine struct {
	cfg  Config
	sink Sink
	rng  *rand.Rand
	gen  *gen.Generator

	// lineage holds the breeding records for the population currently being
	// evaluated; report attaches them to the generation's stats.
	lineage []LineageRecord
}

// New validates cfg and builds an engine reporting to sink (nil for none).
func New(cfg Config, sink Sink) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Engine{cfg: cfg, sink: sink, rng: rng, gen: gen.New(rng)}, nil
}

// Run evolves programs against prob until the trial budget is exhausted, the
// target fitness is reached, or ctx is canceled. It always returns the best
// program found so far; the error is non-nil only when ctx ended the run
// early.
func (e *Engine) Run(ctx context.Context, prob *problem.Problem) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:   uuid.NewString(),
		Problem: prob.Name,
	}
	e.sink.Started(RunInfo{
		RunID:     result.RunID,
		Problem:   prob.Name,
		Config:    e.cfg,
		StartedAt: start,
	})
	log.Infof("run %s: problem %s, %d trials x %d generations, population %d",
		result.RunID, prob.Name, e.cfg.Trials, e.cfg.MaxGenerations, e.cfg.PopulationSize)

	var runErr error
	for trial := 0; trial < e.cfg.Trials; trial++ {
		best, stats, err := e.runTrial(ctx, result.RunID, trial, prob)
		result.Trials = append(result.Trials, stats)
		result.Generations += stats.Generations
		if best != nil && (result.Best == nil || stats.BestFitness > result.BestFitness) {
			result.Best = best
			result.BestFitness = stats.BestFitness
			result.BestTrial = trial
		}
		if err != nil {
			runErr = err
			break
		}
		if e.stopEarly(result.BestFitness) {
			log.Infof("run %s: target fitness %v reached after trial %d",
				result.RunID, e.cfg.TargetFitness, trial)
			break
		}
	}

	if result.Best == nil {
		// Every trial was abandoned before scoring anything.
		result.Best = block.Trivial(prob.InputNames())
	}
	result.Elapsed = time.Since(start)
	e.sink.Finished(result)
	log.Infof("run %s: best fitness %.6f from trial %d after %d generations in %s",
		result.RunID, result.BestFitness, result.BestTrial, result.Generations, result.Elapsed)
	return result, runErr
}

// runTrial executes one independent restart: a fresh population evolved for
// up to MaxGenerations. It returns the trial's best program, the trial's
// summary, and ctx's error if canceled.
func (e *Engine) runTrial(ctx context.Context, runID string, trial int, prob *problem.Problem) (*block.Program, TrialStats, error) {
	inputVars := prob.InputNames()
	population := e.initialize(inputVars)

	var best *block.Program
	trialStats := TrialStats{Trial: trial}

	for generation := 0; generation < e.cfg.MaxGenerations; generation++ {
		if err := ctx.Err(); err != nil {
			return best, trialStats, err
		}

		scored, err := e.evaluate(ctx, population, prob)
		if err != nil {
			return best, trialStats, err
		}

		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].fitness > scored[j].fitness
		})
		survivors := scored[:len(scored)/2]

		stats := e.report(runID, trial, generation, scored)
		trialStats.Generations = generation + 1
		trialStats.BestByGeneration = append(trialStats.BestByGeneration, stats.BestFitness)
		if best == nil || stats.BestFitness > trialStats.BestFitness {
			best = stats.Best
			trialStats.BestFitness = stats.BestFitness
		}
		if e.stopEarly(trialStats.BestFitness) {
			return best, trialStats, nil
		}

		population = e.breed(survivors, inputVars)
		if len(population) == 0 {
			log.Warningf("trial %d: empty population after breeding, re-initializing", trial)
			population = e.initialize(inputVars)
			if len(population) == 0 {
				log.Errorf("trial %d: population empty after re-initialization, abandoning trial", trial)
				return best, trialStats, nil
			}
		}
	}
	return best, trialStats, nil
}

// initialize builds a fresh random population. Fresh programs have no
// parents, so any pending lineage is discarded.
func (e *Engine) initialize(inputVars []string) []*block.Program {
	e.lineage = nil
	population := make([]*block.Program, 0, e.cfg.PopulationSize)
	for i := 0; i < e.cfg.PopulationSize; i++ {
		population = append(population, e.gen.Program(inputVars))
	}
	return population
}

// breed forms the next generation: elite clones first, then crossover
// children from random survivor pairs, mutated with MutationRate. Lineage
// records for the bred population are held for the next report.
func (e *Engine) breed(survivors []scoredProgram, inputVars []string) []*block.Program {
	if len(survivors) == 0 {
		return nil
	}
	next := make([]*block.Program, 0, e.cfg.PopulationSize)
	lineage := make([]LineageRecord, 0, e.cfg.PopulationSize)
	for i := 0; i < e.cfg.Elites && i < len(survivors); i++ {
		clone := survivors[i].program.Clone()
		next = append(next, clone)
		lineage = append(lineage, LineageRecord{
			Child:   clone.ID,
			Parents: []string{survivors[i].program.ID},
			Elite:   true,
		})
	}
	for len(next) < e.cfg.PopulationSize {
		p1 := survivors[e.rng.Intn(len(survivors))].program
		p2 := survivors[e.rng.Intn(len(survivors))].program
		child := e.Crossover(p1, p2)
		mutated := e.rng.Float64() < e.cfg.MutationRate
		if mutated {
			child = e.Mutate(child)
		}
		next = append(next, child)
		lineage = append(lineage, LineageRecord{
			Child:   child.ID,
			Parents: []string{p1.ID, p2.ID},
			Mutated: mutated,
		})
	}
	e.lineage = lineage
	return next
}

// report logs one generation and emits it to the sink. scored must be sorted
// fittest first.
func (e *Engine) report(runID string, trial, generation int, scored []scoredProgram) GenerationStats {
	var sum float64
	population := make([]*block.Program, len(scored))
	for i, s := range scored {
		sum += s.fitness
		population[i] = s.program
	}
	stats := GenerationStats{
		RunID:       runID,
		Trial:       trial,
		Generation:  generation,
		BestFitness: scored[0].fitness,
		MeanFitness: sum / float64(len(scored)),
		Best:        scored[0].program,
		Population:  population,
		Lineage:     e.lineage,
	}
	e.lineage = nil
	log.Infof("trial %d generation %d: best %.6f mean %.6f",
		trial, generation, stats.BestFitness, stats.MeanFitness)
	log.Debugf("trial %d generation %d best program:\n%s",
		trial, generation, block.Render(stats.Best))
	e.sink.Generation(stats)
	return stats
}

func (e *Engine) stopEarly(bestFitness float64) bool {
	return e.cfg.TargetFitness > 0 && bestFitness >= e.cfg.TargetFitness
}
