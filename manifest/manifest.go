// Package manifest handles progeny.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Hoffee-Toffee/Progeny/evo"
)

// File is the manifest file name looked for in a run directory.
const File = "progeny.toml"

// Manifest represents a progeny.toml run configuration.
type Manifest struct {
	Problem Problem       `toml:"problem"`
	Engine  Engine        `toml:"engine"`
	Archive ArchiveConfig `toml:"archive"`

	// Dir is the directory containing the progeny.toml file (set at load time).
	Dir string `toml:"-"`
}

// Problem names the target function to evolve against.
type Problem struct {
	Name string `toml:"name"`
}

// Engine carries the evolutionary-loop knobs. Absent keys keep the engine's
// documented defaults.
type Engine struct {
	PopulationSize    int     `toml:"population-size"`
	MaxGenerations    int     `toml:"max-generations"`
	Trials            int     `toml:"trials"`
	EvaluationCases   int     `toml:"evaluation-cases"`
	EvaluationBatches int     `toml:"evaluation-batches"`
	MutationRate      float64 `toml:"mutation-rate"`
	MaxProgramBlocks  int     `toml:"max-program-blocks"`
	Elites            int     `toml:"elites"`
	Workers           int     `toml:"workers"`
	Seed              int64   `toml:"seed"`
	TargetFitness     float64 `toml:"target-fitness"`
}

// ArchiveConfig configures the SQLite run archive.
type ArchiveConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns a manifest carrying the engine defaults and the bundled
// benchmark problem. Used when no progeny.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.Problem.Name = "sum3"
	m.Engine = fromConfig(evo.DefaultConfig())
	m.Archive.Path = "progeny.db"
	return m
}

// Load parses a progeny.toml file from the given directory. Defaults are
// filled in before parsing, so absent keys keep their documented values.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, File)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

// FindAndLoad walks up from startDir to find a progeny.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, File)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// EngineConfig converts the manifest's engine section to an evo.Config. The
// result still goes through evo.New's validation.
func (m *Manifest) EngineConfig() evo.Config {
	return evo.Config{
		PopulationSize:    m.Engine.PopulationSize,
		MaxGenerations:    m.Engine.MaxGenerations,
		Trials:            m.Engine.Trials,
		EvaluationCases:   m.Engine.EvaluationCases,
		EvaluationBatches: m.Engine.EvaluationBatches,
		MutationRate:      m.Engine.MutationRate,
		MaxProgramBlocks:  m.Engine.MaxProgramBlocks,
		Elites:            m.Engine.Elites,
		Workers:           m.Engine.Workers,
		Seed:              m.Engine.Seed,
		TargetFitness:     m.Engine.TargetFitness,
	}
}

// ArchivePath returns the archive database path, resolved against the
// manifest's directory when relative.
func (m *Manifest) ArchivePath() string {
	if m.Archive.Path == "" || filepath.IsAbs(m.Archive.Path) || m.Dir == "" {
		return m.Archive.Path
	}
	return filepath.Join(m.Dir, m.Archive.Path)
}

func fromConfig(c evo.Config) Engine {
	return Engine{
		PopulationSize:    c.PopulationSize,
		MaxGenerations:    c.MaxGenerations,
		Trials:            c.Trials,
		EvaluationCases:   c.EvaluationCases,
		EvaluationBatches: c.EvaluationBatches,
		MutationRate:      c.MutationRate,
		MaxProgramBlocks:  c.MaxProgramBlocks,
		Elites:            c.Elites,
		Workers:           c.Workers,
		Seed:              c.Seed,
		TargetFitness:     c.TargetFitness,
	}
}
