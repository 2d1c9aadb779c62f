// Progeny CLI - evolves block programs against a bundled target function.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/Hoffee-Toffee/Progeny/archive"
	"github.com/Hoffee-Toffee/Progeny/block"
	"github.com/Hoffee-Toffee/Progeny/evo"
	"github.com/Hoffee-Toffee/Progeny/manifest"
	"github.com/Hoffee-Toffee/Progeny/problem"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	configDir := flag.String("config", "", "Directory containing progeny.toml (default: walk up from the working directory)")
	problemName := flag.String("problem", "", "Problem to evolve against (overrides the manifest)")
	seed := flag.Int64("seed", 0, "Engine random seed (overrides the manifest; 0 draws from the clock)")
	dbPath := flag.String("db", "", "Archive database path (overrides the manifest and enables archiving)")
	verbose := flag.Bool("v", false, "Verbose output")
	list := flag.Bool("list", false, "List bundled problems and exit")
	asJSON := flag.Bool("json", false, "Print the best program as JSON instead of a listing")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: progeny [options]\n\n")
		fmt.Fprintf(os.Stderr, "Evolves block programs toward a named target function and prints the best one found.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  progeny                          # Run with progeny.toml (or defaults)\n")
		fmt.Fprintf(os.Stderr, "  progeny -problem sum3 -seed 42   # Reproducible run against x+y+z\n")
		fmt.Fprintf(os.Stderr, "  progeny -db runs.db -v           # Archive every generation, verbose logs\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	if *list {
		fmt.Println(strings.Join(problem.Names(), "\n"))
		return
	}

	m, err := loadManifest(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *problemName != "" {
		m.Problem.Name = *problemName
	}
	if *seed != 0 {
		m.Engine.Seed = *seed
	}
	if *dbPath != "" {
		m.Archive.Enabled = true
		m.Archive.Path = *dbPath
	}

	prob, ok := problem.Lookup(m.Problem.Name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown problem %q. Bundled problems: %s\n",
			m.Problem.Name, strings.Join(problem.Names(), ", "))
		os.Exit(1)
	}

	var sink evo.Sink
	if m.Archive.Enabled {
		store, err := archive.Open(m.ArchivePath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		sink = store
	}

	engine, err := evo.New(m.EngineConfig(), sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := engine.Run(context.Background(), prob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run ended early: %v\n", err)
	}

	fmt.Printf("problem %s: best fitness %.6f (trial %d, %d generations, %s)\n",
		result.Problem, result.BestFitness, result.BestTrial, result.Generations, result.Elapsed)
	if *asJSON {
		data, err := block.MarshalProgram(result.Best)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serializing best program: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(block.Render(result.Best))
	}
}

// loadManifest resolves the run configuration: an explicit -config directory,
// else the nearest progeny.toml above the working directory, else defaults.
func loadManifest(configDir string) (*manifest.Manifest, error) {
	if configDir != "" {
		return manifest.Load(configDir)
	}
	m, err := manifest.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = manifest.Default()
	}
	return m, nil
}
