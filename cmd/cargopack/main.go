// Command cargopack loads a manifest of air-cargo packages into a fleet
// of ULDs and writes the resulting placements.
//
// Usage:
//
//	cargopack <input-path> <output-path> <verbosity>
//
// verbosity "1" enables diagnostic logging on stderr; any other value
// disables it. Exit code 0 on success, nonzero on I/O, parse, or
// validation failure.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/airfreight/cargopack/internal/cargo"
	"github.com/airfreight/cargopack/internal/config"
	"github.com/airfreight/cargopack/internal/ioformat"
	"github.com/airfreight/cargopack/internal/model"
	"github.com/airfreight/cargopack/internal/rng"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: cargopack <input-path> <output-path> <verbosity>")
	}
	inputPath, outputPath, verbosity := args[0], args[1], args[2]

	log := newLogger(verbosity == "1")

	inFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("cargopack: opening input: %w", err)
	}
	defer inFile.Close()

	parsed, err := ioformat.Parse(inFile)
	if err != nil {
		return fmt.Errorf("cargopack: parsing input: %w", err)
	}
	log.Debug().Int("ulds", len(parsed.ULDs)).Int("packages", len(parsed.Packages)).Msg("input parsed")

	cfg := cargo.DefaultConfig()
	cfg.K = parsed.K
	overrides, err := config.Load(config.PathFor(inputPath))
	if err != nil {
		return fmt.Errorf("cargopack: loading run configuration: %w", err)
	}
	cfg = overrides.Apply(cfg)

	seed := time.Now().UnixNano()
	manager := cargo.NewManager(parsed.ULDs, parsed.Packages, cfg, rng.New(seed), log)

	verdict := manager.Run(context.Background())
	if !verdict.Valid {
		return fmt.Errorf("cargopack: invalid loading: %v", verdict.Errors)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("cargopack: creating output: %w", err)
	}
	defer outFile.Close()

	result := ioformat.Result{
		TotalCost:        verdict.Total,
		NumLoaded:        countLoaded(parsed.Packages),
		PriorityULDCount: verdict.PriorityULDCount,
	}
	if err := ioformat.Write(outFile, result, parsed.Packages); err != nil {
		return fmt.Errorf("cargopack: writing output: %w", err)
	}

	log.Debug().Int("total_cost", verdict.Total).Msg("run complete")
	return nil
}

func countLoaded(packages []*model.Package) int {
	n := 0
	for _, p := range packages {
		if p.Loaded() {
			n++
		}
	}
	return n
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}
