package cargo

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/airfreight/cargopack/internal/ga"
	"github.com/airfreight/cargopack/internal/model"
	"github.com/airfreight/cargopack/internal/rng"
)

func testConfig(k int) Config {
	cfg := DefaultConfig()
	cfg.K = k
	cfg.GA = ga.Config{NIter: 20, PopulationSize: 16, ElitismSize: 2, CrossoverProb: 0.8, MutationProb: 0.2}
	return cfg
}

func TestManagerSingleContainerExactFit(t *testing.T) {
	ulds := []*model.ULD{model.NewULD("U1", 10, 10, 10, 1000)}
	packages := []*model.Package{model.NewPackage("P1", 10, 10, 10, 100, true, 0)}

	m := NewManager(ulds, packages, testConfig(5000), rng.New(1), zerolog.Nop())
	verdict := m.Run(context.Background())

	if !verdict.Valid {
		t.Fatalf("expected a valid loading, got errors: %v", verdict.Errors)
	}
	if !packages[0].Loaded() {
		t.Fatalf("expected P1 to be loaded")
	}
	if verdict.Total != 5000 {
		t.Errorf("expected total cost 5000, got %d", verdict.Total)
	}
	if verdict.PriorityULDCount != 1 {
		t.Errorf("expected priority_uld_count 1, got %d", verdict.PriorityULDCount)
	}
}

func TestManagerRotationRequiredToFit(t *testing.T) {
	ulds := []*model.ULD{model.NewULD("U1", 10, 4, 4, 100)}
	packages := []*model.Package{model.NewPackage("P1", 4, 10, 4, 10, true, 0)}

	m := NewManager(ulds, packages, testConfig(100), rng.New(2), zerolog.Nop())
	verdict := m.Run(context.Background())

	if !verdict.Valid {
		t.Fatalf("expected a valid loading, got errors: %v", verdict.Errors)
	}
	if !packages[0].Loaded() {
		t.Fatalf("expected P1 to be loaded via a rotation")
	}
}

func TestManagerTwoEconomySideBySideBothFit(t *testing.T) {
	ulds := []*model.ULD{model.NewULD("U1", 10, 5, 5, 100)}
	packages := []*model.Package{
		model.NewPackage("P1", 5, 5, 5, 10, false, 5),
		model.NewPackage("P2", 5, 5, 5, 10, false, 9),
	}

	m := NewManager(ulds, packages, testConfig(0), rng.New(3), zerolog.Nop())
	verdict := m.Run(context.Background())

	if !verdict.Valid {
		t.Fatalf("expected a valid loading, got errors: %v", verdict.Errors)
	}
	if verdict.Total != 0 {
		t.Errorf("expected total cost 0 when both economy packages fit, got %d", verdict.Total)
	}
}

func TestManagerWeightOverflowForcesOneUnloaded(t *testing.T) {
	ulds := []*model.ULD{model.NewULD("U1", 10, 10, 10, 10)}
	packages := []*model.Package{
		model.NewPackage("P1", 5, 5, 5, 6, false, 2),
		model.NewPackage("P2", 5, 5, 5, 6, false, 2),
	}

	m := NewManager(ulds, packages, testConfig(0), rng.New(4), zerolog.Nop())
	verdict := m.Run(context.Background())

	if !verdict.Valid {
		t.Fatalf("expected a valid loading, got errors: %v", verdict.Errors)
	}
	loadedCount := 0
	for _, p := range packages {
		if p.Loaded() {
			loadedCount++
		}
	}
	if loadedCount != 1 {
		t.Fatalf("expected exactly one package loaded under weight overflow, got %d", loadedCount)
	}
	if verdict.Total != 2 {
		t.Errorf("expected total cost 2, got %d", verdict.Total)
	}
}

func TestManagerEconomyExcludedFromPriorityDesignatedContainers(t *testing.T) {
	ulds := []*model.ULD{
		model.NewULD("U1", 10, 10, 10, 1000),
		model.NewULD("U2", 10, 10, 10, 1000),
	}
	packages := []*model.Package{
		model.NewPackage("P1", 1, 1, 1, 1, true, 0),
		model.NewPackage("E1", 5, 5, 5, 1, false, 9),
	}

	cfg := testConfig(0)
	cfg.PriorityContainerCount = len(ulds)
	m := NewManager(ulds, packages, cfg, rng.New(7), zerolog.Nop())
	verdict := m.Run(context.Background())

	if !verdict.Valid {
		t.Fatalf("expected a valid loading, got errors: %v", verdict.Errors)
	}
	if pool := m.unusedContainers(m.designateContainers(1)); len(pool) != 0 {
		t.Errorf("both containers are priority-designated, so the economy stage's pool must be empty, got %d", len(pool))
	}
	if !packages[1].Loaded() {
		t.Errorf("economy package gets no economy-stage container, but residual fill covers every ULD and must place it")
	}
	if verdict.Total != 0 {
		t.Errorf("expected total cost 0 (K=0, no unloaded economy delay), got %d", verdict.Total)
	}
}

func TestManagerPrioritySpreadAcrossContainers(t *testing.T) {
	ulds := []*model.ULD{
		model.NewULD("U1", 10, 10, 10, 1000),
		model.NewULD("U2", 10, 10, 10, 1000),
	}
	packages := []*model.Package{
		model.NewPackage("P1", 10, 10, 5, 1, true, 0),
		model.NewPackage("P2", 10, 10, 5, 1, true, 0),
		model.NewPackage("P3", 10, 10, 10, 1, true, 0),
	}

	m := NewManager(ulds, packages, testConfig(100), rng.New(6), zerolog.Nop())
	verdict := m.Run(context.Background())

	if !verdict.Valid {
		t.Fatalf("expected a valid loading, got errors: %v", verdict.Errors)
	}
	loaded := 0
	for _, p := range packages {
		if p.Loaded() {
			loaded++
		}
	}
	if loaded != 3 {
		t.Errorf("expected all three priority packages loaded, got %d", loaded)
	}
	if verdict.PriorityULDCount != 2 {
		t.Errorf("expected priority_uld_count 2, got %d", verdict.PriorityULDCount)
	}
	if verdict.Total != 200 {
		t.Errorf("expected total cost 200, got %d", verdict.Total)
	}
}
