// Package cargo orchestrates a complete loading run: Crainic ordering,
// a priority genetic-algorithm stage, an economy stage, an ad-hoc
// residual-fill pass, and final validation.
package cargo

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/airfreight/cargopack/internal/crainic"
	"github.com/airfreight/cargopack/internal/ems"
	"github.com/airfreight/cargopack/internal/ga"
	"github.com/airfreight/cargopack/internal/geometry"
	"github.com/airfreight/cargopack/internal/model"
	"github.com/airfreight/cargopack/internal/rng"
	"github.com/airfreight/cargopack/internal/validate"
)

// Config holds the manager's run-level parameters.
type Config struct {
	K                      int
	GA                     ga.Config
	PriorityContainerCount int
	EconomyWindow          int
}

// DefaultConfig returns the manager's default knobs.
func DefaultConfig() Config {
	return Config{
		K:                      1,
		GA:                     ga.DefaultConfig(),
		PriorityContainerCount: 3,
		EconomyWindow:          150,
	}
}

// Manager holds the master ULD and package state for one run and
// commits genetic-algorithm results back into it.
type Manager struct {
	ulds     []*model.ULD
	packages []*model.Package
	uldByID  map[string]*model.ULD
	pkgByID  map[string]*model.Package

	cfg Config
	rng *rng.Source
	log zerolog.Logger
}

// NewManager builds a Manager over the master ULD and package state for
// one run.
func NewManager(ulds []*model.ULD, packages []*model.Package, cfg Config, src *rng.Source, log zerolog.Logger) *Manager {
	uldByID := make(map[string]*model.ULD, len(ulds))
	for _, u := range ulds {
		uldByID[u.ID] = u
	}
	pkgByID := make(map[string]*model.Package, len(packages))
	for _, p := range packages {
		pkgByID[p.ID] = p
	}
	return &Manager{
		ulds:     ulds,
		packages: packages,
		uldByID:  uldByID,
		pkgByID:  pkgByID,
		cfg:      cfg,
		rng:      src,
		log:      log,
	}
}

// Run executes the full orchestration and returns the validator's
// verdict over the committed placements. Every log line emitted during
// the run carries a fresh run id, so overlapping runs in the same
// process stay distinguishable in diagnostic output.
func (m *Manager) Run(ctx context.Context) validate.Verdict {
	runLog := m.log.With().Str("run_id", uuid.New().String()).Logger()

	var priority, economy []*model.Package
	for _, p := range m.packages {
		if p.Priority {
			priority = append(priority, p)
		} else {
			economy = append(economy, p)
		}
	}

	orderedPriority := m.crainicOrder(priority)
	orderedEconomy := m.crainicOrder(economy)
	runLog.Debug().Int("priority", len(orderedPriority)).Int("economy", len(orderedEconomy)).Msg("crainic ordering complete")

	designated := m.designateContainers(len(orderedPriority))
	priorityBaseline := m.snapshotAll(designated)
	priorityOutcome := ga.Run(ctx, orderedPriority, priorityBaseline, m.cfg.GA, m.rng)
	m.commit(priorityOutcome, designated)
	runLog.Debug().Float64("fitness", priorityOutcome.Best.Fitness).Msg("priority stage complete")

	unused := m.unusedContainers(designated)
	window := m.economyWindow(orderedEconomy)
	economyBaseline := m.snapshotAll(unused)
	economyOutcome := ga.Run(ctx, window, economyBaseline, m.cfg.GA, m.rng)
	m.commit(economyOutcome, unused)
	runLog.Debug().Float64("fitness", economyOutcome.Best.Fitness).Msg("economy stage complete")

	m.residualFill()

	return validate.Validate(m.ulds, m.packages, m.cfg.K)
}

// crainicOrder runs the Crainic ordering heuristic over packages and
// reorients each one to its assigned up-axis, returning them in the
// assigned sequence.
func (m *Manager) crainicOrder(packages []*model.Package) []*model.Package {
	assignments := crainic.Order(packages, m.rng, crainic.GroupAscending)
	ordered := make([]*model.Package, 0, len(assignments))
	for _, a := range assignments {
		p := m.pkgByID[a.PackageID]
		p.Reorient(a.ZIndex)
		ordered = append(ordered, p)
	}
	return ordered
}

// designateContainers picks the PriorityContainerCount largest ULDs by
// volume for the priority stage. With no priority packages to place,
// nothing is reserved and the whole fleet stays available to economy.
func (m *Manager) designateContainers(priorityCount int) []*model.ULD {
	if priorityCount == 0 {
		return nil
	}
	sorted := make([]*model.ULD, len(m.ulds))
	copy(sorted, m.ulds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Volume() > sorted[j].Volume()
	})
	n := m.cfg.PriorityContainerCount
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// unusedContainers returns the ULDs not designated for the priority
// stage, so the economy GA's candidate pool never reaches into a
// container the priority stage already claimed.
func (m *Manager) unusedContainers(designated []*model.ULD) []*model.ULD {
	claimed := make(map[string]bool, len(designated))
	for _, u := range designated {
		claimed[u.ID] = true
	}
	out := make([]*model.ULD, 0, len(m.ulds)-len(designated))
	for _, u := range m.ulds {
		if !claimed[u.ID] {
			out = append(out, u)
		}
	}
	return out
}

// economyWindow ranks economy packages by delay / volume^1.2 descending,
// takes the top EconomyWindow, and shuffles that window.
func (m *Manager) economyWindow(ordered []*model.Package) []*model.Package {
	ranked := make([]*model.Package, len(ordered))
	copy(ranked, ordered)
	sort.SliceStable(ranked, func(i, j int) bool {
		return economyScore(ranked[i]) > economyScore(ranked[j])
	})

	n := m.cfg.EconomyWindow
	if n > len(ranked) {
		n = len(ranked)
	}
	window := ranked[:n]
	m.rng.Shuffle(len(window), func(i, j int) { window[i], window[j] = window[j], window[i] })
	return window
}

func economyScore(p *model.Package) float64 {
	vol := float64(p.Volume())
	if vol <= 0 {
		return 0
	}
	return float64(p.Delay) / math.Pow(vol, 1.2)
}

// snapshotAll builds a fresh ContainerSnapshot for each ULD, seeded with
// whatever packages are already committed as loaded there.
func (m *Manager) snapshotAll(ulds []*model.ULD) []model.ContainerSnapshot {
	out := make([]model.ContainerSnapshot, len(ulds))
	for i, u := range ulds {
		snap := model.NewContainerSnapshot(u)
		for _, id := range u.LoadedIDs() {
			p := m.pkgByID[id]
			box, ok := p.Box()
			if !ok {
				continue
			}
			snap.RecordPlacement(p.ID, box.Origin, box.Size, p.Weight)
			snap.EMS = ems.Update(snap.EMS, box)
		}
		out[i] = snap
	}
	return out
}

// commit writes a GA outcome's placements back into the master ULD and
// package state. containers must be the same slice (order and contents)
// passed as the GA's baseline.
func (m *Manager) commit(outcome ga.Outcome, containers []*model.ULD) {
	for i, snap := range outcome.Containers {
		if len(snap.PlacedBoxIDs) == 0 {
			continue
		}
		masterULD := containers[i]
		for _, boxID := range snap.PlacedBoxIDs {
			p := m.pkgByID[boxID]
			if p.Loaded() {
				continue
			}
			origin := snap.PlacedOrigins[boxID]
			size := snap.PlacedSize[boxID]
			p.Place(masterULD.ID, geometry.NewBox3(origin, size))
			masterULD.MarkLoaded(boxID)
		}
	}
}
