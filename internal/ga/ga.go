// Package ga drives the genetic-algorithm search over (box-order,
// container-order) permutations. Each chromosome is evaluated by running
// the deterministic greedy packer and scoring the result; lower fitness
// is better.
package ga

import (
	"context"
	"sort"

	"github.com/airfreight/cargopack/internal/geometry"
	"github.com/airfreight/cargopack/internal/model"
	"github.com/airfreight/cargopack/internal/packer"
	"github.com/airfreight/cargopack/internal/rng"
)

// Config holds the genetic algorithm's hyperparameters.
type Config struct {
	NIter          int
	PopulationSize int
	ElitismSize    int
	CrossoverProb  float64
	MutationProb   float64
}

// DefaultConfig returns reasonable defaults for a single GA run.
func DefaultConfig() Config {
	return Config{
		NIter:          100,
		PopulationSize: 50,
		ElitismSize:    2,
		CrossoverProb:  0.8,
		MutationProb:   0.15,
	}
}

// Outcome is the result of a completed GA run: the winning chromosome,
// re-evaluated on a fresh container snapshot so its placements can be
// committed by the caller.
type Outcome struct {
	Best       model.Chromosome
	Containers []model.ContainerSnapshot
	Boxes      []model.Box
}

// evalSet is the fixed input a chromosome is evaluated against: the
// packages and the containers' starting state (which may already carry
// placements from an earlier stage) never change across generations,
// only the order the chromosome proposes trying them in.
type evalSet struct {
	packages []*model.Package
	baseline []model.ContainerSnapshot
}

// Run evolves a population of chromosomes over packages against
// baseContainers and returns the best one found, replayed on a fresh
// copy of that baseline so the caller can commit its placements.
// baseContainers may already hold placements from a prior stage (e.g.
// priority packages loaded before an economy run); Run never mutates the
// slice passed in. packages are expected to already carry their
// Crainic-assigned orientation; Run does not reorient them.
func Run(ctx context.Context, packages []*model.Package, baseContainers []model.ContainerSnapshot, cfg Config, src *rng.Source) Outcome {
	if len(packages) == 0 || len(baseContainers) == 0 {
		return Outcome{Best: model.Chromosome{Fitness: 1.0}}
	}

	set := evalSet{packages: packages, baseline: baseContainers}
	population := initPopulation(packages, len(baseContainers), cfg, src)
	for i := range population {
		population[i].Fitness = evaluateFitness(set, population[i])
	}

generations:
	for gen := 0; gen < cfg.NIter; gen++ {
		select {
		case <-ctx.Done():
			break generations
		default:
		}

		sort.SliceStable(population, func(i, j int) bool {
			return population[i].Fitness < population[j].Fitness
		})

		eliteCount := cfg.ElitismSize
		if eliteCount > len(population) {
			eliteCount = len(population)
		}
		next := make([]model.Chromosome, 0, cfg.PopulationSize)
		for i := 0; i < eliteCount; i++ {
			next = append(next, population[i].Clone())
		}

		for len(next) < cfg.PopulationSize {
			parent1 := tournamentSelect(population, src)
			parent2 := tournamentSelect(population, src)

			child1, child2 := parent1, parent2
			if src.Float64() < cfg.CrossoverProb {
				child1, child2 = crossoverPair(parent1, parent2, src)
			}
			mutate(&child1, src, cfg.MutationProb)
			mutate(&child2, src, cfg.MutationProb)

			child1.Fitness = evaluateFitness(set, child1)
			next = append(next, child1)
			if len(next) < cfg.PopulationSize {
				child2.Fitness = evaluateFitness(set, child2)
				next = append(next, child2)
			}
		}

		population = next
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].Fitness < population[j].Fitness
	})
	best := population[0]
	containers, boxes := replay(set, best)
	best.Fitness = packer.Fitness(containers, boxes)

	return Outcome{Best: best, Containers: containers, Boxes: boxes}
}

// replay clones the baseline container snapshots and builds fresh boxes,
// then runs the greedy packer with c's orders, so the caller can commit
// a specific chromosome's placements without aliasing any other
// evaluation's state or mutating the shared baseline.
func replay(set evalSet, c model.Chromosome) ([]model.ContainerSnapshot, []model.Box) {
	containers := make([]model.ContainerSnapshot, len(set.baseline))
	for i, base := range set.baseline {
		containers[i] = cloneSnapshot(base)
	}
	boxes := make([]model.Box, len(set.packages))
	for i, p := range set.packages {
		boxes[i] = model.NewBox(p)
	}
	packer.Pack(containers, c.CLS, boxes, c.BPS)
	return containers, boxes
}

// cloneSnapshot deep-copies a ContainerSnapshot's slice and map fields so
// mutating the copy during one chromosome evaluation never leaks into
// another evaluation's view of the same baseline.
func cloneSnapshot(s model.ContainerSnapshot) model.ContainerSnapshot {
	clone := s
	clone.EMS = append([]geometry.Box3(nil), s.EMS...)
	clone.PlacedBoxIDs = append([]string(nil), s.PlacedBoxIDs...)
	clone.PlacedOrigins = make(map[string]geometry.Point3, len(s.PlacedOrigins))
	for k, v := range s.PlacedOrigins {
		clone.PlacedOrigins[k] = v
	}
	clone.PlacedSize = make(map[string]geometry.Dims, len(s.PlacedSize))
	for k, v := range s.PlacedSize {
		clone.PlacedSize[k] = v
	}
	return clone
}

func evaluateFitness(set evalSet, c model.Chromosome) float64 {
	containers, boxes := replay(set, c)
	return packer.Fitness(containers, boxes)
}

// initPopulation seeds four deterministic chromosomes (box order sorted
// by width, height, length, and volume, each descending, paired with a
// fresh random container order) and fills the rest of the population
// with fully random chromosomes.
func initPopulation(packages []*model.Package, nContainers int, cfg Config, src *rng.Source) []model.Chromosome {
	n := len(packages)
	population := make([]model.Chromosome, 0, cfg.PopulationSize)

	seeds := [][]int{
		sortedIndices(n, func(a, b int) bool { return packages[a].W > packages[b].W }),
		sortedIndices(n, func(a, b int) bool { return packages[a].H > packages[b].H }),
		sortedIndices(n, func(a, b int) bool { return packages[a].L > packages[b].L }),
		sortedIndices(n, func(a, b int) bool { return packages[a].Volume() > packages[b].Volume() }),
	}
	for _, bps := range seeds {
		if len(population) >= cfg.PopulationSize {
			break
		}
		population = append(population, model.Chromosome{BPS: bps, CLS: src.Perm(nContainers)})
	}
	for len(population) < cfg.PopulationSize {
		population = append(population, model.Chromosome{BPS: src.Perm(n), CLS: src.Perm(nContainers)})
	}
	return population
}

func sortedIndices(n int, less func(a, b int) bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	return idx
}

// tournamentSelect draws two distinct indices uniformly at random and
// keeps the chromosome with the lower (better) fitness.
func tournamentSelect(population []model.Chromosome, src *rng.Source) model.Chromosome {
	n := len(population)
	i := src.Intn(n)
	j := src.Intn(n)
	for n > 1 && j == i {
		j = src.Intn(n)
	}
	if population[i].Fitness <= population[j].Fitness {
		return population[i].Clone()
	}
	return population[j].Clone()
}

// crossoverPair performs order-preserving crossover on both the BPS and
// CLS permutations of two parents, using one shared cut pair per
// permutation, and produces two children by swapping which parent
// donates the copied segment.
func crossoverPair(p1, p2 model.Chromosome, src *rng.Source) (model.Chromosome, model.Chromosome) {
	bpsI, bpsJ := twoCuts(len(p1.BPS), src)
	clsI, clsJ := twoCuts(len(p1.CLS), src)

	child1 := model.Chromosome{
		BPS: orderCrossover(p1.BPS, p2.BPS, bpsI, bpsJ),
		CLS: orderCrossover(p1.CLS, p2.CLS, clsI, clsJ),
	}
	child2 := model.Chromosome{
		BPS: orderCrossover(p2.BPS, p1.BPS, bpsI, bpsJ),
		CLS: orderCrossover(p2.CLS, p1.CLS, clsI, clsJ),
	}
	return child1, child2
}

func twoCuts(n int, src *rng.Source) (int, int) {
	if n <= 1 {
		return 0, 0
	}
	i := src.Intn(n)
	j := src.Intn(n)
	for j == i {
		j = src.Intn(n)
	}
	if i > j {
		i, j = j, i
	}
	return i, j
}

// orderCrossover builds one child: positions (cutI, cutJ] come from
// donor in donor order; the remaining positions, starting just after
// cutJ and wrapping around through cutI inclusive, are filled from
// filler in filler order, skipping any value already placed. cutI
// itself is a fill position, not part of the copied segment.
func orderCrossover(donor, filler []int, cutI, cutJ int) []int {
	n := len(donor)
	child := make([]int, n)
	inSegment := make(map[int]bool, cutJ-cutI)
	for i := cutI + 1; i <= cutJ; i++ {
		child[i] = donor[i]
		inSegment[donor[i]] = true
	}

	idx := (cutJ + 1) % n
	for _, v := range filler {
		if !inSegment[v] {
			child[idx] = v
			idx = (idx + 1) % n
		}
	}
	return child
}

// mutate swaps two distinct positions in both BPS and CLS with
// probability mutationProb, reversing instead when a permutation has two
// or fewer elements.
func mutate(c *model.Chromosome, src *rng.Source, mutationProb float64) {
	if src.Float64() >= mutationProb {
		return
	}
	swapOrReverse(c.BPS, src)
	swapOrReverse(c.CLS, src)
}

func swapOrReverse(s []int, src *rng.Source) {
	n := len(s)
	if n <= 1 {
		return
	}
	if n == 2 {
		s[0], s[1] = s[1], s[0]
		return
	}
	i := src.Intn(n)
	j := src.Intn(n)
	for j == i {
		j = src.Intn(n)
	}
	s[i], s[j] = s[j], s[i]
}
