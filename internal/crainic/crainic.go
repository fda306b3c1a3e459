// Package crainic implements the Crainic-style package ordering heuristic:
// packages that share a dimension value are bundled into a group and
// emitted together, each carrying a preferred up-axis for the greedy
// packer to orient it by.
package crainic

import (
	"sort"

	"github.com/airfreight/cargopack/internal/model"
	"github.com/airfreight/cargopack/internal/rng"
)

// Assignment pairs a package with the up-axis (1, 2, or 3) it should be
// reoriented to before greedy packing.
type Assignment struct {
	PackageID string
	ZIndex    int
}

// GroupOrder controls how groups are emitted relative to one another.
type GroupOrder int

const (
	// GroupAscending emits groups sorted by their key value, smallest first.
	GroupAscending GroupOrder = iota
	// GroupDescending emits groups sorted by their key value, largest first.
	GroupDescending
	// GroupShuffled emits groups in a random order drawn from src.
	GroupShuffled
)

type group struct {
	key         int
	assignments []Assignment
}

// Order produces an ordered assignment sequence for packages. Packages
// are grouped by matching a dimension value shared with other unmatched
// packages; within a group, order is randomly permuted; groups
// themselves are arranged per how.
func Order(packages []*model.Package, src *rng.Source, how GroupOrder) []Assignment {
	matched := make(map[string]bool, len(packages))
	var groups []group

	for _, p := range packages {
		if matched[p.ID] {
			continue
		}

		dims := p.DeclaredDims()
		bestZ := -1
		bestCount := -1
		var bestNeighbors []Assignment

		for i := 0; i < 3; i++ {
			value := dims[i]
			count := 0
			var neighbors []Assignment
			for _, q := range packages {
				if q.ID == p.ID || matched[q.ID] {
					continue
				}
				qdims := q.DeclaredDims()
				for j := 0; j < 3; j++ {
					if qdims[j] == value {
						neighbors = append(neighbors, Assignment{PackageID: q.ID, ZIndex: j + 1})
						count++
						break
					}
				}
			}
			if count > bestCount {
				bestCount = count
				bestZ = i
				bestNeighbors = neighbors
			}
		}

		g := group{
			key:         dims[bestZ],
			assignments: append([]Assignment{{PackageID: p.ID, ZIndex: bestZ + 1}}, bestNeighbors...),
		}
		matched[p.ID] = true
		for _, n := range bestNeighbors {
			matched[n.PackageID] = true
		}
		groups = append(groups, g)
	}

	for i := range groups {
		src.Shuffle(len(groups[i].assignments), func(a, b int) {
			groups[i].assignments[a], groups[i].assignments[b] = groups[i].assignments[b], groups[i].assignments[a]
		})
	}

	switch how {
	case GroupAscending:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].key < groups[j].key })
	case GroupDescending:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].key > groups[j].key })
	case GroupShuffled:
		src.Shuffle(len(groups), func(i, j int) { groups[i], groups[j] = groups[j], groups[i] })
	}

	var out []Assignment
	for _, g := range groups {
		out = append(out, g.assignments...)
	}
	return out
}
