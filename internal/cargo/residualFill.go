package cargo

import (
	"sort"

	"github.com/airfreight/cargopack/internal/geometry"
	"github.com/airfreight/cargopack/internal/model"
)

// residualFill makes a last pass over packages neither GA stage placed,
// trying every axis-aligned orientation against every occupant corner in
// every ULD with enough remaining weight capacity, via the free-corner
// placement search.
func (m *Manager) residualFill() {
	var unplaced []*model.Package
	for _, p := range m.packages {
		if !p.Loaded() {
			unplaced = append(unplaced, p)
		}
	}
	sort.SliceStable(unplaced, func(i, j int) bool {
		return residualScore(unplaced[i]) > residualScore(unplaced[j])
	})

	occupants := make(map[string][]geometry.Box3, len(m.ulds))
	for _, u := range m.ulds {
		var boxes []geometry.Box3
		for _, id := range u.LoadedIDs() {
			if box, ok := m.pkgByID[id].Box(); ok {
				boxes = append(boxes, box)
			}
		}
		occupants[u.ID] = boxes
	}

	for _, p := range unplaced {
		m.tryResidualPlace(p, occupants)
	}
}

func residualScore(p *model.Package) float64 {
	longest := maxOf3(p.L, p.H, p.W)
	if longest == 0 {
		return 0
	}
	return float64(p.Delay) / float64(longest)
}

func (m *Manager) tryResidualPlace(p *model.Package, occupants map[string][]geometry.Box3) bool {
	orientations := sixOrientations(p.DeclaredDims())

	for _, u := range m.ulds {
		used := 0
		for _, id := range u.LoadedIDs() {
			used += m.pkgByID[id].Weight
		}
		if used+p.Weight > u.WeightCapacity {
			continue
		}
		enclosing := u.Bounds()
		occ := occupants[u.ID]

		for _, size := range orientations {
			origin, ok := geometry.FreeCornerPlacement(size, enclosing, occ, m.rng)
			if !ok {
				continue
			}
			box := geometry.NewBox3(origin, size)
			p.Place(u.ID, box)
			u.MarkLoaded(p.ID)
			occupants[u.ID] = append(occ, box)
			return true
		}
	}
	return false
}

// sixOrientations returns all six permutations of a package's declared
// dimensions as candidate (L, H, W) triples.
func sixOrientations(dims [3]int) []geometry.Dims {
	l, h, w := dims[0], dims[1], dims[2]
	perms := [6][3]int{
		{l, h, w}, {l, w, h},
		{h, l, w}, {h, w, l},
		{w, l, h}, {w, h, l},
	}
	out := make([]geometry.Dims, 0, 6)
	for _, perm := range perms {
		out = append(out, geometry.Dims{L: perm[0], H: perm[1], W: perm[2]})
	}
	return out
}

func maxOf3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
