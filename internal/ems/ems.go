// Package ems maintains the per-container Empty Maximal Space list used
// by the greedy packer: a set of maximal empty cuboids that together
// cover every point not occupied by a placed box, with no entry
// contained in another.
package ems

import (
	"sort"

	"github.com/airfreight/cargopack/internal/geometry"
)

// FromPlacement produces the up to six residual EMS regions formed by
// extending the faces of a placed box out to the walls of container.
// Slabs with a non-positive dimension are discarded. If box lies
// entirely outside container, the result is empty.
func FromPlacement(container, box geometry.Box3) []geometry.Box3 {
	cmin, cmax := container.Min(), container.Max()
	bmin, bmax := box.Min(), box.Max()

	if !geometry.Intersects(container, box) && !touches(container, box) {
		return nil
	}

	L := cmax.X - cmin.X
	H := cmax.Y - cmin.Y
	W := cmax.Z - cmin.Z

	candidates := []geometry.Box3{
		// -x slab
		geometry.NewBox3(cmin, geometry.Dims{L: bmin.X - cmin.X, H: H, W: W}),
		// +x slab
		geometry.NewBox3(
			geometry.Point3{X: bmax.X, Y: cmin.Y, Z: cmin.Z},
			geometry.Dims{L: cmax.X - bmax.X, H: H, W: W},
		),
		// -z slab (width)
		geometry.NewBox3(cmin, geometry.Dims{L: L, H: H, W: bmin.Z - cmin.Z}),
		// +z slab (width)
		geometry.NewBox3(
			geometry.Point3{X: cmin.X, Y: cmin.Y, Z: bmax.Z},
			geometry.Dims{L: L, H: H, W: cmax.Z - bmax.Z},
		),
		// -y slab (height)
		geometry.NewBox3(cmin, geometry.Dims{L: L, H: bmin.Y - cmin.Y, W: W}),
		// +y slab (height)
		geometry.NewBox3(
			geometry.Point3{X: cmin.X, Y: bmax.Y, Z: cmin.Z},
			geometry.Dims{L: L, H: cmax.Y - bmax.Y, W: W},
		),
	}

	var out []geometry.Box3
	for _, c := range candidates {
		if c.Size.Positive() {
			out = append(out, c)
		}
	}
	return out
}

// touches reports whether box lies within container, boundaries
// inclusive (box == container included), whether or not it overlaps the
// open interior. A box that only meets container from outside does not
// count.
func touches(container, box geometry.Box3) bool {
	return geometry.Equal(container, box) || geometry.FitsInside(box, container)
}

// Update folds a newly placed box into an EMS list: every existing EMS
// that box touches is replaced by its residual slabs, then the whole
// list is filtered so no EMS is strictly contained in another.
func Update(list []geometry.Box3, box geometry.Box3) []geometry.Box3 {
	var next []geometry.Box3
	for _, e := range list {
		slabs := FromPlacement(e, box)
		if len(slabs) == 0 && !geometry.Equal(e, box) {
			// box doesn't touch this EMS at all; keep it unchanged.
			next = append(next, e)
			continue
		}
		next = append(next, slabs...)
	}
	return dominanceFilter(next)
}

// dominanceFilter removes any EMS that is strictly contained within
// another EMS in the list, along with exact duplicates.
func dominanceFilter(list []geometry.Box3) []geometry.Box3 {
	kept := make([]geometry.Box3, 0, len(list))
	for i, a := range list {
		dominated := false
		for j, b := range list {
			if i == j {
				continue
			}
			if geometry.Equal(a, b) && i > j {
				// Exact duplicates: keep only the first occurrence.
				dominated = true
				break
			}
			if !geometry.Equal(a, b) && geometry.ContainsStrict(b, a) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, a)
		}
	}
	return kept
}

// Prioritize stable-sorts an EMS list by the squared Euclidean distance of
// each entry's origin to the container origin, ascending — spaces nearest
// the container's bottom-left-back corner are tried first.
func Prioritize(list []geometry.Box3, containerOrigin geometry.Point3) []geometry.Box3 {
	sorted := make([]geometry.Box3, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Origin.DistSq(containerOrigin) < sorted[j].Origin.DistSq(containerOrigin)
	})
	return sorted
}
