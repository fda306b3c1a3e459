// Package model defines the domain entities shared across the packing
// engine: packages, ULDs, the GA's ephemeral box representation, and
// chromosomes.
package model

import "github.com/airfreight/cargopack/internal/geometry"

// Package is a single piece of cargo to be loaded into a ULD.
type Package struct {
	ID       string
	L, W, H  int // current dimensions, mutated by Reorient
	Weight   int
	Priority bool
	Delay    int // economy delay penalty if left unloaded; ignored for priority

	LoadedULD string              // empty string: not loaded
	Corners   *[8]geometry.Point3 // set iff LoadedULD != ""

	declared [3]int // (L, W, H) as parsed from the input file, never mutated
}

// NewPackage constructs a Package, recording its as-parsed dimensions as
// the fixed tuple Reorient derives every orientation from.
func NewPackage(id string, l, w, h, weight int, priority bool, delay int) *Package {
	return &Package{
		ID:       id,
		L:        l,
		W:        w,
		H:        h,
		Weight:   weight,
		Priority: priority,
		Delay:    delay,
		declared: [3]int{l, w, h},
	}
}

// Loaded reports whether the package has been assigned to a ULD.
func (p *Package) Loaded() bool {
	return p.LoadedULD != ""
}

// Dims returns the package's current oriented dimensions.
func (p *Package) Dims() geometry.Dims {
	return geometry.Dims{L: p.L, H: p.H, W: p.W}
}

// Volume returns the package's current volume.
func (p *Package) Volume() int64 {
	return p.Dims().Volume()
}

// Place records that p has been loaded into uldID at box, writing its
// eight corners in the canonical order and syncing p's dimensions to
// box's size; orientation is implicit in the corner delta.
func (p *Package) Place(uldID string, box geometry.Box3) {
	p.LoadedULD = uldID
	p.L, p.H, p.W = box.Size.L, box.Size.H, box.Size.W
	c := box.Corners()
	p.Corners = &c
}

// Unload clears any placement, reverting p to the unloaded state.
func (p *Package) Unload() {
	p.LoadedULD = ""
	p.Corners = nil
}

// Box returns the Box3 a loaded package currently occupies. ok is false
// if the package is not loaded.
func (p *Package) Box() (b geometry.Box3, ok bool) {
	if p.Corners == nil {
		return geometry.Box3{}, false
	}
	min := p.Corners[0]
	return geometry.Box3{Origin: min, Size: p.Dims()}, true
}

// Reorient sets the package's up-axis to zIndex (1, 2, or 3, selecting
// which of the package's as-parsed (L, W, H) values becomes the new W),
// then assigns H to the larger and L to the smaller of the two remaining
// values. Reorient always derives from the package's fixed declared
// dimensions, not whatever L/W/H currently holds, so it is a pure
// function of zIndex: calling it again with the same zIndex is a no-op,
// and after a sequence of calls the package holds the orientation the
// last zIndex selects. It has no inverse: since it always sets L <= H, no
// zIndex restores the as-parsed (L, W, H) when that tuple has L > H;
// DeclaredDims still returns it.
func (p *Package) Reorient(zIndex int) {
	dims := p.declared
	w := dims[zIndex-1]

	var rest []int
	for i, v := range dims {
		if i == zIndex-1 {
			continue
		}
		rest = append(rest, v)
	}
	l, h := rest[0], rest[1]
	if l > h {
		l, h = h, l
	}

	p.W = w
	p.H = h
	p.L = l
}

// DeclaredDims returns the package's fixed as-parsed (L, W, H), the input
// to every Reorient call.
func (p *Package) DeclaredDims() [3]int {
	return p.declared
}
