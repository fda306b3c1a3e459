package model

import "github.com/airfreight/cargopack/internal/geometry"

// Box is the GA's ephemeral representation of a package under
// consideration for placement: dimensions, weight, and — once placed —
// an origin. It exists only for the lifetime of one chromosome
// evaluation; the packages it stands in for are only written back to
// once the manager commits the best chromosome's placement.
type Box struct {
	PackageID string
	Size      geometry.Dims
	Weight    int

	Placed bool
	Origin geometry.Point3
}

// NewBox builds an unplaced Box from a package's current dimensions.
func NewBox(p *Package) Box {
	return Box{
		PackageID: p.ID,
		Size:      p.Dims(),
		Weight:    p.Weight,
	}
}

// Cuboid returns the Box3 a placed Box occupies.
func (b Box) Cuboid() geometry.Box3 {
	return geometry.Box3{Origin: b.Origin, Size: b.Size}
}

// Rotation enumerates the three axis-aligned rotations the greedy packer
// is permitted to try: identity, swap length↔height (around the width
// axis), and swap length↔width (around the height axis). Width↔height is
// deliberately not offered: a package resting on its side changes which
// face bears the stacking load, and that swap is excluded on purpose.
type Rotation int

const (
	RotIdentity Rotation = iota
	RotSwapLH
	RotSwapLW
)

// Apply returns the Dims that result from rotating size by r.
func (r Rotation) Apply(size geometry.Dims) geometry.Dims {
	switch r {
	case RotSwapLH:
		return geometry.Dims{L: size.H, H: size.L, W: size.W}
	case RotSwapLW:
		return geometry.Dims{L: size.W, H: size.H, W: size.L}
	default:
		return size
	}
}

// Rotations lists all permitted rotations in enumeration order, used when
// the greedy packer must try each in turn.
var Rotations = [3]Rotation{RotIdentity, RotSwapLH, RotSwapLW}
