// Package geometry provides the axis-aligned cuboid primitives shared by
// the EMS engine, the greedy packer, and the ad-hoc residual-fill stage.
//
// A single value type, Box3, stands in for both of the notions a packing
// engine otherwise treats separately — a container and an Empty Maximal
// Space both "have an origin and dimensions." There is no inheritance
// here: containers, EMS entries, and occupant cuboids are all just Box3
// values.
package geometry

// Point3 is an integer 3D coordinate.
type Point3 struct {
	X, Y, Z int
}

// Add returns p translated by q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// DistSq returns the squared Euclidean distance between p and q, used to
// rank EMS entries by distance to the container origin without paying for
// a sqrt on every comparison.
func (p Point3) DistSq(q Point3) int64 {
	dx := int64(p.X - q.X)
	dy := int64(p.Y - q.Y)
	dz := int64(p.Z - q.Z)
	return dx*dx + dy*dy + dz*dz
}

// Dims is a box's extent along each axis. Axis naming follows the packer's
// convention: L is the x-extent (length), H is the y-extent (height), W is
// the z-extent (width).
type Dims struct {
	L, H, W int
}

// Volume returns L*H*W.
func (d Dims) Volume() int64 {
	return int64(d.L) * int64(d.H) * int64(d.W)
}

// Positive reports whether every dimension is strictly greater than zero.
func (d Dims) Positive() bool {
	return d.L > 0 && d.H > 0 && d.W > 0
}

// Box3 is an axis-aligned cuboid anchored at Origin with extent Size.
type Box3 struct {
	Origin Point3
	Size   Dims
}

// NewBox3 builds a Box3 from an origin and dimensions.
func NewBox3(origin Point3, size Dims) Box3 {
	return Box3{Origin: origin, Size: size}
}

// Min returns the box's minimum corner (equal to Origin).
func (b Box3) Min() Point3 {
	return b.Origin
}

// Max returns the box's maximum corner.
func (b Box3) Max() Point3 {
	return Point3{
		X: b.Origin.X + b.Size.L,
		Y: b.Origin.Y + b.Size.H,
		Z: b.Origin.Z + b.Size.W,
	}
}

// Corners returns the eight vertices of b in a fixed canonical order:
// (0,0,0), (+L,0,0), (0,+H,0), (+L,+H,0), (0,0,+W), (+L,0,+W), (0,+H,+W),
// (+L,+H,+W) — x (length) varies fastest, then y (height), then z
// (width) — with the origin offset applied. Index 0 is the min corner, index 7 is
// the max corner.
func (b Box3) Corners() [8]Point3 {
	o := b.Origin
	l, h, w := b.Size.L, b.Size.H, b.Size.W
	return [8]Point3{
		{o.X, o.Y, o.Z},
		{o.X + l, o.Y, o.Z},
		{o.X, o.Y + h, o.Z},
		{o.X + l, o.Y + h, o.Z},
		{o.X, o.Y, o.Z + w},
		{o.X + l, o.Y, o.Z + w},
		{o.X, o.Y + h, o.Z + w},
		{o.X + l, o.Y + h, o.Z + w},
	}
}

// Intersects reports whether the open interiors of a and b overlap on all
// three axes. Boxes that merely touch along a face, edge, or corner do not
// intersect.
func Intersects(a, b Box3) bool {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	return amin.X < bmax.X && amax.X > bmin.X &&
		amin.Y < bmax.Y && amax.Y > bmin.Y &&
		amin.Z < bmax.Z && amax.Z > bmin.Z
}

// FitsInside reports whether inner lies entirely within outer, boundaries
// inclusive.
func FitsInside(inner, outer Box3) bool {
	imin, imax := inner.Min(), inner.Max()
	omin, omax := outer.Min(), outer.Max()
	return imin.X >= omin.X && imin.Y >= omin.Y && imin.Z >= omin.Z &&
		imax.X <= omax.X && imax.Y <= omax.Y && imax.Z <= omax.Z
}

// ContainsStrict reports whether outer strictly contains inner (inner is
// fully inside, including the degenerate equal-box case), used by the EMS
// dominance filter.
func ContainsStrict(outer, inner Box3) bool {
	return FitsInside(inner, outer)
}

// Equal reports whether two boxes occupy the same origin and size.
func Equal(a, b Box3) bool {
	return a.Origin == b.Origin && a.Size == b.Size
}

// WithOrigin returns b translated to a new origin, keeping its size.
func (b Box3) WithOrigin(o Point3) Box3 {
	return Box3{Origin: o, Size: b.Size}
}
