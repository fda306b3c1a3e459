package geometry

import "github.com/airfreight/cargopack/internal/rng"

// FreeCornerPlacement searches for a min-corner at which a cuboid of size
// size can be placed inside enclosing without intersecting any occupant in
// occupants. It collects every occupant corner (plus enclosing's own
// origin, which stands in for the "no occupants yet" case), keeps the
// candidates that fit inside enclosing and clear every occupant, and
// returns one chosen uniformly at random from whichever candidates pass.
// ok is false if no candidate corner works.
func FreeCornerPlacement(size Dims, enclosing Box3, occupants []Box3, src *rng.Source) (origin Point3, ok bool) {
	candidates := candidateCorners(enclosing, occupants)

	var passing []Point3
	for _, c := range candidates {
		trial := Box3{Origin: c, Size: size}
		if !FitsInside(trial, enclosing) {
			continue
		}
		if collidesWithAny(trial, occupants) {
			continue
		}
		passing = append(passing, c)
	}

	if len(passing) == 0 {
		return Point3{}, false
	}
	return passing[src.Intn(len(passing))], true
}

// candidateCorners collects every corner of every occupant, plus the
// enclosing box's own min-corner as a sentinel so an empty occupant list
// still yields at least one candidate (the "no occupants" fast path).
func candidateCorners(enclosing Box3, occupants []Box3) []Point3 {
	corners := []Point3{enclosing.Min()}
	for _, occ := range occupants {
		oc := occ.Corners()
		corners = append(corners, oc[:]...)
	}
	return corners
}

func collidesWithAny(b Box3, occupants []Box3) bool {
	for _, occ := range occupants {
		if Intersects(b, occ) {
			return true
		}
	}
	return false
}
