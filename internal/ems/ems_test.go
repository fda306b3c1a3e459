package ems

import (
	"testing"

	"github.com/airfreight/cargopack/internal/geometry"
)

func TestFromPlacementSixSlabs(t *testing.T) {
	container := geometry.NewBox3(geometry.Point3{0, 0, 0}, geometry.Dims{10, 10, 10})
	box := geometry.NewBox3(geometry.Point3{2, 3, 4}, geometry.Dims{3, 2, 1})

	slabs := FromPlacement(container, box)
	if len(slabs) != 6 {
		t.Fatalf("expected 6 slabs for a box strictly inside, got %d: %+v", len(slabs), slabs)
	}
	for _, s := range slabs {
		if !s.Size.Positive() {
			t.Errorf("slab %+v has a non-positive dimension", s)
		}
		if !geometry.FitsInside(s, container) {
			t.Errorf("slab %+v is not inside the container", s)
		}
	}
}

func TestFromPlacementFlushAgainstWallYieldsFewerSlabs(t *testing.T) {
	container := geometry.NewBox3(geometry.Point3{0, 0, 0}, geometry.Dims{10, 10, 10})
	box := geometry.NewBox3(geometry.Point3{0, 0, 0}, geometry.Dims{5, 5, 5})

	slabs := FromPlacement(container, box)
	// -x, -y, -z slabs collapse to zero width, leaving at most 3.
	if len(slabs) > 3 {
		t.Fatalf("expected at most 3 slabs when box is flush with the origin corner, got %d", len(slabs))
	}
}

func TestFromPlacementBoxEqualsContainerYieldsNoSlabs(t *testing.T) {
	box := geometry.NewBox3(geometry.Point3{0, 0, 0}, geometry.Dims{10, 10, 10})
	slabs := FromPlacement(box, box)
	if len(slabs) != 0 {
		t.Fatalf("expected no residual space when the box fills the container, got %d slabs", len(slabs))
	}
}

func TestUpdateNoDominatedPairs(t *testing.T) {
	container := geometry.NewBox3(geometry.Point3{0, 0, 0}, geometry.Dims{100, 100, 100})
	list := []geometry.Box3{container}

	boxes := []geometry.Box3{
		geometry.NewBox3(geometry.Point3{0, 0, 0}, geometry.Dims{20, 20, 20}),
		geometry.NewBox3(geometry.Point3{20, 0, 0}, geometry.Dims{20, 20, 20}),
		geometry.NewBox3(geometry.Point3{0, 20, 0}, geometry.Dims{20, 20, 20}),
	}

	for _, b := range boxes {
		list = Update(list, b)
		assertNoDominance(t, list)
		assertAllPositive(t, list)
	}
}

func assertNoDominance(t *testing.T, list []geometry.Box3) {
	t.Helper()
	for i, a := range list {
		for j, b := range list {
			if i == j {
				continue
			}
			if geometry.Equal(a, b) {
				t.Fatalf("duplicate EMS entries %v at indices %d and %d", a, i, j)
			}
			if geometry.ContainsStrict(b, a) {
				t.Fatalf("EMS %v (index %d) is dominated by %v (index %d)", a, i, b, j)
			}
		}
	}
}

func assertAllPositive(t *testing.T, list []geometry.Box3) {
	t.Helper()
	for _, e := range list {
		if !e.Size.Positive() {
			t.Fatalf("EMS %v has a non-positive dimension", e)
		}
	}
}

func TestUpdateFuzzRandomBoxes(t *testing.T) {
	container := geometry.NewBox3(geometry.Point3{0, 0, 0}, geometry.Dims{50, 50, 50})
	list := []geometry.Box3{container}

	// Deterministic pseudo-random placements covering a range of sizes and
	// origins, staying inside the container.
	placements := []geometry.Box3{
		{Origin: geometry.Point3{0, 0, 0}, Size: geometry.Dims{10, 5, 7}},
		{Origin: geometry.Point3{10, 0, 0}, Size: geometry.Dims{5, 10, 5}},
		{Origin: geometry.Point3{0, 10, 0}, Size: geometry.Dims{20, 5, 10}},
		{Origin: geometry.Point3{20, 0, 10}, Size: geometry.Dims{15, 15, 15}},
		{Origin: geometry.Point3{0, 0, 20}, Size: geometry.Dims{8, 8, 8}},
	}

	for _, p := range placements {
		list = Update(list, p)
		assertNoDominance(t, list)
		assertAllPositive(t, list)
	}
}

func TestPrioritizeOrdersByDistanceToOrigin(t *testing.T) {
	list := []geometry.Box3{
		{Origin: geometry.Point3{10, 10, 10}, Size: geometry.Dims{1, 1, 1}},
		{Origin: geometry.Point3{0, 0, 0}, Size: geometry.Dims{1, 1, 1}},
		{Origin: geometry.Point3{5, 0, 0}, Size: geometry.Dims{1, 1, 1}},
	}

	sorted := Prioritize(list, geometry.Point3{0, 0, 0})
	if sorted[0].Origin != (geometry.Point3{0, 0, 0}) {
		t.Errorf("expected the origin-flush EMS first, got %v", sorted[0])
	}
	if sorted[len(sorted)-1].Origin != (geometry.Point3{10, 10, 10}) {
		t.Errorf("expected the farthest EMS last, got %v", sorted[len(sorted)-1])
	}
}

func TestPrioritizeStableForEqualDistances(t *testing.T) {
	list := []geometry.Box3{
		{Origin: geometry.Point3{5, 0, 0}, Size: geometry.Dims{1, 1, 1}},
		{Origin: geometry.Point3{0, 5, 0}, Size: geometry.Dims{2, 2, 2}},
	}
	sorted := Prioritize(list, geometry.Point3{0, 0, 0})
	if sorted[0].Size != (geometry.Dims{1, 1, 1}) {
		t.Errorf("expected stable sort to preserve original order among ties")
	}
}
