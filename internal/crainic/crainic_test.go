package crainic

import (
	"testing"

	"github.com/airfreight/cargopack/internal/model"
	"github.com/airfreight/cargopack/internal/rng"
)

func TestOrderGroupsSharedDimension(t *testing.T) {
	packages := []*model.Package{
		model.NewPackage("a", 10, 5, 3, 1, false, 0),
		model.NewPackage("b", 10, 2, 2, 1, false, 0),
		model.NewPackage("c", 4, 4, 4, 1, false, 0),
	}
	src := rng.New(1)
	assignments := Order(packages, src, GroupAscending)

	if len(assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(assignments))
	}
	seen := make(map[string]bool)
	for _, a := range assignments {
		if a.ZIndex < 1 || a.ZIndex > 3 {
			t.Errorf("package %s has out-of-range z_index %d", a.PackageID, a.ZIndex)
		}
		seen[a.PackageID] = true
	}
	for _, p := range packages {
		if !seen[p.ID] {
			t.Errorf("package %s missing from ordering", p.ID)
		}
	}
}

func TestOrderAscendingSortsGroupKeys(t *testing.T) {
	packages := []*model.Package{
		model.NewPackage("a", 3, 3, 3, 1, false, 0),
		model.NewPackage("b", 3, 3, 3, 1, false, 0),
		model.NewPackage("c", 9, 9, 9, 1, false, 0),
		model.NewPackage("d", 9, 9, 9, 1, false, 0),
	}
	src := rng.New(7)
	assignments := Order(packages, src, GroupAscending)

	idx := make(map[string]int)
	for i, a := range assignments {
		idx[a.PackageID] = i
	}
	if idx["a"] > idx["c"] || idx["a"] > idx["d"] {
		t.Errorf("expected the group keyed by 3 to precede the group keyed by 9, got order %v", assignments)
	}
}

func TestOrderIsDeterministicForFixedSeed(t *testing.T) {
	packages := []*model.Package{
		model.NewPackage("a", 10, 5, 3, 1, false, 0),
		model.NewPackage("b", 10, 2, 2, 1, false, 0),
		model.NewPackage("c", 4, 4, 4, 1, false, 0),
		model.NewPackage("d", 4, 7, 2, 1, false, 0),
	}
	first := Order(packages, rng.New(42), GroupShuffled)
	second := Order(packages, rng.New(42), GroupShuffled)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("index %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestOrderSingletonPackageGetsBestAvailableAxis(t *testing.T) {
	packages := []*model.Package{model.NewPackage("solo", 7, 3, 2, 1, false, 0)}
	src := rng.New(3)
	assignments := Order(packages, src, GroupAscending)

	if len(assignments) != 1 {
		t.Fatalf("expected a single assignment, got %d", len(assignments))
	}
	if assignments[0].PackageID != "solo" {
		t.Errorf("unexpected package id %q", assignments[0].PackageID)
	}
}
