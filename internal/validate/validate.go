// Package validate checks a completed loading plan against the
// engine's geometric and weight invariants and reports its cost
// breakdown.
package validate

import (
	"fmt"

	"github.com/airfreight/cargopack/internal/geometry"
	"github.com/airfreight/cargopack/internal/model"
)

// Verdict is the structured result of validating a loading plan.
type Verdict struct {
	Valid             bool
	Errors            []string
	PriorityULDCount  int
	UnloadedEconDelay int
	Total             int
}

// Validate checks every loaded package's containment within its ULD and
// pairwise non-intersection against its ULD-mates, checks each ULD's
// weight cap, and computes the cost breakdown: K times the number of
// ULDs carrying at least one priority package, plus the summed delay of
// unloaded economy packages.
func Validate(ulds []*model.ULD, packages []*model.Package, k int) Verdict {
	v := Verdict{Valid: true}

	byULD := make(map[string][]*model.Package)
	for _, p := range packages {
		if p.Loaded() {
			byULD[p.LoadedULD] = append(byULD[p.LoadedULD], p)
		}
	}

	priorityULDs := make(map[string]bool)
	for _, u := range ulds {
		loaded := byULD[u.ID]
		bounds := u.Bounds()
		weightSum := 0

		for i, p := range loaded {
			box, ok := p.Box()
			if !ok {
				v.Valid = false
				v.Errors = append(v.Errors, fmt.Sprintf("package %s is marked loaded in %s but has no recorded placement", p.ID, u.ID))
				continue
			}
			if !geometry.FitsInside(box, bounds) {
				v.Valid = false
				v.Errors = append(v.Errors, fmt.Sprintf("package %s does not fit inside ULD %s", p.ID, u.ID))
			}
			for j := i + 1; j < len(loaded); j++ {
				other := loaded[j]
				obox, ok2 := other.Box()
				if ok2 && geometry.Intersects(box, obox) {
					v.Valid = false
					v.Errors = append(v.Errors, fmt.Sprintf("packages %s and %s interpenetrate in ULD %s", p.ID, other.ID, u.ID))
				}
			}
			weightSum += p.Weight
			if p.Priority {
				priorityULDs[u.ID] = true
			}
		}

		if weightSum > u.WeightCapacity {
			v.Valid = false
			v.Errors = append(v.Errors, fmt.Sprintf("ULD %s loaded weight %d exceeds capacity %d", u.ID, weightSum, u.WeightCapacity))
		}
	}

	v.PriorityULDCount = len(priorityULDs)
	for _, p := range packages {
		if !p.Priority && !p.Loaded() {
			v.UnloadedEconDelay += p.Delay
		}
	}
	v.Total = k*v.PriorityULDCount + v.UnloadedEconDelay
	return v
}
