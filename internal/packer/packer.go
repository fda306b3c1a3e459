// Package packer implements the deterministic greedy placement used to
// evaluate one genetic-algorithm chromosome: given a container order and
// a box order, it fills Empty Maximal Spaces first-fit, picking among the
// three permitted rotations the one that leaves the least slack.
package packer

import (
	"github.com/airfreight/cargopack/internal/ems"
	"github.com/airfreight/cargopack/internal/geometry"
	"github.com/airfreight/cargopack/internal/model"
)

// Placement records where a box ended up.
type Placement struct {
	ContainerID string
	Origin      geometry.Point3
	Size        geometry.Dims
}

// Result is the outcome of one greedy pass.
type Result struct {
	Placements map[string]Placement // keyed by Box.PackageID
	Unplaced   []string
}

// Pack runs the greedy packer over containers in containerOrder and
// boxes in boxOrder, mutating containers in place (EMS lists, weight
// used, placement bookkeeping) and returning where each box landed.
// containerOrder and boxOrder are permutations of indices into
// containers and boxes respectively.
func Pack(containers []model.ContainerSnapshot, containerOrder []int, boxes []model.Box, boxOrder []int) Result {
	placed := make(map[string]bool, len(boxes))
	result := Result{Placements: make(map[string]Placement, len(boxes))}

	for _, ci := range containerOrder {
		c := &containers[ci]
		for _, bi := range boxOrder {
			b := &boxes[bi]
			if placed[b.PackageID] {
				continue
			}
			if c.RemainingCapacity() < b.Weight {
				continue
			}

			origin, size, ok := placeInContainer(c, b.Size)
			if !ok {
				continue
			}

			c.RecordPlacement(b.PackageID, origin, size, b.Weight)
			c.EMS = ems.Update(c.EMS, geometry.NewBox3(origin, size))

			b.Placed = true
			b.Origin = origin
			b.Size = size
			placed[b.PackageID] = true
			result.Placements[b.PackageID] = Placement{ContainerID: c.ULDID, Origin: origin, Size: size}
		}
	}

	for _, b := range boxes {
		if !placed[b.PackageID] {
			result.Unplaced = append(result.Unplaced, b.PackageID)
		}
	}
	return result
}

// placeInContainer takes the first EMS, in the priority order of c's EMS
// list, that admits size in some permitted rotation, and within it the
// rotation with the least minimum slack. ok is false if none fit.
func placeInContainer(c *model.ContainerSnapshot, size geometry.Dims) (origin geometry.Point3, oriented geometry.Dims, ok bool) {
	candidates := ems.Prioritize(c.EMS, c.Bounds.Origin)

	for _, e := range candidates {
		bestSlack := -1
		var bestSize geometry.Dims
		found := false

		for _, rot := range model.Rotations {
			rotated := rot.Apply(size)
			if !rotated.Positive() {
				continue
			}
			slackL := e.Size.L - rotated.L
			slackH := e.Size.H - rotated.H
			slackW := e.Size.W - rotated.W
			if slackL < 0 || slackH < 0 || slackW < 0 {
				continue
			}
			slack := minOf3(slackL, slackH, slackW)
			if !found || slack < bestSlack {
				found = true
				bestSlack = slack
				bestSize = rotated
			}
		}

		if found {
			return e.Origin, bestSize, true
		}
	}
	return geometry.Point3{}, geometry.Dims{}, false
}

func minOf3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Fitness scores a completed greedy pass: 1 minus the fraction of
// container volume (restricted to containers holding at least one box)
// that ended up occupied by placed boxes. Lower is better; an empty
// denominator (no container used at all) yields the worst score, 1.0.
func Fitness(containers []model.ContainerSnapshot, boxes []model.Box) float64 {
	var usedVolume, placedVolume int64
	for i := range containers {
		if len(containers[i].PlacedBoxIDs) > 0 {
			usedVolume += containers[i].Bounds.Size.Volume()
		}
	}
	for _, b := range boxes {
		if b.Placed {
			placedVolume += b.Size.Volume()
		}
	}
	if usedVolume == 0 {
		return 1.0
	}
	return 1.0 - float64(placedVolume)/float64(usedVolume)
}
