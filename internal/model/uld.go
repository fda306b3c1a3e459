package model

import "github.com/airfreight/cargopack/internal/geometry"

// ULD is a Unit Load Device: a rectangular container with a weight cap.
// The master ULD owns its loaded packages by ID only; it never holds
// back-pointers to them.
type ULD struct {
	ID             string
	L, H, W        int
	WeightCapacity int

	loaded map[string]struct{} // package IDs currently loaded
}

// NewULD constructs an empty ULD.
func NewULD(id string, l, h, w, weightCapacity int) *ULD {
	return &ULD{
		ID:             id,
		L:              l,
		H:              h,
		W:              w,
		WeightCapacity: weightCapacity,
		loaded:         make(map[string]struct{}),
	}
}

// Bounds returns the ULD's cuboid anchored at the origin.
func (u *ULD) Bounds() geometry.Box3 {
	return geometry.NewBox3(geometry.Point3{}, geometry.Dims{L: u.L, H: u.H, W: u.W})
}

// Volume returns the ULD's interior volume.
func (u *ULD) Volume() int64 {
	return geometry.Dims{L: u.L, H: u.H, W: u.W}.Volume()
}

// MarkLoaded records that package id is loaded in u.
func (u *ULD) MarkLoaded(id string) {
	if u.loaded == nil {
		u.loaded = make(map[string]struct{})
	}
	u.loaded[id] = struct{}{}
}

// MarkUnloaded removes package id from u's loaded set.
func (u *ULD) MarkUnloaded(id string) {
	delete(u.loaded, id)
}

// LoadedIDs returns the package IDs currently recorded as loaded in u.
func (u *ULD) LoadedIDs() []string {
	ids := make([]string, 0, len(u.loaded))
	for id := range u.loaded {
		ids = append(ids, id)
	}
	return ids
}

// LoadedCount reports how many packages are currently loaded in u.
func (u *ULD) LoadedCount() int {
	return len(u.loaded)
}

// ContainerSnapshot is a view of a ULD used for a single chromosome
// evaluation: its bounds plus an owned EMS list and placement
// bookkeeping. Its slices and maps make a plain struct copy share state,
// so it must never be shared between candidate evaluations — the GA
// deep-copies its baseline snapshot for every chromosome it scores. The
// EMS maintenance itself lives in package ems; ContainerSnapshot only
// carries the state.
type ContainerSnapshot struct {
	ULDID         string
	Bounds        geometry.Box3
	WeightCap     int
	WeightUsed    int
	EMS           []geometry.Box3
	PlacedBoxIDs  []string
	PlacedOrigins map[string]geometry.Point3
	PlacedSize    map[string]geometry.Dims
}

// NewContainerSnapshot builds a fresh, single-EMS snapshot of u, ready to
// accept placements for one chromosome evaluation.
func NewContainerSnapshot(u *ULD) ContainerSnapshot {
	bounds := u.Bounds()
	return ContainerSnapshot{
		ULDID:         u.ID,
		Bounds:        bounds,
		WeightCap:     u.WeightCapacity,
		EMS:           []geometry.Box3{bounds},
		PlacedOrigins: make(map[string]geometry.Point3),
		PlacedSize:    make(map[string]geometry.Dims),
	}
}

// RecordPlacement appends bookkeeping for a box placed at origin with the
// given weight; it does not itself touch the EMS list — callers (package
// packer) recompute EMS via ems.Update and assign it back to s.EMS.
func (s *ContainerSnapshot) RecordPlacement(boxID string, origin geometry.Point3, size geometry.Dims, weight int) {
	s.PlacedBoxIDs = append(s.PlacedBoxIDs, boxID)
	s.PlacedOrigins[boxID] = origin
	s.PlacedSize[boxID] = size
	s.WeightUsed += weight
}

// RemainingCapacity returns how much more weight s can accept.
func (s *ContainerSnapshot) RemainingCapacity() int {
	return s.WeightCap - s.WeightUsed
}
