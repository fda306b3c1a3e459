package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airfreight/cargopack/internal/geometry"
	"github.com/airfreight/cargopack/internal/model"
)

func TestValidateAcceptsNonOverlappingPlacements(t *testing.T) {
	u := model.NewULD("U1", 10, 10, 10, 100)
	p1 := model.NewPackage("p1", 4, 4, 4, 10, true, 0)
	p1.Place("U1", geometry.NewBox3(geometry.Point3{}, geometry.Dims{L: 4, H: 4, W: 4}))
	p2 := model.NewPackage("p2", 4, 4, 4, 10, true, 0)
	p2.Place("U1", geometry.NewBox3(geometry.Point3{X: 4}, geometry.Dims{L: 4, H: 4, W: 4}))

	v := Validate([]*model.ULD{u}, []*model.Package{p1, p2}, 100)
	require.True(t, v.Valid, "errors: %v", v.Errors)
	assert.Equal(t, 1, v.PriorityULDCount)
}

func TestValidateRejectsInterpenetration(t *testing.T) {
	u := model.NewULD("U1", 10, 10, 10, 100)
	p1 := model.NewPackage("p1", 4, 4, 4, 10, true, 0)
	p1.Place("U1", geometry.NewBox3(geometry.Point3{}, geometry.Dims{L: 4, H: 4, W: 4}))
	p2 := model.NewPackage("p2", 4, 4, 4, 10, true, 0)
	p2.Place("U1", geometry.NewBox3(geometry.Point3{X: 1}, geometry.Dims{L: 4, H: 4, W: 4}))

	v := Validate([]*model.ULD{u}, []*model.Package{p1, p2}, 100)
	assert.False(t, v.Valid, "expected invalid due to interpenetration")
}

func TestValidateRejectsOutOfBoundsPlacement(t *testing.T) {
	u := model.NewULD("U1", 5, 5, 5, 100)
	p1 := model.NewPackage("p1", 4, 4, 4, 10, true, 0)
	p1.Place("U1", geometry.NewBox3(geometry.Point3{X: 3}, geometry.Dims{L: 4, H: 4, W: 4}))

	v := Validate([]*model.ULD{u}, []*model.Package{p1}, 100)
	assert.False(t, v.Valid, "expected invalid, package pokes out of the ULD")
}

func TestValidateRejectsWeightOverflow(t *testing.T) {
	u := model.NewULD("U1", 10, 10, 10, 5)
	p1 := model.NewPackage("p1", 4, 4, 4, 10, true, 0)
	p1.Place("U1", geometry.NewBox3(geometry.Point3{}, geometry.Dims{L: 4, H: 4, W: 4}))

	v := Validate([]*model.ULD{u}, []*model.Package{p1}, 100)
	assert.False(t, v.Valid, "expected invalid due to weight overflow")
}

func TestValidateComputesTotalCost(t *testing.T) {
	u := model.NewULD("U1", 10, 10, 10, 100)
	p1 := model.NewPackage("p1", 4, 4, 4, 10, true, 0)
	p1.Place("U1", geometry.NewBox3(geometry.Point3{}, geometry.Dims{L: 4, H: 4, W: 4}))
	econ := model.NewPackage("p2", 4, 4, 4, 10, false, 7)

	v := Validate([]*model.ULD{u}, []*model.Package{p1, econ}, 100)
	assert.Equal(t, 7, v.UnloadedEconDelay)
	assert.Equal(t, 100*1+7, v.Total)
}
