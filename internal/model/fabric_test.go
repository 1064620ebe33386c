package model

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFabricEdgesAreSiblings(t *testing.T) {
	a := NewArena()
	fid := NewFabric(a, 200, 150, 0, 0, 25, color.RGBA{}, color.RGBA{})
	f := a.Fabric(fid)

	e1 := a.Edge(f.E1)
	e2 := a.Edge(f.E2)

	require.Equal(t, e2.ID, e1.Sibling, "edges are not siblings")
	require.Equal(t, e1.ID, e2.Sibling, "edges are not siblings")
	assert.Equal(t, 150, e1.Length, "expected e1=150 (w-2sa)")
	assert.Equal(t, 100, e2.Length, "expected e2=100 (h-2sa)")
}

func TestUpdateAfterTrimmingPreservesSiblingLink(t *testing.T) {
	a := NewArena()
	fid := NewFabric(a, 200, 150, 0, 0, 25, color.RGBA{}, color.RGBA{})
	f := a.Fabric(fid)
	e1Before := f.E1
	e2Before := f.E2

	a.UpdateAfterTrimming(fid, 100, 80, 0, 0, 25, color.RGBA{}, color.RGBA{})

	f = a.Fabric(fid)
	require.Equal(t, e1Before, f.E1, "trimming must not change edge ids")
	require.Equal(t, e2Before, f.E2, "trimming must not change edge ids")
	e1 := a.Edge(f.E1)
	assert.Equal(t, 50, e1.Length, "expected new e1 length 50")
}

func TestCloneFabricGetsFreshID(t *testing.T) {
	a := NewArena()
	fid := NewFabric(a, 200, 150, 0, 0, 25, color.RGBA{}, color.RGBA{})
	clone := a.CloneFabric(fid, 25)
	require.NotEqual(t, fid, clone, "clone must have a different id")
	cf := a.Fabric(clone)
	of := a.Fabric(fid)
	assert.Equal(t, of.W, cf.W, "clone must preserve width")
	assert.Equal(t, of.H, cf.H, "clone must preserve height")
}

func TestRemoveFabricDropsEdges(t *testing.T) {
	a := NewArena()
	fid := NewFabric(a, 200, 150, 0, 0, 25, color.RGBA{}, color.RGBA{})
	f := a.Fabric(fid)
	a.RemoveFabric(fid)

	assert.Panics(t, func() {
		a.Edge(f.E1)
	}, "expected panic looking up removed edge")
}
