package engine

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/model"
)

func fabricWithColor(id model.FabricID, c color.RGBA) model.Fabric {
	return model.Fabric{ID: id, W: 100, H: 100, MeanColor: c, DominantColor: c}
}

func TestEstimateNBinsFindsTwoWellSeparatedClusters(t *testing.T) {
	var fabrics []model.Fabric
	for i := 0; i < 5; i++ {
		fabrics = append(fabrics, fabricWithColor(model.FabricID(i), color.RGBA{R: 10, G: 10, B: 10, A: 255}))
	}
	for i := 5; i < 10; i++ {
		fabrics = append(fabrics, fabricWithColor(model.FabricID(i), color.RGBA{R: 240, G: 240, B: 240, A: 255}))
	}

	got := EstimateNBins(fabrics, CriterionValue, ModeMean, 6)
	assert.Equal(t, 2, got, "expected 2 clusters for two well-separated value groups")
}

func TestGroupFabricsSeparatesByValue(t *testing.T) {
	var fabrics []model.Fabric
	for i := 0; i < 4; i++ {
		fabrics = append(fabrics, fabricWithColor(model.FabricID(i), color.RGBA{R: 5, G: 5, B: 5, A: 255}))
	}
	for i := 4; i < 8; i++ {
		fabrics = append(fabrics, fabricWithColor(model.FabricID(i), color.RGBA{R: 250, G: 250, B: 250, A: 255}))
	}

	groups := GroupFabrics(fabrics, 2, CriterionValue, ModeMean, nil)
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.Len(t, g, 4, "expected each group to hold 4 fabrics")
	}
}

func TestGroupFabricsHonorsFixedBins(t *testing.T) {
	fabrics := []model.Fabric{
		fabricWithColor(0, color.RGBA{R: 5, A: 255}),
		fabricWithColor(1, color.RGBA{R: 250, A: 255}),
		fabricWithColor(2, color.RGBA{R: 5, A: 255}),
	}

	fixed := map[int][]model.FabricID{0: {1}}
	groups := GroupFabrics(fabrics, 2, CriterionValue, ModeMean, fixed)

	found := false
	for _, f := range groups[0] {
		if f.ID == 1 {
			found = true
		}
	}
	assert.True(t, found, "expected fabric 1 to remain in its fixed bin (index 0)")
}
