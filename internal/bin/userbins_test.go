package bin

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/model"
)

func TestCreateBinFromFabricsSplitsAtLimit(t *testing.T) {
	a := model.NewArena()
	var ids []model.FabricID
	for i := 0; i < maxFabricsPerBin+3; i++ {
		ids = append(ids, model.NewFabric(a, 50, 50, 0, 0, 0, color.RGBA{}, color.RGBA{}))
	}
	u := NewUserFabricBins(a)
	bins := u.CreateBinFromFabrics("batch", ids)
	assert.Len(t, bins, 2, "expected a 2-way split for %d fabrics", len(ids))
}

func TestUpdateBinsRejectsUnknownFabric(t *testing.T) {
	a := model.NewArena()
	known := model.NewFabric(a, 50, 50, 0, 0, 0, color.RGBA{}, color.RGBA{})
	u := NewUserFabricBins(a)

	err := u.UpdateBins(map[string][]model.FabricID{"a": {known, model.FabricID(9999)}})
	assert.Error(t, err, "expected an error for an unknown fabric id")
}

func TestUpdateBinsRebuildsAssignments(t *testing.T) {
	a := model.NewArena()
	f1 := model.NewFabric(a, 50, 50, 0, 0, 0, color.RGBA{}, color.RGBA{})
	f2 := model.NewFabric(a, 60, 60, 0, 0, 0, color.RGBA{}, color.RGBA{})
	u := NewUserFabricBins(a)

	require.NoError(t, u.UpdateBins(map[string][]model.FabricID{"a": {f1}, "b": {f2}}))
	assert.Len(t, u.Bins(), 2, "expected 2 bins after rebuild")
}

func TestToFabricMapGroupsByBinName(t *testing.T) {
	a := model.NewArena()
	f1 := model.NewFabric(a, 50, 50, 0, 0, 0, color.RGBA{}, color.RGBA{})
	ff := a.Fabric(f1)
	u := NewUserFabricBins(a)
	u.AddBin("mine", []model.EdgeID{ff.E1, ff.E2})

	m := u.ToFabricMap()
	assert.Len(t, m["mine"], 1, "expected 1 fabric in bin 'mine'")
}
