package session

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/bin"
	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
)

func newTestCore(sizes [][2]int, strategy model.Strategy) *engine.Session {
	arena := model.NewArena()
	bins := bin.NewFabricBins(arena)
	var edges []model.EdgeID
	for _, wh := range sizes {
		fid := model.NewFabric(arena, wh[0], wh[1], 0, 0, 0, color.RGBA{R: 128, A: 255}, color.RGBA{R: 128, A: 255})
		f := arena.Fabric(fid)
		edges = append(edges, f.E1, f.E2)
	}
	bins.AddBin("all", edges)
	cfg := model.DefaultPackingConfig(strategy)
	cfg.Threshold = 1000
	cfg.SA = 0 // fabrics above were created with sa=0; keep edge lengths matching raster size
	return &engine.Session{Arena: arena, Bins: bins, Strategy: strategy, Config: cfg}
}

func firstFabricOption(core *engine.Session) model.PackingOption {
	f := core.Arena.Fabric(model.FabricID(0))
	opt := model.PackingOption{BinID: 1, EdgeSubset: []model.EdgeID{f.E1}, OtherDims: []int{f.H}, TotalArea: f.W * f.H}
	opt.UpdateOrder([]int{f.W})
	return opt
}

func TestPackWithOptionRecordsStepAndAllowsUndo(t *testing.T) {
	core := newTestCore([][2]int{{200, 200}}, model.LogCabin)
	s := New(core, nil, nil, nil)

	opt := firstFabricOption(core)
	_, err := s.PackWithOption(opt)
	require.NoError(t, err)
	require.Equal(t, 1, s.Core.Iter, "expected iter 1 after pack")
	require.Len(t, s.Steps(), 1, "expected one recorded step")

	require.NoError(t, s.Undo())
	assert.Equal(t, 0, s.Core.Iter, "expected iter restored to 0 after undo")
	assert.Empty(t, s.Steps(), "expected step history cleared after undo")

	err = s.Undo()
	assert.Equal(t, model.ErrNoUndoAvailable, err, "expected ErrNoUndoAvailable on second undo")
}

func TestUndoDoesNotAliasOriginalArena(t *testing.T) {
	core := newTestCore([][2]int{{200, 200}}, model.LogCabin)
	s := New(core, nil, nil, nil)

	opt := firstFabricOption(core)
	_, err := s.PackWithOption(opt)
	require.NoError(t, err)

	b := s.Core.Bins.Bin(1)
	require.Empty(t, b.ResolvedEdges(), "expected consumed fabric's edges removed post-pack")

	require.NoError(t, s.Undo())
	restored := s.Core.Bins.Bin(1)
	assert.NotEmpty(t, restored.ResolvedEdges(), "expected restored bin to still contain the fabric's edges")
}

func TestStoreHandleThenResolveRoundTrips(t *testing.T) {
	core := newTestCore(nil, model.LogCabin)
	s := New(core, nil, nil, nil)

	opt := model.PackingOption{BinID: 1, ShortestSide: 100}
	h := s.StoreHandle(opt, nil)

	got, err := s.Resolve(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Option.ShortestSide, "expected round-tripped option to match")

	_, err = s.Resolve("nonexistent")
	assert.Equal(t, model.ErrHandleNotFound, err)
}

func TestRegistryPutGetDelete(t *testing.T) {
	r := NewRegistry()
	core := newTestCore(nil, model.LogCabin)
	s := New(core, nil, nil, nil)
	r.Put(s)

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got, "expected Get to return the same session instance")

	r.Delete(s.ID)
	_, err = r.Get(s.ID)
	assert.Equal(t, model.ErrSessionNotFound, err)
}
