package export

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/bin"
	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
	"github.com/fabricpack/fabricpack/internal/session"
)

func buildTestSession(t *testing.T) *session.Session {
	t.Helper()
	arena := model.NewArena()
	bins := bin.NewFabricBins(arena)
	fid := model.NewFabric(arena, 200, 200, 0, 0, 0, color.RGBA{R: 128, A: 255}, color.RGBA{R: 128, A: 255})
	f := arena.Fabric(fid)
	bins.AddBin("all", []model.EdgeID{f.E1, f.E2})

	cfg := model.DefaultPackingConfig(model.LogCabin)
	cfg.Threshold = 1000
	core := &engine.Session{Arena: arena, Bins: bins, Strategy: model.LogCabin, Config: cfg}

	s := session.New(core, nil, map[model.FabricID]string{fid: "scraps/a.png"},
		[]session.BinSpec{{Name: "all", Fabrics: []session.FabricRecord{{ID: fid, W: f.W, H: f.H}}}})

	opt := model.PackingOption{BinID: 1, EdgeSubset: []model.EdgeID{f.E1}, OtherDims: []int{f.H}, TotalArea: f.W * f.H}
	opt.UpdateOrder([]int{f.W})
	_, err := s.PackWithOption(opt)
	require.NoError(t, err, "unexpected error packing")
	return s
}

func TestExportInstructionsWritesPDF(t *testing.T) {
	s := buildTestSession(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "instructions.pdf")

	require.NoError(t, ExportInstructions(path, s))

	info, err := os.Stat(path)
	require.NoError(t, err, "expected PDF to exist")
	assert.NotZero(t, info.Size(), "expected non-empty PDF output")
}

func TestExportInstructionsRejectsEmptySession(t *testing.T) {
	arena := model.NewArena()
	bins := bin.NewFabricBins(arena)
	cfg := model.DefaultPackingConfig(model.LogCabin)
	core := &engine.Session{Arena: arena, Bins: bins, Strategy: model.LogCabin, Config: cfg}
	s := session.New(core, nil, nil, nil)

	dir := t.TempDir()
	err := ExportInstructions(filepath.Join(dir, "empty.pdf"), s)
	assert.Error(t, err, "expected error exporting a session with no committed steps")
}
