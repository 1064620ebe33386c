package session

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/model"
)

func TestOptionToStripImageRendersAndStoresHandle(t *testing.T) {
	dir := t.TempDir()
	writeSolidPNG(t, dir, "a.png", 150, 150, color.RGBA{R: 200, A: 255})

	core := newTestCore([][2]int{{150, 150}}, model.LogCabin)
	s := New(core, nil, map[model.FabricID]string{0: "a.png"}, []BinSpec{{Name: "all", Fabrics: []FabricRecord{{ID: 0, W: 150, H: 150}}}})

	opt := firstFabricOption(core)
	h, err := s.OptionToStripImage(opt, dir)
	require.NoError(t, err)
	require.NotNil(t, h.Strip, "expected a non-nil rendered strip image")

	b := h.Strip.Bounds()
	assert.NotZero(t, b.Dx(), "expected non-empty strip image")
	assert.NotZero(t, b.Dy(), "expected non-empty strip image")
	assert.NotNil(t, h.Thumbnail, "expected a rendered thumbnail alongside the strip")

	got, err := s.Resolve(h.ID)
	require.NoError(t, err, "unexpected error resolving handle")
	assert.Equal(t, opt.ShortestSide, got.Option.ShortestSide, "expected resolved option to match")
}
