package raster

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePNGThenReadPNGRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strip.png")

	original := solidImage(12, 8, color.RGBA{R: 200, G: 10, B: 10, A: 255})
	require.NoError(t, WritePNG(path, original))

	got, err := ReadPNG(path)
	require.NoError(t, err)
	b := got.Bounds()
	assert.Equal(t, 12, b.Dx(), "expected round-tripped width 12")
	assert.Equal(t, 8, b.Dy(), "expected round-tripped height 8")
}

func TestDimensionsMatchesWrittenImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fabric.png")

	require.NoError(t, WritePNG(path, solidImage(40, 30, color.RGBA{A: 255})))

	w, h, err := Dimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)
}
