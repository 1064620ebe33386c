package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fabricpack/fabricpack/internal/model"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRotateImage90SwapsDimensions(t *testing.T) {
	src := solidImage(100, 50, color.RGBA{R: 255, A: 255})
	rotated := RotateImage90(src, 90)
	b := rotated.Bounds()
	assert.Equal(t, 50, b.Dx(), "expected width 50 after 90deg rotation")
	assert.Equal(t, 100, b.Dy(), "expected height 100 after 90deg rotation")
}

func TestRotateImage90PreservesCornerPixel(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	marker := color.RGBA{R: 9, G: 9, B: 9, A: 255}
	src.Set(0, 0, marker)

	rotated := RotateImage90(src, 90)
	// top-left marker pixel moves to (h-1-0, 0) = (1, 0)
	got := rotated.At(1, 0).(color.RGBA)
	assert.Equal(t, marker, got, "expected marker pixel at (1,0) after rotation")
}

func TestTransPasteComposites(t *testing.T) {
	bg := NewCanvas(10, 10, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	fg := solidImage(4, 4, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	TransPaste(bg, fg, image.Pt(2, 2))

	assert.Zero(t, bg.RGBAAt(3, 3).R, "expected black pixel pasted at (3,3)")
	assert.Equal(t, uint8(255), bg.RGBAAt(8, 8).R, "expected background untouched outside paste box")
}

func TestCompositeImagesSizesCanvasToUnion(t *testing.T) {
	shapes := []model.ImageShape{
		{X: 0, Y: 0, W: 50, H: 30},
		{X: 50, Y: 0, W: 20, H: 60},
	}
	images := []image.Image{
		solidImage(50, 30, color.RGBA{R: 1, A: 255}),
		solidImage(20, 60, color.RGBA{R: 2, A: 255}),
	}
	canvas := CompositeImages(images, shapes)
	b := canvas.Bounds()
	assert.Equal(t, 70, b.Dx(), "expected union width 70")
	assert.Equal(t, 60, b.Dy(), "expected union height 60")
}

func TestRailFenceComposeStacksWithSeamOverlap(t *testing.T) {
	sa := 5
	block12 := solidImage(100, 200, color.RGBA{R: 1, A: 255})
	block34 := solidImage(100, 150, color.RGBA{R: 2, A: 255})

	final := RailFenceCompose(block12, block34, sa)
	b := final.Bounds()
	wantH := (200 - sa) + (150 - sa)
	assert.Equal(t, wantH, b.Dy(), "expected stacked height")
	assert.Equal(t, 100, b.Dx(), "expected width 100")
}
