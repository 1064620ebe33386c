// Package raster composites fabric images into the growing quilt: pasting,
// rotating, seam-guide and border annotation, and the rail-fence finish
// stitch. internal/engine computes where everything goes; this package
// turns that geometry into pixels.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fabricpack/fabricpack/internal/model"
)

// NewCanvas allocates an RGBA canvas of the given size filled with bg.
func NewCanvas(w, h int, bg color.RGBA) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return canvas
}

// TransPaste alpha-composites fg onto bg with fg's top-left corner placed
// at at, matching trans_paste's semantics of treating fg as its own mask.
func TransPaste(bg draw.Image, fg image.Image, at image.Point) {
	r := image.Rectangle{Min: at, Max: at.Add(fg.Bounds().Size())}
	draw.Draw(bg, r, fg, fg.Bounds().Min, draw.Over)
}

// RotateImage90 rotates src clockwise by degrees (must be a multiple of
// 90) and expands the destination to fit, the digital equivalent of
// PIL's Image.rotate(angle, expand=True) for the right-angle case this
// module only ever needs (fabrics are always axis-aligned rectangles).
func RotateImage90(src image.Image, degrees int) image.Image {
	degrees = ((degrees % 360) + 360) % 360
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch degrees {
	case 0:
		return src
	case 180:
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(w-1-x, h-1-y, src.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	case 90:
		dst := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	default: // 270
		dst := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(y, w-1-x, src.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	}
}

const seamGuideColorGray = 100

var seamGuideColor = color.RGBA{R: seamGuideColorGray, G: seamGuideColorGray, B: seamGuideColorGray, A: 255}

// DrawSeamLines draws the four seam-allowance guide lines (inset by sa on
// every side) onto img, and, when before is non-nil, the same four lines
// offset onto the prior composite so the new strip's seam aligns visually
// with where it will sit once attached.
func DrawSeamLines(img draw.Image, before draw.Image, sa int) {
	drawSeamRect(img, sa)
	if before == nil {
		return
	}
	bb := before.Bounds()
	nb := img.Bounds()
	wOffset := bb.Dx() - nb.Dx()
	hOffset := bb.Dy() - nb.Dy()
	drawSeamRectOffset(before, sa, wOffset, hOffset)
}

func drawSeamRect(img draw.Image, sa int) {
	drawSeamRectOffset(img, sa, 0, 0)
}

func drawSeamRectOffset(img draw.Image, sa, wOffset, hOffset int) {
	b := img.Bounds()
	w, h := b.Dx()-wOffset, b.Dy()-hOffset
	hLine(img, -wOffset, w, sa-hOffset)
	vLine(img, sa-wOffset, -hOffset, h)
	hLine(img, -wOffset, w, h-sa-hOffset)
	vLine(img, w-sa-wOffset, -hOffset, h)
}

func hLine(img draw.Image, x0, x1, y int) {
	b := img.Bounds()
	for x := x0; x < x1; x++ {
		if image.Pt(x, y).In(b) {
			img.Set(x, y, seamGuideColor)
		}
	}
}

func vLine(img draw.Image, x, y0, y1 int) {
	b := img.Bounds()
	for y := y0; y < y1; y++ {
		if image.Pt(x, y).In(b) {
			img.Set(x, y, seamGuideColor)
		}
	}
}

// DrawBorder draws a border of the given pixel width on all four edges.
func DrawBorder(img draw.Image, width int, c color.RGBA) {
	b := img.Bounds()
	draw.Draw(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+width), &image.Uniform{C: c}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+width, b.Max.Y), &image.Uniform{C: c}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(b.Min.X, b.Max.Y-width, b.Max.X, b.Max.Y), &image.Uniform{C: c}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(b.Max.X-width, b.Min.Y, b.Max.X, b.Max.Y), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// CompositeImages pastes every image in images (rotated per its ImageShape)
// onto a fresh canvas sized to the union of their boxes, using each shape's
// already-rotation-adjusted Box() for placement.
func CompositeImages(images []image.Image, shapes []model.ImageShape) *image.RGBA {
	if len(images) == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	maxW, maxH := 0, 0
	for _, s := range shapes {
		box := s.Box()
		if box.Right2() > maxW {
			maxW = box.Right2()
		}
		if box.Bottom2() > maxH {
			maxH = box.Bottom2()
		}
	}
	canvas := NewCanvas(maxW, maxH, color.RGBA{R: 255, G: 255, B: 255, A: 0})
	for i, s := range shapes {
		img := images[i]
		total := 0
		for _, a := range s.Rotations {
			total += a
		}
		if total%360 != 0 {
			img = RotateImage90(img, total)
		}
		box := s.Box()
		TransPaste(canvas, img, image.Pt(box.X, box.Y))
	}
	return canvas
}

// RailFenceCompose stitches block12 above block34, cropping sa rows off
// block12's bottom edge and sa rows off block34's top edge before stacking,
// so the result is block12's width and (h12-sa)+(h34-sa) tall.
func RailFenceCompose(block12, block34 image.Image, sa int) image.Image {
	b12 := block12.Bounds()
	b34 := block34.Bounds()
	topHeight := b12.Dy() - sa
	croppedBlock34 := subImage(block34, image.Rect(b34.Min.X, b34.Min.Y+sa, b34.Max.X, b34.Max.Y))
	bottomHeight := croppedBlock34.Bounds().Dy()

	final := NewCanvas(b12.Dx(), topHeight+bottomHeight, color.RGBA{R: 255, G: 255, B: 255, A: 0})
	TransPaste(final, subImage(block12, image.Rect(b12.Min.X, b12.Min.Y, b12.Max.X, b12.Min.Y+topHeight)), image.Pt(0, 0))
	TransPaste(final, croppedBlock34, image.Pt(0, topHeight))
	return final
}

func subImage(img image.Image, r image.Rectangle) image.Image {
	if si, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return si.SubImage(r)
	}
	dst := image.NewRGBA(r.Sub(r.Min))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
