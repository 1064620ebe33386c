package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/nfnt/resize"
)

// ScaleTo rescales src to exactly the given bounds using a smooth
// interpolant, for contexts where a destination rectangle (not just a
// target size) is already known, such as pasting a high-res fabric into a
// mismatched-scale composite slot.
func ScaleTo(src image.Image, dr image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(dr)
	xdraw.CatmullRom.Scale(dst, dr, src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// Thumbnail produces a bounded-size preview of img, preserving aspect
// ratio, stored as the thumbnail of each session option handle.
func Thumbnail(img image.Image, maxW, maxH uint) image.Image {
	b := img.Bounds()
	w, h := uint(b.Dx()), uint(b.Dy())
	if w == 0 || h == 0 {
		return img
	}
	scale := float64(maxW) / float64(w)
	if hs := float64(maxH) / float64(h); hs < scale {
		scale = hs
	}
	if scale >= 1 {
		return img
	}
	return resize.Resize(uint(float64(w)*scale), uint(float64(h)*scale), img, resize.Lanczos3)
}

// SampleColors reduces img to a mean color (the average of every pixel,
// weighted equally) and a dominant color (the modal color among pixels
// quantized to 4-bit-per-channel buckets, avoiding a full 24-bit histogram
// for a plain fabric scan). Both feed the bin package's distance and
// clustering functions.
func SampleColors(img image.Image) (mean, dominant color.RGBA) {
	b := img.Bounds()
	var sumR, sumG, sumB, sumA, n int64
	counts := make(map[uint32]int)
	var bestKey uint32
	bestCount := -1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(bl>>8), uint8(a>>8)
			sumR += int64(r8)
			sumG += int64(g8)
			sumB += int64(b8)
			sumA += int64(a8)
			n++

			key := uint32(r8>>4)<<12 | uint32(g8>>4)<<8 | uint32(b8>>4)<<4 | uint32(a8>>4)
			counts[key]++
			if counts[key] > bestCount {
				bestCount = counts[key]
				bestKey = key
			}
		}
	}
	if n == 0 {
		return color.RGBA{A: 255}, color.RGBA{A: 255}
	}
	mean = color.RGBA{
		R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n), A: uint8(sumA / n),
	}
	dominant = color.RGBA{
		R: uint8((bestKey>>12)&0xF) * 17, G: uint8((bestKey>>8)&0xF) * 17,
		B: uint8((bestKey>>4)&0xF) * 17, A: uint8(bestKey&0xF) * 17,
	}
	return mean, dominant
}
