package bin

import (
	"image/color"
	"math"
)

// CIE1994 weighting constants tuned for textile color comparison
// (K_1=0.048, K_2=0.014, K_L=2) rather than the graphic-arts defaults.
const (
	cie94K1 = 0.048
	cie94K2 = 0.014
	cie94KL = 2.0
)

// rgbToLab converts sRGB to CIE L*a*b*, the input space CIE1994 operates in.
func rgbToLab(c color.RGBA) (l, a, b float64) {
	f := func(v uint8) float64 {
		x := float64(v) / 255.0
		if x > 0.04045 {
			x = math.Pow((x+0.055)/1.055, 2.4)
		} else {
			x = x / 12.92
		}
		return x
	}
	r, g, bl := f(c.R), f(c.G), f(c.B)

	x := r*0.4124 + g*0.3576 + bl*0.1805
	y := r*0.2126 + g*0.7152 + bl*0.0722
	z := r*0.0193 + g*0.1192 + bl*0.9505

	// D65 reference white
	x /= 0.95047
	z /= 1.08883

	fn := func(t float64) float64 {
		if t > 0.008856 {
			return math.Cbrt(t)
		}
		return 7.787*t + 16.0/116.0
	}
	fx, fy, fz := fn(x), fn(y), fn(z)

	l = 116*fy - 16
	a = 500 * (fx - fy)
	b = 200 * (fy - fz)
	return l, a, b
}

// CIE1994Distance computes the textile-weighted ΔE94 between two sRGB
// colors.
func CIE1994Distance(c1, c2 color.RGBA) float64 {
	l1, a1, b1 := rgbToLab(c1)
	l2, a2, b2 := rgbToLab(c2)

	dl := l1 - l2
	c1v := math.Sqrt(a1*a1 + b1*b1)
	c2v := math.Sqrt(a2*a2 + b2*b2)
	dc := c1v - c2v
	da := a1 - a2
	db := b1 - b2
	dhSq := da*da + db*db - dc*dc
	if dhSq < 0 {
		dhSq = 0
	}
	dh := math.Sqrt(dhSq)

	sl := 1.0
	sc := 1 + cie94K1*c1v
	sh := 1 + cie94K2*c1v

	termL := dl / (cie94KL * sl)
	termC := dc / sc
	termH := dh / sh

	return math.Sqrt(termL*termL + termC*termC + termH*termH)
}

// rgbToHSV converts to hue/saturation/value in [0,360)/[0,1]/[0,1].
func rgbToHSV(c color.RGBA) (h, s, v float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	v = maxC
	d := maxC - minC
	if maxC == 0 {
		s = 0
	} else {
		s = d / maxC
	}
	if d == 0 {
		h = 0
	} else {
		switch maxC {
		case r:
			h = math.Mod((g-b)/d, 6)
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
		if h < 0 {
			h += 360
		}
	}
	return h, s, v
}

// HSV exposes the hue/saturation/value decomposition used internally by the
// distance functions below, for callers (grouping/estimation) that need a
// scalar per-fabric feature rather than a pairwise distance.
func HSV(c color.RGBA) (h, s, v float64) {
	return rgbToHSV(c)
}

// ValueDistance returns the absolute difference in HSV value between two
// colors, scaled to a 0-255 channel range.
func ValueDistance(c1, c2 color.RGBA) float64 {
	_, _, v1 := rgbToHSV(c1)
	_, _, v2 := rgbToHSV(c2)
	return math.Abs(v1-v2) * 255
}

// HueDistance returns the circular difference in hue (degrees) between two
// colors.
func HueDistance(c1, c2 color.RGBA) float64 {
	h1, _, _ := rgbToHSV(c1)
	h2, _, _ := rgbToHSV(c2)
	d := math.Abs(h1 - h2)
	if d > 180 {
		d = 360 - d
	}
	return d
}
