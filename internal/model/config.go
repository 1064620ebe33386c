package model

import "image/color"

// Sides holds one value per attach side, used for rail-fence target-length
// bookkeeping (top/right/bottom/left), in both low- and high-resolution
// variants.
type Sides struct {
	Top, Right, Bottom, Left int
}

// PackingConfig is the session-wide, mutable-by-UpdateDPI configuration for
// one packing session. DPI changes rescale SA/Threshold/MinScrapSize
// consistently and reversibly.
type PackingConfig struct {
	DPI          float64
	SA           int // seam allowance, pixels
	Threshold    int // tolerance around target length
	MinScrapSize int
	Strategy     Strategy
	MaxOptions   int
	UseColorBins bool
	DesiredColor color.RGBA

	// Rail-fence scaffolding.
	StartLength  int
	TargetL      Sides
	TargetLHigh  Sides
	Block12Size  Rect
	Block34Size  Rect
	Block12HighResSize Rect
	Block34HighResSize Rect

	baseDPI          float64
	baseSA           int
	baseThreshold    int
	baseMinScrapSize int
}

// DefaultPackingConfig returns the standard 100dpi configuration: sa=25px,
// threshold=100px, min scrap=100px.
func DefaultPackingConfig(strategy Strategy) PackingConfig {
	c := PackingConfig{
		DPI:          100,
		SA:           25,
		Threshold:    100,
		MinScrapSize: 100,
		Strategy:     strategy,
		MaxOptions:   5,
	}
	c.baseDPI, c.baseSA, c.baseThreshold, c.baseMinScrapSize = c.DPI, c.SA, c.Threshold, c.MinScrapSize
	return c
}

// UpdateDPI rescales SA, Threshold, and MinScrapSize proportionally to the
// new dpi relative to the configuration's original (construction-time) dpi.
// Calling UpdateDPI(d) then UpdateDPI(d0) with the original dpi restores the
// original pixel values exactly.
func (c *PackingConfig) UpdateDPI(dpi float64) {
	ratio := dpi / c.baseDPI
	c.DPI = dpi
	c.SA = int(float64(c.baseSA) * ratio)
	c.Threshold = int(float64(c.baseThreshold) * ratio)
	c.MinScrapSize = int(float64(c.baseMinScrapSize) * ratio)
}

// PackingOption is one candidate strip: a subset of edges from a single
// bin, plus the geometry the orchestrator derives from it.
type PackingOption struct {
	Index            int
	BinID            int
	EdgeSubset       []EdgeID
	OtherDims        []int // sibling length - 2*sa, one per edge in EdgeSubset order
	ShortestSide     int   // thickness: min(OtherDims)
	ShortestSideHigh int   // high-res thickness, 0 if not tracked
	TotalArea        int
	WastedArea       float64
}

// UpdateOrder recomputes ShortestSide/TotalArea from the current edge
// subset and other-dims.
func (o *PackingOption) UpdateOrder(edgeLengths []int) {
	if len(o.OtherDims) == 0 {
		o.ShortestSide = 0
		return
	}
	shortest := o.OtherDims[0]
	total := 0
	for i, d := range o.OtherDims {
		if d < shortest {
			shortest = d
		}
		if i < len(edgeLengths) {
			total += edgeLengths[i] * d
		}
	}
	o.ShortestSide = shortest
	o.TotalArea = total
}
