// Package engine implements the strategy kernel, the bin solver's pack
// orchestrator, and the rail-fence driver: the pieces that turn a set of
// candidate edge subsets into a growing composite image.
package engine

import (
	"fmt"

	"github.com/fabricpack/fabricpack/internal/model"
)

// sideOrder returns the side cycled to on iteration iter for strategy s.
func sideOrder(s model.Strategy, iter int) model.Side {
	switch s {
	case model.LogCabin:
		return [4]model.Side{model.Left, model.Top, model.Right, model.Bottom}[iter%4]
	case model.CourthouseSteps:
		return [4]model.Side{model.Top, model.Bottom, model.Left, model.Right}[iter%4]
	case model.RailFence:
		return [4]model.Side{model.Top, model.Right, model.Bottom, model.Left}[(iter/3)%4]
	default:
		return model.Top
	}
}

// AttachSide is the public entry point for sideOrder, returning
// model.ErrInvalidStrategy for an unrecognized strategy tag.
func AttachSide(s model.Strategy, iter int) (model.Side, error) {
	switch s {
	case model.LogCabin, model.CourthouseSteps, model.RailFence:
		return sideOrder(s, iter), nil
	default:
		return model.Top, fmt.Errorf("strategy %q: %w", s, model.ErrInvalidStrategy)
	}
}

// wantsWidth reports whether TargetLength should return the composite's
// width (true) or height (false) for (strategy, iter).
func wantsWidth(s model.Strategy, iter int) bool {
	switch s {
	case model.LogCabin:
		return iter%2 != 0
	case model.CourthouseSteps:
		return iter%4 < 2
	case model.RailFence:
		return (iter/3)%2 == 0
	default:
		return true
	}
}

// TargetLength returns the length the next strip must match against the
// current composite shape, per strategy and iteration.
func TargetLength(s model.Strategy, iter int, composite model.Rect) int {
	if wantsWidth(s, iter) {
		return composite.W
	}
	return composite.H
}

// TopLeft returns the top-left pixel of the next strip relative to the
// composite, given the attach side, strip thickness, and seam allowance.
func TopLeft(side model.Side, composite model.Rect, thickness, sa int) model.Point {
	switch side {
	case model.Top:
		return model.Point{X: composite.X, Y: composite.Y - thickness - sa}
	case model.Bottom:
		return model.Point{X: composite.X, Y: composite.Bottom2() + sa}
	case model.Left:
		return model.Point{X: composite.X - thickness - sa, Y: composite.Y}
	default: // Right
		return model.Point{X: composite.Right2() + sa, Y: composite.Y}
	}
}

// ShiftedTopLeft returns the per-fabric placement offset inside a strip
// when a fabric's other-dim exceeds the strip's thickness. The fabric is
// always placed at tl unchanged: TrimImageInStrip keeps the [tl, tl+thickness)
// slice of whatever was pasted there, so any excess naturally hangs off the
// far edge from tl without needing to shift the placement itself.
func ShiftedTopLeft(side model.Side, tl model.Point, thickness, otherDim int) model.Point {
	return tl
}

// NextTopLeft advances the cursor along the strip's axis after placing one
// fabric. The first fabric in a strip contributes one extra sa of margin
// so its outer seam does not coincide with the strip's leading edge.
func NextTopLeft(index int, tl model.Point, horizontal bool, edgeLen, sa int) model.Point {
	advance := edgeLen + sa
	if index == 0 {
		advance += sa
	}
	if horizontal {
		return model.Point{X: tl.X + advance, Y: tl.Y}
	}
	return model.Point{X: tl.X, Y: tl.Y + advance}
}

// RotateImageShape reports whether a fabric of size w×h must be rotated 90
// degrees so its selected edge aligns with edgeLen. It returns
// model.ErrDimensionMismatch if neither orientation's relevant side matches.
func RotateImageShape(w, h, edgeLen int) (bool, error) {
	if w == edgeLen {
		return false, nil
	}
	if h == edgeLen {
		return true, nil
	}
	return false, fmt.Errorf("edge length %d matches neither dimension %dx%d: %w", edgeLen, w, h, model.ErrDimensionMismatch)
}

// TrimImageInStrip returns the sub-rectangle of a placed fabric to keep
// once it has been cropped to the strip's thickness, given the fabric's
// full placed box and the horizontal-vs-vertical strip orientation.
func TrimImageInStrip(box model.Rect, thickness int, horizontal bool) model.Rect {
	if horizontal {
		return model.Rect{X: box.X, Y: box.Y, W: box.W, H: thickness}
	}
	return model.Rect{X: box.X, Y: box.Y, W: thickness, H: box.H}
}

// CropCurrStrip returns the rectangle of the assembled strip to retain
// after trimming it to the target length along its long axis.
func CropCurrStrip(strip model.Rect, targetLen int, horizontal bool) model.Rect {
	if horizontal {
		w := strip.W
		if targetLen < w {
			w = targetLen
		}
		return model.Rect{X: strip.X, Y: strip.Y, W: w, H: strip.H}
	}
	h := strip.H
	if targetLen < h {
		h = targetLen
	}
	return model.Rect{X: strip.X, Y: strip.Y, W: strip.W, H: h}
}

// CropCurrImage crops the composite to its target footprint after a strip
// has been attached on side.
func CropCurrImage(composite model.Rect, side model.Side, newW, newH int) model.Rect {
	return model.Rect{X: composite.X, Y: composite.Y, W: newW, H: newH}
}

// TrimCurrImage is the high-res-agnostic counterpart of CropCurrImage used
// when a strip must be cropped before being pasted onto the running
// composite (non-rail-fence path).
func TrimCurrImage(composite model.Rect, targetW, targetH int) model.Rect {
	return model.Rect{X: composite.X, Y: composite.Y, W: targetW, H: targetH}
}

// TrimImageHighRes and TrimCurrImageHighRes are identical in shape to their
// low-res counterparts; callers pass high-res lengths through the same
// rectangle arithmetic since no geometric step differs at high resolution,
// only the pixel lengths fed in do.
func TrimImageHighRes(box model.Rect, thickness int, horizontal bool) model.Rect {
	return TrimImageInStrip(box, thickness, horizontal)
}

func TrimCurrImageHighRes(composite model.Rect, targetW, targetH int) model.Rect {
	return TrimCurrImage(composite, targetW, targetH)
}

// HighResPackedFabricSize projects the composite's high-res size after the
// current strip (of high-res thickness thicknessHigh) is attached on side.
func HighResPackedFabricSize(current model.Rect, thicknessHigh int, side model.Side, sa int) (w, h int) {
	switch side {
	case model.Top, model.Bottom:
		return current.W, current.H + thicknessHigh + 2*sa
	default:
		return current.W + thicknessHigh + 2*sa, current.H
	}
}
