package engine

import (
	"github.com/fabricpack/fabricpack/internal/bin"
	"github.com/fabricpack/fabricpack/internal/model"
)

// RailFenceTargetLength looks up the length the current block's strips must
// match from the session config's target-length bookkeeping, rather than
// the generic composite-derived TargetLength: rail-fence resets its
// composite mid-run (iter 6), so its block targets must survive the reset
// in config.TargetL instead.
func RailFenceTargetLength(s *Session) int {
	switch (s.Iter / 3) % 4 {
	case 0:
		return s.Config.TargetL.Top
	case 1:
		return s.Config.TargetL.Right
	case 2:
		return s.Config.TargetL.Bottom
	default:
		return s.Config.TargetL.Left
	}
}

// AdvanceRailFenceState applies the rail-fence driver's state transitions
// due at the session's current iteration, before that iteration's options
// are computed. It must only be called when s.Strategy == model.RailFence.
func AdvanceRailFenceState(s *Session, bins []*bin.FabricBin) {
	cfg := &s.Config
	switch s.Iter {
	case 0:
		if cfg.TargetL.Top == 0 {
			cfg.TargetL.Top = EstimateStartLength(bins)
		}
	case 3:
		cfg.TargetL.Right = s.Composite.H
	case 6:
		cfg.Block12Size = s.Composite
		cfg.TargetL.Bottom = cfg.Block12Size.W - cfg.TargetL.Top + 2*cfg.SA
		s.Composite = model.Rect{}
	case 9:
		cfg.TargetL.Left = s.Composite.W - cfg.TargetL.Right + 2*cfg.SA
	}
}

// RailFenceThicknessConstraints returns the thickness bound to compose into
// a solver call at the given iteration: iter 10 caps thickness at the top
// block's length; iters 11 and 12 additionally enforce the minimum that
// keeps block34's height from overshooting block12's, so the two blocks
// stack into equal-width halves.
func RailFenceThicknessConstraints(cfg model.PackingConfig, iter int) bin.SolveConstraints {
	switch iter {
	case 10:
		return bin.SolveConstraints{ThicknessMax: cfg.TargetL.Top}
	case 11:
		return bin.SolveConstraints{ThicknessMin: railFenceMinThickness(cfg), ThicknessMax: cfg.TargetL.Top}
	case 12:
		return bin.SolveConstraints{ThicknessMin: railFenceMinThickness(cfg)}
	default:
		return bin.SolveConstraints{}
	}
}

func railFenceMinThickness(cfg model.PackingConfig) int {
	bound := cfg.TargetL.Top + cfg.TargetL.Bottom - cfg.Block34Size.H
	if bound < 0 {
		return 0
	}
	return bound
}

// FinalizeRailFence runs once the twelfth (final) strip has been packed: it
// records block34's footprint and crops the wider of block12/block34 from
// its left-hand side so the two stack into a single composite of uniform
// width, per the decided left-aligned crop.
func FinalizeRailFence(s *Session) {
	s.Config.Block34Size = s.Composite
	final, crop12, crop34 := ComposeRailFenceBlocks(s.Config.Block12Size, s.Config.Block34Size)
	s.Config.Block12Size = crop12
	s.Config.Block34Size = crop34
	s.Composite = final
}

// ComposeRailFenceBlocks crops the wider of block12/block34 to the
// narrower's width, trimming from the left-hand edge, and returns the
// stacked composite's footprint along with each block's cropped rectangle.
func ComposeRailFenceBlocks(block12, block34 model.Rect) (final, cropBlock12, cropBlock34 model.Rect) {
	w := block12.W
	if block34.W < w {
		w = block34.W
	}
	cropBlock12 = model.Rect{X: block12.Right2() - w, Y: block12.Y, W: w, H: block12.H}
	cropBlock34 = model.Rect{X: block34.Right2() - w, Y: block34.Y, W: w, H: block34.H}
	final = model.Rect{W: w, H: block12.H + block34.H}
	return final, cropBlock12, cropBlock34
}

// EstimateStartLength seeds target_L.top when rail-fence packing begins
// without a user-supplied start length: the larger of 1.2x the average of
// each fabric's shorter side, and the largest of any fabric's longer side,
// deduped across bins so a fabric shared by multiple bins counts once.
func EstimateStartLength(bins []*bin.FabricBin) int {
	seen := make(map[model.FabricID]bool)
	var sumMin float64
	var count int
	maxMax := 0
	for _, b := range bins {
		for _, e := range b.ResolvedEdges() {
			if seen[e.Fabric] {
				continue
			}
			seen[e.Fabric] = true
			f := b.Arena.Fabric(e.Fabric)
			lo, hi := f.W, f.H
			if lo > hi {
				lo, hi = hi, lo
			}
			sumMin += float64(lo)
			count++
			if hi > maxMax {
				maxMax = hi
			}
		}
	}
	if count == 0 {
		return 0
	}
	avgMin := sumMin / float64(count) * 1.2
	if int(avgMin) > maxMax {
		return int(avgMin)
	}
	return maxMax
}
