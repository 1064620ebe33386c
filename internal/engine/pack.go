package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/fabricpack/fabricpack/internal/bin"
	"github.com/fabricpack/fabricpack/internal/model"
)

// highResSeamMargin is 2*sa at the default 100dpi seam allowance (25px);
// the orchestrator subtracts it from the composite's low-res target length
// so bin candidates are evaluated against the strip's post-seam footprint.
// Bins are searched by low-res edge length, not in high-res space.
const highResSeamMargin = 50

// Session bundles the mutable state one packing session threads through
// every orchestrator call: the running composite's footprint (low- and
// high-res), the fabric arena, the bin set, the current strategy and
// iteration, and accumulated wasted area. It is passed explicitly to every
// call below rather than hidden in package-level state, so a caller can
// snapshot it by value for undo.
type Session struct {
	Arena     *model.Arena
	Bins      *bin.FabricBins
	Composite model.Rect
	HighRes   model.Rect
	Strategy  model.Strategy
	Iter      int
	Wasted    float64
	Config    model.PackingConfig
}

// Instruction describes one completed pack step for reporting/export.
type Instruction struct {
	Iter       int
	Side       model.Side
	EdgeSubset []model.EdgeID
	Thickness  int
	NewSize    model.Rect
	// Remnants lists the fabrics re-entered into the bin pool by this step,
	// either an original fabric trimmed down in place or a freshly cloned
	// extra piece when one fabric yielded more than one remnant.
	Remnants []model.FabricID
	// Wasted is the off-cut/overshoot area this step discarded, in low-res
	// pixels^2, not the session running total.
	Wasted float64
}

// NextPackingOptions queries every eligible bin's solver and returns
// ranked candidate options for the current step. AllowEmpty controls
// whether an empty result is returned as a plain (nil, nil) "no more
// options this round" outcome or as model.ErrNoFeasibleOption.
func NextPackingOptions(ctx context.Context, s *Session, binFilter bin.BinFilter, optionFilter bin.OptionFilter, rank bin.OptionRankKind, constraints bin.SolveConstraints, allowEmpty bool) ([]model.PackingOption, error) {
	if s.Strategy == model.RailFence && s.Iter >= 12 {
		return nil, model.ErrStrategyDone
	}

	if _, err := AttachSide(s.Strategy, s.Iter); err != nil {
		return nil, err
	}

	if s.Strategy == model.RailFence {
		AdvanceRailFenceState(s, s.Bins.Bins())
	}

	var targetLen int
	if s.Strategy == model.RailFence {
		targetLen = RailFenceTargetLength(s)
	} else {
		targetLen = TargetLength(s.Strategy, s.Iter, s.Composite)
	}
	targetSum := targetLen - highResSeamMargin
	if targetSum < 0 {
		targetSum = 0
	}

	eligible := s.Bins.SelectBins(targetSum, s.Config.Threshold, binFilter)
	if len(eligible) == 0 {
		if allowEmpty {
			return nil, nil
		}
		return nil, model.ErrNoFeasibleOption
	}

	if s.Strategy == model.RailFence {
		railConstraints := RailFenceThicknessConstraints(s.Config, s.Iter)
		if railConstraints.ThicknessMin != 0 {
			constraints.ThicknessMin = railConstraints.ThicknessMin
		}
		if railConstraints.ThicknessMax != 0 {
			constraints.ThicknessMax = railConstraints.ThicknessMax
		}
	}

	perBinCfg := bin.DefaultSolverConfig()
	perBinCfg.Generations /= len(eligible)
	if perBinCfg.Generations < 5 {
		perBinCfg.Generations = 5
	}
	budget := 60 * time.Second / time.Duration(len(eligible))
	if budget > 30*time.Second {
		budget = 30 * time.Second
	}

	var options []model.PackingOption
	seen := make(map[string]bool)
	idx := 0
	for _, b := range eligible {
		binCtx, cancel := context.WithTimeout(ctx, budget)
		results, usedFallback := b.FindBestSubsets(binCtx, targetSum, s.Config.Threshold, false, constraints, perBinCfg)
		cancel()
		if usedFallback {
			log.Printf("engine: bin %d: metaheuristic search found no subset, used exact DP fallback", b.ID)
		}
		for _, r := range results {
			opt := buildOption(s.Arena, b.ID, idx, r, s.Config.MinScrapSize)
			key := dedupeKey(s.Arena, opt)
			if seen[key] {
				continue
			}
			seen[key] = true
			if !optionFilter.Validates(opt.ShortestSide) {
				continue
			}
			options = append(options, opt)
			idx++
		}
	}

	if len(options) == 0 {
		if allowEmpty {
			return nil, nil
		}
		return nil, model.ErrNoFeasibleOption
	}

	rankOptions(options, rank, eligible)

	if s.Config.MaxOptions > 0 && len(options) > s.Config.MaxOptions {
		options = options[:s.Config.MaxOptions]
	}
	return options, nil
}

func buildOption(arena *model.Arena, binID, index int, r bin.Subset, minScrap int) model.PackingOption {
	opt := model.PackingOption{Index: index, BinID: binID, EdgeSubset: r.Edges}
	edgeLengths := make([]int, len(r.Edges))
	highOtherDims := make([]int, 0, len(r.Edges))
	for i, eid := range r.Edges {
		e := arena.Edge(eid)
		opt.OtherDims = append(opt.OtherDims, e.OtherDim(arena, false))
		edgeLengths[i] = e.Length
		if h := e.OtherDim(arena, true); h > 0 {
			highOtherDims = append(highOtherDims, h)
		}
	}
	opt.UpdateOrder(edgeLengths)

	if len(highOtherDims) == len(r.Edges) && len(highOtherDims) > 0 {
		shortest := highOtherDims[0]
		for _, d := range highOtherDims[1:] {
			if d < shortest {
				shortest = d
			}
		}
		opt.ShortestSideHigh = shortest
	}

	for _, eid := range r.Edges {
		rw, rh, excess, keep := perFabricOffcut(arena, eid, opt.ShortestSide, minScrap)
		if excess > 0 && !keep {
			opt.WastedArea += float64(rw) * float64(rh)
		}
	}
	return opt
}

// perFabricOffcut reports the raw width/height of the off-cut trimmed from
// eid's fabric when the strip's thickness is thickness: the fabric's own
// dimension along the strip axis is unchanged, and the perpendicular
// dimension shrinks to the raw pixel excess beyond thickness. keep reports
// whether the off-cut is large enough in both dimensions, and large enough
// by itself, to survive as a remnant rather than being discarded as waste.
func perFabricOffcut(arena *model.Arena, eid model.EdgeID, thickness, minScrap int) (remnantW, remnantH, excess int, keep bool) {
	e := arena.Edge(eid)
	f := arena.Fabric(e.Fabric)
	excess = e.OtherDim(arena, false) - thickness
	if excess <= 0 {
		return 0, 0, excess, false
	}
	if e.IsE1 {
		remnantW, remnantH = f.W, excess
	} else {
		remnantW, remnantH = excess, f.H
	}
	keep = excess > minScrap && remnantW >= minScrap && remnantH >= minScrap
	return remnantW, remnantH, excess, keep
}

func dedupeKey(arena *model.Arena, opt model.PackingOption) string {
	lengths := make([]int, len(opt.EdgeSubset))
	for i, eid := range opt.EdgeSubset {
		lengths[i] = arena.Edge(eid).Length
	}
	sort.Ints(lengths)
	key := fmt.Sprintf("%d:", opt.ShortestSide)
	for _, l := range lengths {
		key += fmt.Sprintf("%d,", l)
	}
	return key
}

func rankOptions(options []model.PackingOption, kind bin.OptionRankKind, bins []*bin.FabricBin) {
	byBin := make(map[int]*bin.FabricBin, len(bins))
	for _, b := range bins {
		byBin[b.ID] = b
	}
	rankOf := func(o model.PackingOption) float64 {
		b := byBin[o.BinID]
		if b == nil {
			return o.WastedArea
		}
		return bin.ComputeRank(kind, o, b.PairDistances())
	}
	insertionSortOptions(options, rankOf)
}

// insertionSortOptions sorts in place by ascending rank value; option
// counts per step stay small (bounded by MaxOptions upstream), so a simple
// stable insertion sort is plenty and avoids pulling sort.Slice's
// reflection-based comparator into a hot per-step path.
func insertionSortOptions(options []model.PackingOption, rankOf func(model.PackingOption) float64) {
	for i := 1; i < len(options); i++ {
		j := i
		for j > 0 && rankOf(options[j-1]) > rankOf(options[j]) {
			options[j-1], options[j] = options[j], options[j-1]
			j--
		}
	}
}

// PackWithOption applies a chosen option: trims or discards each consumed
// fabric's perpendicular off-cut, sums the subset's edges into the strip's
// own raw length (seams between interior fabrics absorbed, only the
// strip's two outer edges keeping their seam allowance), crops that strip
// to the composite's existing matching-axis length (trimming or discarding
// the overshoot), attaches the result to the running composite, and
// re-inserts every surviving remnant into the bin it came from. Actual
// pixel compositing (pasting the strip onto the running composite image)
// is the caller's responsibility via internal/raster; this function owns
// only the geometry, trimming, and bin bookkeeping described in the
// component design, so internal/engine stays free of any image dependency.
func PackWithOption(s *Session, opt model.PackingOption) (Instruction, error) {
	side, err := AttachSide(s.Strategy, s.Iter)
	if err != nil {
		return Instruction{}, err
	}

	b := s.Bins.Bin(opt.BinID)
	if b == nil {
		return Instruction{}, fmt.Errorf("bin %d: %w", opt.BinID, model.ErrNoFeasibleOption)
	}

	thickness := opt.ShortestSide
	sa := s.Config.SA
	minScrap := s.Config.MinScrapSize
	horizontal := side == model.Top || side == model.Bottom

	for _, eid := range opt.EdgeSubset {
		b.RemoveEdgesOfFabric(s.Arena.Edge(eid).Fabric)
	}

	var remnants []model.FabricID
	var wasted float64
	stripLen := 0
	for i, eid := range opt.EdgeSubset {
		e := s.Arena.Edge(eid)
		fid := e.Fabric
		f := s.Arena.Fabric(fid)

		if rw, rh, excess, keep := perFabricOffcut(s.Arena, eid, thickness, minScrap); excess > 0 {
			if keep {
				s.Arena.UpdateAfterTrimming(fid, rw, rh, 0, 0, sa, f.MeanColor, f.DominantColor)
				b.EdgeIDs = append(b.EdgeIDs, f.E1, f.E2)
				remnants = append(remnants, fid)
			} else {
				wasted += float64(rw) * float64(rh)
			}
		}

		stripLen += e.Length
		if i == 0 {
			stripLen += sa
		}
		if i == len(opt.EdgeSubset)-1 {
			stripLen += sa
		}
	}

	thicknessAxisOld, lengthAxisOld := s.Composite.H, s.Composite.W
	if !horizontal {
		thicknessAxisOld, lengthAxisOld = s.Composite.W, s.Composite.H
	}

	finalLen := stripLen
	if lengthAxisOld > 0 && stripLen > lengthAxisOld {
		overshoot := stripLen - lengthAxisOld
		rawThickness := thickness + 2*sa
		if overshoot > minScrap && rawThickness >= minScrap {
			lastFid := s.Arena.Edge(opt.EdgeSubset[len(opt.EdgeSubset)-1]).Fabric
			lastF := s.Arena.Fabric(lastFid)
			rid := s.Arena.CloneFabric(lastFid, sa)
			rw, rh := overshoot, rawThickness
			if !horizontal {
				rw, rh = rawThickness, overshoot
			}
			s.Arena.UpdateAfterTrimming(rid, rw, rh, 0, 0, sa, lastF.MeanColor, lastF.DominantColor)
			rf := s.Arena.Fabric(rid)
			b.EdgeIDs = append(b.EdgeIDs, rf.E1, rf.E2)
			remnants = append(remnants, rid)
		} else {
			wasted += float64(overshoot) * float64(rawThickness)
		}
		finalLen = lengthAxisOld
	}
	b.UpdatePrecomputed()

	// The first strip ever attached along an axis keeps both its outer seam
	// allowances (mirrors the strip-length rule above); every later strip on
	// that same axis butts directly against the previous one, so only its
	// own thickness extends the composite, not another seam allowance.
	newThicknessAxis := thicknessAxisOld + thickness
	if thicknessAxisOld == 0 {
		newThicknessAxis = thickness + 2*sa
	}
	newLengthAxis := lengthAxisOld
	if lengthAxisOld == 0 {
		newLengthAxis = finalLen
	}
	newW, newH := newLengthAxis, newThicknessAxis
	if !horizontal {
		newW, newH = newThicknessAxis, newLengthAxis
	}
	s.Composite = TrimCurrImage(s.Composite, newW, newH)

	highThickness := opt.ShortestSideHigh
	if highThickness == 0 {
		highThickness = thickness
	}
	hw, hh := HighResPackedFabricSize(s.HighRes, highThickness, side, sa)
	s.HighRes = TrimCurrImageHighRes(s.HighRes, hw, hh)

	s.Wasted += wasted

	if s.Strategy == model.RailFence && s.Iter == 11 {
		FinalizeRailFence(s)
	}

	s.Iter++

	return Instruction{
		Iter:       s.Iter - 1,
		Side:       side,
		EdgeSubset: opt.EdgeSubset,
		Thickness:  thickness,
		NewSize:    s.Composite,
		Remnants:   remnants,
		Wasted:     wasted,
	}, nil
}
