package bin

import (
	"sort"

	"github.com/fabricpack/fabricpack/internal/model"
)

// FabricBins partitions an arena's edges into a flat list of FabricBin
// buckets: a length-partitioned container that SelectBins queries against
// a target window, merging empty-selection neighbors together rather than
// leaving a bin permanently unusable.
type FabricBins struct {
	arena *model.Arena
	bins  []*FabricBin
	next  int
}

// NewFabricBins builds an empty container over arena.
func NewFabricBins(arena *model.Arena) *FabricBins {
	return &FabricBins{arena: arena}
}

// AddBin registers a bin and assigns it the next sequential id.
func (fb *FabricBins) AddBin(name string, edgeIDs []model.EdgeID) *FabricBin {
	fb.next++
	b := NewFabricBin(fb.next, name, fb.arena, edgeIDs)
	fb.bins = append(fb.bins, b)
	return b
}

// Bins returns the live bin list.
func (fb *FabricBins) Bins() []*FabricBin { return fb.bins }

// Bin looks a bin up by id, or nil if absent.
func (fb *FabricBins) Bin(id int) *FabricBin {
	for _, b := range fb.bins {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// SelectBins returns every bin that both affords the target window and
// passes filter, ordered by proximity of each bin's maxLength to target. If
// the filtered set is empty, it falls back to MergeBins once and retries
// rather than surfacing a hard failure.
func (fb *FabricBins) SelectBins(target, tolerance int, filter BinFilter) []*FabricBin {
	out := fb.candidateBins(target, tolerance, filter)
	if len(out) > 0 {
		return out
	}
	fb.MergeBins()
	return fb.candidateBins(target, tolerance, filter)
}

func (fb *FabricBins) candidateBins(target, tolerance int, filter BinFilter) []*FabricBin {
	var out []*FabricBin
	for _, b := range fb.bins {
		if !b.CanAfford(target, tolerance) {
			continue
		}
		if !filter.Validates(b) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return abs(out[i].maxLength-target) < abs(out[j].maxLength-target)
	})
	return out
}

// MergeBins folds each bin pairwise into its adjacent neighbor (by current
// list order): a bin that alone can't afford a target often can once
// joined with its neighbor. Adjacent pairs are always merged rather than
// searching for an optimal pairing.
func (fb *FabricBins) MergeBins() {
	if len(fb.bins) < 2 {
		return
	}
	var merged []*FabricBin
	for i := 0; i < len(fb.bins); i += 2 {
		if i+1 >= len(fb.bins) {
			merged = append(merged, fb.bins[i])
			continue
		}
		a, b := fb.bins[i], fb.bins[i+1]
		combined := append(append([]model.EdgeID(nil), a.EdgeIDs...), b.EdgeIDs...)
		fb.next++
		merged = append(merged, NewFabricBin(fb.next, a.Name+"+"+b.Name, fb.arena, combined))
	}
	fb.bins = merged
}

// RemoveFabric drops every edge of fabric id from every bin and refreshes
// each bin's precomputed structures.
func (fb *FabricBins) RemoveFabric(id model.FabricID) {
	for _, b := range fb.bins {
		b.RemoveEdgesOfFabric(id)
		b.UpdatePrecomputed()
	}
}

// Snapshot deep-copies every bin's edge list and rebuilds each one's
// precomputed order/distance state against arena, which must itself be a
// Snapshot of the arena this FabricBins was built over. The clone shares no
// slice or bin backing with fb, so later mutation of either is invisible to
// the other.
func (fb *FabricBins) Snapshot(arena *model.Arena) *FabricBins {
	clone := &FabricBins{arena: arena, next: fb.next}
	for _, b := range fb.bins {
		edgeIDs := append([]model.EdgeID(nil), b.EdgeIDs...)
		nb := NewFabricBin(b.ID, b.Name, arena, edgeIDs)
		clone.bins = append(clone.bins, nb)
	}
	return clone
}

// ColorFabricBins is FabricBins partitioned by dominant hue instead of by
// length: fabrics are bucketed into a fixed number of hue wedges before any
// length-based bin ever forms, so the same underlying FabricBins machinery
// applies once the hue partitioning has produced its edge groups.
type ColorFabricBins struct {
	*FabricBins
	HueBuckets int
}

// NewColorFabricBins partitions arena's fabrics into hueBuckets bins by
// dominant-color hue and returns the populated container.
func NewColorFabricBins(arena *model.Arena, fabricIDs []model.FabricID, hueBuckets int) *ColorFabricBins {
	cfb := &ColorFabricBins{FabricBins: NewFabricBins(arena), HueBuckets: hueBuckets}
	if hueBuckets <= 0 {
		hueBuckets = 1
	}
	buckets := make([][]model.EdgeID, hueBuckets)
	width := 360.0 / float64(hueBuckets)
	for _, fid := range fabricIDs {
		f := arena.Fabric(fid)
		h, _, _ := rgbToHSV(f.DominantColor)
		idx := int(h / width)
		if idx >= hueBuckets {
			idx = hueBuckets - 1
		}
		buckets[idx] = append(buckets[idx], f.E1, f.E2)
	}
	for i, edges := range buckets {
		if len(edges) == 0 {
			continue
		}
		cfb.AddBin(hueBucketName(i), edges)
	}
	return cfb
}

func hueBucketName(i int) string {
	const letters = "0123456789abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return "hue-" + string(letters[i])
	}
	return "hue-bucket"
}
