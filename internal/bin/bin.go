// Package bin implements the fabric bin layer: FabricBin (a precomputed,
// atomic set of edges) and the container types that partition fabrics into
// bins and expose them to the pack orchestrator (internal/engine).
package bin

import (
	"sort"

	"github.com/fabricpack/fabricpack/internal/model"
)

// edgePairKey identifies an unordered pair of edges for a distance matrix.
type edgePairKey struct{ a, b model.EdgeID }

func pairKey(a, b model.EdgeID) edgePairKey {
	if a > b {
		a, b = b, a
	}
	return edgePairKey{a, b}
}

// pairDistances holds the three precomputed pairwise color-difference
// matrices a FabricBin maintains, skipping pairs that share a fabric since
// two edges of the same fabric can never co-occur in a subset.
type pairDistances struct {
	colorDiff map[edgePairKey]float64
	valueDiff map[edgePairKey]float64
	hueDiff   map[edgePairKey]float64
}

func (pd pairDistances) averagePairwise(edges []model.EdgeID, table map[edgePairKey]float64) float64 {
	n := len(edges)
	if n < 2 {
		return 0
	}
	var total float64
	var count int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d, ok := table[pairKey(edges[i], edges[j])]; ok {
				total += d
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func (pd pairDistances) colorDiffFn() map[edgePairKey]float64 { return pd.colorDiff }

// FabricBin is a set of edges plus the precomputed structures the solver
// queries: an order matrix and three pairwise color-distance matrices.
// After any mutation (edge removal, fabric trimming) UpdatePrecomputed must
// be called before the next solver query.
type FabricBin struct {
	ID      int
	Name    string
	Arena   *model.Arena
	EdgeIDs []model.EdgeID

	// order[i][j] == true iff edges[i].Length <= edges[j].Length, indexed
	// positionally into EdgeIDs.
	order [][]bool
	dist  pairDistances

	minLength int
	maxLength int
}

// NewFabricBin builds a bin over the given edges and computes its derived
// structures immediately.
func NewFabricBin(id int, name string, arena *model.Arena, edgeIDs []model.EdgeID) *FabricBin {
	b := &FabricBin{ID: id, Name: name, Arena: arena, EdgeIDs: append([]model.EdgeID(nil), edgeIDs...)}
	b.UpdatePrecomputed()
	return b
}

// ResolvedEdges returns the bin's edges as resolved model.Edge values, in
// EdgeIDs order.
func (b *FabricBin) ResolvedEdges() []model.Edge {
	out := make([]model.Edge, len(b.EdgeIDs))
	for i, id := range b.EdgeIDs {
		out[i] = b.Arena.Edge(id)
	}
	return out
}

// UpdatePrecomputed rebuilds the order matrix and color-distance matrices
// from the bin's current edge set. Call after any mutation.
func (b *FabricBin) UpdatePrecomputed() {
	edges := b.ResolvedEdges()
	n := len(edges)

	b.order = make([][]bool, n)
	for i := range b.order {
		b.order[i] = make([]bool, n)
		for j := range b.order[i] {
			b.order[i][j] = edges[i].Length <= edges[j].Length
		}
	}

	b.dist = pairDistances{
		colorDiff: make(map[edgePairKey]float64),
		valueDiff: make(map[edgePairKey]float64),
		hueDiff:   make(map[edgePairKey]float64),
	}
	for i := 0; i < n; i++ {
		fi := b.Arena.Fabric(edges[i].Fabric)
		for j := i + 1; j < n; j++ {
			if edges[i].Fabric == edges[j].Fabric {
				continue
			}
			fj := b.Arena.Fabric(edges[j].Fabric)
			k := pairKey(edges[i].ID, edges[j].ID)
			b.dist.colorDiff[k] = CIE1994Distance(fi.DominantColor, fj.DominantColor)
			b.dist.valueDiff[k] = ValueDistance(fi.DominantColor, fj.DominantColor)
			b.dist.hueDiff[k] = HueDistance(fi.DominantColor, fj.DominantColor)
		}
	}

	if n == 0 {
		b.minLength, b.maxLength = 0, 0
		return
	}

	// minLength: the smallest fabric's minimum side, the shortest sum any
	// non-empty subset can reach; maxLength: sum of each fabric's maximum
	// side, deduped per fabric since only one of a fabric's two edges can
	// ever be selected.
	seen := make(map[model.FabricID]bool)
	minLen, maxSum := -1, 0
	for _, e := range edges {
		if seen[e.Fabric] {
			continue
		}
		seen[e.Fabric] = true
		f := b.Arena.Fabric(e.Fabric)
		e1 := b.Arena.Edge(f.E1)
		e2 := b.Arena.Edge(f.E2)
		lo, hi := e1.Length, e2.Length
		if lo > hi {
			lo, hi = hi, lo
		}
		if minLen == -1 || lo < minLen {
			minLen = lo
		}
		maxSum += hi
	}
	b.minLength, b.maxLength = minLen, maxSum
}

// CanAfford reports whether this bin's [minLength, maxLength] span overlaps
// the target window [target, target+tolerance], i.e. whether it is even
// possible for a subset of this bin to reach the target sum.
func (b *FabricBin) CanAfford(target, tolerance int) bool {
	return b.maxLength >= target && b.minLength <= target+tolerance
}

// PairDistances exposes the bin's precomputed distance tables to the rank
// dispatcher in filters.go.
func (b *FabricBin) PairDistances() pairDistances { return b.dist }

// RemoveEdgesOfFabric drops every edge belonging to fabric id from the bin.
// Callers must call UpdatePrecomputed afterwards.
func (b *FabricBin) RemoveEdgesOfFabric(id model.FabricID) {
	kept := b.EdgeIDs[:0]
	for _, eid := range b.EdgeIDs {
		if b.Arena.Edge(eid).Fabric != id {
			kept = append(kept, eid)
		}
	}
	b.EdgeIDs = kept
}

// Subset is one candidate found by a solver path: the edges selected and
// their summed length.
type Subset struct {
	Edges []model.EdgeID
	Sum   int
}

// SolveConstraints bundles the optional bounds FindBestSubsets honors.
type SolveConstraints struct {
	ThicknessMin, ThicknessMax int // 0,0 means unbounded
	CountMin, CountMax         int // 0,0 means unbounded
}

func (c SolveConstraints) thicknessOK(thickness int) bool {
	if c.ThicknessMin != 0 && thickness < c.ThicknessMin {
		return false
	}
	if c.ThicknessMax != 0 && thickness > c.ThicknessMax {
		return false
	}
	return true
}

func (c SolveConstraints) countOK(n int) bool {
	if c.CountMin != 0 && n < c.CountMin {
		return false
	}
	if c.CountMax != 0 && n > c.CountMax {
		return false
	}
	return true
}

// FindBestSubsetsDP is the exact subset-sum dynamic program: state keyed by
// achievable sum, accumulating the sets of edge-subsets that attain it,
// enforcing fabric exclusivity (at most one edge per fabric) by tracking
// which fabrics a partial subset has already used.
func (b *FabricBin) FindBestSubsetsDP(target, tolerance int, highRes bool, c SolveConstraints) []Subset {
	edges := b.ResolvedEdges()

	type state struct {
		edges   []model.EdgeID
		fabrics map[model.FabricID]bool
	}
	// dp[sum] holds every distinct subset (by edge identity) that sums to
	// sum, subject to fabric exclusivity during construction.
	dp := map[int][]state{0: {{fabrics: map[model.FabricID]bool{}}}}

	upperBound := target + tolerance
	for _, e := range edges {
		length := e.Length
		if highRes {
			length = e.HighResLen
		}
		if length <= 0 {
			continue
		}
		next := make(map[int][]state)
		for sum, states := range dp {
			next[sum] = append(next[sum], states...)
		}
		for sum, states := range dp {
			newSum := sum + length
			if newSum > upperBound {
				continue
			}
			for _, st := range states {
				if st.fabrics[e.Fabric] {
					continue
				}
				fabrics := make(map[model.FabricID]bool, len(st.fabrics)+1)
				for k := range st.fabrics {
					fabrics[k] = true
				}
				fabrics[e.Fabric] = true
				edgesCopy := append(append([]model.EdgeID(nil), st.edges...), e.ID)
				next[newSum] = append(next[newSum], state{edges: edgesCopy, fabrics: fabrics})
			}
		}
		dp = next
	}

	var sums []int
	for sum, states := range dp {
		if sum < target || len(states) == 0 {
			continue
		}
		sums = append(sums, sum)
	}
	if len(sums) == 0 {
		// closest achievable below target
		best := -1
		for sum := range dp {
			if len(dp[sum]) == 0 {
				continue
			}
			if best == -1 || sum > best {
				best = sum
			}
		}
		if best == -1 {
			return nil
		}
		sums = []int{best}
	}
	sort.Slice(sums, func(i, j int) bool {
		return abs(sums[i]-target) < abs(sums[j]-target)
	})

	var out []Subset
	for _, sum := range sums {
		for _, st := range dp[sum] {
			if len(st.edges) == 0 {
				continue
			}
			if !c.countOK(len(st.edges)) {
				continue
			}
			thickness := b.thicknessOf(st.edges, highRes)
			if !c.thicknessOK(thickness) {
				continue
			}
			out = append(out, Subset{Edges: st.edges, Sum: sum})
		}
	}
	return out
}

func (b *FabricBin) thicknessOf(edges []model.EdgeID, highRes bool) int {
	best := -1
	for _, eid := range edges {
		e := b.Arena.Edge(eid)
		d := e.OtherDim(b.Arena, highRes)
		if best == -1 || d < best {
			best = d
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
