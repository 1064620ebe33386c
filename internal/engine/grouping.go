package engine

import (
	"image/color"
	"sort"

	"github.com/fabricpack/fabricpack/internal/bin"
	"github.com/fabricpack/fabricpack/internal/model"
)

// GroupCriterion selects which color feature EstimateNBins/GroupFabrics
// compare fabrics by.
type GroupCriterion int

const (
	CriterionHue GroupCriterion = iota
	CriterionValue
	CriterionColor // full CIE1994 distance over Lab
)

// GroupMode selects which of a fabric's two color summaries feeds the
// chosen criterion.
type GroupMode int

const (
	ModeMean GroupMode = iota
	ModeDominant
)

func sampleColor(f model.Fabric, mode GroupMode) color.RGBA {
	if mode == ModeDominant {
		return f.DominantColor
	}
	return f.MeanColor
}

// criterionDistance is the pairwise distance GroupFabrics clusters by.
func criterionDistance(crit GroupCriterion, a, b color.RGBA) float64 {
	switch crit {
	case CriterionHue:
		return bin.HueDistance(a, b)
	case CriterionValue:
		return bin.ValueDistance(a, b)
	default:
		return bin.CIE1994Distance(a, b)
	}
}

// criterionScalar reduces a fabric's color to the one-dimensional feature
// EstimateNBins sweeps candidate cluster counts over.
func criterionScalar(crit GroupCriterion, c color.RGBA) float64 {
	switch crit {
	case CriterionHue:
		h, _, _ := bin.HSV(c)
		return h
	case CriterionValue:
		_, _, v := bin.HSV(c)
		return v * 255
	default:
		// CIE1994 has no single natural axis; distance from black stands
		// in as the one-dimensional proxy the silhouette sweep needs.
		return bin.CIE1994Distance(c, color.RGBA{A: 255})
	}
}

// EstimateNBins sweeps candidate bin counts 2..maxClusters and returns the
// one maximizing a silhouette-style score over fabrics' criterion scalars.
// Because the feature is one-dimensional, the optimal k-way partition for
// any k is always a split of the sorted values into k contiguous runs, so
// the sweep never needs an iterative k-means step.
func EstimateNBins(fabrics []model.Fabric, crit GroupCriterion, mode GroupMode, maxClusters int) int {
	if maxClusters < 2 {
		maxClusters = 2
	}
	values := make([]float64, len(fabrics))
	for i, f := range fabrics {
		values[i] = criterionScalar(crit, sampleColor(f, mode))
	}
	sort.Float64s(values)

	if len(values) < 4 {
		return 2
	}

	bestK, bestScore := 2, -2.0
	limit := maxClusters
	if limit > len(values)-1 {
		limit = len(values) - 1
	}
	for k := 2; k <= limit; k++ {
		labels := contiguousPartition(len(values), k)
		score := silhouetteScore(values, labels, k)
		if score > bestScore {
			bestScore = score
			bestK = k
		}
	}
	return bestK
}

// contiguousPartition splits n sorted items into k contiguous, near-equal
// runs and returns each item's run index.
func contiguousPartition(n, k int) []int {
	labels := make([]int, n)
	base := n / k
	extra := n % k
	idx := 0
	for cluster := 0; cluster < k; cluster++ {
		size := base
		if cluster < extra {
			size++
		}
		for j := 0; j < size && idx < n; j++ {
			labels[idx] = cluster
			idx++
		}
	}
	return labels
}

// silhouetteScore computes the mean silhouette coefficient over sorted 1-D
// values already split into k contiguous runs by labels.
func silhouetteScore(values []float64, labels []int, k int) float64 {
	n := len(values)
	groupIdx := make([][]int, k)
	for i := range values {
		groupIdx[labels[i]] = append(groupIdx[labels[i]], i)
	}

	var total float64
	for i, v := range values {
		own := labels[i]
		a := meanAbsDist(v, i, values, groupIdx[own])
		b := -1.0
		for g := 0; g < k; g++ {
			if g == own {
				continue
			}
			d := meanAbsDist(v, -1, values, groupIdx[g])
			if b < 0 || d < b {
				b = d
			}
		}
		s := 0.0
		if a != b {
			m := a
			if b > m {
				m = b
			}
			if m > 0 {
				s = (b - a) / m
			}
		}
		total += s
	}
	return total / float64(n)
}

// meanAbsDist averages |values[j]-v| over every index j in group, skipping
// selfIdx (the point's own index, so a within-cluster mean never counts the
// point's zero distance to itself). selfIdx is -1 when group is some other
// cluster, so nothing is skipped.
func meanAbsDist(v float64, selfIdx int, values []float64, group []int) float64 {
	var total float64
	count := 0
	for _, j := range group {
		if j == selfIdx {
			continue
		}
		d := values[j] - v
		if d < 0 {
			d = -d
		}
		total += d
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// GroupFabrics partitions fabrics into nBins groups by single-linkage
// agglomerative clustering over the pairwise criterion distance matrix.
// fixedBins, if non-nil, pre-seeds specific fabrics into specific output
// slots (by index); every other fabric is clustered into the remaining
// free slots, or, when no slot is free, added to the fixed group holding
// its nearest member.
func GroupFabrics(fabrics []model.Fabric, nBins int, crit GroupCriterion, mode GroupMode, fixedBins map[int][]model.FabricID) [][]model.Fabric {
	groups := make([][]model.Fabric, nBins)
	if nBins <= 0 {
		return groups
	}

	byID := make(map[model.FabricID]model.Fabric, len(fabrics))
	for _, f := range fabrics {
		byID[f.ID] = f
	}

	assigned := make(map[model.FabricID]bool)
	for idx, ids := range fixedBins {
		if idx < 0 || idx >= nBins {
			continue
		}
		for _, id := range ids {
			if f, ok := byID[id]; ok {
				groups[idx] = append(groups[idx], f)
				assigned[id] = true
			}
		}
	}

	var free []model.Fabric
	for _, f := range fabrics {
		if !assigned[f.ID] {
			free = append(free, f)
		}
	}

	freeSlots := nBins - len(fixedBins)
	if freeSlots < 0 {
		freeSlots = 0
	}

	var freeClusters [][]model.Fabric
	if freeSlots > 0 && len(free) > 0 {
		freeClusters = agglomerativeCluster(free, freeSlots, crit, mode)
	} else if len(free) > 0 {
		// No free slots: fold every unassigned fabric into its nearest
		// fixed centroid instead of discarding it.
		for _, f := range free {
			best, bestDist := -1, -1.0
			for idx := range groups {
				if len(groups[idx]) == 0 {
					continue
				}
				d := nearestMemberDistance(f, groups[idx], crit, mode)
				if best == -1 || d < bestDist {
					best, bestDist = idx, d
				}
			}
			if best == -1 {
				best = 0
			}
			groups[best] = append(groups[best], f)
		}
		return groups
	}

	slot := 0
	for i := range groups {
		if len(groups[i]) > 0 {
			continue
		}
		if slot < len(freeClusters) {
			groups[i] = freeClusters[slot]
			slot++
		}
	}
	for ; slot < len(freeClusters); slot++ {
		groups = append(groups, freeClusters[slot])
	}
	return groups
}

func nearestMemberDistance(f model.Fabric, group []model.Fabric, crit GroupCriterion, mode GroupMode) float64 {
	best := -1.0
	fc := sampleColor(f, mode)
	for _, g := range group {
		d := criterionDistance(crit, fc, sampleColor(g, mode))
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// agglomerativeCluster performs single-linkage hierarchical clustering,
// merging the two closest clusters (by minimum inter-member distance)
// until exactly k clusters remain.
func agglomerativeCluster(fabrics []model.Fabric, k int, crit GroupCriterion, mode GroupMode) [][]model.Fabric {
	if k <= 0 {
		k = 1
	}
	clusters := make([][]model.Fabric, len(fabrics))
	for i, f := range fabrics {
		clusters[i] = []model.Fabric{f}
	}
	if k >= len(clusters) {
		return clusters
	}

	for len(clusters) > k {
		bestI, bestJ, bestDist := -1, -1, -1.0
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				d := singleLinkageDistance(clusters[i], clusters[j], crit, mode)
				if bestI == -1 || d < bestDist {
					bestI, bestJ, bestDist = i, j, d
				}
			}
		}
		clusters[bestI] = append(clusters[bestI], clusters[bestJ]...)
		clusters = append(clusters[:bestJ], clusters[bestJ+1:]...)
	}
	return clusters
}

func singleLinkageDistance(a, b []model.Fabric, crit GroupCriterion, mode GroupMode) float64 {
	best := -1.0
	for _, fa := range a {
		ca := sampleColor(fa, mode)
		for _, fb := range b {
			d := criterionDistance(crit, ca, sampleColor(fb, mode))
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return best
}
