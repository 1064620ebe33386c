package bin

import (
	"context"
	"math/rand"
	"sort"

	"github.com/fabricpack/fabricpack/internal/model"
)

// SolverConfig tunes the preferred metaheuristic subset solver: population
// size, generation count, mutation rate, tournament size, elitism, a
// solution-count budget standing in for an MILP solver's solution limit,
// and the random seed. The wall-clock budget is not a field here: it
// arrives as the deadline of the ctx passed to FindBestSubsets.
type SolverConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	SolutionLimit  int
	Seed           int64
}

// DefaultSolverConfig returns small default knobs, since a single pack
// step must return well inside its per-bin time budget.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		PopulationSize: 40,
		Generations:    60,
		MutationRate:   0.2,
		TournamentSize: 3,
		EliteCount:     2,
		SolutionLimit:  8,
		Seed:           42,
	}
}

// candidate is a population member: a bitmask over the bin's edge list
// (true = edge selected), repaired for fabric exclusivity before scoring.
type candidate struct {
	mask    []bool
	sum     int
	fitness float64
}

// FindBestSubsets is the public solver entry point. It tries the preferred
// metaheuristic path first; if disabled (cfg.Generations == 0, the Go
// analogue of "MILP solver unavailable") or it finds nothing within budget,
// it falls back to the exact DP. Per spec §7, the fallback itself is never
// surfaced as an error — only logged by the caller.
func (b *FabricBin) FindBestSubsets(ctx context.Context, target, tolerance int, highRes bool, c SolveConstraints, cfg SolverConfig) (results []Subset, usedFallback bool) {
	if cfg.Generations > 0 && len(b.EdgeIDs) > 0 {
		if found := b.searchMetaheuristic(ctx, target, tolerance, highRes, c, cfg); len(found) > 0 {
			return truncate(found, cfg.SolutionLimit), false
		}
	}
	return truncate(b.FindBestSubsetsDP(target, tolerance, highRes, c), cfg.SolutionLimit), true
}

func truncate(results []Subset, limit int) []Subset {
	if limit <= 0 || len(results) <= limit {
		return results
	}
	return results[:limit]
}

// searchMetaheuristic runs a population search over edge-subset bitmasks:
// tournament selection, uniform crossover, bit-flip mutation, elitism.
// Infeasible children (two edges of the same fabric) are repaired rather
// than rejected, so no offspring is discarded.
func (b *FabricBin) searchMetaheuristic(ctx context.Context, target, tolerance int, highRes bool, c SolveConstraints, cfg SolverConfig) []Subset {
	edges := b.ResolvedEdges()
	n := len(edges)
	if n == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	length := func(i int) int {
		if highRes {
			return edges[i].HighResLen
		}
		return edges[i].Length
	}

	population := make([]candidate, cfg.PopulationSize)
	for i := range population {
		mask := make([]bool, n)
		for j := range mask {
			mask[j] = rng.Float64() < 0.3
		}
		population[i] = b.repairAndScore(mask, edges, length, target, tolerance, c)
	}

	archive := make(map[string]Subset)
	recordArchive := func(cand candidate) {
		if cand.sum < target-tolerance*4 { // discard candidates wildly off target
			return
		}
		var es []model.EdgeID
		for i, sel := range cand.mask {
			if sel {
				es = append(es, edges[i].ID)
			}
		}
		if len(es) == 0 || !c.countOK(len(es)) {
			return
		}
		if !c.thicknessOK(b.thicknessOf(es, highRes)) {
			return
		}
		archive[candidateKey(cand.mask)] = Subset{Edges: es, Sum: cand.sum}
	}

	for _, cand := range population {
		recordArchive(cand)
	}

	for gen := 0; gen < cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			return archiveResults(archive, target)
		default:
		}

		sort.Slice(population, func(i, j int) bool { return population[i].fitness > population[j].fitness })

		next := make([]candidate, 0, cfg.PopulationSize)
		elite := cfg.EliteCount
		if elite > len(population) {
			elite = len(population)
		}
		next = append(next, population[:elite]...)

		for len(next) < cfg.PopulationSize {
			p1 := tournament(population, cfg.TournamentSize, rng)
			p2 := tournament(population, cfg.TournamentSize, rng)
			childMask := make([]bool, n)
			for i := 0; i < n; i++ {
				if rng.Float64() < 0.5 {
					childMask[i] = p1.mask[i]
				} else {
					childMask[i] = p2.mask[i]
				}
				if rng.Float64() < cfg.MutationRate {
					childMask[i] = !childMask[i]
				}
			}
			child := b.repairAndScore(childMask, edges, length, target, tolerance, c)
			recordArchive(child)
			next = append(next, child)
		}
		population = next

		if len(archive) >= cfg.SolutionLimit {
			break
		}
	}

	return archiveResults(archive, target)
}

// repairAndScore enforces fabric exclusivity (at most one edge per fabric,
// resolved by keeping the first-seen edge and clearing the rest) and scores
// the resulting mask by its distance to [target, target+tolerance], minus
// a large penalty when the selected count breaks the count constraints.
// Wasted area is not part of the score; the caller computes it per option
// afterwards.
func (b *FabricBin) repairAndScore(mask []bool, edges []model.Edge, length func(int) int, target, tolerance int, c SolveConstraints) candidate {
	seenFabric := make(map[model.FabricID]bool)
	sum := 0
	for i, sel := range mask {
		if !sel {
			continue
		}
		if seenFabric[edges[i].Fabric] {
			mask[i] = false
			continue
		}
		seenFabric[edges[i].Fabric] = true
		sum += length(i)
	}

	fitness := -float64(distanceToWindow(sum, target, tolerance))
	if !c.countOK(countSelected(mask)) {
		fitness -= 1e6
	}
	return candidate{mask: mask, sum: sum, fitness: fitness}
}

func countSelected(mask []bool) int {
	n := 0
	for _, s := range mask {
		if s {
			n++
		}
	}
	return n
}

func distanceToWindow(sum, target, tolerance int) int {
	if sum < target {
		return target - sum
	}
	if sum > target+tolerance {
		return sum - target - tolerance
	}
	return 0
}

func tournament(population []candidate, size int, rng *rand.Rand) candidate {
	best := population[rng.Intn(len(population))]
	for i := 1; i < size; i++ {
		c := population[rng.Intn(len(population))]
		if c.fitness > best.fitness {
			best = c
		}
	}
	return best
}

func candidateKey(mask []bool) string {
	buf := make([]byte, len(mask))
	for i, s := range mask {
		if s {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

func archiveResults(archive map[string]Subset, target int) []Subset {
	out := make([]Subset, 0, len(archive))
	for _, v := range archive {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return abs(out[i].Sum-target) < abs(out[j].Sum-target)
	})
	return out
}
