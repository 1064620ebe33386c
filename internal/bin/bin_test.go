package bin

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/model"
)

func buildArenaWithFabrics(sizes [][2]int, sa int) (*model.Arena, []model.EdgeID) {
	a := model.NewArena()
	var edges []model.EdgeID
	for _, wh := range sizes {
		fid := model.NewFabric(a, wh[0], wh[1], 0, 0, sa, color.RGBA{R: 100, G: 100, B: 100, A: 255}, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		f := a.Fabric(fid)
		edges = append(edges, f.E1, f.E2)
	}
	return a, edges
}

func TestFindBestSubsetsDPExactSum(t *testing.T) {
	sa := 0
	a, edges := buildArenaWithFabrics([][2]int{{100, 50}, {150, 50}, {50, 50}}, sa)
	b := NewFabricBin(1, "test", a, edges)

	results := b.FindBestSubsetsDP(300, 10, false, SolveConstraints{})
	require.NotEmpty(t, results, "expected at least one subset")
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Sum, 300)
		assert.LessOrEqual(t, r.Sum, 310)
	}
}

func TestFindBestSubsetsDPExclusivity(t *testing.T) {
	a, edges := buildArenaWithFabrics([][2]int{{100, 100}}, 0)
	b := NewFabricBin(1, "test", a, edges)

	// Both edges belong to the same fabric; no subset may contain both.
	results := b.FindBestSubsetsDP(1, 1000, false, SolveConstraints{})
	for _, r := range results {
		seen := map[model.FabricID]bool{}
		for _, eid := range r.Edges {
			fid := a.Edge(eid).Fabric
			require.False(t, seen[fid], "subset contains two edges of the same fabric")
			seen[fid] = true
		}
	}
}

func TestCanAfford(t *testing.T) {
	a, edges := buildArenaWithFabrics([][2]int{{100, 100}, {200, 200}}, 0)
	b := NewFabricBin(1, "test", a, edges)

	assert.True(t, b.CanAfford(100, 50), "expected bin to afford a target within its span")
	assert.False(t, b.CanAfford(10000, 0), "expected bin to reject an unreachable target")
}

func TestUpdatePrecomputedOrderMatrix(t *testing.T) {
	a, edges := buildArenaWithFabrics([][2]int{{100, 50}, {200, 50}}, 0)
	b := NewFabricBin(1, "test", a, edges)
	// edges[0] (e1 of fabric0, length 100) <= edges[2] (e1 of fabric1, length 200)
	assert.True(t, b.order[0][2], "expected order[0][2] true for shorter-or-equal edge")
	assert.False(t, b.order[2][0], "expected order[2][0] false since 200 > 100")
}
