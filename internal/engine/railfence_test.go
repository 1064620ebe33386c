package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/model"
)

func TestEstimateStartLengthUsesAverageAndMax(t *testing.T) {
	s := newTestSession([][2]int{{100, 200}, {300, 50}}, model.RailFence)
	got := EstimateStartLength(s.Bins.Bins())
	// shorter sides: 100, 50 -> avg 75 * 1.2 = 90; longer sides max: 300
	assert.Equal(t, 300, got, "expected max-of-longer-sides 300 to win")
}

func TestAdvanceRailFenceStateSeedsTopOnce(t *testing.T) {
	s := newTestSession([][2]int{{200, 200}}, model.RailFence)
	AdvanceRailFenceState(s, s.Bins.Bins())
	require.NotZero(t, s.Config.TargetL.Top, "expected TargetL.Top to be seeded at iter 0")

	seeded := s.Config.TargetL.Top
	s.Config.TargetL.Top = 999
	AdvanceRailFenceState(s, s.Bins.Bins())
	assert.Equal(t, 999, s.Config.TargetL.Top,
		"expected AdvanceRailFenceState to leave an already-seeded TargetL.Top alone (was %d)", seeded)
}

func TestAdvanceRailFenceStateTransitionsBlock12(t *testing.T) {
	s := newTestSession(nil, model.RailFence)
	s.Config.TargetL.Top = 300
	s.Iter = 6
	s.Composite = model.Rect{W: 400, H: 300}

	AdvanceRailFenceState(s, s.Bins.Bins())

	assert.Equal(t, 400, s.Config.Block12Size.W,
		"expected Block12Size to capture the composite before reset, got %+v", s.Config.Block12Size)
	assert.Zero(t, s.Composite.W, "expected composite to reset at iter 6")
	assert.Zero(t, s.Composite.H, "expected composite to reset at iter 6")

	wantBottom := 400 - 300 + 2*s.Config.SA
	assert.Equal(t, wantBottom, s.Config.TargetL.Bottom)
}

func TestComposeRailFenceBlocksCropsWiderFromLeft(t *testing.T) {
	block12 := model.Rect{X: 0, Y: 0, W: 500, H: 300}
	block34 := model.Rect{X: 0, Y: 0, W: 400, H: 350}

	final, crop12, crop34 := ComposeRailFenceBlocks(block12, block34)

	assert.Equal(t, 400, final.W, "expected stacked footprint width 400")
	assert.Equal(t, 650, final.H, "expected stacked footprint height 650")

	assert.Equal(t, 400, crop12.W, "expected block12 cropped to width 400")
	assert.Equal(t, 100, crop12.X, "expected block12 cropped from its left edge")

	assert.Equal(t, 400, crop34.W, "expected block34 unchanged since it was already narrower")
	assert.Equal(t, 0, crop34.X, "expected block34 unchanged since it was already narrower")
}

func TestRailFenceThicknessConstraintsIter10CapsAtTop(t *testing.T) {
	cfg := model.DefaultPackingConfig(model.RailFence)
	cfg.TargetL.Top = 250
	c := RailFenceThicknessConstraints(cfg, 10)
	assert.Equal(t, 250, c.ThicknessMax)
}
