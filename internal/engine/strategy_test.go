package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/model"
)

func TestAttachSideLogCabinCycles(t *testing.T) {
	want := []model.Side{model.Left, model.Top, model.Right, model.Bottom}
	for i, side := range want {
		got, err := AttachSide(model.LogCabin, i)
		require.NoError(t, err)
		assert.Equal(t, side, got, "iter %d", i)
	}
}

func TestAttachSideInvalidStrategy(t *testing.T) {
	_, err := AttachSide(model.Strategy("nonsense"), 0)
	assert.ErrorIs(t, err, model.ErrInvalidStrategy)
}

func TestTargetLengthAlternatesLogCabin(t *testing.T) {
	composite := model.Rect{W: 300, H: 200}
	assert.Equal(t, 200, TargetLength(model.LogCabin, 0, composite), "even iter: expected height")
	assert.Equal(t, 300, TargetLength(model.LogCabin, 1, composite), "odd iter: expected width")
}

func TestRotateImageShapeMatchesEitherSide(t *testing.T) {
	rotated, err := RotateImageShape(100, 200, 200)
	require.NoError(t, err)
	assert.True(t, rotated, "expected rotation needed when edge matches height")

	_, err = RotateImageShape(100, 200, 999)
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
}

func TestHighResPackedFabricSizeGrowsHeightOnTopBottom(t *testing.T) {
	w, h := HighResPackedFabricSize(model.Rect{W: 400, H: 400}, 100, model.Top, 25)
	assert.Equal(t, 400, w)
	assert.Equal(t, 550, h)
}
