package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/model"
)

func TestRebuildResumesAtSameIterationWithUndoIntact(t *testing.T) {
	core := newTestCore([][2]int{{200, 200}}, model.LogCabin)
	s := New(core, nil, map[model.FabricID]string{0: "a.png"}, []BinSpec{{Name: "all", Fabrics: []FabricRecord{{ID: 0, W: 200, H: 200}}}})

	opt := firstFabricOption(core)
	_, err := s.PackWithOption(opt)
	require.NoError(t, err)

	data := SnapshotData{
		Config:      core.Config,
		Steps:       s.Steps(),
		FabricPaths: s.FabricPaths,
		BinLayout:   s.BinLayout,
	}

	resumed, err := Rebuild(data)
	require.NoError(t, err)
	require.Equal(t, 1, resumed.Core.Iter, "expected resumed session at iter 1")
	require.Len(t, resumed.Steps(), 1, "expected one resumed step")

	require.NoError(t, resumed.Undo(), "unexpected error undoing resumed session")
	assert.Equal(t, 0, resumed.Core.Iter, "expected undo to restore iter 0")
}
