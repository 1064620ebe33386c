package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricpack/fabricpack/internal/model"
)

func TestExportSnapshotThenImportRoundTrips(t *testing.T) {
	core := newTestCore([][2]int{{200, 200}}, model.LogCabin)
	s := New(core, nil, map[model.FabricID]string{0: "scraps/a.png"}, []BinSpec{{Name: "all", Fabrics: []FabricRecord{{ID: 0, W: 200, H: 200}}}})

	opt := firstFabricOption(core)
	_, err := s.PackWithOption(opt)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	require.NoError(t, s.ExportSnapshot(path), "unexpected error exporting")

	data, err := ImportSnapshot(path)
	require.NoError(t, err, "unexpected error importing")
	require.Len(t, data.Steps, 1, "expected one step in imported snapshot")

	assert.Equal(t, model.LogCabin, data.Steps[0].Strategy)
	assert.Equal(t, "scraps/a.png", data.FabricPaths[0], "expected fabric path preserved")
	require.Len(t, data.BinLayout, 1)
	assert.Equal(t, "all", data.BinLayout[0].Name, "expected bin layout preserved")
}

func TestImportSnapshotRejectsMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := ImportSnapshot(path)
	assert.Error(t, err, "expected error for snapshot missing version field")
}
