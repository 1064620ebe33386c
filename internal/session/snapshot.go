package session

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/fabricpack/fabricpack/internal/model"
)

// snapshotVersion is bumped whenever the on-disk shape changes
// incompatibly; ExportSnapshot stamps it, ImportSnapshot checks it.
const snapshotVersion = "1.0.0"

// FabricRecord is one fabric's arena geometry as recorded at load time:
// enough to replay model.NewFabric during ReconstructHighRes/Rebuild and
// get back identical edge lengths without re-deriving them from whatever
// image happens to live at FabricPaths[ID] on a later machine.
type FabricRecord struct {
	ID            model.FabricID `json:"id"`
	W             int            `json:"w"`
	H             int            `json:"h"`
	HighResW      int            `json:"high_res_w"`
	HighResH      int            `json:"high_res_h"`
	MeanColor     color.RGBA     `json:"mean_color"`
	DominantColor color.RGBA     `json:"dominant_color"`
}

// BinSpec is the ordered, replayable record of one bin's membership at
// session start: a name and the fabrics assigned to it, in the exact
// creation order CreateBinFromFabrics used, so replaying it reproduces
// identical bin and fabric ids.
type BinSpec struct {
	Name    string         `json:"name"`
	Fabrics []FabricRecord `json:"fabrics"`
}

// SnapshotData is the durable, JSON-serializable record of a session: the
// ordered list of chosen options, the strategy in force at each step, the
// initial fabric id if packing started from a single seed fabric, the
// config, and enough of the original bin layout and fabric image paths to
// rebuild an equivalent arena deterministically. ReconstructHighRes
// replays Steps against a freshly rebuilt arena rather than snapshotting
// raster state directly.
type SnapshotData struct {
	Version       string              `json:"version"`
	CreatedAt     string              `json:"created_at"`
	InitialFabric *model.FabricID     `json:"initial_fabric,omitempty"`
	Config        model.PackingConfig `json:"config"`
	Steps         []Step              `json:"steps"`
	FabricPaths   map[model.FabricID]string `json:"fabric_paths"`
	BinLayout     []BinSpec           `json:"bin_layout"`
}

// ExportSnapshot writes the session's current step history and config to
// path as indented JSON, creating path's directory first if needed.
func (s *Session) ExportSnapshot(path string) error {
	s.mu.Lock()
	data := SnapshotData{
		Version:       snapshotVersion,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		InitialFabric: s.InitialFabric,
		Config:        s.Core.Config,
		Steps:         append([]Step(nil), s.steps...),
		FabricPaths:   s.FabricPaths,
		BinLayout:     s.BinLayout,
	}
	s.mu.Unlock()

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("session: create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("session: write snapshot file: %w", err)
	}
	return nil
}

// ImportSnapshot reads a snapshot file written by ExportSnapshot. The
// caller is responsible for replaying Steps against a fresh arena to
// rebuild runnable session state (see ReconstructHighRes).
func ImportSnapshot(path string) (SnapshotData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SnapshotData{}, fmt.Errorf("session: read snapshot file: %w", err)
	}
	var data SnapshotData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SnapshotData{}, fmt.Errorf("session: parse snapshot file: %w", err)
	}
	if data.Version == "" {
		return SnapshotData{}, fmt.Errorf("session: invalid snapshot file: missing version field")
	}
	return data, nil
}
