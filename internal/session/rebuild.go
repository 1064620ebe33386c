package session

import (
	"fmt"

	"github.com/fabricpack/fabricpack/internal/engine"
)

// Rebuild reconstructs a live, resumable Session from a persisted snapshot:
// a fresh arena/bin layout replayed in the recorded order (see
// rebuildArena) with every committed step re-applied through the real
// engine.PackWithOption, leaving the session ready for further
// NextPackingOptions/PackWithOption/Undo calls exactly where ExportSnapshot
// left off. Unlike ReconstructHighRes, this does not touch raster data —
// it is the CLI's way of resuming a session across process invocations,
// where internal/session's in-memory Registry does not survive.
func Rebuild(data SnapshotData) (*Session, error) {
	arena, ub, err := rebuildArena(data.BinLayout, data.Config.SA)
	if err != nil {
		return nil, err
	}

	core := &engine.Session{
		Arena:    arena,
		Bins:     ub.FabricBins,
		Strategy: data.Config.Strategy,
		Config:   data.Config,
	}

	s := New(core, data.InitialFabric, data.FabricPaths, data.BinLayout)
	for _, step := range data.Steps {
		if _, err := s.PackWithOption(step.Option); err != nil {
			return nil, fmt.Errorf("session: rebuild step %d: %w", step.Iter, err)
		}
	}
	return s, nil
}
