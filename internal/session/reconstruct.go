package session

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/fabricpack/fabricpack/internal/bin"
	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
	"github.com/fabricpack/fabricpack/internal/raster"
)

var reconstructBG = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// placedFabric is one fabric's absolute placement, derived from replaying a
// Step's strip geometry, before the whole set is homed to a non-negative
// origin and rasterized.
type placedFabric struct {
	fabricID model.FabricID
	box      model.Rect
	rotated  bool
}

// ReconstructHighRes replays a session snapshot's committed steps against
// the original fabric scans in fabricFolder, rebuilding an arena
// deterministically from the snapshot's bin layout (so recorded EdgeSubset
// ids resolve against the replayed arena exactly as they did originally),
// and returns the final composite image plus the instruction trail used to
// build it. It performs no solving: every step's option was already chosen,
// so PackWithOption is replayed verbatim in order.
func ReconstructHighRes(data SnapshotData, fabricFolder string) (image.Image, []engine.Instruction, error) {
	arena, ub, err := rebuildArena(data.BinLayout, data.Config.SA)
	if err != nil {
		return nil, nil, err
	}

	core := &engine.Session{
		Arena:    arena,
		Bins:     ub.FabricBins,
		Strategy: data.Config.Strategy,
		Config:   data.Config,
	}

	var instructions []engine.Instruction
	var placements []placedFabric

	for _, step := range data.Steps {
		before := core.Composite
		side, err := engine.AttachSide(core.Strategy, core.Iter)
		if err != nil {
			return nil, nil, fmt.Errorf("session: reconstruct step %d: %w", step.Iter, err)
		}

		thickness := step.Option.ShortestSide
		tl := engine.TopLeft(side, before, thickness, data.Config.SA)
		horizontal := side == model.Top || side == model.Bottom
		for i, eid := range step.Option.EdgeSubset {
			e := arena.Edge(eid)
			f := arena.Fabric(e.Fabric)
			rotated, err := engine.RotateImageShape(f.W, f.H, e.Length+2*data.Config.SA)
			if err != nil {
				return nil, nil, fmt.Errorf("session: reconstruct step %d fabric %d: %w", step.Iter, f.ID, err)
			}
			w, h := f.W, f.H
			if rotated {
				w, h = h, w
			}
			placements = append(placements, placedFabric{
				fabricID: f.ID,
				box:      model.Rect{X: tl.X, Y: tl.Y, W: w, H: h},
				rotated:  rotated,
			})
			tl = engine.NextTopLeft(i, tl, horizontal, e.Length, data.Config.SA)
		}

		inst, err := engine.PackWithOption(core, step.Option)
		if err != nil {
			return nil, nil, fmt.Errorf("session: reconstruct step %d: %w", step.Iter, err)
		}
		instructions = append(instructions, inst)
	}

	canvas, err := rasterizePlacements(placements, data.FabricPaths, fabricFolder)
	if err != nil {
		return nil, nil, err
	}
	return canvas, instructions, nil
}

func rasterizePlacements(placements []placedFabric, fabricPaths map[model.FabricID]string, fabricFolder string) (image.Image, error) {
	if len(placements) == 0 {
		return raster.NewCanvas(0, 0, reconstructBG), nil
	}

	minX, minY, maxX, maxY := placements[0].box.X, placements[0].box.Y, placements[0].box.Right2(), placements[0].box.Bottom2()
	for _, p := range placements[1:] {
		if p.box.X < minX {
			minX = p.box.X
		}
		if p.box.Y < minY {
			minY = p.box.Y
		}
		if p.box.Right2() > maxX {
			maxX = p.box.Right2()
		}
		if p.box.Bottom2() > maxY {
			maxY = p.box.Bottom2()
		}
	}

	canvas := raster.NewCanvas(maxX-minX, maxY-minY, reconstructBG)
	for _, p := range placements {
		path, ok := fabricPaths[p.fabricID]
		if !ok {
			return nil, fmt.Errorf("session: no fabric path recorded for fabric %d", p.fabricID)
		}
		img, err := raster.ReadPNG(filepath.Join(fabricFolder, path))
		if err != nil {
			return nil, fmt.Errorf("session: reconstruct: %w", err)
		}
		if p.rotated {
			img = raster.RotateImage90(img, 90)
		}
		scaled := raster.ScaleTo(img, image.Rect(0, 0, p.box.W, p.box.H))
		raster.TransPaste(canvas, scaled, image.Pt(p.box.X-minX, p.box.Y-minY))
	}
	return canvas, nil
}

// rebuildArena replays every fabric in layout through model.NewFabric in
// bin-then-fabric order before building bins over them, so the resulting
// arena's FabricIDs/EdgeIDs are identical to the ones the original run
// produced and every EdgeSubset id recorded in a Step resolves correctly.
// Geometry comes from the recorded FabricRecord, not from re-reading the
// source image, so reconstruction is correct even if the image at
// FabricPaths[ID] was resized or replaced since the session was recorded.
func rebuildArena(layout []BinSpec, sa int) (*model.Arena, *bin.UserFabricBins, error) {
	arena := model.NewArena()
	ub := bin.NewUserFabricBins(arena)
	for _, bs := range layout {
		ids := make([]model.FabricID, 0, len(bs.Fabrics))
		for _, rec := range bs.Fabrics {
			fid := model.NewFabric(arena, rec.W, rec.H, rec.HighResW, rec.HighResH, sa, rec.MeanColor, rec.DominantColor)
			if fid != rec.ID {
				return nil, nil, fmt.Errorf("session: rebuild bin %q: fabric id mismatch, expected %d got %d", bs.Name, rec.ID, fid)
			}
			ids = append(ids, fid)
		}
		ub.CreateBinFromFabrics(bs.Name, ids)
	}
	return arena, ub, nil
}
