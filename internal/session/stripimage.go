package session

import (
	"fmt"

	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
)

// OptionToStripImage renders opt's fabric subset as a standalone strip
// image, laid out the same attach-side order PackWithOption would use but
// positioned from its own origin rather than against the session's running
// composite, and stores it as an OptionHandle the caller can later
// round-trip back into PackWithOption without re-submitting the option.
func (s *Session) OptionToStripImage(opt model.PackingOption, fabricFolder string) (Handle, error) {
	s.mu.Lock()
	arena := s.Core.Arena
	strategy := s.Core.Strategy
	iter := s.Core.Iter
	sa := s.Core.Config.SA
	fabricPaths := s.FabricPaths
	s.mu.Unlock()

	side, err := engine.AttachSide(strategy, iter)
	if err != nil {
		return Handle{}, fmt.Errorf("session: option preview: %w", err)
	}

	horizontal := side == model.Top || side == model.Bottom
	tl := engine.TopLeft(side, model.Rect{}, opt.ShortestSide, sa)

	var placements []placedFabric
	for i, eid := range opt.EdgeSubset {
		e := arena.Edge(eid)
		f := arena.Fabric(e.Fabric)
		rotated, err := engine.RotateImageShape(f.W, f.H, e.Length+2*sa)
		if err != nil {
			return Handle{}, fmt.Errorf("session: option preview fabric %d: %w", f.ID, err)
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
		tl = engine.NextTopLeft(i, tl, horizontal, e.Length, sa)
	}

	strip, err := rasterizePlacements(placements, fabricPaths, fabricFolder)
	if err != nil {
		return Handle{}, err
	}
	return s.StoreHandle(opt, strip), nil
}
