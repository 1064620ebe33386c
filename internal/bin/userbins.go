package bin

import (
	"fmt"

	"github.com/fabricpack/fabricpack/internal/model"
)

// maxFabricsPerBin is the most fabrics CreateBinFromFabrics puts in one
// bin; a longer fabric list is split into consecutive chunks of at most
// this many: a single bin with too many candidate edges blows the
// metaheuristic's per-generation budget before it converges.
const maxFabricsPerBin = 10

// UserFabricBins is the wire-facing bin container: built directly from a
// caller-supplied fabric list rather than derived by length or color
// partitioning, the container a "pick your own bins" client flow
// constructs against.
type UserFabricBins struct {
	*FabricBins
}

// NewUserFabricBins wraps an empty container.
func NewUserFabricBins(arena *model.Arena) *UserFabricBins {
	return &UserFabricBins{FabricBins: NewFabricBins(arena)}
}

// CreateBinFromFabrics builds one or more bins from fabricIDs, splitting
// into chunks of at most maxFabricsPerBin fabrics each so the solver budget
// per bin stays bounded.
func (u *UserFabricBins) CreateBinFromFabrics(name string, fabricIDs []model.FabricID) []*FabricBin {
	var out []*FabricBin
	for i := 0; i < len(fabricIDs); i += maxFabricsPerBin {
		end := i + maxFabricsPerBin
		if end > len(fabricIDs) {
			end = len(fabricIDs)
		}
		chunk := fabricIDs[i:end]
		var edges []model.EdgeID
		for _, fid := range chunk {
			f := u.arena.Fabric(fid)
			edges = append(edges, f.E1, f.E2)
		}
		chunkName := name
		if i > 0 {
			chunkName = fmt.Sprintf("%s-%d", name, i/maxFabricsPerBin)
		}
		out = append(out, u.AddBin(chunkName, edges))
	}
	return out
}

// CreateBinsForHighRes rebuilds a fresh set of bins over the same fabric
// ids for high-resolution reconstruction passes, where the edge lengths in
// play are HighResLen rather than Length; the bin structures themselves are
// resolution-agnostic so this simply re-adds the same fabrics under new
// bin ids.
func (u *UserFabricBins) CreateBinsForHighRes(name string, fabricIDs []model.FabricID) []*FabricBin {
	return u.CreateBinFromFabrics(name+"-hires", fabricIDs)
}

// UpdateFabrics removes from every bin all edges of the fabrics behind
// consumed (the pieces a pack step just used) and adds the E1/E2 edges of
// each fabric in remnants, under their existing ids, to the bin named
// intoBin, creating that bin if no bin has the name: spent fabrics drop
// out, leftover material re-enters circulation. It clones nothing; the
// remnant fabrics must already exist in the arena.
func (u *UserFabricBins) UpdateFabrics(consumed []model.EdgeID, remnants []model.FabricID, intoBin string) {
	for _, eid := range consumed {
		fid := u.arena.Edge(eid).Fabric
		u.RemoveFabric(fid)
	}
	if len(remnants) == 0 {
		return
	}
	target := u.Bin(0)
	for _, b := range u.bins {
		if b.Name == intoBin {
			target = b
			break
		}
	}
	var newEdges []model.EdgeID
	for _, fid := range remnants {
		f := u.arena.Fabric(fid)
		newEdges = append(newEdges, f.E1, f.E2)
	}
	if target == nil {
		u.AddBin(intoBin, newEdges)
		return
	}
	target.EdgeIDs = append(target.EdgeIDs, newEdges...)
	target.UpdatePrecomputed()
}

// UpdateBins performs a bulk re-bin: every fabric id referenced by
// assignments must already exist in the arena, enforced strictly (the
// original surfaces a 400 here rather than silently dropping unknown ids).
// assignments maps a bin name to the fabric ids it should now contain;
// existing bins are discarded and replaced wholesale.
func (u *UserFabricBins) UpdateBins(assignments map[string][]model.FabricID) error {
	for name, fabricIDs := range assignments {
		for _, fid := range fabricIDs {
			if !u.fabricExists(fid) {
				return fmt.Errorf("%w: bin %q references fabric %d", model.ErrBinUpdateFailure, name, fid)
			}
		}
	}
	u.bins = nil
	for name, fabricIDs := range assignments {
		u.CreateBinFromFabrics(name, fabricIDs)
	}
	return nil
}

func (u *UserFabricBins) fabricExists(id model.FabricID) bool {
	defer func() { recover() }()
	u.arena.Fabric(id)
	return true
}

// ToIDFabricMap returns every fabric currently referenced by any bin,
// keyed by id.
func (u *UserFabricBins) ToIDFabricMap() map[model.FabricID]model.Fabric {
	out := make(map[model.FabricID]model.Fabric)
	for _, b := range u.bins {
		for _, e := range b.ResolvedEdges() {
			if _, ok := out[e.Fabric]; !ok {
				out[e.Fabric] = u.arena.Fabric(e.Fabric)
			}
		}
	}
	return out
}

// ToFabricMap groups fabrics by the name of the bin that currently holds
// them.
func (u *UserFabricBins) ToFabricMap() map[string][]model.Fabric {
	out := make(map[string][]model.Fabric)
	for _, b := range u.bins {
		seen := make(map[model.FabricID]bool)
		for _, e := range b.ResolvedEdges() {
			if seen[e.Fabric] {
				continue
			}
			seen[e.Fabric] = true
			out[b.Name] = append(out[b.Name], u.arena.Fabric(e.Fabric))
		}
	}
	return out
}
