package model

import "image/color"

// FabricID and EdgeID are stable integer handles into a session's fabric
// arena. Cross-references use ids rather than pointers, so Fabric and Edge
// values can be copied, serialized, and compared by value without chasing
// cyclic edge<->fabric references.
type FabricID int
type EdgeID int

// Edge is one length-bearing side of a Fabric. Sibling always points at the
// fabric's other edge; the invariant Sibling.Sibling == self is maintained
// by the arena's constructors, never by callers mutating edges directly.
type Edge struct {
	ID         EdgeID
	Fabric     FabricID
	Sibling    EdgeID
	IsE1       bool // true for the horizontal edge (length = width - 2*sa)
	Length     int  // low-res length, pixels
	HighResLen int  // high-res length, 0 if not tracked
}

// OtherDim returns the length of this edge's sibling at the matching
// resolution: the fabric dimension orthogonal to the edge's own axis.
func (e Edge) OtherDim(arena *Arena, highRes bool) int {
	sib := arena.Edge(e.Sibling)
	if highRes {
		return sib.HighResLen
	}
	return sib.Length
}

// Fabric is one rectangular scrap: a low-resolution raster size, an
// optional high-resolution size, color summaries, and exactly two
// orthogonal edges.
type Fabric struct {
	ID            FabricID
	W, H          int // low-res pixel size
	HighResW      int
	HighResH      int
	MeanColor     color.RGBA
	DominantColor color.RGBA
	E1, E2        EdgeID // E1 horizontal (length w-2sa), E2 vertical (length h-2sa)
}

// Area returns the low-res pixel area of the fabric's raster.
func (f Fabric) Area() int { return f.W * f.H }

// Arena owns every Fabric and Edge created in a session, addressed by
// stable integer id. A bin or option never stores a Fabric/Edge by value
// reference into another owner's slice — it stores the id and looks the
// value up in the arena, which is what lets bins and the orchestrator pool
// exchange ownership of edges without aliasing.
type Arena struct {
	fabrics  map[FabricID]Fabric
	edges    map[EdgeID]Edge
	nextFab  FabricID
	nextEdge EdgeID
}

// NewArena creates an empty fabric/edge arena.
func NewArena() *Arena {
	return &Arena{
		fabrics: make(map[FabricID]Fabric),
		edges:   make(map[EdgeID]Edge),
	}
}

// NewFabric registers a fabric of the given low-res size (optionally with a
// high-res size; pass 0,0 when none is tracked) and seam allowance,
// creating its two sibling edges, and returns the new FabricID.
func NewFabric(a *Arena, w, h, highResW, highResH, sa int, mean, dominant color.RGBA) FabricID {
	fid := a.nextFab
	a.nextFab++

	e1id := a.nextEdge
	a.nextEdge++
	e2id := a.nextEdge
	a.nextEdge++

	e1Len := w - 2*sa
	e2Len := h - 2*sa
	var e1High, e2High int
	if highResW > 0 && highResH > 0 {
		// high-res seam allowance scales with the ratio of high to low res width
		scale := float64(highResW) / float64(w)
		e1High = highResW - int(2*float64(sa)*scale)
		e2High = highResH - int(2*float64(sa)*scale)
	}

	a.edges[e1id] = Edge{ID: e1id, Fabric: fid, Sibling: e2id, IsE1: true, Length: e1Len, HighResLen: e1High}
	a.edges[e2id] = Edge{ID: e2id, Fabric: fid, Sibling: e1id, IsE1: false, Length: e2Len, HighResLen: e2High}

	a.fabrics[fid] = Fabric{
		ID: fid, W: w, H: h, HighResW: highResW, HighResH: highResH,
		MeanColor: mean, DominantColor: dominant, E1: e1id, E2: e2id,
	}
	return fid
}

// Fabric looks up a fabric by id. Panics if the id is unknown: a caller
// holding a FabricID has no business dereferencing one the arena never
// issued or has already dropped without telling its holders.
func (a *Arena) Fabric(id FabricID) Fabric {
	f, ok := a.fabrics[id]
	if !ok {
		panic("model: unknown fabric id")
	}
	return f
}

// Edge looks up an edge by id.
func (a *Arena) Edge(id EdgeID) Edge {
	e, ok := a.edges[id]
	if !ok {
		panic("model: unknown edge id")
	}
	return e
}

// RemoveFabric drops a fabric and both of its edges from the arena.
func (a *Arena) RemoveFabric(id FabricID) {
	f, ok := a.fabrics[id]
	if !ok {
		return
	}
	delete(a.edges, f.E1)
	delete(a.edges, f.E2)
	delete(a.fabrics, id)
}

// UpdateAfterTrimming replaces a fabric's raster size (low- and high-res)
// in place, recomputing both edges' lengths while preserving the sibling
// relation and edge ids.
func (a *Arena) UpdateAfterTrimming(id FabricID, w, h, highResW, highResH, sa int, mean, dominant color.RGBA) {
	f := a.Fabric(id)
	f.W, f.H = w, h
	f.HighResW, f.HighResH = highResW, highResH
	f.MeanColor, f.DominantColor = mean, dominant
	a.fabrics[id] = f

	e1 := a.Edge(f.E1)
	e2 := a.Edge(f.E2)
	e1.Length = w - 2*sa
	e2.Length = h - 2*sa
	if highResW > 0 && highResH > 0 {
		scale := float64(highResW) / float64(w)
		e1.HighResLen = highResW - int(2*float64(sa)*scale)
		e2.HighResLen = highResH - int(2*float64(sa)*scale)
	} else {
		e1.HighResLen, e2.HighResLen = 0, 0
	}
	a.edges[f.E1] = e1
	a.edges[f.E2] = e2
}

// CloneFabric creates a new fabric with a fresh id but the same size and
// color as id, used when a single trimming step yields multiple remnants
// from one source fabric.
func (a *Arena) CloneFabric(id FabricID, sa int) FabricID {
	f := a.Fabric(id)
	return NewFabric(a, f.W, f.H, f.HighResW, f.HighResH, sa, f.MeanColor, f.DominantColor)
}

// Snapshot deep-copies the arena's fabric and edge maps, preserving every
// id exactly, so a caller can restore this exact state later (undo)
// without disturbing whatever the arena goes on to do in between.
func (a *Arena) Snapshot() *Arena {
	clone := &Arena{
		fabrics:  make(map[FabricID]Fabric, len(a.fabrics)),
		edges:    make(map[EdgeID]Edge, len(a.edges)),
		nextFab:  a.nextFab,
		nextEdge: a.nextEdge,
	}
	for k, v := range a.fabrics {
		clone.fabrics[k] = v
	}
	for k, v := range a.edges {
		clone.edges[k] = v
	}
	return clone
}
